package reading

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField reports a field that is absent or null in the payload.
	ErrMissingField = errors.New("missing field")

	// ErrNotScalar reports a field holding an object or array.
	ErrNotScalar = errors.New("field is not a scalar")
)

// Kinds returned by [Kind].
const (
	KindOK         = "ok"
	KindHTTPStatus = "http_status"
	KindDecode     = "decode"
	KindTransport  = "transport"
)

// HTTPStatusError is returned when the endpoint answers with a status
// outside the 2xx range.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// DecodeError is returned when the response body cannot be turned into a
// [Reading]. Field is empty when the body as a whole is not valid JSON.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode reading: %v", e.Err)
	}
	return fmt.Sprintf("decode reading: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind classifies a cycle error for logs and metrics. A nil error is
// [KindOK]; anything that is neither an HTTP status nor a decode failure is
// treated as a transport failure.
func Kind(err error) string {
	if err == nil {
		return KindOK
	}

	var se *HTTPStatusError
	if errors.As(err, &se) {
		return KindHTTPStatus
	}

	var de *DecodeError
	if errors.As(err, &de) {
		return KindDecode
	}

	return KindTransport
}
