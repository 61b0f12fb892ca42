// Package reading decodes temperature/humidity payloads and defines the
// error kinds a polling cycle can fail with.
//
// A [Reading] holds the text form of both fields, ready to be written into
// display slots. [Decode] turns a JSON body into a Reading; failures are
// reported as [*DecodeError]. Non-2xx responses are reported by the poller
// as [*HTTPStatusError].
//
// Both error types support [errors.As]:
//
//	var se *reading.HTTPStatusError
//	if errors.As(err, &se) {
//	    log.Printf("sensor returned %d", se.StatusCode)
//	}
package reading
