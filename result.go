package climateboard

import (
	"time"

	"github.com/jpalmerr/climateboard/internal/poller"
	"github.com/jpalmerr/climateboard/reading"
)

// PollResult describes one completed cycle, as seen by callbacks registered
// with [WithResultCallback].
type PollResult struct {
	// CycleID matches the cycle_id attribute on the cycle's log lines.
	CycleID string

	// URL is the source that was polled.
	URL string

	// Temperature and Humidity are the rendered values. Both are empty when
	// the cycle failed.
	Temperature string
	Humidity    string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	Latency   time.Duration
	CheckedAt time.Time

	// Error is nil on success. Use errors.As with [reading.HTTPStatusError]
	// or [reading.DecodeError] to tell failures apart.
	Error error
}

// OK reports whether the cycle rendered a reading.
func (r PollResult) OK() bool {
	return r.Error == nil
}

// Kind classifies the outcome: "ok", "http_status", "decode" or "transport".
func (r PollResult) Kind() string {
	return reading.Kind(r.Error)
}

func pollerResultToPublicResult(pr poller.Result) PollResult {
	return PollResult{
		CycleID:     pr.CycleID,
		URL:         pr.URL,
		Temperature: pr.Reading.Temperature,
		Humidity:    pr.Reading.Humidity,
		StatusCode:  pr.StatusCode,
		Latency:     pr.Latency,
		CheckedAt:   pr.CheckedAt,
		Error:       pr.Error,
	}
}
