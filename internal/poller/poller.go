package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/climateboard/internal/display"
	"github.com/jpalmerr/climateboard/reading"
)

// DefaultPath is the sensor endpoint path polled by default.
const DefaultPath = "/api/data"

// Config describes the source a [Poller] reads from and the slots it writes.
type Config struct {
	// URL is the endpoint to GET on every cycle.
	URL string

	// Headers are sent with every request.
	Headers map[string]string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Fields are the JSON paths of the two values.
	Fields reading.Fields

	// TemperatureSlot and HumiditySlot name the target slots. Empty values
	// default to [display.SlotTemperature] and [display.SlotHumidity].
	TemperatureSlot string
	HumiditySlot    string
}

// Result records the outcome of one cycle.
type Result struct {
	// CycleID correlates log lines of one cycle.
	CycleID string

	URL        string
	Reading    reading.Reading
	StatusCode int
	Latency    time.Duration
	CheckedAt  time.Time

	// Error is nil on success. Its [reading.Kind] tells the failure apart.
	Error error

	// Cancelled is true when the cycle was cut short by teardown. Nothing
	// was written to the display in that case.
	Cancelled bool
}

// Poller runs fetch-decode-render cycles against a fixed source.
//
// Cycles are independent: concurrent calls are allowed and are not
// de-duplicated, and whichever finishes last owns the slot text.
type Poller struct {
	cfg     Config
	client  *Client
	display display.Display
	logger  *slog.Logger
}

// NewPoller creates a [Poller]. A nil client gets a fresh [NewClient].
func NewPoller(cfg Config, client *Client, d display.Display, logger *slog.Logger) *Poller {
	if cfg.TemperatureSlot == "" {
		cfg.TemperatureSlot = display.SlotTemperature
	}
	if cfg.HumiditySlot == "" {
		cfg.HumiditySlot = display.SlotHumidity
	}
	if client == nil {
		client = NewClient()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		cfg:     cfg,
		client:  client,
		display: d,
		logger:  logger,
	}
}

// Poll runs one cycle. Failures are rendered and logged, never returned.
func (p *Poller) Poll(ctx context.Context) {
	_ = p.Run(ctx)
}

// Run runs one cycle and returns its [Result] for observers.
func (p *Poller) Run(ctx context.Context) Result {
	result := Result{
		CycleID: uuid.NewString(),
		URL:     p.cfg.URL,
	}

	resp := p.client.Fetch(ctx, p.cfg.URL, p.cfg.Headers, p.cfg.Timeout)
	result.StatusCode = resp.StatusCode
	result.Latency = resp.Latency
	result.CheckedAt = time.Now()

	switch {
	case resp.Error != nil:
		result.Error = resp.Error
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		result.Error = &reading.HTTPStatusError{StatusCode: resp.StatusCode}
	default:
		result.Reading, result.Error = reading.Decode(resp.Body, p.cfg.Fields)
	}

	if result.Error != nil && ctx.Err() != nil {
		result.Cancelled = true
		p.logger.Debug("poll cancelled", "cycle_id", result.CycleID, "url", result.URL)
		return result
	}

	if result.Error != nil {
		p.render(result.CycleID, display.ErrorText, display.ErrorText)
		p.logger.Warn("poll failed",
			"cycle_id", result.CycleID,
			"url", result.URL,
			"kind", reading.Kind(result.Error),
			"status_code", result.StatusCode,
			"error", result.Error.Error(),
		)
		return result
	}

	p.render(result.CycleID, result.Reading.Temperature, result.Reading.Humidity)
	p.logger.Debug("poll completed",
		"cycle_id", result.CycleID,
		"url", result.URL,
		"temperature", result.Reading.Temperature,
		"humidity", result.Reading.Humidity,
		"latency_ms", result.Latency.Milliseconds(),
	)
	return result
}

// render writes both slots. A panicking display is logged with a
// correlation ID and does not stop the cycle's caller.
func (p *Poller) render(cycleID, temperature, humidity string) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("display panic",
				"correlation_id", correlationID,
				"cycle_id", cycleID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()

	p.display.SetText(p.cfg.TemperatureSlot, temperature)
	p.display.SetText(p.cfg.HumiditySlot, humidity)
}

// Close releases idle connections held by the poller's client.
func (p *Poller) Close() {
	p.client.Close()
}
