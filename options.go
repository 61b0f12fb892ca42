package climateboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jpalmerr/climateboard/internal/display"
	"github.com/jpalmerr/climateboard/reading"
)

// boardConfig holds mutable state during Board construction.
type boardConfig struct {
	title           string
	source          string
	pollingInterval time.Duration
	port            int
	timeout         time.Duration
	headers         map[string]string
	fields          reading.Fields
	logger          *slog.Logger
	displays        []Display
	resultCallbacks []func(PollResult)
}

// Option is a function that configures a [Board] during construction.
//
// Options return an error if validation fails; [New] stops at the first one.
type Option func(*boardConfig) error

// Display receives slot writes. The board always renders into its own page;
// [WithDisplay] adds further targets.
type Display = display.Display

// DisplayFunc adapts a plain function to [Display].
type DisplayFunc = display.DisplayFunc

// WithSource sets the URL polled on every cycle.
//
// A URL without a path, such as "http://192.168.1.40", is polled at
// /api/data. Only http and https URLs are accepted.
//
// Example:
//
//	b, err := climateboard.New(
//	    climateboard.WithSource("http://sensor.local/api/data"),
//	)
func WithSource(rawURL string) Option {
	return func(cfg *boardConfig) error {
		if strings.TrimSpace(rawURL) == "" {
			return errors.New("source URL cannot be empty")
		}
		u, err := normalizeSource(rawURL)
		if err != nil {
			return err
		}
		cfg.source = u
		return nil
	}
}

// WithPollingInterval sets how often the source is polled.
//
// Defaults to 5 seconds. A new cycle starts on every tick even if the
// previous one has not finished.
//
// Returns an error if the duration is zero or negative.
func WithPollingInterval(d time.Duration) Option {
	return func(cfg *boardConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.pollingInterval = d
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server.
//
// Defaults to 8080. Returns an error if the port is outside 1-65535.
func WithPort(port int) Option {
	return func(cfg *boardConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTimeout bounds each request to the source. Without it requests run
// until the source answers or the board stops.
//
// Returns an error if the duration is negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *boardConfig) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		cfg.timeout = d
		return nil
	}
}

// WithHeaders adds HTTP headers sent with every request, given as key-value
// pairs. Can be called multiple times; later values win.
//
// Example:
//
//	climateboard.WithHeaders("Authorization", "Bearer token", "Accept", "application/json")
//
// Returns an error if an odd number of arguments is given.
func WithHeaders(keyValues ...string) Option {
	return func(cfg *boardConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		if cfg.headers == nil {
			cfg.headers = make(map[string]string, len(keyValues)/2)
		}
		for i := 0; i < len(keyValues); i += 2 {
			if keyValues[i] == "" {
				return fmt.Errorf("header name at position %d is empty", i)
			}
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithFields sets the JSON paths of the two values, in dot notation.
//
// Example:
//
//	climateboard.WithFields("data.temp_c", "data.rh")
//
// Returns an error if either path is empty.
func WithFields(temperature, humidity string) Option {
	return func(cfg *boardConfig) error {
		if temperature == "" || humidity == "" {
			return errors.New("field paths cannot be empty")
		}
		cfg.fields = reading.Fields{Temperature: temperature, Humidity: humidity}
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and header.
//
// If not specified, defaults to "Climate".
func WithTitle(title string) Option {
	return func(cfg *boardConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *boardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithDisplay adds a display that receives every slot write after the
// board's own page. Displays are written in registration order.
//
// Returns an error if d is nil.
func WithDisplay(d Display) Option {
	return func(cfg *boardConfig) error {
		if d == nil {
			return errors.New("display cannot be nil")
		}
		cfg.displays = append(cfg.displays, d)
		return nil
	}
}

// WithResultCallback registers a function to be called on every completed
// cycle, successful or not.
//
// Multiple callbacks execute in registration order. Callbacks are invoked
// synchronously from a single goroutine and must not block. Panics are
// recovered and logged.
//
// Example:
//
//	climateboard.WithResultCallback(func(r climateboard.PollResult) {
//	    if !r.OK() {
//	        log.Printf("sensor unreachable: %v", r.Error)
//	    }
//	})
//
// Nil callbacks are silently ignored.
func WithResultCallback(cb func(PollResult)) Option {
	return func(cfg *boardConfig) error {
		if cb == nil {
			return nil
		}
		cfg.resultCallbacks = append(cfg.resultCallbacks, cb)
		return nil
	}
}
