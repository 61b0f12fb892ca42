package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jpalmerr/climateboard/sensor"
)

// flakySensor wraps a sensor and fails for a stretch of time every period,
// so the dashboard shows "Error" now and then.
type flakySensor struct {
	inner  sensor.Sensor
	period time.Duration
	outage time.Duration

	mu    sync.Mutex
	start time.Time
}

func (f *flakySensor) Measure(ctx context.Context) (sensor.Measurement, error) {
	f.mu.Lock()
	elapsed := time.Since(f.start) % f.period
	f.mu.Unlock()

	if elapsed >= f.period-f.outage {
		return sensor.Measurement{}, sensor.ErrNoReading
	}
	return f.inner.Measure(ctx)
}

// StartMockSensor serves a mock sensor on addr that is down for 10 seconds
// out of every minute. Call this in a goroutine before creating the board.
func StartMockSensor(addr string, logger *slog.Logger) {
	s := &flakySensor{
		inner:  sensor.NewMock(time.Now().UnixNano()),
		period: time.Minute,
		outage: 10 * time.Second,
		start:  time.Now(),
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           sensor.NewMux(s, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("mock sensor failed", "error", err)
	}
}
