// Package sensor serves temperature/humidity readings at /api/data, the
// endpoint the board polls.
//
// The handler answers 200 with {"temperature": .., "humidity": ..} or, when
// the sensor fails, 500 with {"error": ".."}. [Mock] generates plausible
// indoor values so the whole system runs without hardware.
package sensor

import (
	"context"
	"errors"
	"math/rand"
	"sync"
)

// ErrNoReading is returned by a sensor that produced no value.
var ErrNoReading = errors.New("failed to read from sensor")

// Measurement is one raw sample.
type Measurement struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Sensor produces measurements on demand.
type Sensor interface {
	Measure(ctx context.Context) (Measurement, error)
}

// Func adapts a function to [Sensor].
type Func func(ctx context.Context) (Measurement, error)

// Measure implements [Sensor].
func (f Func) Measure(ctx context.Context) (Measurement, error) {
	return f(ctx)
}

// Mock returns random values: temperature in [20, 25) and humidity in
// [40, 50). Safe for concurrent use.
type Mock struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMock creates a [Mock] seeded with seed.
func NewMock(seed int64) *Mock {
	return &Mock{rnd: rand.New(rand.NewSource(seed))}
}

// Measure implements [Sensor].
func (m *Mock) Measure(ctx context.Context) (Measurement, error) {
	if err := ctx.Err(); err != nil {
		return Measurement{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return Measurement{
		Temperature: 20 + 5*m.rnd.Float64(),
		Humidity:    40 + 10*m.rnd.Float64(),
	}, nil
}
