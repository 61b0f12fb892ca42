package climateboard

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

// TestStart_BlocksUntilContextCancelled verifies that Start blocks until the
// provided context is cancelled.
func TestStart_BlocksUntilContextCancelled(t *testing.T) {
	ts := newSensor(t, http.StatusOK, `{"temperature":21,"humidity":44}`)

	// use a high port to avoid conflicts
	b, err := New(
		WithSource(ts.URL),
		WithPort(19001),
		WithPollingInterval(100*time.Millisecond),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("Start() returned early with error: %v", err)
	default:
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after context cancellation")
	}
}

// TestStart_ReturnsImmediatelyIfContextAlreadyCancelled verifies that Start
// returns immediately if the context is already cancelled.
func TestStart_ReturnsImmediatelyIfContextAlreadyCancelled(t *testing.T) {
	b, err := New(WithSource("http://sensor.local"), WithPort(19002), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- b.Start(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return with already-cancelled context")
	}
}

// TestStart_PollsImmediately verifies that the first cycle does not wait
// for the first tick.
func TestStart_PollsImmediately(t *testing.T) {
	ts := newSensor(t, http.StatusOK, `{"temperature":23.4,"humidity":47.1}`)

	rendered := make(chan struct{}, 1)
	b, err := New(
		WithSource(ts.URL),
		WithPort(19003),
		WithPollingInterval(time.Hour),
		WithLogger(testLogger()),
		WithResultCallback(func(r PollResult) {
			select {
			case rendered <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Start(ctx)
	}()

	select {
	case <-rendered:
	case <-time.After(2 * time.Second):
		t.Fatal("no cycle completed before the first tick")
	}

	if got := b.Text(SlotTemperature); got != "23.4" {
		t.Errorf("temperature = %q, want 23.4", got)
	}
	if got := b.Text(SlotHumidity); got != "47.1" {
		t.Errorf("humidity = %q, want 47.1", got)
	}

	cancel()
	<-done
}

// TestStart_ServesDashboardAndSlots verifies the HTTP surface while running.
func TestStart_ServesDashboardAndSlots(t *testing.T) {
	ts := newSensor(t, http.StatusOK, `{"temperature":19,"humidity":52}`)

	b, err := New(
		WithSource(ts.URL),
		WithPort(19004),
		WithPollingInterval(50*time.Millisecond),
		WithTitle("Greenhouse"),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- b.Start(ctx)
	}()

	base := "http://localhost:19004"
	waitForServer(t, "localhost:19004")

	// wait until a cycle has rendered
	deadline := time.Now().Add(2 * time.Second)
	for b.Text(SlotTemperature) != "19" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get(base + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(page), "Greenhouse") {
		t.Error("dashboard should contain the configured title")
	}
	if !strings.Contains(string(page), `id="temperature"`) {
		t.Error("dashboard should contain the temperature slot")
	}

	resp, err = http.Get(base + "/api/slots")
	if err != nil {
		t.Fatalf("GET /api/slots error = %v", err)
	}
	var slots []struct {
		Slot string `json:"slot"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	resp.Body.Close()

	got := map[string]string{}
	for _, s := range slots {
		got[s.Slot] = s.Text
	}
	if got["temperature"] != "19" || got["humidity"] != "52" {
		t.Errorf("slots = %v, want temperature=19 humidity=52", got)
	}

	resp, err = http.Get(base + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	metricsBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(metricsBody), "climateboard_polls_total") {
		t.Error("/metrics should expose climateboard_polls_total")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancellation")
	}
}

// TestStart_PortInUse verifies that a bind failure is returned.
func TestStart_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":19005")
	if err != nil {
		t.Skipf("cannot reserve port: %v", err)
	}
	defer ln.Close()

	b, err := New(WithSource("http://sensor.local"), WithPort(19005), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := b.Start(ctx); err == nil {
		t.Error("Start() should fail when the port is taken")
	}
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server at %s did not start", addr)
}
