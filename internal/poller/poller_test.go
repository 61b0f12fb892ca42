package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jpalmerr/climateboard/internal/display"
	"github.com/jpalmerr/climateboard/reading"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// payloadServer serves the given status and body on every request.
func payloadServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestPoller(url string, d display.Display) *Poller {
	return NewPoller(Config{URL: url}, nil, d, testLogger())
}

func assertSlots(t *testing.T, page *display.Page, wantTemp, wantHum string) {
	t.Helper()
	if got, _ := page.Text(display.SlotTemperature); got != wantTemp {
		t.Errorf("temperature slot = %q, want %q", got, wantTemp)
	}
	if got, _ := page.Text(display.SlotHumidity); got != wantHum {
		t.Errorf("humidity slot = %q, want %q", got, wantHum)
	}
}

func TestPoll_Success(t *testing.T) {
	ts := payloadServer(t, http.StatusOK, `{"temperature": 21.5, "humidity": 40}`)
	page := display.NewPage(display.SlotTemperature, display.SlotHumidity)

	newTestPoller(ts.URL, page).Poll(context.Background())

	assertSlots(t, page, "21.5", "40")
}

func TestPoll_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error": "Failed to read from sensor"}`, wantKind: reading.KindHTTPStatus},
		{name: "not found", status: http.StatusNotFound, body: `not found`, wantKind: reading.KindHTTPStatus},
		{name: "not modified", status: http.StatusNotModified, body: ``, wantKind: reading.KindHTTPStatus},
		{name: "non-json body", status: http.StatusOK, body: `<html>hello</html>`, wantKind: reading.KindDecode},
		{name: "missing field", status: http.StatusOK, body: `{"temperature": 21.5}`, wantKind: reading.KindDecode},
		{name: "null field", status: http.StatusOK, body: `{"temperature": null, "humidity": 40}`, wantKind: reading.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := payloadServer(t, tt.status, tt.body)
			page := display.NewPage(display.SlotTemperature, display.SlotHumidity)

			result := newTestPoller(ts.URL, page).Run(context.Background())

			assertSlots(t, page, display.ErrorText, display.ErrorText)
			if got := reading.Kind(result.Error); got != tt.wantKind {
				t.Errorf("Kind(Error) = %q, want %q (err: %v)", got, tt.wantKind, result.Error)
			}
			if result.Cancelled {
				t.Error("Cancelled = true, want false")
			}
		})
	}
}

func TestPoll_HTTPStatusErrorCarriesCode(t *testing.T) {
	ts := payloadServer(t, http.StatusInternalServerError, `{}`)
	page := display.NewPage()

	result := newTestPoller(ts.URL, page).Run(context.Background())

	var se *reading.HTTPStatusError
	if !errors.As(result.Error, &se) {
		t.Fatalf("Error = %v, want *HTTPStatusError", result.Error)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", se.StatusCode)
	}
}

func TestPoll_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listening any more

	page := display.NewPage(display.SlotTemperature, display.SlotHumidity)
	result := newTestPoller(url, page).Run(context.Background())

	assertSlots(t, page, display.ErrorText, display.ErrorText)
	if got := reading.Kind(result.Error); got != reading.KindTransport {
		t.Errorf("Kind(Error) = %q, want %q", got, reading.KindTransport)
	}
}

func TestPoll_SecondPayloadWins(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = io.WriteString(w, `{"temperature": 18, "humidity": 35}`)
			return
		}
		_, _ = io.WriteString(w, `{"temperature": 23.25, "humidity": 52}`)
	}))
	defer ts.Close()

	page := display.NewPage(display.SlotTemperature, display.SlotHumidity)
	p := newTestPoller(ts.URL, page)

	p.Poll(context.Background())
	assertSlots(t, page, "18", "35")

	p.Poll(context.Background())
	assertSlots(t, page, "23.25", "52")
}

func TestPoll_RecoversAfterFailure(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"temperature": 20, "humidity": 45}`)
	}))
	defer ts.Close()

	page := display.NewPage(display.SlotTemperature, display.SlotHumidity)
	p := newTestPoller(ts.URL, page)

	p.Poll(context.Background())
	assertSlots(t, page, display.ErrorText, display.ErrorText)

	p.Poll(context.Background())
	assertSlots(t, page, "20", "45")
}

func TestPoll_CustomSlotsAndFields(t *testing.T) {
	ts := payloadServer(t, http.StatusOK, `{"data": {"t": 19.5, "rh": 61}}`)
	page := display.NewPage()

	p := NewPoller(Config{
		URL:             ts.URL,
		Fields:          reading.Fields{Temperature: "data.t", Humidity: "data.rh"},
		TemperatureSlot: "temp-c",
		HumiditySlot:    "rh-pct",
	}, nil, page, testLogger())
	p.Poll(context.Background())

	if got, _ := page.Text("temp-c"); got != "19.5" {
		t.Errorf("temp-c = %q, want 19.5", got)
	}
	if got, _ := page.Text("rh-pct"); got != "61" {
		t.Errorf("rh-pct = %q, want 61", got)
	}
}

func TestPoll_CancelledContextDoesNotRender(t *testing.T) {
	ts := payloadServer(t, http.StatusOK, `{"temperature": 1, "humidity": 2}`)
	page := display.NewPage(display.SlotTemperature, display.SlotHumidity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestPoller(ts.URL, page).Run(ctx)

	if !result.Cancelled {
		t.Fatalf("Cancelled = false, want true (err: %v)", result.Error)
	}
	assertSlots(t, page, display.Placeholder, display.Placeholder)
}

func TestPoll_DisplayPanicIsRecovered(t *testing.T) {
	ts := payloadServer(t, http.StatusOK, `{"temperature": 1, "humidity": 2}`)
	boom := display.DisplayFunc(func(slot, text string) { panic("element detached") })

	p := newTestPoller(ts.URL, boom)

	// must not panic
	result := p.Run(context.Background())
	if result.Error != nil {
		t.Errorf("Error = %v, want nil", result.Error)
	}
}

func TestPoll_WritesBothSlotsOncePerCycle(t *testing.T) {
	ts := payloadServer(t, http.StatusOK, `{"temperature": 1, "humidity": 2}`)

	var writes []string
	rec := display.DisplayFunc(func(slot, text string) { writes = append(writes, slot) })

	newTestPoller(ts.URL, rec).Poll(context.Background())

	if len(writes) != 2 || writes[0] != display.SlotTemperature || writes[1] != display.SlotHumidity {
		t.Errorf("writes = %v, want [temperature humidity]", writes)
	}
}
