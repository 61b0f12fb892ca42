package climateboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jpalmerr/climateboard/dashboard"
	"github.com/jpalmerr/climateboard/internal/display"
	"github.com/jpalmerr/climateboard/internal/metrics"
	"github.com/jpalmerr/climateboard/internal/poller"
	"github.com/jpalmerr/climateboard/internal/server"
	"github.com/jpalmerr/climateboard/reading"
)

const (
	defaultPollingInterval = poller.DefaultInterval
	defaultPort            = 8080
)

// Slot identifiers written by every cycle.
const (
	SlotTemperature = display.SlotTemperature
	SlotHumidity    = display.SlotHumidity
)

// Board polls a temperature/humidity source and serves the two slots as a
// live dashboard.
//
// A Board is created with [New] and run with [Board.Start]. The caller
// controls the lifecycle via the context passed to Start:
//
//	b, err := climateboard.New(climateboard.WithSource("http://sensor.local"))
//	if err != nil {
//	    slog.Error("failed to create climateboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	b.Start(ctx) // blocks until context cancelled
type Board struct {
	title           string
	sourceURL       string
	pollingInterval time.Duration
	port            int
	logger          *slog.Logger
	resultCallbacks []func(PollResult)

	page      *display.Page
	poller    *poller.Poller
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	observeMu sync.Mutex
}

// New creates a [Board] with the given options.
//
// A source must be configured via [WithSource]. Other options have defaults:
//   - Polling interval: 5 seconds
//   - Port: 8080
//   - Fields: "temperature" and "humidity"
//
// Returns an error if no source is configured or if any option is invalid.
func New(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		pollingInterval: defaultPollingInterval,
		port:            defaultPort,
		fields:          reading.DefaultFields,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.source == "" {
		return nil, errors.New("source URL is required")
	}

	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.port)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	page := display.NewPage(SlotTemperature, SlotHumidity)
	targets := display.Multi{page}
	targets = append(targets, cfg.displays...)

	p := poller.NewPoller(poller.Config{
		URL:     cfg.source,
		Headers: copyMap(cfg.headers),
		Timeout: cfg.timeout,
		Fields:  cfg.fields,
	}, nil, targets, logger)

	registry := prometheus.NewRegistry()

	return &Board{
		title:           cfg.title,
		sourceURL:       cfg.source,
		pollingInterval: cfg.pollingInterval,
		port:            cfg.port,
		logger:          logger,
		resultCallbacks: cfg.resultCallbacks,
		page:            page,
		poller:          p,
		registry:        registry,
		metrics:         metrics.New(registry),
	}, nil
}

// Start begins polling the source and serving the dashboard.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The source is polled immediately, then at the configured interval
//   - The HTTP server starts on the configured port
//   - The dashboard is available at http://localhost:<port>
//   - Poll counters are exposed at /metrics
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server fails to start.
func (b *Board) Start(ctx context.Context) error {
	b.logger.Info("climateboard starting", "source", b.sourceURL)
	b.logger.Info("polling configured", "interval", b.pollingInterval.String())
	b.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", b.port))

	if ctx.Err() != nil {
		return nil
	}

	scheduler := poller.NewScheduler(b.poller, b.pollingInterval, b.logger)
	scheduler.Start(ctx)

	// track the results consumer goroutine to ensure clean shutdown
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for result := range scheduler.Results() {
			b.observe(result)
		}
	}()

	cleanup := func() {
		scheduler.Stop() // closes results channel
		wg.Wait()
	}

	httpServer := server.NewServer(b.page, b.port, dashboard.Assets, b.title, b.registry, b.logger)
	if err := httpServer.Start(ctx); err != nil {
		cleanup()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	cleanup()
	b.logger.Info("climateboard stopped")
	return nil
}

// Poll runs a single fetch-decode-render cycle outside the schedule.
//
// Failures are rendered as "Error" in both slots and logged; Poll never
// returns them. Registered callbacks see the cycle like any scheduled one.
func (b *Board) Poll(ctx context.Context) {
	result := b.poller.Run(ctx)
	if result.Cancelled {
		return
	}
	b.observe(result)
}

// Text returns the current text of a slot. Slots that were never written
// hold "--".
func (b *Board) Text(slot string) string {
	text, _ := b.page.Text(slot)
	return text
}

// Source returns the URL polled on every cycle.
func (b *Board) Source() string {
	return b.sourceURL
}

// Port returns the configured HTTP port for the dashboard server.
func (b *Board) Port() int {
	return b.port
}

// PollingInterval returns the configured interval between cycles.
func (b *Board) PollingInterval() time.Duration {
	return b.pollingInterval
}

// observe feeds a completed cycle to metrics and callbacks.
func (b *Board) observe(result poller.Result) {
	if result.Cancelled {
		return
	}

	// scheduled cycles and Poll share callbacks; run them one at a time
	b.observeMu.Lock()
	defer b.observeMu.Unlock()

	b.metrics.Observe(reading.Kind(result.Error), result.Latency, result.CheckedAt)

	if len(b.resultCallbacks) == 0 {
		return
	}
	public := pollerResultToPublicResult(result)
	for _, cb := range b.resultCallbacks {
		invokeCallbackSafe(cb, public, b.logger)
	}
}

// normalizeSource validates a source URL and points a bare host at the
// default data path.
func normalizeSource(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid source URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("source URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("source URL has no host: %q", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = poller.DefaultPath
	}
	return u.String(), nil
}

// invokeCallbackSafe calls a result callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(PollResult), result PollResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("result callback panicked",
				"panic", r,
				"cycle_id", result.CycleID,
			)
		}
	}()
	cb(result)
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
