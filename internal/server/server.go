package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpalmerr/climateboard/internal/display"
)

const (
	// sseWriteTimeout bounds a single SSE write so a stalled client cannot
	// pin its handler goroutine past shutdown.
	sseWriteTimeout = 5 * time.Second

	shutdownTimeout = 5 * time.Second

	defaultTitle     = "Climate"
	titlePlaceholder = "{{.Title}}"
)

// Server serves the dashboard page and the slot feed.
type Server struct {
	feed     display.Feed
	port     int
	assets   fs.FS
	title    string
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	addr       net.Addr
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - feed: slot state to serve
//   - port: TCP port to listen on (0 picks a free port)
//   - assets: embedded filesystem holding assets/index.html (may be nil)
//   - title: page title, "Climate" if empty
//   - gatherer: metrics source for /metrics (may be nil)
//   - logger: logger for server events
func NewServer(feed display.Feed, port int, assets fs.FS, title string, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	return &Server{
		feed:     feed,
		port:     port,
		assets:   assets,
		title:    title,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/slots", s.handleSlots)
	mux.HandleFunc("/api/sse", s.handleSSE)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.assets != nil {
		mux.HandleFunc("/", s.handleDashboard)
	}

	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start returns once the listener is bound. The server shuts down when ctx
// is cancelled. Returns an error if the port cannot be bound.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.addr = ln.Addr()
	s.mu.Unlock()

	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// handleDashboard serves the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.assets == nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	title := s.title
	if title == "" {
		title = defaultTitle
	}
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, html.EscapeString(title))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleSlots returns every slot as JSON.
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(s.feed.Snapshot()); err != nil {
		s.logger.Error("failed to encode slots response", "error", err)
	}
}

// handleSSE streams slot updates via Server-Sent Events, starting with the
// current snapshot.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)
	deadlinesSupported := true

	writeAndFlush := func(u display.Update) error {
		data, err := json.Marshal(u)
		if err != nil {
			return nil
		}

		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Debug("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.feed.Subscribe()
	defer s.feed.Unsubscribe(ch)

	for _, u := range s.feed.Snapshot() {
		if err := writeAndFlush(u); err != nil {
			return
		}
	}

	for {
		select {
		case u, ok := <-ch:
			if !ok {
				return
			}
			if err := writeAndFlush(u); err != nil {
				return
			}

		case <-r.Context().Done():
			// fires on client disconnect and on server shutdown (BaseContext)
			return
		}
	}
}
