package sensor

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Path is where [Handler] is mounted by [NewMux].
const Path = "/api/data"

type errorBody struct {
	Error string `json:"error"`
}

// Handler serves the latest measurement as JSON.
func Handler(s Sensor, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		logger.Debug("client connected", "remote_addr", r.RemoteAddr)

		m, err := s.Measure(r.Context())
		if err != nil {
			logger.Warn("sensor read failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()}, logger)
			return
		}

		writeJSON(w, http.StatusOK, m, logger)
	})
}

// NewMux returns a mux with [Handler] mounted at [Path].
func NewMux(s Sensor, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, Handler(s, logger))
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}
