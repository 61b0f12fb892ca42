package config

import (
	"log/slog"
	"sort"

	"github.com/jpalmerr/climateboard"
	"github.com/jpalmerr/climateboard/internal/mirror"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The returned options do not include a logger or extra displays; callers
// append those with [climateboard.WithLogger] and [climateboard.WithDisplay].
func BuildOptions(cfg *Config) []climateboard.Option {
	opts := []climateboard.Option{
		climateboard.WithSource(cfg.Source.URL),
		climateboard.WithPort(cfg.Port),
		climateboard.WithPollingInterval(cfg.PollInterval.Duration()),
	}

	if cfg.Title != "" {
		opts = append(opts, climateboard.WithTitle(cfg.Title))
	}

	if cfg.Source.Timeout != 0 {
		opts = append(opts, climateboard.WithTimeout(cfg.Source.Timeout.Duration()))
	}

	if len(cfg.Source.Headers) > 0 {
		opts = append(opts, climateboard.WithHeaders(mapToKeyValuePairs(cfg.Source.Headers)...))
	}

	if cfg.Source.Fields.Temperature != "" {
		opts = append(opts, climateboard.WithFields(cfg.Source.Fields.Temperature, cfg.Source.Fields.Humidity))
	}

	return opts
}

// BuildMirror creates the MQTT mirror described by cfg, or nil when no
// broker is configured. The mirror is not connected yet.
func BuildMirror(cfg *Config, logger *slog.Logger) *mirror.MQTT {
	if !cfg.MQTT.Enabled() {
		return nil
	}
	return mirror.New(mirror.Config{
		Broker:      cfg.MQTT.Broker,
		Port:        cfg.MQTT.Port,
		ClientID:    cfg.MQTT.ClientID,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, logger)
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
