// Package config provides YAML configuration parsing for climateboard.
//
// This package enables running climateboard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Greenhouse
//	port: 8080
//	poll_interval: 5s
//
//	source:
//	  url: http://${SENSOR_HOST:-192.168.1.40}
//	  timeout: 3s
//
//	log:
//	  level: info
//	  format: text
//
//	mqtt:
//	  broker: localhost
//	  topic_prefix: greenhouse/slots
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/climateboard/internal/logging"
)

// minPollInterval is the minimum allowed polling interval.
const minPollInterval = 1 * time.Second

const (
	defaultPort         = 8080
	defaultPollInterval = 5 * time.Second
)

// Config is the root configuration structure for climateboard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "Climate" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// PollInterval is the time between cycles. Defaults to 5s.
	PollInterval Duration `yaml:"poll_interval"`

	Source SourceConfig `yaml:"source"`
	Log    LogConfig    `yaml:"log"`

	// MQTT mirrors slot writes to a broker. Disabled when Broker is empty.
	MQTT MQTTConfig `yaml:"mqtt"`
}

// SourceConfig describes the sensor endpoint.
type SourceConfig struct {
	// URL is the endpoint to poll. A URL without a path is polled at
	// /api/data. Supports ${VAR} and ${VAR:-default}.
	URL string `yaml:"url"`

	// Timeout bounds each request. Zero means no timeout.
	Timeout Duration `yaml:"timeout"`

	// Headers are sent with every request. Values support env expansion.
	Headers map[string]string `yaml:"headers"`

	Fields FieldsConfig `yaml:"fields"`
}

// FieldsConfig names the JSON paths of the two values, in dot notation.
type FieldsConfig struct {
	Temperature string `yaml:"temperature"`
	Humidity    string `yaml:"humidity"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	// Level is debug, info, warn or error. Defaults to info.
	Level string `yaml:"level"`

	// Format is "text" (colourised, for terminals) or "json". Defaults to json.
	Format string `yaml:"format"`
}

// MQTTConfig configures the optional MQTT mirror.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	Port        int    `yaml:"port"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// Enabled reports whether a broker is configured.
func (m MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the source URL, header values and
// the MQTT broker. Defaults are applied for Port (8080) and PollInterval (5s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(defaultPollInterval)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	if err := c.Source.expandAndValidate(); err != nil {
		return err
	}

	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	broker, err := expandEnvVars(c.MQTT.Broker)
	if err != nil {
		return fmt.Errorf("mqtt.broker: %w", err)
	}
	c.MQTT.Broker = broker
	if c.MQTT.Port < 0 || c.MQTT.Port > 65535 {
		return fmt.Errorf("mqtt.port must be between 1 and 65535, got %d", c.MQTT.Port)
	}

	return nil
}

func (s *SourceConfig) expandAndValidate() error {
	if s.URL == "" {
		return errors.New("source.url is required")
	}
	expanded, err := expandEnvVars(s.URL)
	if err != nil {
		return fmt.Errorf("source.url: %w", err)
	}
	s.URL = expanded

	parsedURL, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("source.url: invalid url: %w", err)
	}
	if parsedURL.Scheme == "" {
		return errors.New("source.url must have a scheme (http:// or https://)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("source.url scheme must be http or https, got %q", parsedURL.Scheme)
	}

	for k, v := range s.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("source.headers[%s]: %w", k, err)
		}
		s.Headers[k] = expanded
	}

	if s.Timeout.Duration() < 0 {
		return fmt.Errorf("source.timeout cannot be negative, got %s", s.Timeout.Duration())
	}

	// both paths or neither
	s.Fields.Temperature = strings.TrimSpace(s.Fields.Temperature)
	s.Fields.Humidity = strings.TrimSpace(s.Fields.Humidity)
	if (s.Fields.Temperature == "") != (s.Fields.Humidity == "") {
		return errors.New("source.fields requires both temperature and humidity")
	}

	return nil
}
