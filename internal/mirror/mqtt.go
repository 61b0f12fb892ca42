// Package mirror republishes slot writes to an MQTT broker so other
// consumers (home automation, loggers) see the same text as the dashboard.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	defaultPort        = 1883
	defaultClientID    = "climateboard"
	defaultTopicPrefix = "climateboard/slots"

	publishQoS     = 1
	publishTimeout = 2 * time.Second
)

// ErrStopped is returned by Connect after Disconnect.
var ErrStopped = errors.New("mqtt mirror stopped")

// Config holds broker connection settings.
type Config struct {
	Broker      string
	Port        int
	ClientID    string
	TopicPrefix string
}

// broker is the part of mqtt.Client the mirror uses.
type broker interface {
	Connect() mqtt.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
}

// MQTT is a display that publishes every slot write as a retained message on
// <prefix>/<slot>. Writes made while disconnected are dropped.
type MQTT struct {
	client broker
	cfg    Config
	logger *slog.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a mirror for cfg. It does not connect; call [MQTT.Connect].
func New(cfg Config, logger *slog.Logger) *MQTT {
	cfg = withDefaults(cfg)
	if logger == nil {
		logger = slog.Default()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		logger.Info("mqtt connected", "broker", cfg.Broker, "port", cfg.Port)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})

	return newMirror(cfg, mqtt.NewClient(opts), logger)
}

func newMirror(cfg Config, client broker, logger *slog.Logger) *MQTT {
	return &MQTT{
		client: client,
		cfg:    withDefaults(cfg),
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

func withDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaultClientID
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = defaultTopicPrefix
	}
	cfg.TopicPrefix = strings.TrimSuffix(cfg.TopicPrefix, "/")
	return cfg
}

// Connect waits for the initial broker connection. It returns early when
// ctx is done or the mirror was disconnected.
func (m *MQTT) Connect(ctx context.Context) error {
	select {
	case <-m.stopCh:
		return ErrStopped
	default:
	}

	if m.client.IsConnected() {
		return nil
	}

	token := m.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.stopCh:
			return ErrStopped
		default:
		}
	}
}

// Topic returns the topic a slot is published on.
func (m *MQTT) Topic(slot string) string {
	return m.cfg.TopicPrefix + "/" + slot
}

// SetText publishes text as the retained value of slot.
func (m *MQTT) SetText(slot, text string) {
	topic := m.Topic(slot)

	if !m.client.IsConnected() {
		m.logger.Debug("mqtt not connected, dropping slot write", "topic", topic)
		return
	}

	token := m.client.Publish(topic, publishQoS, true, text)
	if !token.WaitTimeout(publishTimeout) {
		m.logger.Warn("mqtt publish timeout", "topic", topic)
		return
	}
	if err := token.Error(); err != nil {
		m.logger.Warn("mqtt publish failed", "topic", topic, "error", err)
		return
	}

	m.logger.Debug("published slot", "topic", topic, "text", text)
}

// Disconnect stops the mirror and closes the broker connection.
// Idempotent; after Disconnect, Connect returns [ErrStopped].
func (m *MQTT) Disconnect() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.client.Disconnect(250)
		m.logger.Info("mqtt disconnected")
	})
}
