package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/climateboard"
	"github.com/jpalmerr/climateboard/config"
	"github.com/jpalmerr/climateboard/internal/logging"
)

const (
	shutdownTimeout = 10 * time.Second
	mqttConnectWait = 10 * time.Second
)

// serveCmd starts the climateboard dashboard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the climateboard dashboard server.

The server will:
  - Load configuration from the specified YAML file
  - Poll the sensor immediately and then every poll_interval
  - Serve the dashboard UI and /metrics on the configured port
  - Mirror slot values to MQTT if a broker is configured

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  climateboard serve -c config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"source", cfg.Source.URL,
		"port", cfg.Port,
		"poll_interval", cfg.PollInterval.Duration().String(),
		"mqtt", cfg.MQTT.Enabled(),
	)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := append(config.BuildOptions(cfg), climateboard.WithLogger(logger))

	if m := config.BuildMirror(cfg, logger); m != nil {
		connectCtx, cancel := context.WithTimeout(ctx, mqttConnectWait)
		err := m.Connect(connectCtx)
		cancel()
		if err != nil {
			// slot writes are dropped until the client reconnects
			logger.Warn("mqtt connect failed, continuing without mirror", "error", err)
		}
		defer m.Disconnect()
		opts = append(opts, climateboard.WithDisplay(m))
	}

	b, err := climateboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create climateboard: %w", err)
	}

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
