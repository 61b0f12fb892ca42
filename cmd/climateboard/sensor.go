package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/climateboard/internal/logging"
	"github.com/jpalmerr/climateboard/sensor"
)

// sensorCmd serves a mock sensor for local development.
var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Serve a mock sensor at /api/data",
	Long: `Serve GET /api/data with random readings: temperature in [20, 25) and
humidity in [40, 50). Use it as the source of a local dashboard.

Example:
  climateboard sensor --addr :8081`,
	RunE: runSensor,
}

func init() {
	rootCmd.AddCommand(sensorCmd)

	sensorCmd.Flags().String("addr", ":8081", "listen address")
	sensorCmd.Flags().Int64("seed", 0, "random seed (0 uses the current time)")
}

func runSensor(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger, err := logging.New(os.Stderr, slog.LevelInfo, "text")
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           sensor.NewMux(sensor.NewMock(seed), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("mock sensor listening", "addr", addr, "path", sensor.Path)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("sensor server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sensor shutdown: %w", err)
	}
	logger.Info("mock sensor stopped")
	return nil
}
