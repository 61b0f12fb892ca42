package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/climateboard"
	"github.com/jpalmerr/climateboard/internal/logging"
)

// pollCmd runs a single cycle against a source and prints both slots.
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Poll a sensor once and print the slots",
	Long: `Run one fetch-decode-render cycle against a sensor endpoint and print the
text each slot would show. A failed cycle prints "Error" in both slots and
logs the cause to stderr; the command still exits 0.

Example:
  climateboard poll --url http://192.168.1.40
  climateboard poll --url http://localhost:8081/api/data --timeout 2s`,
	RunE: runPoll,
}

func init() {
	rootCmd.AddCommand(pollCmd)

	pollCmd.Flags().String("url", "", "sensor URL (required)")
	pollCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	pollCmd.Flags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = pollCmd.MarkFlagRequired("url")
}

func runPoll(cmd *cobra.Command, args []string) error {
	rawURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	levelName, _ := cmd.Flags().GetString("log-level")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, level, "text")
	if err != nil {
		return err
	}

	b, err := climateboard.New(
		climateboard.WithSource(rawURL),
		climateboard.WithTimeout(timeout),
		climateboard.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	b.Poll(context.Background())

	fmt.Printf("%s: %s\n", climateboard.SlotTemperature, b.Text(climateboard.SlotTemperature))
	fmt.Printf("%s: %s\n", climateboard.SlotHumidity, b.Text(climateboard.SlotHumidity))
	return nil
}
