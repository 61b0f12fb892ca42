package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/climateboard"
	"github.com/jpalmerr/climateboard/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a climateboard configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  climateboard validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// building the board resolves the polled URL the same way serve does
	b, err := climateboard.New(config.BuildOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fields := cfg.Source.Fields
	if fields.Temperature == "" {
		fields = config.FieldsConfig{Temperature: "temperature", Humidity: "humidity"}
	}

	mqtt := "disabled"
	if cfg.MQTT.Enabled() {
		mqtt = cfg.MQTT.Broker
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Port:          %d\n", b.Port())
	fmt.Printf("  Poll interval: %s\n", b.PollingInterval())
	fmt.Printf("  Source:        %s\n", b.Source())
	fmt.Printf("  Fields:        %s, %s\n", fields.Temperature, fields.Humidity)
	fmt.Printf("  MQTT:          %s\n", mqtt)

	return nil
}
