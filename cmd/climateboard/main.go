// Package main is the entry point for the climateboard CLI.
//
// climateboard can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	climateboard serve -c config.yaml    # Start the dashboard
//	climateboard validate -c config.yaml # Validate configuration
//	climateboard poll --url URL          # Run one cycle and print the slots
//	climateboard sensor --addr :8081     # Serve a mock sensor
//	climateboard version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "climateboard",
	Short: "A live temperature and humidity dashboard",
	Long: `climateboard polls a sensor endpoint for temperature and humidity and
shows both values on a web page that updates over Server-Sent Events.

Quick start:
  1. Start a sensor (or use the mock): climateboard sensor --addr :8081
  2. Create a config file (climateboard.yaml)
  3. Run: climateboard serve -c climateboard.yaml
  4. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  poll_interval: 5s
  source:
    url: http://localhost:8081`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this climateboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("climateboard %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
