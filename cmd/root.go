// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tenakskd/ytserver-v2/internal/config"
	"github.com/Tenakskd/ytserver-v2/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig   string
	flagListen   string
	flagVariant  string
	flagDebug    bool
	flagJSONLogs bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logger is built from cfg once flags are parsed.
var logger *logrus.Logger

var rootCmd = &cobra.Command{
	Use:   "ytserver",
	Short: "Relay video metadata from Invidious mirrors as JSON",
	Long: `ytserver fetches watch pages (and a companion metadata API) from
third-party video mirrors, scrapes a fixed set of fields and republishes
them as one stable JSON shape.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/ytserver/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "s1-variant", "", "s1 field source: page | api")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "Log as JSON lines")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagVariant != "" {
		cfg.S1.Variant = flagVariant
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagJSONLogs {
		cfg.LogJSON = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		Debug: cfg.Debug,
	})
	logger.WithField("version", Version).Debug("configuration loaded")

	return nil
}
