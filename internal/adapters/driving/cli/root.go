// Package cli provides the Cobra command-line interface for Booktalk.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/booktalk-cli/internal/logger"
)

// version is the build version, set via SetVersion at startup.
var version = "dev"

// Persistent flag values.
var (
	flagVerbose bool
	flagConfig  string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "booktalk",
	Short: "Chat with a plain-text book in your terminal",
	Long: `Booktalk is a terminal chat application: load a plain-text book
and exchange messages about it.

The default responder simulates a completion API; configure a provider in
~/.booktalk/config.toml (or BOOKTALK_* environment variables) to talk to a
real one.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env is fine; the file is a convenience.
		_ = godotenv.Load()
		logger.SetVerbose(flagVerbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"path to the config file (default: ~/.booktalk/config.toml)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
