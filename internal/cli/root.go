// Package cli wires the clipstream daemon's command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pasteworks/clipstream/internal/common"
	"github.com/pasteworks/clipstream/internal/config"
)

var (
	// Flags that apply to all commands
	logLevel string

	// The loaded configuration
	cfg *config.Config

	// Logger instance
	logger *zap.Logger

	// Version information - set by main
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "none"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "clipstream",
	Short: "Clipstream streams typed clipboard change events",
	Long: `Clipstream watches the operating-system clipboard and exposes every
change as a typed event: text, HTML, rich text, images, file lists, and
application-registered custom formats.

Running clipstream without a subcommand starts watching in the foreground.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger, err = common.NewLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipstream %s (built %s, commit %s)\n", Version, BuildTime, Commit)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"override configured log level (debug|info|warn|error)")
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(versionCmd)
}

// SetVersionInfo records build metadata injected by the linker.
func SetVersionInfo(version, buildTime, commit string) {
	Version = version
	BuildTime = buildTime
	Commit = commit
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
