package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/service/watcher"
	"github.com/deffatest/unity-bridge/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// pollInterval is the delay between status checks.
	pollInterval time.Duration

	// rootCmd represents the base command for following a test run.
	rootCmd = &cobra.Command{
		Use:   "unity-watcher [test-id]",
		Short: "Follow a test run until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &watcher.Options{
				ConfigPath:   configPath,
				TestID:       args[0],
				PollInterval: pollInterval,
			}

			return watcher.Run(ctx, options)
		},
	}
)

// Execute runs the unity-watcher CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().DurationVarP(&pollInterval, "interval", "i", watcher.DefaultPollInterval, "interval between status checks")
}
