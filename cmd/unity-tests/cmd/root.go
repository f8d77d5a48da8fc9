package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/service/tests"
	"github.com/deffatest/unity-bridge/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// cancelID is the test run to cancel instead of listing.
	cancelID string

	// rootCmd represents the base command for listing and cancelling test runs.
	rootCmd = &cobra.Command{
		Use:   "unity-tests",
		Short: "List the account's test runs, or cancel one",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &tests.Options{
				ConfigPath: configPath,
				CancelID:   cancelID,
			}

			return tests.Run(ctx, options)
		},
	}
)

// Execute runs the unity-tests CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVar(&cancelID, "cancel", "", "cancel the given test run instead of listing")
}
