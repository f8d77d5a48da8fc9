package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/service/submitter"
	"github.com/deffatest/unity-bridge/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// platform is the target platform for the test run.
	platform string

	// duration is the requested test duration.
	duration time.Duration

	// rootCmd represents the base command for submitting a package for testing.
	rootCmd = &cobra.Command{
		Use:   "unity-submitter [package-file]",
		Short: "Upload a .unitypackage to the testing service",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &submitter.Options{
				ConfigPath:  configPath,
				PackagePath: args[0],
				Platform:    platform,
				Duration:    duration,
			}

			return submitter.Run(ctx, options)
		},
	}
)

// Execute runs the unity-submitter CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&platform, "platform", "p", submitter.DefaultPlatform, "target platform for the test run")
	rootCmd.Flags().DurationVarP(&duration, "duration", "d", submitter.DefaultDuration, "requested test duration")
}
