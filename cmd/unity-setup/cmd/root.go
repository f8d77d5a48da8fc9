package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/service/setup"
	"github.com/deffatest/unity-bridge/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// skipVerify saves settings without checking them against the service.
	skipVerify bool

	// rootCmd represents the base command for persisting service credentials.
	rootCmd = &cobra.Command{
		Use:   "unity-setup [api-base-url] [api-token]",
		Short: "Verify and save testing service credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &setup.Options{
				ConfigPath: configPath,
				APIBaseURL: args[0],
				APIToken:   args[1],
				SkipVerify: skipVerify,
			}

			return setup.Run(ctx, options)
		},
	}
)

// Execute runs the unity-setup CLI and exits with non-zero status on error.
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
	rootCmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save settings without contacting the service")
}
