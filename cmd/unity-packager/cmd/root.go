package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deffatest/unity-bridge/internal/service/packager"
	"github.com/deffatest/unity-bridge/internal/version"
)

var (
	// force packages even while a Unity editor process is running.
	force bool

	// rootCmd represents the base command for building a .unitypackage.
	rootCmd = &cobra.Command{
		Use:   "unity-packager [assets-dir] [output-file]",
		Short: "Build a .unitypackage archive from an asset tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packager.Options{
				AssetsDir:  args[0],
				OutputPath: args[1],
				Force:      force,
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the unity-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "package even while a Unity editor is running")
}
