package submitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deffatest/unity-bridge/internal/api"
	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/logger"
)

// Options contains inputs for the submitter entry point.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// PackagePath is the .unitypackage file to upload.
	PackagePath string
	// Platform is the target platform for the test run.
	Platform string
	// Duration is the requested test duration.
	Duration time.Duration
}

// Default submission parameters, applied when flags are omitted.
const (
	DefaultPlatform = "android"
	DefaultDuration = 30 * time.Minute
)

// Run uploads a package for testing: verifies the account, submits the
// file, and logs the created test ID.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "unity-submitter")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if _, err = os.Stat(filepath.Clean(opts.PackagePath)); err != nil {
		return fmt.Errorf("stat package: %w", err)
	}

	if opts.Platform == "" {
		opts.Platform = DefaultPlatform
	}

	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.APIToken, api.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	account, err := client.VerifyAccount(ctx)
	if err != nil {
		return fmt.Errorf("verify account: %w", err)
	}

	logger.InfoKV(ctx, "Account verified", "email", account.Email, "plan", account.Plan)
	logger.InfoKV(ctx, "Uploading package",
		"path", opts.PackagePath,
		"platform", opts.Platform,
		"duration", opts.Duration.String())

	submission, err := client.SubmitTest(ctx, opts.PackagePath, opts.Platform, opts.Duration)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Test submitted", "test_id", submission.TestID)
	logger.Infof(ctx, "Track progress with: unity-watcher %s", submission.TestID)

	return nil
}
