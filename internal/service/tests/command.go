package tests

import (
	"context"
	"fmt"

	"github.com/deffatest/unity-bridge/internal/api"
	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/logger"
)

// Options contains inputs for the tests entry point.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// CancelID, when set, cancels that test run instead of listing.
	CancelID string
}

// Run lists the account's test runs, or cancels one when CancelID is set.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "unity-tests")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.APIToken, api.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	if opts.CancelID != "" {
		if err = client.CancelTest(ctx, opts.CancelID); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Cancellation requested", "test_id", opts.CancelID)

		return nil
	}

	runs, err := client.ListTests(ctx)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		logger.Info(ctx, "No test runs found")
		return nil
	}

	for _, run := range runs {
		logger.InfoKV(ctx, "Test run",
			"test_id", run.TestID,
			"status", run.Status,
			"percent", run.Progress,
			"defects", run.DefectCount)
	}

	return nil
}
