package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deffatest/unity-bridge/internal/api"
	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/logger"
	"github.com/deffatest/unity-bridge/internal/progress"
)

// Options controls the watcher polling behaviour and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// TestID is the test run to follow.
	TestID string
	// PollInterval defines the interval between status checks.
	PollInterval time.Duration
}

// DefaultPollInterval defines the fixed polling interval for status checks.
const DefaultPollInterval = 5 * time.Second

// errTestFailed indicates the followed run finished in the failed state.
var errTestFailed = errors.New("test run failed")

// Run follows a test run until it reaches a terminal state, logging every
// progress and defect-count change as it arrives.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "unity-watcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.APIToken, api.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Watching test", "test_id", opts.TestID, "interval", opts.PollInterval.String())

	var final *progress.Event

	for event := range progress.Watch(ctx, client, opts.TestID, opts.PollInterval) {
		switch event.Kind {
		case progress.KindProgress:
			logger.InfoKV(ctx, "Progress", "status", event.Status, "percent", event.Progress)
		case progress.KindDefects:
			logger.InfoKV(ctx, "Defects found", "count", event.DefectCount)
		case progress.KindCompleted:
			final = &event
		case progress.KindError:
			logger.WarnKV(ctx, "Status check failed", "error", event.Err)
		}
	}

	if final == nil {
		// Channel closed without a terminal event: the context was cancelled.
		logger.Info(ctx, "Context canceled, exiting")
		return nil
	}

	logger.InfoKV(ctx, "Test finished",
		"status", final.Status,
		"percent", final.Progress,
		"defects", final.DefectCount)

	if final.Status == api.StatusFailed {
		return errTestFailed
	}

	return nil
}
