package setup

import (
	"context"
	"fmt"

	"github.com/deffatest/unity-bridge/internal/api"
	"github.com/deffatest/unity-bridge/internal/config"
	"github.com/deffatest/unity-bridge/internal/logger"
)

// Options contains inputs for the setup entry point.
type Options struct {
	// ConfigPath is an optional path to persist connection settings.
	ConfigPath string
	// APIBaseURL is the base URL of the testing service REST API.
	APIBaseURL string
	// APIToken is the bearer token used to authenticate API calls.
	APIToken string
	// SkipVerify persists the settings without calling the service.
	SkipVerify bool
}

// Run validates the provided credentials against the service and persists
// them to the settings file.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "unity-setup")

	cfg := &config.Config{
		APIBaseURL: opts.APIBaseURL,
		APIToken:   opts.APIToken,
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !opts.SkipVerify {
		client, err := api.NewClient(cfg.APIBaseURL, cfg.APIToken, api.WithCallTimeout(cfg.Timeout))
		if err != nil {
			return err
		}

		account, err := client.VerifyAccount(ctx)
		if err != nil {
			return fmt.Errorf("verify credentials: %w", err)
		}

		logger.InfoKV(ctx, "Account verified", "email", account.Email, "plan", account.Plan)
	}

	if err := config.Save(opts.ConfigPath, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigFilename
	}

	logger.InfoKV(ctx, "Settings saved", "path", path)

	return nil
}
