package packager

import (
	"context"
	"errors"
	"fmt"

	"github.com/deffatest/unity-bridge/internal/asset"
	"github.com/deffatest/unity-bridge/internal/editor"
	"github.com/deffatest/unity-bridge/internal/logger"
	"github.com/deffatest/unity-bridge/internal/tarball"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// AssetsDir is the asset tree to package, e.g. "Assets/MyPlugin".
	AssetsDir string
	// OutputPath is where the finished .unitypackage is written.
	OutputPath string
	// Force packages even while a Unity editor process is running.
	Force bool
}

var (
	// errEditorRunning indicates a Unity editor process was detected.
	errEditorRunning = errors.New("a Unity editor process is running; close it or pass --force")
	// errNoAssets indicates the walk produced nothing to package.
	errNoAssets = errors.New("no assets with sidecar meta files found")
)

// Run executes the packaging workflow: walk the asset tree, assemble the
// tar stream, compress and write it atomically. Per-asset sidecar problems
// are skipped with a warning; traversal and write failures abort the run.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "unity-packager")

	if !opts.Force {
		running, err := editor.IsRunning()
		if err != nil {
			logger.WarnKV(ctx, "Unable to check for a running editor", "error", err)
		} else if running {
			return errEditorRunning
		}
	}

	records, err := asset.Collect(ctx, opts.AssetsDir)
	if err != nil {
		return fmt.Errorf("walk assets: %w", err)
	}

	logger.InfoKV(ctx, "Collected assets", "path", opts.AssetsDir, "count", len(records))

	builder := tarball.NewBuilder()

	for _, record := range records {
		if err = builder.AppendAsset(ctx, record); err != nil {
			return fmt.Errorf("package %s: %w", record.Path, err)
		}
	}

	if builder.AssetCount() == 0 {
		return errNoAssets
	}

	size, err := tarball.WriteGzip(builder.Bytes(), opts.OutputPath)
	if err != nil {
		return fmt.Errorf("write package: %w", err)
	}

	logger.InfoKV(ctx, "Package created",
		"path", opts.OutputPath,
		"assets", builder.AssetCount(),
		"skipped", builder.SkippedCount(),
		"compressed_size", size)

	return nil
}
