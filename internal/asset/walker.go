package asset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deffatest/unity-bridge/internal/logger"
)

// Record describes one discovered asset to package: a file or directory
// inside the source tree that has a sidecar metadata file next to it.
// Records are immutable after the walk.
type Record struct {
	// Path is the forward-slash-normalized path of the asset as it will
	// appear in the package's pathname entry.
	Path string
	// MetaPath is the on-disk path of the sidecar metadata file.
	MetaPath string
	// IsDir reports whether the asset is a directory (no content entry).
	IsDir bool
	// ContentPath is the on-disk path to read file bytes from.
	// Empty for directories.
	ContentPath string
}

// Collect walks the asset tree rooted at root and returns the ordered list
// of packageable records: the root directory first (when it has a sidecar),
// then each subtree depth-first in directory listing order, directories
// before their children. Entries without a sidecar are skipped with a
// diagnostic; an unreadable directory aborts the walk.
func Collect(ctx context.Context, root string) ([]Record, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat assets root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("assets root %s is not a directory", root)
	}

	var records []Record

	// The root folder itself participates when its sidecar sits next to it.
	if hasSidecar(root) {
		records = append(records, Record{
			Path:     filepath.ToSlash(root),
			MetaPath: root + MetaSuffix,
			IsDir:    true,
		})
	} else {
		logger.WarnKV(ctx, "Assets root has no sidecar, packaging children only", "path", root)
	}

	return collectDir(ctx, root, records)
}

// collectDir appends records for the contents of dir, recursing into
// subdirectories after their own record is emitted.
func collectDir(ctx context.Context, dir string, records []Record) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if hasSidecar(fullPath) {
				records = append(records, Record{
					Path:     filepath.ToSlash(fullPath),
					MetaPath: fullPath + MetaSuffix,
					IsDir:    true,
				})
			} else {
				logger.WarnKV(ctx, "Skipping directory without sidecar", "path", fullPath)
			}

			// Children may still carry sidecars of their own.
			records, err = collectDir(ctx, fullPath, records)
			if err != nil {
				return nil, err
			}

			continue
		}

		// Sidecars are companions, never assets themselves.
		if strings.HasSuffix(entry.Name(), MetaSuffix) {
			continue
		}

		if !hasSidecar(fullPath) {
			logger.WarnKV(ctx, "Skipping file without sidecar", "path", fullPath)
			continue
		}

		records = append(records, Record{
			Path:        filepath.ToSlash(fullPath),
			MetaPath:    fullPath + MetaSuffix,
			IsDir:       false,
			ContentPath: fullPath,
		})
	}

	return records, nil
}

// hasSidecar reports whether a readable sidecar file exists for path.
// A stat failure counts as "no sidecar": the asset is skipped rather than
// aborting the whole walk.
func hasSidecar(path string) bool {
	info, err := os.Stat(path + MetaSuffix)

	return err == nil && !info.IsDir()
}
