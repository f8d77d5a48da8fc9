package tarball

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// WriteGzip compresses the archive buffer in a single pass and writes it to
// outputPath, returning the compressed size. The stream is staged in a
// temporary file next to the target and renamed into place, so a failed run
// never leaves a truncated package at the output path.
func WriteGzip(buf []byte, outputPath string) (int64, error) {
	outputPath = filepath.Clean(outputPath)

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create staging file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	gz := gzip.NewWriter(tmp)

	if _, err = gz.Write(buf); err != nil {
		return 0, fmt.Errorf("compress package: %w", err)
	}

	if err = gz.Close(); err != nil {
		return 0, fmt.Errorf("flush compressed stream: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("close staging file: %w", err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("stat staging file: %w", err)
	}

	if err = os.Rename(tmpPath, outputPath); err != nil {
		return 0, fmt.Errorf("move package into place: %w", err)
	}

	committed = true

	return info.Size(), nil
}
