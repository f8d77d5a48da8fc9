package tarball

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// TestWriteGzip_RoundTrip verifies decompressing the output reproduces the
// input buffer byte for byte.
func TestWriteGzip_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outputPath := filepath.Join(dir, "plugin.unitypackage")

	buf := bytes.Repeat([]byte("tar bytes "), 1000)

	size, err := WriteGzip(buf, outputPath)
	require.NoError(t, err)
	require.Positive(t, size)

	f, err := os.Open(outputPath)
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	decompressed, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.Equal(t, buf, decompressed)

	// Reported size matches the file on disk.
	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	require.Equal(t, info.Size(), size)
}

// TestWriteGzip_OverwritesExisting ensures a stale package at the output path
// is replaced.
func TestWriteGzip_OverwritesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outputPath := filepath.Join(dir, "plugin.unitypackage")
	require.NoError(t, os.WriteFile(outputPath, []byte("stale"), 0o644))

	_, err := WriteGzip([]byte("fresh archive"), outputPath)
	require.NoError(t, err)

	f, err := os.Open(outputPath)
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	decompressed, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.Equal(t, []byte("fresh archive"), decompressed)
}

// TestWriteGzip_NoPartialOutput ensures a failed write leaves nothing behind
// at the output path and no staging litter in its directory.
func TestWriteGzip_NoPartialOutput(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "missing", "plugin.unitypackage")

	_, err := WriteGzip([]byte("buffer"), outputPath)
	require.Error(t, err)

	_, err = os.Stat(outputPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}
