package tarball

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deffatest/unity-bridge/internal/asset"
)

const (
	rootGUID = "aaaa1111aaaa1111aaaa1111aaaa1111"
	itemGUID = "bbbb2222bbbb2222bbbb2222bbbb2222"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// chdir changes the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

// sidecarFor returns minimal Unity sidecar contents declaring a GUID.
func sidecarFor(guid string) string {
	return "fileFormatVersion: 2\nguid: " + guid + "\nfolderAsset: yes\n"
}

// tarEntry is one decoded archive entry.
type tarEntry struct {
	name     string
	typeFlag byte
	contents string
}

// readEntries decodes the raw tar buffer with the standard library reader,
// proving third-party tooling accepts the hand-assembled stream.
func readEntries(t *testing.T, buf []byte) []tarEntry {
	t.Helper()

	var entries []tarEntry

	reader := tar.NewReader(bytes.NewReader(buf))

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)

		contents, err := io.ReadAll(reader)
		require.NoError(t, err)

		entries = append(entries, tarEntry{
			name:     header.Name,
			typeFlag: header.Typeflag,
			contents: string(contents),
		})
	}

	return entries
}

// TestBuilder_EndToEndScenario packages a two-asset tree and verifies the
// exact entry sequence, the block alignment and the end-of-archive marker.
func TestBuilder_EndToEndScenario(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, "Assets/Pkg.meta", sidecarFor(rootGUID))
	writeFile(t, "Assets/Pkg/Item.txt", "hello")
	writeFile(t, "Assets/Pkg/Item.txt.meta", sidecarFor(itemGUID))

	ctx := context.Background()

	records, err := asset.Collect(ctx, "Assets/Pkg")
	require.NoError(t, err)
	require.Len(t, records, 2)

	builder := NewBuilder()
	for _, record := range records {
		require.NoError(t, builder.AppendAsset(ctx, record))
	}

	require.Equal(t, 2, builder.AssetCount())
	require.Zero(t, builder.SkippedCount())

	buf := builder.Bytes()

	// Always whole blocks, ending in two zero blocks.
	require.Zero(t, len(buf)%BlockSize)
	for _, b := range buf[len(buf)-2*BlockSize:] {
		require.Zero(t, b)
	}

	entries := readEntries(t, buf)
	require.Len(t, entries, 7)

	require.Equal(t, rootGUID+"/", entries[0].name)
	require.EqualValues(t, tar.TypeDir, entries[0].typeFlag)

	require.Equal(t, rootGUID+"/pathname", entries[1].name)
	require.Equal(t, "Assets/Pkg", entries[1].contents)

	require.Equal(t, rootGUID+"/asset.meta", entries[2].name)
	require.Equal(t, sidecarFor(rootGUID), entries[2].contents)

	require.Equal(t, itemGUID+"/", entries[3].name)
	require.Equal(t, itemGUID+"/pathname", entries[4].name)
	require.Equal(t, "Assets/Pkg/Item.txt", entries[4].contents)

	require.Equal(t, itemGUID+"/asset.meta", entries[5].name)
	require.Equal(t, sidecarFor(itemGUID), entries[5].contents)

	require.Equal(t, itemGUID+"/asset", entries[6].name)
	require.Equal(t, "hello", entries[6].contents)
}

// TestBuilder_SkipsRecordWithoutGUID ensures a sidecar without a GUID drops
// the record without failing the build.
func TestBuilder_SkipsRecordWithoutGUID(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	metaPath := filepath.Join(dir, "Broken.txt.meta")
	writeFile(t, filepath.Join(dir, "Broken.txt"), "contents")
	writeFile(t, metaPath, "fileFormatVersion: 2\n")

	builder := NewBuilder()

	err := builder.AppendAsset(context.Background(), asset.Record{
		Path:        "Assets/Broken.txt",
		MetaPath:    metaPath,
		ContentPath: filepath.Join(dir, "Broken.txt"),
	})
	require.NoError(t, err)
	require.Zero(t, builder.AssetCount())
	require.Equal(t, 1, builder.SkippedCount())

	// Only the terminator remains.
	require.Len(t, builder.Bytes(), 2*BlockSize)
}

// TestBuilder_FatalOnMissingContent ensures an unreadable content file aborts
// the build once the asset was selected for packaging.
func TestBuilder_FatalOnMissingContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	metaPath := filepath.Join(dir, "Gone.txt.meta")
	writeFile(t, metaPath, sidecarFor(itemGUID))

	builder := NewBuilder()

	err := builder.AppendAsset(context.Background(), asset.Record{
		Path:        "Assets/Gone.txt",
		MetaPath:    metaPath,
		ContentPath: filepath.Join(dir, "Gone.txt"),
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "read asset contents")
}
