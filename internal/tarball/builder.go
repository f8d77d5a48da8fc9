package tarball

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deffatest/unity-bridge/internal/asset"
	"github.com/deffatest/unity-bridge/internal/logger"
)

// Builder assembles the flat tar stream of a Unity package: one
// <guid>/{pathname,asset.meta,asset} entry group per asset record, in record
// order, terminated by the two-zero-block end-of-archive marker.
//
// GUID uniqueness across sidecars is assumed, not enforced; every appended
// asset is logged with its GUID so collisions are visible in the run log.
type Builder struct {
	buf bytes.Buffer
	// appended counts asset groups written to the buffer.
	appended int
	// skipped counts records dropped for an unusable sidecar.
	skipped int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AppendAsset resolves the record's GUID and appends its entry group:
// a directory entry <guid>/, a pathname entry holding the normalized asset
// path, the raw sidecar as asset.meta, and the file contents as asset for
// non-directory records.
//
// A record whose sidecar cannot be read or parsed is skipped with a
// diagnostic. An unreadable content file is fatal: the asset was already
// selected for packaging, so a missing body means a broken source tree.
func (b *Builder) AppendAsset(ctx context.Context, record asset.Record) error {
	guid, metaContents, err := asset.ReadGUID(record.MetaPath)
	if err != nil {
		logger.WarnKV(ctx, "Skipping asset without usable sidecar", "path", record.Path, "error", err)
		b.skipped++

		return nil
	}

	b.appendEntry(guid+"/", nil, true)
	b.appendEntry(guid+"/pathname", []byte(record.Path), false)
	b.appendEntry(guid+"/asset.meta", metaContents, false)

	if !record.IsDir {
		contents, err := os.ReadFile(filepath.Clean(record.ContentPath))
		if err != nil {
			return fmt.Errorf("read asset contents: %w", err)
		}

		b.appendEntry(guid+"/asset", contents, false)
	}

	b.appended++

	logger.DebugKV(ctx, "Added asset", "path", record.Path, "guid", guid)

	return nil
}

// appendEntry encodes one tar entry into the buffer.
func (b *Builder) appendEntry(name string, content []byte, isDir bool) {
	b.buf.Write(EncodeEntry(name, content, isDir))
}

// Bytes returns the assembled archive buffer with the end-of-archive marker
// appended. The result length is always a multiple of BlockSize.
func (b *Builder) Bytes() []byte {
	out := make([]byte, b.buf.Len()+2*BlockSize)
	copy(out, b.buf.Bytes())

	return out
}

// AssetCount returns the number of asset groups in the archive.
func (b *Builder) AssetCount() int {
	return b.appended
}

// SkippedCount returns the number of records dropped for unusable sidecars.
func (b *Builder) SkippedCount() int {
	return b.skipped
}
