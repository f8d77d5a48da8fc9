package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReadGUID extracts the GUID and raw contents from a sidecar file.
func TestReadGUID(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Item.txt.meta")
	contents := "fileFormatVersion: 2\nguid: bbbb2222bbbb2222bbbb2222bbbb2222\nTextScriptImporter:\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	guid, raw, err := ReadGUID(path)
	require.NoError(t, err)
	require.Equal(t, "bbbb2222bbbb2222bbbb2222bbbb2222", guid)
	require.Equal(t, contents, string(raw))
}

// TestReadGUID_FirstMatchWins ensures only the first declaration is used.
func TestReadGUID_FirstMatchWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Item.txt.meta")
	contents := "guid: aaaa1111aaaa1111aaaa1111aaaa1111\nguid: bbbb2222bbbb2222bbbb2222bbbb2222\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	guid, _, err := ReadGUID(path)
	require.NoError(t, err)
	require.Equal(t, "aaaa1111aaaa1111aaaa1111aaaa1111", guid)
}

// TestReadGUID_Failures covers a missing declaration and an unreadable file.
func TestReadGUID_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// No declaration.
	path := filepath.Join(dir, "NoGUID.meta")
	require.NoError(t, os.WriteFile(path, []byte("fileFormatVersion: 2\n"), 0o644))

	_, _, err := ReadGUID(path)
	require.ErrorIs(t, err, ErrNoGUID)

	// Uppercase hex is not a Unity GUID.
	path = filepath.Join(dir, "Upper.meta")
	require.NoError(t, os.WriteFile(path, []byte("guid: AAAA1111BBBB2222CCCC3333DDDD4444\n"), 0o644))

	_, _, err = ReadGUID(path)
	require.ErrorIs(t, err, ErrNoGUID)

	// Unreadable file.
	_, _, err = ReadGUID(filepath.Join(dir, "missing.meta"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoGUID)
}
