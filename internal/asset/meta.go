package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// MetaSuffix is the extension Unity appends to sidecar metadata files.
const MetaSuffix = ".meta"

// guidPattern matches the GUID declaration inside a sidecar file.
// Unity writes GUIDs as a run of lowercase hex digits.
var guidPattern = regexp.MustCompile(`guid:\s*([a-f0-9]+)`)

// ErrNoGUID is returned when a sidecar file carries no GUID declaration.
var ErrNoGUID = errors.New("no GUID declaration found")

// ReadGUID reads a sidecar metadata file and extracts the first GUID
// declaration from its contents. It returns the GUID together with the raw
// file bytes so callers can embed the sidecar into the package without a
// second read. Failures are reported to the caller, which decides whether
// to skip the asset.
func ReadGUID(metaPath string) (string, []byte, error) {
	contents, err := os.ReadFile(filepath.Clean(metaPath))
	if err != nil {
		return "", nil, fmt.Errorf("read sidecar: %w", err)
	}

	match := guidPattern.FindSubmatch(contents)
	if match == nil {
		return "", nil, fmt.Errorf("%s: %w", metaPath, ErrNoGUID)
	}

	return string(match[1]), contents, nil
}
