package editor

import (
	"fmt"

	"github.com/mitchellh/go-ps"
)

// processNames are executable names that indicate a running Unity editor.
//
//nolint:gochecknoglobals // Fixed lookup table.
var processNames = map[string]struct{}{
	"Unity":     {},
	"Unity.exe": {},
}

// IsRunning reports whether a Unity editor process is currently alive.
// Packaging while the editor is rewriting the asset database can capture a
// torn tree, so callers refuse to run unless forced.
func IsRunning() (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processes {
		if _, ok := processNames[process.Executable()]; ok {
			return true, nil
		}
	}

	return false, nil
}
