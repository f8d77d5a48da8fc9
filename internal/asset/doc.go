// Package asset discovers packageable Unity assets: it walks a source tree,
// pairs files and directories with their sidecar .meta files, and extracts
// the GUID each sidecar declares. Assets without a usable sidecar are
// reported and excluded rather than failing the run.
package asset
