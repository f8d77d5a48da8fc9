// Package packager builds a .unitypackage from an asset tree: it discovers
// assets with sidecar meta files, hand-assembles the tar stream grouped by
// GUID, and writes the gzip-compressed result atomically.
package packager
