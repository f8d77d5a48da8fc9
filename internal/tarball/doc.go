// Package tarball hand-assembles the .unitypackage container: a flat
// tar stream of 512-byte blocks built entry by entry (header checksum,
// octal fields, content padding, two-zero-block terminator), gzip-compressed
// in a single pass. The byte layout is the deliverable here, so the encoder
// does not use archive/tar for writing; tests read the output back with it
// to prove third-party tooling accepts the result.
package tarball
