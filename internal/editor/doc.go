// Package editor detects a locally running Unity editor process.
package editor
