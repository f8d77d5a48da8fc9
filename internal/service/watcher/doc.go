// Package watcher follows a submitted test run, draining the progress event
// stream until the run reaches a terminal state.
package watcher
