// Package progress turns the service's poll-based test status endpoint into
// an ordered stream of typed events on a channel: a single goroutine polls,
// a single consumer drains. This replaces the editor-side cooperative
// polling loop with explicit event delivery.
package progress
