// Package setup persists testing service credentials to the settings file,
// verifying them against the account endpoint first.
package setup
