// Package config defines connection settings used by the bridge binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the testing service base URL and API token. The file
// is written with owner-only permissions because the token is a credential.
package config
