// Package tests lists the account's test runs and cancels individual runs.
package tests
