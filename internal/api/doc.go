// Package api is the REST client for the remote bug-testing service:
// account verification, package submission, test status, cancellation and
// listing, all authenticated with a bearer token.
package api
