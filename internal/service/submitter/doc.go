// Package submitter uploads a built .unitypackage to the testing service
// and reports the created test run.
package submitter
