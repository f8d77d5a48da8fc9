package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client wraps the testing service REST API with bearer-token auth and
// per-call timeouts.
type Client struct {
	// baseURL is the service root, without a trailing slash.
	baseURL string
	// token is sent as an Authorization bearer header on every call.
	token string
	// httpClient performs the actual requests.
	httpClient *http.Client

	// callTimeout bounds each individual API call.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// defaultCallTimeout bounds calls when the caller does not configure one.
const defaultCallTimeout = 10 * time.Second

// errorBodyLimit caps how much of an error response body is kept for the message.
const errorBodyLimit = 512

var (
	// errBaseURLRequired is returned when the base URL is missing.
	errBaseURLRequired = errors.New("base URL must be provided")
	// errTokenRequired is returned when the API token is missing.
	errTokenRequired = errors.New("API token must be provided")
	// errTestIDRequired is returned when an operation needs a test ID.
	errTestIDRequired = errors.New("test ID must be provided")
)

// NewClient creates a client for the testing service API.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	if token == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		httpClient:  http.DefaultClient,
		callTimeout: defaultCallTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Account describes the authenticated user as reported by the service.
type Account struct {
	// Email is the account's login address.
	Email string `json:"email"`
	// Plan is the subscription tier, which bounds test durations.
	Plan string `json:"plan"`
}

// Submission is the service's acknowledgement of an uploaded package.
type Submission struct {
	// TestID identifies the created test run.
	TestID string `json:"test_id"`
}

// Test run states reported by the status endpoint.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// TestStatus is one snapshot of a test run.
type TestStatus struct {
	// TestID identifies the test run.
	TestID string `json:"test_id"`
	// Status is one of the Status* constants.
	Status string `json:"status"`
	// Progress is the completion percentage, 0 to 100.
	Progress int `json:"progress"`
	// DefectCount is the number of defects found so far.
	DefectCount int `json:"defect_count"`
}

// Finished reports whether the run has reached a terminal state.
func (s *TestStatus) Finished() bool {
	switch s.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// VerifyAccount checks the token against the service and returns the account.
func (c *Client) VerifyAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.doJSON(ctx, http.MethodGet, "/user/profile", nil, "", &account); err != nil {
		return nil, fmt.Errorf("verify account: %w", err)
	}

	return &account, nil
}

// SubmitTest uploads a package for testing and returns the created test run.
// The package is sent as a multipart form together with the target platform
// and the requested test duration in minutes.
func (c *Client) SubmitTest(
	ctx context.Context,
	packagePath string,
	platform string,
	duration time.Duration,
) (*Submission, error) {
	contents, err := os.ReadFile(filepath.Clean(packagePath))
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}

	var body bytes.Buffer

	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("package", filepath.Base(packagePath))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	if _, err = part.Write(contents); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	minutes := int(duration / time.Minute)

	if err = form.WriteField("platform", platform); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	if err = form.WriteField("duration", strconv.Itoa(minutes)); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	if err = form.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	var submission Submission
	if err = c.doJSON(ctx, http.MethodPost, "/test/upload", &body, form.FormDataContentType(), &submission); err != nil {
		return nil, fmt.Errorf("submit test: %w", err)
	}

	return &submission, nil
}

// GetTestStatus retrieves the current snapshot of a test run.
func (c *Client) GetTestStatus(ctx context.Context, testID string) (*TestStatus, error) {
	if testID == "" {
		return nil, errTestIDRequired
	}

	var status TestStatus
	if err := c.doJSON(ctx, http.MethodGet, "/test/"+testID+"/status", nil, "", &status); err != nil {
		return nil, fmt.Errorf("get test status: %w", err)
	}

	return &status, nil
}

// CancelTest asks the service to stop a running test.
func (c *Client) CancelTest(ctx context.Context, testID string) error {
	if testID == "" {
		return errTestIDRequired
	}

	if err := c.doJSON(ctx, http.MethodPost, "/test/"+testID+"/cancel", nil, "", nil); err != nil {
		return fmt.Errorf("cancel test: %w", err)
	}

	return nil
}

// ListTests returns the account's test runs, newest first.
func (c *Client) ListTests(ctx context.Context) ([]TestStatus, error) {
	var tests []TestStatus
	if err := c.doJSON(ctx, http.MethodGet, "/tests", nil, "", &tests); err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	return tests, nil
}

// doJSON performs one authenticated call and decodes a JSON response into
// out when it is non-nil. Non-2xx responses become errors carrying the
// status and a snippet of the body.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body io.Reader,
	contentType string,
	out any,
) error {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
