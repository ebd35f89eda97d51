// Package api is the HTTP client for the upstream PinchBench leaderboard API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public PinchBench API.
const DefaultBaseURL = "https://api.pinchbench.com/api"

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

// ErrNotFound matches a *StatusError carrying HTTP 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client fetches leaderboard data. The zero value is not usable; call NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	strict     bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrict enables JSON schema validation of leaderboard payloads.
func WithStrict(strict bool) Option {
	return func(c *Client) { c.strict = strict }
}

// NewClient creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Leaderboard fetches the leaderboard rows for version. An empty version
// selects whatever the API considers current.
func (c *Client) Leaderboard(ctx context.Context, version string) ([]LeaderboardEntry, error) {
	q := url.Values{}
	if version != "" {
		q.Set("version", version)
	}
	raw, err := c.get(ctx, "/leaderboard", q)
	if err != nil {
		return nil, err
	}
	if c.strict {
		if err := validateLeaderboard(raw); err != nil {
			return nil, err
		}
	}
	var resp LeaderboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding leaderboard: %w", err)
	}
	return resp.Leaderboard, nil
}

// BenchmarkVersions lists the known benchmark dataset versions.
func (c *Client) BenchmarkVersions(ctx context.Context) (*VersionsResponse, error) {
	var resp VersionsResponse
	if err := c.getJSON(ctx, "/benchmark_versions", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submission fetches one full submission by id.
func (c *Client) Submission(ctx context.Context, id string) (*SubmissionDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("submission id is required")
	}
	var resp SubmissionDetailResponse
	if err := c.getJSON(ctx, "/submissions/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Submission, nil
}

// Submissions fetches a page of the submissions listing.
func (c *Client) Submissions(ctx context.Context, query SubmissionsQuery) (*SubmissionsResponse, error) {
	q := url.Values{}
	if query.Version != "" {
		q.Set("version", query.Version)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		q.Set("offset", strconv.Itoa(query.Offset))
	}
	var resp SubmissionsResponse
	if err := c.getJSON(ctx, "/submissions", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	raw, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Debug("api request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
			Path:       path,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// reasonPhrase returns the server's status text without the numeric code.
func reasonPhrase(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
