// Package api provides a client for the KEGG REST API.
package api

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the default KEGG REST API endpoint.
	DefaultBaseURL = "https://rest.kegg.jp"
	// DefaultMaxRetries is the default number of retry attempts for failed requests.
	DefaultMaxRetries = 3
	// DefaultConcurrency is the default number of parallel fetches in the
	// drug-interaction fan-out.
	DefaultConcurrency = 4
)

// Transport performs a single request against the KEGG REST API and returns
// the raw response lines. Implementations own timeout and retry policy.
type Transport interface {
	Request(ctx context.Context, url string) ([]string, error)
}

// Client provides access to the KEGG REST API. It owns the entity and
// namespace-conversion caches built during resolution; each cache is
// populated at most once per (kind, organism) scope for the lifetime of
// the client and is immutable once built.
type Client struct {
	BaseURL     string
	Transport   Transport
	HTTPClient  *http.Client
	MaxRetries  int
	Concurrency int
	Logger      *log.Logger

	mu       sync.Mutex
	flight   singleflight.Group
	entities map[string]map[string]string
	conv     map[string]map[string]IDSet
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API client.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTransport sets a custom transport, replacing the default HTTP transport.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.Transport = t
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithMaxRetries sets the maximum number of retry attempts of the default
// transport.
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) {
		c.MaxRetries = retries
	}
}

// WithConcurrency sets the number of parallel fetches in the
// drug-interaction fan-out.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		c.Concurrency = n
	}
}

// WithLogger sets the logger. The default logger discards all output.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.Logger = logger
	}
}

// NewClient creates a new KEGG API client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		BaseURL:     DefaultBaseURL,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		MaxRetries:  DefaultMaxRetries,
		Concurrency: DefaultConcurrency,
		Logger:      log.New(io.Discard),
		entities:    make(map[string]map[string]string),
		conv:        make(map[string]map[string]IDSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Transport == nil {
		c.Transport = &HTTPTransport{
			HTTPClient: c.HTTPClient,
			MaxRetries: c.MaxRetries,
		}
	}
	return c
}

// Fetch executes one KEGG REST operation. The request path is the operation
// name followed by the positional arguments joined with "/". Each non-empty
// response line is split on tabs into a row of fields; blank lines are
// discarded. An empty response yields zero rows and no error; only transport
// failures return an error.
func (c *Client) Fetch(ctx context.Context, operation string, args ...string) ([][]string, error) {
	url := c.BaseURL + "/" + operation
	if len(args) > 0 {
		url += "/" + strings.Join(args, "/")
	}

	c.Logger.Debug("kegg fetch", "url", url)

	lines, err := c.Transport.Request(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", operation, err)
	}

	var rows [][]string
	for _, line := range lines {
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows, nil
}

// cached runs build under the given cache key, guaranteeing at most one
// in-flight build per key; concurrent callers join the in-flight call.
// Failed builds are not cached, so a later call retries.
func (c *Client) cached(key string, build func() (any, error)) (any, error) {
	v, err, _ := c.flight.Do(key, build)
	return v, err
}

// HTTPTransport is the default Transport. It issues GET requests and retries
// transient failures with exponential backoff; server errors (5xx) are
// retried, client errors (4xx) fail immediately.
type HTTPTransport struct {
	HTTPClient *http.Client
	MaxRetries int
	UserAgent  string
}

// Request performs a GET request against url and returns the response body
// split into lines.
func (t *HTTPTransport) Request(ctx context.Context, url string) ([]string, error) {
	httpClient := t.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	userAgent := t.UserAgent
	if userAgent == "" {
		userAgent = "KEGG-Go-Client/1.0"
	}

	var lastErr error

	for attempt := 0; attempt <= t.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/plain")

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("executing request: %w", err)
			continue
		}

		// Check for server errors (retry-able)
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			continue
		}

		// Check for client errors (not retry-able)
		if resp.StatusCode >= 400 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("API error: %s - %s", resp.Status, strings.TrimSpace(string(bodyBytes)))
		}

		lines, err := readLines(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		return lines, nil
	}

	return nil, lastErr
}

// readLines splits a response body into lines, tolerating CRLF endings.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
