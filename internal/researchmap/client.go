package researchmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the researchmap API base URL.
	BaseURL = "https://api.researchmap.jp"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultLimit is the page size requested from the listing endpoint.
	DefaultLimit = 500

	// RateLimit keeps repeated runs polite to the public API.
	RateLimit = 1.0

	// MaxResponseBytes caps the listing body.
	MaxResponseBytes = 32 << 20

	userAgent = "labpubs/1.0"
)

// Client is a rate-limited HTTP client for the researchmap API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	limit      int
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithLimit sets the page size. Values <= 0 keep the default.
func WithLimit(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new researchmap client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		limit:      DefaultLimit,
		userAgent:  userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListURL returns the listing URL for an author.
func (c *Client) ListURL(authorID string) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.limit))
	return fmt.Sprintf("%s/%s/published_papers?%s", c.baseURL, url.PathEscape(authorID), q.Encode())
}

// PublishedPapers issues a single request for the author's published papers.
// There is no retry. A body without "items" yields an empty slice, and items
// that cannot be decoded are logged and skipped.
func (c *Client) PublishedPapers(ctx context.Context, authorID string) ([]RawRecord, error) {
	if authorID == "" {
		return nil, fmt.Errorf("researchmap: empty author id")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ListURL(authorID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &APIError{StatusCode: resp.StatusCode, AuthorID: authorID}
	}

	var body listResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes))
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding listing: %v", ErrInvalidResponse, err)
	}

	records := make([]RawRecord, 0, len(body.Items))
	for i, item := range body.Items {
		var r RawRecord
		if err := json.Unmarshal(item, &r); err != nil {
			slog.Warn("skipping malformed record", "author", authorID, "index", i, "error", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
