// Package edamam is a client for the Edamam Recipe Search API v2. It builds
// a recipe pool from a bounded sequence of paginated search requests.
package edamam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"potluck/config"
	"potluck/recipe"
)

// DefaultBaseURL is the public recipe search endpoint.
const DefaultBaseURL = "https://api.edamam.com/api/recipes/v2"

const (
	defaultMaxPages = 5
	defaultPoolSize = 80
	defaultTimeout  = 15 * time.Second

	accountUserHeader = "Edamam-Account-User"
)

// ErrNoResults reports a structurally successful search that produced zero
// normalized recipes. Callers treat it as a user-facing message, not a
// transport failure.
var ErrNoResults = errors.New("no recipes found, try a different search")

// StatusError is a non-2xx response from any page request.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipe search failed: HTTP %d", e.Code)
}

// Options configures a Client.
type Options struct {
	Credentials config.Credentials
	BaseURL     string        // defaults to DefaultBaseURL
	MaxPages    int           // page-count ceiling per search, defaults to 5
	PoolSize    int           // stop fetching once this many raw hits are pooled, defaults to 80
	Timeout     time.Duration // per-request timeout, defaults to 15s
	OnPage      func(page, hits int)
}

// Client issues paginated search requests against one Edamam account.
type Client struct {
	creds    config.Credentials
	http     *http.Client
	baseURL  string
	maxPages int
	poolSize int
	onPage   func(page, hits int)
}

// NewClient builds a Client, filling zero-valued options with defaults.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		creds:    opts.Credentials,
		http:     &http.Client{Timeout: opts.Timeout},
		baseURL:  opts.BaseURL,
		maxPages: opts.MaxPages,
		poolSize: opts.PoolSize,
		onPage:   opts.OnPage,
	}
}

// FetchPool runs one bounded paginated search and returns the normalized
// recipe pool. It follows the server's next-page links until the link runs
// out, the page ceiling is reached, or enough raw hits have accumulated
// (checked between pages only). Any page failure aborts the whole attempt;
// nothing gathered so far is returned and nothing is retried.
func (c *Client) FetchPool(ctx context.Context, query string) ([]recipe.Recipe, error) {
	if err := c.creds.Validate(); err != nil {
		return nil, err
	}

	next := c.searchURL(query)
	var raw []Hit
	for page := 1; page <= c.maxPages && next != ""; page++ {
		hits, nextURL, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		raw = append(raw, hits...)
		if c.onPage != nil {
			c.onPage(page, len(hits))
		}
		if len(raw) >= c.poolSize {
			break
		}
		next = nextURL
	}

	pool := make([]recipe.Recipe, 0, len(raw))
	for _, h := range raw {
		if r, ok := h.Normalize(); ok {
			pool = append(pool, r)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoResults
	}
	return pool, nil
}

func (c *Client) searchURL(query string) string {
	v := url.Values{}
	v.Set("type", "public")
	v.Set("q", query)
	v.Set("app_id", c.creds.AppID)
	v.Set("app_key", c.creds.AppKey)
	return c.baseURL + "?" + v.Encode()
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]Hit, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build search request: %w", err)
	}
	if c.creds.AccountUser != "" {
		req.Header.Set(accountUserHeader, c.creds.AccountUser)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("recipe search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{Code: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("decode search response: %w", err)
	}
	return body.Hits, body.Links.Next.Href, nil
}
