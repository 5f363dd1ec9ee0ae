package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopping"
	"github.com/muurk/shoplist/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultReadRetries is how many times a failed read is retried
	DefaultReadRetries = 2

	// DefaultRetryDelay is the initial delay between read attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay caps exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second

	// DefaultCacheTTL is how long reads are served from cache
	DefaultCacheTTL = 5 * time.Second
)

// Service paths
const (
	PathLists      = "/"
	PathProviders  = "/providers"
	PathUpdateList = "/list/update"
	PathPurchase   = "/purchase"
	PathCreateList = "/list/create"
	PathEvents     = "/events"
)

// Operation names carried by WriteResult
const (
	OpUpdateList = "update list"
	OpPurchase   = "purchase"
	OpCreateList = "create list"
)

// Options tune a Client. Zero values select the defaults; a negative
// CacheTTL or ReadRetries disables caching or retries.
type Options struct {
	Timeout     time.Duration
	CacheTTL    time.Duration
	ReadRetries int
	RetryDelay  time.Duration
	HTTPClient  *http.Client
}

// Client talks to the shopping list service. It is safe for concurrent use.
type Client struct {
	// BaseURL is the service root, e.g. "http://localhost:8080"
	BaseURL string

	HTTPClient *http.Client

	// ReadRetries is the number of extra attempts for a failed read
	ReadRetries int

	RetryDelay    time.Duration
	MaxRetryDelay time.Duration

	// CacheTTL is how long reads are served from cache (0 = no cache)
	CacheTTL time.Duration

	UserAgent string

	group singleflight.Group

	cacheMutex  sync.RWMutex
	lists       []shopping.List
	listsAt     time.Time
	providers   []shopping.Provider
	providersAt time.Time
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, opts Options) *Client {
	c := &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTPClient:    opts.HTTPClient,
		ReadRetries:   DefaultReadRetries,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		CacheTTL:      DefaultCacheTTL,
		UserAgent:     version.UserAgent(),
	}

	if c.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.HTTPClient = &http.Client{Timeout: timeout}
	}
	switch {
	case opts.ReadRetries > 0:
		c.ReadRetries = opts.ReadRetries
	case opts.ReadRetries < 0:
		c.ReadRetries = 0
	}
	if opts.RetryDelay > 0 {
		c.RetryDelay = opts.RetryDelay
	}
	switch {
	case opts.CacheTTL > 0:
		c.CacheTTL = opts.CacheTTL
	case opts.CacheTTL < 0:
		c.CacheTTL = 0
	}

	return c
}

// Snapshot is the result of fetching lists and providers together.
type Snapshot struct {
	Lists     []shopping.List
	Providers []shopping.Provider
}

// Lists returns all shopping lists. The result is a copy the caller owns.
func (c *Client) Lists(ctx context.Context) ([]shopping.List, error) {
	c.cacheMutex.RLock()
	if c.fresh(c.lists != nil, c.listsAt) {
		out := shopping.CloneLists(c.lists)
		c.cacheMutex.RUnlock()
		return out, nil
	}
	c.cacheMutex.RUnlock()

	v, err, _ := c.group.Do("lists", func() (any, error) {
		var lists []shopping.List
		if err := c.readWithRetry(ctx, PathLists, &lists); err != nil {
			return nil, err
		}
		if lists == nil {
			lists = []shopping.List{}
		}
		c.cacheMutex.Lock()
		c.lists, c.listsAt = lists, time.Now()
		c.cacheMutex.Unlock()
		return lists, nil
	})
	if err != nil {
		return nil, err
	}
	return shopping.CloneLists(v.([]shopping.List)), nil
}

// Providers returns the available purchase providers as a caller-owned copy.
func (c *Client) Providers(ctx context.Context) ([]shopping.Provider, error) {
	c.cacheMutex.RLock()
	if c.fresh(c.providers != nil, c.providersAt) {
		out := shopping.CloneProviders(c.providers)
		c.cacheMutex.RUnlock()
		return out, nil
	}
	c.cacheMutex.RUnlock()

	v, err, _ := c.group.Do("providers", func() (any, error) {
		var providers []shopping.Provider
		if err := c.readWithRetry(ctx, PathProviders, &providers); err != nil {
			return nil, err
		}
		if providers == nil {
			providers = []shopping.Provider{}
		}
		c.cacheMutex.Lock()
		c.providers, c.providersAt = providers, time.Now()
		c.cacheMutex.Unlock()
		return providers, nil
	})
	if err != nil {
		return nil, err
	}
	return shopping.CloneProviders(v.([]shopping.Provider)), nil
}

// Snapshot fetches lists and providers concurrently. The first failure
// cancels the other read.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lists, err := c.Lists(gctx)
		snap.Lists = lists
		return err
	})
	g.Go(func() error {
		providers, err := c.Providers(gctx)
		snap.Providers = providers
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// InvalidateCache drops cached reads so the next call hits the service.
func (c *Client) InvalidateCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.lists, c.providers = nil, nil
	c.listsAt, c.providersAt = time.Time{}, time.Time{}
}

// caller holds cacheMutex
func (c *Client) fresh(present bool, at time.Time) bool {
	return c.CacheTTL > 0 && present && time.Since(at) < c.CacheTTL
}

// WriteResult is the outcome of a write. Err is nil on success.
type WriteResult struct {
	Operation string
	ListID    int
	Err       error
	Duration  time.Duration
}

// OK reports whether the write succeeded.
func (r WriteResult) OK() bool { return r.Err == nil }

// UpdateList replaces a list's items and name.
func (c *Client) UpdateList(ctx context.Context, update shopping.ListUpdate) WriteResult {
	if update.Items == nil {
		update.Items = []shopping.Item{}
	}
	return c.write(ctx, OpUpdateList, update.ID, PathUpdateList, update, nil)
}

// Purchase submits a purchase of a list through a provider.
func (c *Client) Purchase(ctx context.Context, req shopping.PurchaseRequest) WriteResult {
	if req.ProviderID == "" {
		return WriteResult{Operation: OpPurchase, ListID: req.ListID, Err: NewValidationError("provider is required")}
	}
	return c.write(ctx, OpPurchase, req.ListID, PathPurchase, req, nil)
}

// CreateList creates an empty list and returns it as stored by the service.
func (c *Client) CreateList(ctx context.Context, name string) (shopping.List, WriteResult) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shopping.List{}, WriteResult{Operation: OpCreateList, Err: NewValidationError("list name is required")}
	}

	var created shopping.List
	res := c.write(ctx, OpCreateList, 0, PathCreateList, shopping.CreateListRequest{Name: name}, &created)
	res.ListID = created.ID
	return created, res
}

// write sends a single POST. Writes are never retried.
func (c *Client) write(ctx context.Context, op string, listID int, path string, body, out any) WriteResult {
	start := time.Now()
	err := c.do(ctx, http.MethodPost, path, body, out)
	if err == nil {
		c.InvalidateCache()
	}
	return WriteResult{Operation: op, ListID: listID, Err: err, Duration: time.Since(start)}
}

func (c *Client) readWithRetry(ctx context.Context, path string, out any) error {
	var lastErr error
	delay := c.RetryDelay

	for attempt := 0; attempt <= c.ReadRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewNetworkError("read aborted", ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
			if c.MaxRetryDelay > 0 && delay > c.MaxRetryDelay {
				delay = c.MaxRetryDelay
			}
			logging.Debug("retrying read")
		}

		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return NewParseError("failed to encode request", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return NewNetworkError(fmt.Sprintf("failed to create %s request", method), err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.LogAPIRequest(method, path, len(payload))
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPIResponse(method, path, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewHTTPError(resp.StatusCode, bytes.TrimSpace(respBody))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return NewParseError("failed to parse JSON response", err)
	}
	return nil
}
