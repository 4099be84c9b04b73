package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teemow/gmailclient/internal/logging"
)

// DefaultBaseURL is the Gmail REST v1 endpoint used when no base URL is
// configured or the configured one is unusable.
const DefaultBaseURL = "https://www.googleapis.com/gmail/v1/"

// Config holds the configuration for the base request helper.
type Config struct {
	// BaseURL is the URL prefix for all API paths. If empty or not a valid
	// absolute URL it is repaired to DefaultBaseURL at construction time.
	BaseURL string
}

// RequestObserver receives a callback for every request issued through the
// client. Implementations must be safe for concurrent use.
type RequestObserver interface {
	// ObserveRequest is called after a request completes. status is
	// "success" when the transport returned a response and "error" when it
	// failed outright; API-level error envelopes still count as "success"
	// here because the response was delivered.
	ObserveRequest(ctx context.Context, method, path, status string, duration time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the transport used to execute requests. Mainly useful
// for tests that want to intercept calls before they hit the network.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithHTTPClient sets the underlying *http.Client for the default transport.
// The HTTP client is expected to carry authentication (e.g. an oauth2
// transport); this layer never constructs auth headers itself.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = NewHTTPTransport(hc) }
}

// WithLogger sets the logger used for request-level debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// WithObserver registers a request observer, typically the instrumentation
// metrics recorder.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) { c.observer = o }
}

// Client is the base request helper shared by all resource clients. It
// resolves the base URL exactly once at construction, prefixes every relative
// path with it, and delegates to the transport. It performs no retries and no
// error translation.
type Client struct {
	base      *url.URL
	transport Transport
	log       *slog.Logger
	observer  RequestObserver
}

// NewClient creates a base request helper from the given configuration.
// Base URL resolution is self-healing: an empty or unparseable URL falls back
// to DefaultBaseURL after at most one repair cycle, and the result is reused
// for the lifetime of the client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := resolveBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		base: base,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(nil)
	}

	return c, nil
}

// resolveBaseURL parses raw into an absolute URL with a trailing slash,
// repairing to the default when raw is empty or unusable.
func resolveBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}

	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		// One repair cycle: fall back to the default.
		base, err = url.Parse(DefaultBaseURL)
		if err != nil {
			return nil, err
		}
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base, nil
}

// BaseURL returns the resolved base URL including the trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL returns the absolute URL for a relative API path.
func (c *Client) URL(path string) string {
	return c.base.String() + strings.TrimPrefix(path, "/")
}

// Get issues a GET request for the given relative path.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.transport.Get(ctx, c.URL(path))
	c.observe(ctx, http.MethodGet, path, start, err)
	return raw, err
}

// Post issues a POST request with a JSON body for the given relative path.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.transport.Post(ctx, c.URL(path), body)
	c.observe(ctx, http.MethodPost, path, start, err)
	return raw, err
}

// Put issues a PUT request with a JSON body for the given relative path.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.transport.Put(ctx, c.URL(path), body)
	c.observe(ctx, http.MethodPut, path, start, err)
	return raw, err
}

// Patch issues a PATCH request with a JSON body for the given relative path.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.transport.Patch(ctx, c.URL(path), body)
	c.observe(ctx, http.MethodPatch, path, start, err)
	return raw, err
}

// Delete issues a DELETE request for the given relative path.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.transport.Delete(ctx, c.URL(path))
	c.observe(ctx, http.MethodDelete, path, start, err)
	return raw, err
}

func (c *Client) observe(ctx context.Context, method, path string, start time.Time, err error) {
	duration := time.Since(start)

	c.log.Debug("gmail api request",
		logging.KeyMethod, method,
		logging.KeyPath, path,
		logging.KeyDuration, duration,
	)

	if c.observer == nil {
		return
	}
	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	c.observer.ObserveRequest(ctx, method, path, status, duration)
}
