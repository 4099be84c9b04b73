package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/teemow/gmailclient/internal/api"
	"github.com/teemow/gmailclient/internal/drafts"
	"github.com/teemow/gmailclient/internal/google"
	"github.com/teemow/gmailclient/internal/labels"
	"github.com/teemow/gmailclient/internal/messages"
	"github.com/teemow/gmailclient/internal/threads"
)

// Client bundles the Gmail resource clients for one account. All resource
// clients share a single base request helper and therefore one HTTP client
// and one set of credentials.
type Client struct {
	api     *api.Client
	account string

	Threads  *threads.Client
	Messages *messages.Client
	Labels   *labels.Client
	Drafts   *drafts.Client
}

// Options configure how the bundled client is built.
type Options struct {
	// BaseURL overrides the Gmail API endpoint, mainly for tests.
	BaseURL string

	// HTTPClient overrides the authenticated HTTP client. When set, no OAuth
	// token lookup happens for the account.
	HTTPClient *http.Client

	// Observer receives a callback per API round trip.
	Observer api.RequestObserver

	// Logger is used for debug logging. Defaults to slog.Default().
	Logger *slog.Logger

	// UserID is the Gmail user the resource clients operate on.
	// Defaults to "me", the authenticated user.
	UserID string
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// API returns the underlying base request helper.
func (c *Client) API() *api.Client {
	return c.api
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccount creates a Gmail client authenticated as the given
// account. The account's cached OAuth token is used unless opts provides an
// HTTP client.
func NewClientForAccount(ctx context.Context, account string, opts Options) (*Client, error) {
	hc := opts.HTTPClient
	if hc == nil {
		var err error
		hc, err = google.GetHTTPClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
		}
	}

	apiOpts := []api.Option{api.WithHTTPClient(hc)}
	if opts.Observer != nil {
		apiOpts = append(apiOpts, api.WithObserver(opts.Observer))
	}
	if opts.Logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(opts.Logger))
	}

	apiClient, err := api.NewClient(api.Config{BaseURL: opts.BaseURL}, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	return newClient(apiClient, account, opts), nil
}

// NewClient creates a Gmail client for the default account.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	return NewClientForAccount(ctx, google.DefaultAccount, opts)
}

// NewClientWithAPI builds the resource client bundle on top of an existing
// base request helper. Used by tests to inject a fake transport.
func NewClientWithAPI(apiClient *api.Client, account string, opts Options) *Client {
	return newClient(apiClient, account, opts)
}

func newClient(apiClient *api.Client, account string, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var threadOpts []threads.Option
	var messageOpts []messages.Option
	var labelOpts []labels.Option
	var draftOpts []drafts.Option
	if opts.UserID != "" {
		threadOpts = append(threadOpts, threads.WithUserID(opts.UserID))
		messageOpts = append(messageOpts, messages.WithUserID(opts.UserID))
		labelOpts = append(labelOpts, labels.WithUserID(opts.UserID))
		draftOpts = append(draftOpts, drafts.WithUserID(opts.UserID))
	}
	threadOpts = append(threadOpts, threads.WithLogger(logger))
	messageOpts = append(messageOpts, messages.WithLogger(logger))
	labelOpts = append(labelOpts, labels.WithLogger(logger))
	draftOpts = append(draftOpts, drafts.WithLogger(logger))

	return &Client{
		api:      apiClient,
		account:  account,
		Threads:  threads.NewClient(apiClient, threadOpts...),
		Messages: messages.NewClient(apiClient, messageOpts...),
		Labels:   labels.NewClient(apiClient, labelOpts...),
		Drafts:   drafts.NewClient(apiClient, draftOpts...),
	}
}
