package threads

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/teemow/gmailclient/internal/api"
	"github.com/teemow/gmailclient/internal/messages"
)

// DefaultUserID is the special Gmail user identifier for the authenticated
// user.
const DefaultUserID = "me"

// Client provides access to the Gmail threads resource.
type Client struct {
	api    *api.Client
	userID string
	log    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithUserID sets the Gmail user ID the client operates on (default: "me").
func WithUserID(userID string) Option {
	return func(c *Client) {
		if userID != "" {
			c.userID = userID
		}
	}
}

// WithLogger sets the logger for debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// NewClient creates a threads client on top of the base request helper.
func NewClient(apiClient *api.Client, opts ...Option) *Client {
	c := &Client{
		api:    apiClient,
		userID: DefaultUserID,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserID returns the Gmail user ID this client operates on.
func (c *Client) UserID() string {
	return c.userID
}

// path builds a relative threads path for this client's user.
func (c *Client) path(suffix string) string {
	p := "users/" + url.PathEscape(c.userID) + "/threads"
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// Get retrieves a single thread with its messages. opts may be nil; the
// format defaults to "full". Every element of the thread's messages array is
// mapped through the messages conversion, preserving source order.
func (c *Client) Get(ctx context.Context, id string, opts *GetOptions) (*Thread, error) {
	if id == "" {
		return nil, fmt.Errorf("thread ID is required")
	}

	format := "full"
	if opts != nil && opts.Format != "" {
		format = opts.Format
	}

	query := url.Values{}
	query.Set("format", format)

	c.log.DebugContext(ctx, "getting thread", slog.String("id", id), slog.String("format", format))

	raw, err := c.api.Get(ctx, c.path(url.PathEscape(id))+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to get thread %s: %w", id, err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	var detail threadDetail
	if err := json.Unmarshal(raw, &detail); err != nil || detail.ID == "" {
		return nil, &api.UnexpectedShapeError{Body: raw}
	}

	thread := &Thread{
		ID:        detail.ID,
		HistoryID: detail.HistoryID,
		Snippet:   detail.Snippet,
		Messages:  make([]messages.Message, 0, len(detail.Messages)),
	}
	for _, rawMsg := range detail.Messages {
		msg, err := messages.Convert(rawMsg)
		if err != nil {
			return nil, err
		}
		thread.Messages = append(thread.Messages, msg)
	}

	return thread, nil
}

// Search lists threads matching a Gmail search query. The query is
// percent-encoded on the wire. Unlike List, Search never returns a
// pagination cursor; use List with Query set when paging matters.
func (c *Client) Search(ctx context.Context, query string) ([]Thread, error) {
	result, _, err := c.List(ctx, &ListOptions{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to search threads: %w", err)
	}
	return result, nil
}

// List lists threads matching the given options and returns the next-page
// cursor. A nil or empty options value hits the unqualified listing
// endpoint. An empty cursor means there are no further pages; the server
// omits the token on the final page and that is not an error.
func (c *Client) List(ctx context.Context, opts *ListOptions) ([]Thread, string, error) {
	path := c.path("")
	if encoded := encodeListOptions(opts); encoded != "" {
		path += "?" + encoded
	}

	c.log.DebugContext(ctx, "listing threads", slog.String("path", path))

	raw, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list threads: %w", err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, "", err
	}

	var page struct {
		Threads       []threadResource `json:"threads"`
		NextPageToken string           `json:"nextPageToken"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, "", &api.UnexpectedShapeError{Body: raw}
	}

	result := make([]Thread, len(page.Threads))
	for i := range page.Threads {
		result[i] = page.Threads[i].toThread()
	}
	return result, page.NextPageToken, nil
}

// Modify adds and removes labels on every message of a thread.
func (c *Client) Modify(ctx context.Context, id string, addLabelIDs, removeLabelIDs []string) (*Thread, error) {
	if id == "" {
		return nil, fmt.Errorf("thread ID is required")
	}

	body := map[string][]string{}
	if len(addLabelIDs) > 0 {
		body["addLabelIds"] = addLabelIDs
	}
	if len(removeLabelIDs) > 0 {
		body["removeLabelIds"] = removeLabelIDs
	}

	return c.post(ctx, url.PathEscape(id)+"/modify", body, "modify", id)
}

// Archive removes the INBOX label from a thread.
func (c *Client) Archive(ctx context.Context, id string) (*Thread, error) {
	return c.Modify(ctx, id, nil, []string{"INBOX"})
}

// Trash moves a thread to the trash.
func (c *Client) Trash(ctx context.Context, id string) (*Thread, error) {
	if id == "" {
		return nil, fmt.Errorf("thread ID is required")
	}
	return c.post(ctx, url.PathEscape(id)+"/trash", nil, "trash", id)
}

// Untrash removes a thread from the trash.
func (c *Client) Untrash(ctx context.Context, id string) (*Thread, error) {
	if id == "" {
		return nil, fmt.Errorf("thread ID is required")
	}
	return c.post(ctx, url.PathEscape(id)+"/untrash", nil, "untrash", id)
}

// post issues a POST against a per-thread subresource and maps the returned
// thread object.
func (c *Client) post(ctx context.Context, suffix string, body any, action, id string) (*Thread, error) {
	c.log.DebugContext(ctx, "updating thread", slog.String("id", id), slog.String("action", action))

	raw, err := c.api.Post(ctx, c.path(suffix), body)
	if err != nil {
		return nil, fmt.Errorf("failed to %s thread %s: %w", action, id, err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	var res threadResource
	if err := json.Unmarshal(raw, &res); err != nil || res.ID == "" {
		return nil, &api.UnexpectedShapeError{Body: raw}
	}
	thread := res.toThread()
	return &thread, nil
}

// Delete permanently deletes a thread. Prefer Trash for anything
// recoverable.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("thread ID is required")
	}

	c.log.DebugContext(ctx, "deleting thread", slog.String("id", id))

	raw, err := c.api.Delete(ctx, c.path(url.PathEscape(id)))
	if err != nil {
		return fmt.Errorf("failed to delete thread %s: %w", id, err)
	}
	return api.CheckResponse(raw)
}

// encodeListOptions builds the encoded query string for List. A nil or empty
// options value yields "", which keeps the request on the plain listing
// endpoint.
func encodeListOptions(opts *ListOptions) string {
	if opts == nil {
		return ""
	}

	query := url.Values{}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	for _, id := range opts.LabelIDs {
		query.Add("labelIds", id)
	}
	if opts.MaxResults > 0 {
		query.Set("maxResults", strconv.Itoa(opts.MaxResults))
	}
	if opts.PageToken != "" {
		query.Set("pageToken", opts.PageToken)
	}
	if opts.IncludeSpamTrash {
		query.Set("includeSpamTrash", "true")
	}
	return query.Encode()
}
