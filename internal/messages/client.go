package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/teemow/gmailclient/internal/api"
)

// DefaultUserID is the special Gmail user identifier for the authenticated
// user.
const DefaultUserID = "me"

// Client provides access to the Gmail messages resource.
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

// NewClient creates a messages client on top of the base request helper.
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

// path builds a relative messages path for this client's user.
func (c *Client) path(suffix string) string {
	p := "users/" + url.PathEscape(c.userID) + "/messages"
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// Get retrieves a single message by ID. opts may be nil; the format defaults
// to "full".
func (c *Client) Get(ctx context.Context, id string, opts *GetOptions) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message ID is required")
	}

	format := "full"
	if opts != nil && opts.Format != "" {
		format = opts.Format
	}

	query := url.Values{}
	query.Set("format", format)

	c.log.DebugContext(ctx, "getting message", slog.String("id", id), slog.String("format", format))

	raw, err := c.api.Get(ctx, c.path(url.PathEscape(id))+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	msg, err := Convert(raw)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// List lists message headers matching the given options and returns the
// next-page cursor. An empty cursor means there are no further pages. opts
// may be nil, which hits the unqualified listing endpoint.
func (c *Client) List(ctx context.Context, opts *ListOptions) ([]Message, string, error) {
	path := c.path("")
	if encoded := encodeListOptions(opts); encoded != "" {
		path += "?" + encoded
	}

	c.log.DebugContext(ctx, "listing messages", slog.String("path", path))

	raw, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list messages: %w", err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, "", err
	}

	var page struct {
		Messages      []messageResource `json:"messages"`
		NextPageToken string            `json:"nextPageToken"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, "", &api.UnexpectedShapeError{Body: raw}
	}

	result := make([]Message, len(page.Messages))
	for i := range page.Messages {
		result[i] = page.Messages[i].toMessage()
	}
	return result, page.NextPageToken, nil
}

// Search lists messages matching a Gmail search query. Unlike List it never
// returns a pagination cursor.
func (c *Client) Search(ctx context.Context, query string) ([]Message, error) {
	result, _, err := c.List(ctx, &ListOptions{Query: query})
	return result, err
}

// Send sends an RFC 2822 message. threadID, when non-empty, attaches the
// message to an existing thread (for replies).
func (c *Client) Send(ctx context.Context, rfc2822 []byte, threadID string) (*Message, error) {
	if len(rfc2822) == 0 {
		return nil, fmt.Errorf("message content is required")
	}

	body := map[string]string{"raw": EncodeRaw(rfc2822)}
	if threadID != "" {
		body["threadId"] = threadID
	}

	c.log.DebugContext(ctx, "sending message", slog.Int("size", len(rfc2822)), slog.String("thread_id", threadID))

	raw, err := c.api.Post(ctx, c.path("send"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	msg, err := Convert(raw)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Insert inserts an RFC 2822 message directly into the mailbox, bypassing
// most scanning and classification. labelIDs are applied to the new message.
func (c *Client) Insert(ctx context.Context, rfc2822 []byte, labelIDs []string) (*Message, error) {
	if len(rfc2822) == 0 {
		return nil, fmt.Errorf("message content is required")
	}

	body := map[string]any{"raw": EncodeRaw(rfc2822)}
	if len(labelIDs) > 0 {
		body["labelIds"] = labelIDs
	}

	c.log.DebugContext(ctx, "inserting message", slog.Int("size", len(rfc2822)))

	raw, err := c.api.Post(ctx, c.path(""), body)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	msg, err := Convert(raw)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Modify adds and removes labels on a message.
func (c *Client) Modify(ctx context.Context, id string, addLabelIDs, removeLabelIDs []string) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message ID is required")
	}

	body := map[string][]string{}
	if len(addLabelIDs) > 0 {
		body["addLabelIds"] = addLabelIDs
	}
	if len(removeLabelIDs) > 0 {
		body["removeLabelIds"] = removeLabelIDs
	}

	c.log.DebugContext(ctx, "modifying message", slog.String("id", id))

	raw, err := c.api.Post(ctx, c.path(url.PathEscape(id)+"/modify"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to modify message %s: %w", id, err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	msg, err := Convert(raw)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Trash moves a message to the trash.
func (c *Client) Trash(ctx context.Context, id string) (*Message, error) {
	return c.post(ctx, id, "trash")
}

// Untrash removes a message from the trash.
func (c *Client) Untrash(ctx context.Context, id string) (*Message, error) {
	return c.post(ctx, id, "untrash")
}

// post issues a bodyless POST against a per-message subresource.
func (c *Client) post(ctx context.Context, id, action string) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message ID is required")
	}

	c.log.DebugContext(ctx, "updating message", slog.String("id", id), slog.String("action", action))

	raw, err := c.api.Post(ctx, c.path(url.PathEscape(id)+"/"+action), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to %s message %s: %w", action, id, err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	msg, err := Convert(raw)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete permanently deletes a message. Prefer Trash for anything
// recoverable.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("message ID is required")
	}

	c.log.DebugContext(ctx, "deleting message", slog.String("id", id))

	raw, err := c.api.Delete(ctx, c.path(url.PathEscape(id)))
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
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
