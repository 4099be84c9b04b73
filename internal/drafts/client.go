package drafts

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

// Client provides access to the Gmail drafts resource.
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

// NewClient creates a drafts client on top of the base request helper.
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

// path builds a relative drafts path for this client's user.
func (c *Client) path(suffix string) string {
	p := "users/" + url.PathEscape(c.userID) + "/drafts"
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// List lists the user's drafts, one page at a time. It returns the drafts of
// the requested page and the token of the next page, or an empty token when
// no further pages exist.
func (c *Client) List(ctx context.Context, opts *ListOptions) ([]Draft, string, error) {
	endpoint := c.path("")
	if query := encodeListOptions(opts); query != "" {
		endpoint += "?" + query
	}

	c.log.DebugContext(ctx, "listing drafts", slog.String("path", endpoint))

	raw, err := c.api.Get(ctx, endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list drafts: %w", err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, "", err
	}

	var page struct {
		Drafts        []draftWire `json:"drafts"`
		NextPageToken string      `json:"nextPageToken"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, "", &api.UnexpectedShapeError{Body: raw}
	}

	result := make([]Draft, 0, len(page.Drafts))
	for i := range page.Drafts {
		draft, err := page.Drafts[i].toDraft()
		if err != nil {
			return nil, "", err
		}
		result = append(result, draft)
	}
	return result, page.NextPageToken, nil
}

// Get retrieves a single draft by ID, including the full content of its
// message.
func (c *Client) Get(ctx context.Context, id string) (*Draft, error) {
	if id == "" {
		return nil, fmt.Errorf("draft ID is required")
	}

	c.log.DebugContext(ctx, "getting draft", slog.String("id", id))

	query := url.Values{"format": []string{"full"}}
	raw, err := c.api.Get(ctx, c.path(url.PathEscape(id))+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", id, err)
	}
	return decodeDraft(raw)
}

// Create creates a new draft from a raw RFC 2822 message. An optional thread
// ID places the draft as a reply on an existing thread.
func (c *Client) Create(ctx context.Context, rfc2822 []byte, threadID string) (*Draft, error) {
	if len(rfc2822) == 0 {
		return nil, fmt.Errorf("draft content is required")
	}

	c.log.DebugContext(ctx, "creating draft", slog.Int("size", len(rfc2822)), slog.String("thread_id", threadID))

	raw, err := c.api.Post(ctx, c.path(""), draftBody(rfc2822, threadID))
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return decodeDraft(raw)
}

// Update replaces the content of an existing draft with a new raw RFC 2822
// message.
func (c *Client) Update(ctx context.Context, id string, rfc2822 []byte, threadID string) (*Draft, error) {
	if id == "" {
		return nil, fmt.Errorf("draft ID is required")
	}
	if len(rfc2822) == 0 {
		return nil, fmt.Errorf("draft content is required")
	}

	c.log.DebugContext(ctx, "updating draft", slog.String("id", id), slog.Int("size", len(rfc2822)))

	raw, err := c.api.Put(ctx, c.path(url.PathEscape(id)), draftBody(rfc2822, threadID))
	if err != nil {
		return nil, fmt.Errorf("failed to update draft %s: %w", id, err)
	}
	return decodeDraft(raw)
}

// Send sends an existing draft. On success Gmail deletes the draft and
// returns the sent message.
func (c *Client) Send(ctx context.Context, id string) (*messages.Message, error) {
	if id == "" {
		return nil, fmt.Errorf("draft ID is required")
	}

	c.log.DebugContext(ctx, "sending draft", slog.String("id", id))

	raw, err := c.api.Post(ctx, c.path("send"), map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to send draft %s: %w", id, err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	msg, err := messages.Convert(raw)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete permanently deletes a draft.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("draft ID is required")
	}

	c.log.DebugContext(ctx, "deleting draft", slog.String("id", id))

	raw, err := c.api.Delete(ctx, c.path(url.PathEscape(id)))
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return api.CheckResponse(raw)
}

// draftBody builds the request body for creating or updating a draft.
func draftBody(rfc2822 []byte, threadID string) map[string]any {
	message := map[string]string{"raw": messages.EncodeRaw(rfc2822)}
	if threadID != "" {
		message["threadId"] = threadID
	}
	return map[string]any{"message": message}
}

// encodeListOptions renders list options as a URL query string. Every value
// is percent-encoded. A nil or zero options struct yields an empty string.
func encodeListOptions(opts *ListOptions) string {
	if opts == nil {
		return ""
	}

	values := url.Values{}
	if opts.Query != "" {
		values.Set("q", opts.Query)
	}
	if opts.MaxResults > 0 {
		values.Set("maxResults", strconv.Itoa(opts.MaxResults))
	}
	if opts.PageToken != "" {
		values.Set("pageToken", opts.PageToken)
	}
	return values.Encode()
}
