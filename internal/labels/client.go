package labels

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/teemow/gmailclient/internal/api"
)

// DefaultUserID is the special Gmail user identifier for the authenticated
// user.
const DefaultUserID = "me"

// Client provides access to the Gmail labels resource.
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

// NewClient creates a labels client on top of the base request helper.
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

// path builds a relative labels path for this client's user.
func (c *Client) path(suffix string) string {
	p := "users/" + url.PathEscape(c.userID) + "/labels"
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// List lists all labels of the mailbox. The labels endpoint is not paged.
func (c *Client) List(ctx context.Context) ([]Label, error) {
	c.log.DebugContext(ctx, "listing labels", slog.String("user_id", c.userID))

	raw, err := c.api.Get(ctx, c.path(""))
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	var page struct {
		Labels []Label `json:"labels"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, &api.UnexpectedShapeError{Body: raw}
	}
	return page.Labels, nil
}

// Get retrieves a single label by ID, including its message and thread
// counts.
func (c *Client) Get(ctx context.Context, id string) (*Label, error) {
	if id == "" {
		return nil, fmt.Errorf("label ID is required")
	}

	c.log.DebugContext(ctx, "getting label", slog.String("id", id))

	raw, err := c.api.Get(ctx, c.path(url.PathEscape(id)))
	if err != nil {
		return nil, fmt.Errorf("failed to get label %s: %w", id, err)
	}
	return decodeLabel(raw)
}

// Create creates a new user label.
func (c *Client) Create(ctx context.Context, input LabelInput) (*Label, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("label name is required")
	}

	c.log.DebugContext(ctx, "creating label", slog.String("name", input.Name))

	raw, err := c.api.Post(ctx, c.path(""), input)
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return decodeLabel(raw)
}

// Update replaces a label's writable fields (PUT semantics: unset fields are
// cleared by the server).
func (c *Client) Update(ctx context.Context, id string, input LabelInput) (*Label, error) {
	if id == "" {
		return nil, fmt.Errorf("label ID is required")
	}

	c.log.DebugContext(ctx, "updating label", slog.String("id", id))

	raw, err := c.api.Put(ctx, c.path(url.PathEscape(id)), input)
	if err != nil {
		return nil, fmt.Errorf("failed to update label %s: %w", id, err)
	}
	return decodeLabel(raw)
}

// Patch updates only the set fields of a label (PATCH semantics).
func (c *Client) Patch(ctx context.Context, id string, input LabelInput) (*Label, error) {
	if id == "" {
		return nil, fmt.Errorf("label ID is required")
	}

	c.log.DebugContext(ctx, "patching label", slog.String("id", id))

	raw, err := c.api.Patch(ctx, c.path(url.PathEscape(id)), input)
	if err != nil {
		return nil, fmt.Errorf("failed to patch label %s: %w", id, err)
	}
	return decodeLabel(raw)
}

// Delete deletes a user label. The label is removed from every message and
// thread it was applied to.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("label ID is required")
	}

	c.log.DebugContext(ctx, "deleting label", slog.String("id", id))

	raw, err := c.api.Delete(ctx, c.path(url.PathEscape(id)))
	if err != nil {
		return fmt.Errorf("failed to delete label %s: %w", id, err)
	}
	return api.CheckResponse(raw)
}

// decodeLabel dispatches errors and maps a raw label object.
func decodeLabel(raw json.RawMessage) (*Label, error) {
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	var label Label
	if err := json.Unmarshal(raw, &label); err != nil || label.ID == "" {
		return nil, &api.UnexpectedShapeError{Body: raw}
	}
	return &label, nil
}
