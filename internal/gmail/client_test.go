package gmail

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/teemow/gmailclient/internal/api"
)

// fakeTransport returns a canned response and records requested URLs.
type fakeTransport struct {
	response json.RawMessage
	urls     []string
}

func (t *fakeTransport) roundTrip(url string) (json.RawMessage, error) {
	t.urls = append(t.urls, url)
	return t.response, nil
}

func (t *fakeTransport) Get(_ context.Context, url string) (json.RawMessage, error) {
	return t.roundTrip(url)
}

func (t *fakeTransport) Post(_ context.Context, url string, _ any) (json.RawMessage, error) {
	return t.roundTrip(url)
}

func (t *fakeTransport) Put(_ context.Context, url string, _ any) (json.RawMessage, error) {
	return t.roundTrip(url)
}

func (t *fakeTransport) Patch(_ context.Context, url string, _ any) (json.RawMessage, error) {
	return t.roundTrip(url)
}

func (t *fakeTransport) Delete(_ context.Context, url string) (json.RawMessage, error) {
	return t.roundTrip(url)
}

func newBundle(t *testing.T, response string, opts Options) (*Client, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{response: json.RawMessage(response)}
	apiClient, err := api.NewClient(api.Config{}, api.WithTransport(ft))
	if err != nil {
		t.Fatalf("failed to create api client: %v", err)
	}
	return NewClientWithAPI(apiClient, "work", opts), ft
}

func TestNewClientWithAPI_BundlesAllResources(t *testing.T) {
	c, _ := newBundle(t, `{}`, Options{})

	if c.Threads == nil || c.Messages == nil || c.Labels == nil || c.Drafts == nil {
		t.Fatal("All resource clients should be initialized")
	}
	if c.Account() != "work" {
		t.Errorf("Account() = %q, want %q", c.Account(), "work")
	}
	if c.API() == nil {
		t.Error("API() should return the base request helper")
	}
}

func TestResourceClientsShareTransport(t *testing.T) {
	c, ft := newBundle(t, `{"labels":[]}`, Options{})
	ctx := context.Background()

	if _, err := c.Labels.List(ctx); err != nil {
		t.Fatalf("Labels.List failed: %v", err)
	}
	if _, _, err := c.Threads.List(ctx, nil); err != nil {
		t.Fatalf("Threads.List failed: %v", err)
	}

	if len(ft.urls) != 2 {
		t.Fatalf("Expected both calls to go through the shared transport, got %d", len(ft.urls))
	}
	if ft.urls[0] != api.DefaultBaseURL+"users/me/labels" {
		t.Errorf("Unexpected labels URL: %s", ft.urls[0])
	}
	if ft.urls[1] != api.DefaultBaseURL+"users/me/threads" {
		t.Errorf("Unexpected threads URL: %s", ft.urls[1])
	}
}

func TestCustomUserIDPropagates(t *testing.T) {
	c, ft := newBundle(t, `{"labels":[]}`, Options{UserID: "bob@example.com"})

	if _, err := c.Labels.List(context.Background()); err != nil {
		t.Fatalf("Labels.List failed: %v", err)
	}
	want := api.DefaultBaseURL + "users/bob@example.com/labels"
	if ft.urls[0] != want {
		t.Errorf("Expected URL %q, got %q", want, ft.urls[0])
	}
}

func TestNewClientForAccount_RequiresToken(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "test-client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "test-client-secret")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	_, err := NewClientForAccount(context.Background(), "nosuchaccount", Options{})
	if err == nil {
		t.Fatal("Expected error when no token is cached for the account")
	}
}
