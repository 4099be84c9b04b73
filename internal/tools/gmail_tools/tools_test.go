package gmail_tools

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/teemow/gmailclient/internal/api"
	"github.com/teemow/gmailclient/internal/gmail"
	"github.com/teemow/gmailclient/internal/server"
)

type nopTransport struct{}

func (nopTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       http.NoBody,
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestGetGmailClient_CachedClient(t *testing.T) {
	sc := newTestContext(t)

	apiClient, err := api.NewClient(api.Config{}, api.WithHTTPClient(&http.Client{Transport: nopTransport{}}))
	if err != nil {
		t.Fatalf("failed to create API client: %v", err)
	}
	injected := gmail.NewClientWithAPI(apiClient, "work", gmail.Options{})
	sc.SetGmailClientForAccount("work", injected)

	client, err := getGmailClient(context.Background(), "work", sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client != injected {
		t.Error("expected the cached client to be returned")
	}
}

func TestGetGmailClient_MissingToken(t *testing.T) {
	sc := newTestContext(t)

	_, err := getGmailClient(context.Background(), "nosuch", sc)
	if err == nil {
		t.Fatal("expected error for account without token")
	}
	if !strings.Contains(err.Error(), "google_get_auth_url") {
		t.Errorf("expected auth instructions in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "nosuch") {
		t.Errorf("expected account name in error, got: %v", err)
	}
}

func TestSplitLabelIDs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", nil},
		{"single label", "INBOX", []string{"INBOX"}},
		{"multiple labels", "INBOX,UNREAD,STARRED", []string{"INBOX", "UNREAD", "STARRED"}},
		{"labels with spaces", "INBOX, UNREAD , STARRED", []string{"INBOX", "UNREAD", "STARRED"}},
		{"trailing comma", "INBOX,UNREAD,", []string{"INBOX", "UNREAD"}},
		{"multiple commas", "INBOX,,UNREAD", []string{"INBOX", "UNREAD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLabelIDs(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d labels, got %d", len(tt.expected), len(result))
			}
			for i, id := range result {
				if id != tt.expected[i] {
					t.Errorf("expected label at index %d to be %s, got %s", i, tt.expected[i], id)
				}
			}
		})
	}
}

func TestBuildRFC2822(t *testing.T) {
	raw := string(buildRFC2822("alice@example.com", "bob@example.com", "", "Hello", "Hi there"))

	for _, want := range []string{
		"To: alice@example.com\r\n",
		"Cc: bob@example.com\r\n",
		"Subject: Hello\r\n",
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("expected message to contain %q, got:\n%s", want, raw)
		}
	}
	if strings.Contains(raw, "Bcc:") {
		t.Error("expected no Bcc header when bcc is empty")
	}
	if !strings.HasSuffix(raw, "\r\n\r\nHi there") {
		t.Errorf("expected body after blank line, got:\n%s", raw)
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"query":      "is:unread",
		"maxResults": float64(25),
		"spamTrash":  true,
	}

	if got := stringArg(args, "query"); got != "is:unread" {
		t.Errorf("stringArg() = %q, want %q", got, "is:unread")
	}
	if got := stringArg(args, "missing"); got != "" {
		t.Errorf("stringArg() for missing key = %q, want empty", got)
	}
	if got := intArg(args, "maxResults"); got != 25 {
		t.Errorf("intArg() = %d, want 25", got)
	}
	if got := intArg(args, "missing"); got != 0 {
		t.Errorf("intArg() for missing key = %d, want 0", got)
	}
	if !boolArg(args, "spamTrash") {
		t.Error("boolArg() = false, want true")
	}
	if boolArg(args, "missing") {
		t.Error("boolArg() for missing key = true, want false")
	}
}

func TestRegisterGmailTools(t *testing.T) {
	// Registration requires a live MCP server; here we only pin the
	// function signatures.
	_ = RegisterGmailTools
	_ = registerThreadTools
	_ = registerMessageTools
	_ = registerLabelTools
	_ = registerDraftTools
}
