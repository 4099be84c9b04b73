package google_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestHandleGetAuthURL_RequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"account": "work"}

	result, err := handleGetAuthURL(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected an error result without OAuth credentials")
	}
}

func TestHandleGetAuthURL_ContainsInstructions(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "test-client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "test-secret")

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"account": "work"}

	result, err := handleGetAuthURL(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil || result.IsError {
		t.Fatal("expected a successful result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, `account "work"`) {
		t.Errorf("expected account name in instructions, got:\n%s", text)
	}
	if !strings.Contains(text, "google_save_auth_code") {
		t.Errorf("expected follow-up tool name in instructions, got:\n%s", text)
	}
	if !strings.Contains(text, "accounts.google.com") {
		t.Errorf("expected Google OAuth URL in instructions, got:\n%s", text)
	}
}

func TestRegisterGoogleTools(t *testing.T) {
	// Registration requires a live MCP server; here we only pin the
	// function signature.
	_ = RegisterGoogleTools
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var b strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}
