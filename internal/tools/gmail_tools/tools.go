package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gmailclient/internal/gmail"
	"github.com/teemow/gmailclient/internal/google"
	"github.com/teemow/gmailclient/internal/server"
	"github.com/teemow/gmailclient/internal/tools/common"
)

// getGmailClient retrieves or creates a Gmail client bundle for the
// specified account.
func getGmailClient(ctx context.Context, account string, sc *server.ServerContext) (*gmail.Client, error) {
	client := sc.GmailClientForAccount(account)
	if client != nil {
		return client, nil
	}

	if !gmail.HasTokenForAccount(account) {
		return nil, fmt.Errorf(`%s

Use the google_get_auth_url tool to obtain the authorization URL, then
complete authentication with google_save_auth_code using account=%q.`,
			google.GetAuthenticationErrorMessage(account), account)
	}

	// Token exists but the cached client could not be created earlier.
	return nil, fmt.Errorf("failed to create Gmail client for account %s", account)
}

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
// Write operations are skipped when readOnly is true.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerThreadTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register thread tools: %w", err)
	}
	if err := registerMessageTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}
	if err := registerLabelTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register label tools: %w", err)
	}
	if err := registerDraftTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register draft tools: %w", err)
	}
	return nil
}

// stringArg returns a string argument, or "" when absent.
func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg returns a numeric argument as int, or 0 when absent. JSON numbers
// arrive as float64.
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// boolArg returns a boolean argument, or false when absent.
func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// splitLabelIDs parses a comma-separated list of label IDs.
func splitLabelIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// accountArg is a shorthand for the shared account extraction.
func accountArg(args map[string]interface{}) string {
	return common.GetAccountFromArgs(args)
}
