package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/teemow/gmailclient/internal/gmail"
	"github.com/teemow/gmailclient/internal/google"
)

// newGmailClient creates a Gmail client bundle for the named account, with
// a hint towards the auth command when no token is stored yet.
func newGmailClient(ctx context.Context, account string) (*gmail.Client, error) {
	if !gmail.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := gmail.NewClientForAccount(ctx, account, gmail.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
	}
	return client, nil
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
