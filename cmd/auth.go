package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailclient/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account string
		code    string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access for an account",
		Long: `Authorize Gmail access for a named account.

Without --code the command prints the Google OAuth URL to visit. After
granting access, run the command again with --code to exchange the
authorization code and store the token.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET to be set in the
environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(debugMode)

			if code != "" {
				if err := google.SaveTokenForAccount(context.Background(), account, code); err != nil {
					return fmt.Errorf("failed to save token for account %s: %w", account, err)
				}
				fmt.Printf("Authorization successful for account %q. Token saved.\n", account)
				return nil
			}

			if google.HasTokenForAccount(account) {
				fmt.Printf("Account %q is already authorized. Pass --code to replace the token.\n", account)
			}

			authURL, err := google.GetAuthURLForAccount(account)
			if err != nil {
				return fmt.Errorf("failed to build authorization URL: %w", err)
			}

			fmt.Printf("Visit this URL to authorize Gmail access for account %q:\n\n  %s\n\n", account, authURL)
			fmt.Printf("Then run:\n\n  gmailclient auth --account %s --code <authorization code>\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", google.DefaultAccount, "Google account name to use")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the Google OAuth consent page")

	return cmd
}
