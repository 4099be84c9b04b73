package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailclient/internal/drafts"
	"github.com/teemow/gmailclient/internal/google"
)

func newDraftsCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage Gmail drafts",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugMode)
		},
	}

	cmd.PersistentFlags().StringVar(&account, "account", google.DefaultAccount, "Google account name to use")

	var (
		listQuery     string
		listMax       int
		listPageToken string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			result, token, err := client.Drafts.List(ctx, &drafts.ListOptions{
				Query:      listQuery,
				MaxResults: listMax,
				PageToken:  listPageToken,
			})
			if err != nil {
				return err
			}

			return printJSON(struct {
				Drafts        []drafts.Draft `json:"drafts"`
				NextPageToken string         `json:"nextPageToken,omitempty"`
			}{result, token})
		},
	}
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Gmail search query to filter drafts")
	listCmd.Flags().IntVar(&listMax, "max-results", 0, "Maximum number of drafts per page")
	listCmd.Flags().StringVar(&listPageToken, "page-token", "", "Page token from a previous listing")

	getCmd := &cobra.Command{
		Use:   "get <draft-id>",
		Short: "Get a draft including its message content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			draft, err := client.Drafts.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(draft)
		},
	}

	var createThreadID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft from an RFC 2822 message read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read message from stdin: %w", err)
			}

			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			draft, err := client.Drafts.Create(ctx, raw, createThreadID)
			if err != nil {
				return err
			}
			return printJSON(draft)
		},
	}
	createCmd.Flags().StringVar(&createThreadID, "thread-id", "", "Thread ID to attach the draft to")

	var updateThreadID string
	updateCmd := &cobra.Command{
		Use:   "update <draft-id>",
		Short: "Replace a draft's content with an RFC 2822 message read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read message from stdin: %w", err)
			}

			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			draft, err := client.Drafts.Update(ctx, args[0], raw, updateThreadID)
			if err != nil {
				return err
			}
			return printJSON(draft)
		},
	}
	updateCmd.Flags().StringVar(&updateThreadID, "thread-id", "", "Thread ID to attach the draft to")

	sendCmd := &cobra.Command{
		Use:   "send <draft-id>",
		Short: "Send an existing draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			msg, err := client.Drafts.Send(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(msg)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a draft without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if err := client.Drafts.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Draft %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, sendCmd, deleteCmd)
	return cmd
}
