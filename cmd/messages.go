package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailclient/internal/google"
	"github.com/teemow/gmailclient/internal/messages"
)

func newMessagesCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Manage Gmail messages",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugMode)
		},
	}

	cmd.PersistentFlags().StringVar(&account, "account", google.DefaultAccount, "Google account name to use")

	var (
		listQuery     string
		listLabels    []string
		listMax       int
		listPageToken string
		listSpamTrash bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			result, token, err := client.Messages.List(ctx, &messages.ListOptions{
				Query:            listQuery,
				LabelIDs:         listLabels,
				MaxResults:       listMax,
				PageToken:        listPageToken,
				IncludeSpamTrash: listSpamTrash,
			})
			if err != nil {
				return err
			}

			return printJSON(struct {
				Messages      []messages.Message `json:"messages"`
				NextPageToken string             `json:"nextPageToken,omitempty"`
			}{result, token})
		},
	}
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Gmail search query")
	listCmd.Flags().StringSliceVar(&listLabels, "label", nil, "Label IDs to filter by (repeatable)")
	listCmd.Flags().IntVar(&listMax, "max-results", 0, "Maximum number of messages per page")
	listCmd.Flags().StringVar(&listPageToken, "page-token", "", "Page token from a previous listing")
	listCmd.Flags().BoolVar(&listSpamTrash, "include-spam-trash", false, "Include messages from SPAM and TRASH")

	var getFormat string
	getCmd := &cobra.Command{
		Use:   "get <message-id>",
		Short: "Get a message including headers and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			var opts *messages.GetOptions
			if getFormat != "" {
				opts = &messages.GetOptions{Format: getFormat}
			}

			msg, err := client.Messages.Get(ctx, args[0], opts)
			if err != nil {
				return err
			}
			return printJSON(msg)
		},
	}
	getCmd.Flags().StringVar(&getFormat, "format", "", "Message detail level: full, metadata, minimal or raw")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search messages with the Gmail query syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			result, err := client.Messages.Search(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	var sendThreadID string
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send an RFC 2822 message read from stdin",
		Long: `Send a raw RFC 2822 message read from stdin.

Example:
  gmailclient messages send < message.eml`,
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

			msg, err := client.Messages.Send(ctx, raw, sendThreadID)
			if err != nil {
				return err
			}
			return printJSON(msg)
		},
	}
	sendCmd.Flags().StringVar(&sendThreadID, "thread-id", "", "Thread ID to reply into")

	var addLabels, removeLabels []string
	modifyCmd := &cobra.Command{
		Use:   "modify <message-id>",
		Short: "Add or remove labels on a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(addLabels) == 0 && len(removeLabels) == 0 {
				return fmt.Errorf("at least one of --add or --remove is required")
			}

			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			msg, err := client.Messages.Modify(ctx, args[0], addLabels, removeLabels)
			if err != nil {
				return err
			}
			return printJSON(msg)
		},
	}
	modifyCmd.Flags().StringSliceVar(&addLabels, "add", nil, "Label IDs to add (repeatable)")
	modifyCmd.Flags().StringSliceVar(&removeLabels, "remove", nil, "Label IDs to remove (repeatable)")

	trashCmd := &cobra.Command{
		Use:   "trash <message-id>",
		Short: "Move a message to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if _, err := client.Messages.Trash(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Message %s moved to trash\n", args[0])
			return nil
		},
	}

	untrashCmd := &cobra.Command{
		Use:   "untrash <message-id>",
		Short: "Restore a message from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if _, err := client.Messages.Untrash(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Message %s restored from trash\n", args[0])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <message-id>",
		Short: "Permanently delete a message (cannot be undone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if err := client.Messages.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Message %s permanently deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, searchCmd, sendCmd, modifyCmd, trashCmd, untrashCmd, deleteCmd)
	return cmd
}
