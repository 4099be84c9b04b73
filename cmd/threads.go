package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailclient/internal/google"
	"github.com/teemow/gmailclient/internal/threads"
)

func newThreadsCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "Manage Gmail threads",
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
		Short: "List threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			result, token, err := client.Threads.List(ctx, &threads.ListOptions{
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
				Threads       []threads.Thread `json:"threads"`
				NextPageToken string           `json:"nextPageToken,omitempty"`
			}{result, token})
		},
	}
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Gmail search query")
	listCmd.Flags().StringSliceVar(&listLabels, "label", nil, "Label IDs to filter by (repeatable)")
	listCmd.Flags().IntVar(&listMax, "max-results", 0, "Maximum number of threads per page")
	listCmd.Flags().StringVar(&listPageToken, "page-token", "", "Page token from a previous listing")
	listCmd.Flags().BoolVar(&listSpamTrash, "include-spam-trash", false, "Include threads from SPAM and TRASH")

	var getFormat string
	getCmd := &cobra.Command{
		Use:   "get <thread-id>",
		Short: "Get a thread with all of its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			var opts *threads.GetOptions
			if getFormat != "" {
				opts = &threads.GetOptions{Format: getFormat}
			}

			thread, err := client.Threads.Get(ctx, args[0], opts)
			if err != nil {
				return err
			}
			return printJSON(thread)
		},
	}
	getCmd.Flags().StringVar(&getFormat, "format", "", "Message detail level: full, metadata or minimal")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search threads with the Gmail query syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			result, err := client.Threads.Search(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	var addLabels, removeLabels []string
	modifyCmd := &cobra.Command{
		Use:   "modify <thread-id>",
		Short: "Add or remove labels on a thread",
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

			thread, err := client.Threads.Modify(ctx, args[0], addLabels, removeLabels)
			if err != nil {
				return err
			}
			return printJSON(thread)
		},
	}
	modifyCmd.Flags().StringSliceVar(&addLabels, "add", nil, "Label IDs to add (repeatable)")
	modifyCmd.Flags().StringSliceVar(&removeLabels, "remove", nil, "Label IDs to remove (repeatable)")

	archiveCmd := &cobra.Command{
		Use:   "archive <thread-id>",
		Short: "Archive a thread by removing the INBOX label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if _, err := client.Threads.Archive(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Thread %s archived\n", args[0])
			return nil
		},
	}

	trashCmd := &cobra.Command{
		Use:   "trash <thread-id>",
		Short: "Move a thread to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if _, err := client.Threads.Trash(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Thread %s moved to trash\n", args[0])
			return nil
		},
	}

	untrashCmd := &cobra.Command{
		Use:   "untrash <thread-id>",
		Short: "Restore a thread from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if _, err := client.Threads.Untrash(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Thread %s restored from trash\n", args[0])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <thread-id>",
		Short: "Permanently delete a thread (cannot be undone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if err := client.Threads.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Thread %s permanently deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, searchCmd, modifyCmd, archiveCmd, trashCmd, untrashCmd, deleteCmd)
	return cmd
}
