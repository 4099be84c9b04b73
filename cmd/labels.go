package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailclient/internal/google"
	"github.com/teemow/gmailclient/internal/labels"
)

func newLabelsCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage Gmail labels",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugMode)
		},
	}

	cmd.PersistentFlags().StringVar(&account, "account", google.DefaultAccount, "Google account name to use")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all labels of the mailbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			result, err := client.Labels.List(ctx)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <label-id>",
		Short: "Get a label including its message and thread counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			label, err := client.Labels.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(label)
		},
	}

	var createMsgVis, createLabelVis string
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new user label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			label, err := client.Labels.Create(ctx, labels.LabelInput{
				Name:                  args[0],
				MessageListVisibility: createMsgVis,
				LabelListVisibility:   createLabelVis,
			})
			if err != nil {
				return err
			}
			return printJSON(label)
		},
	}
	createCmd.Flags().StringVar(&createMsgVis, "message-list-visibility", "", "Message list behavior: show or hide")
	createCmd.Flags().StringVar(&createLabelVis, "label-list-visibility", "", "Label list behavior: labelShow, labelShowIfUnread or labelHide")

	var updateName, updateMsgVis, updateLabelVis string
	updateCmd := &cobra.Command{
		Use:   "update <label-id>",
		Short: "Replace a label's writable fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if updateName == "" {
				return fmt.Errorf("--name is required")
			}

			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			label, err := client.Labels.Update(ctx, args[0], labels.LabelInput{
				Name:                  updateName,
				MessageListVisibility: updateMsgVis,
				LabelListVisibility:   updateLabelVis,
			})
			if err != nil {
				return err
			}
			return printJSON(label)
		},
	}
	updateCmd.Flags().StringVar(&updateName, "name", "", "New display name")
	updateCmd.Flags().StringVar(&updateMsgVis, "message-list-visibility", "", "Message list behavior: show or hide")
	updateCmd.Flags().StringVar(&updateLabelVis, "label-list-visibility", "", "Label list behavior: labelShow, labelShowIfUnread or labelHide")

	var patchName, patchMsgVis, patchLabelVis string
	patchCmd := &cobra.Command{
		Use:   "patch <label-id>",
		Short: "Update only the provided fields of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			label, err := client.Labels.Patch(ctx, args[0], labels.LabelInput{
				Name:                  patchName,
				MessageListVisibility: patchMsgVis,
				LabelListVisibility:   patchLabelVis,
			})
			if err != nil {
				return err
			}
			return printJSON(label)
		},
	}
	patchCmd.Flags().StringVar(&patchName, "name", "", "New display name")
	patchCmd.Flags().StringVar(&patchMsgVis, "message-list-visibility", "", "Message list behavior: show or hide")
	patchCmd.Flags().StringVar(&patchLabelVis, "label-list-visibility", "", "Label list behavior: labelShow, labelShowIfUnread or labelHide")

	deleteCmd := &cobra.Command{
		Use:   "delete <label-id>",
		Short: "Delete a user label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := newGmailClient(ctx, account)
			if err != nil {
				return err
			}

			if err := client.Labels.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Label %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, patchCmd, deleteCmd)
	return cmd
}
