package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gmailclient/internal/instrumentation"
	"github.com/teemow/gmailclient/internal/labels"
	"github.com/teemow/gmailclient/internal/server"
	"github.com/teemow/gmailclient/internal/tools/common"
)

// registerLabelTools registers label management tools.
func registerLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listLabelsTool := mcp.NewTool("gmail_labels_list",
		mcp.WithDescription("List all labels of the mailbox, system and user-created"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_labels_list", instrumentation.ResourceLabels, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := client.Labels.List(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
			}

			return jsonResult(result)
		}))

	getLabelTool := mcp.NewTool("gmail_labels_get",
		mcp.WithDescription("Get a label including its message and thread counts"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to retrieve"),
		),
	)

	s.AddTool(getLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_labels_get", instrumentation.ResourceLabels, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			labelID := stringArg(args, "labelId")
			if labelID == "" {
				return mcp.NewToolResultError("labelId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			label, err := client.Labels.Get(ctx, labelID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get label: %v", err)), nil
			}

			return jsonResult(label)
		}))

	if readOnly {
		return nil
	}

	createLabelTool := mcp.NewTool("gmail_labels_create",
		mcp.WithDescription("Create a new user label"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name of the new label. Use '/' to nest (e.g., 'Work/Receipts')."),
		),
		mcp.WithString("messageListVisibility",
			mcp.Description("Message list behavior: 'show' or 'hide'"),
		),
		mcp.WithString("labelListVisibility",
			mcp.Description("Label list behavior: 'labelShow', 'labelShowIfUnread' or 'labelHide'"),
		),
	)

	s.AddTool(createLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_labels_create", instrumentation.ResourceLabels, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			name := stringArg(args, "name")
			if name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			label, err := client.Labels.Create(ctx, labels.LabelInput{
				Name:                  name,
				MessageListVisibility: stringArg(args, "messageListVisibility"),
				LabelListVisibility:   stringArg(args, "labelListVisibility"),
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create label: %v", err)), nil
			}

			return jsonResult(label)
		}))

	updateLabelTool := mcp.NewTool("gmail_labels_update",
		mcp.WithDescription("Replace a label's writable fields. Fields left empty are cleared; use gmail_labels_patch for partial updates."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to update"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("New display name"),
		),
		mcp.WithString("messageListVisibility",
			mcp.Description("Message list behavior: 'show' or 'hide'"),
		),
		mcp.WithString("labelListVisibility",
			mcp.Description("Label list behavior: 'labelShow', 'labelShowIfUnread' or 'labelHide'"),
		),
	)

	s.AddTool(updateLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_labels_update", instrumentation.ResourceLabels, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			labelID := stringArg(args, "labelId")
			if labelID == "" {
				return mcp.NewToolResultError("labelId is required"), nil
			}
			name := stringArg(args, "name")
			if name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			label, err := client.Labels.Update(ctx, labelID, labels.LabelInput{
				Name:                  name,
				MessageListVisibility: stringArg(args, "messageListVisibility"),
				LabelListVisibility:   stringArg(args, "labelListVisibility"),
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update label: %v", err)), nil
			}

			return jsonResult(label)
		}))

	patchLabelTool := mcp.NewTool("gmail_labels_patch",
		mcp.WithDescription("Update only the provided fields of a label"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to patch"),
		),
		mcp.WithString("name",
			mcp.Description("New display name"),
		),
		mcp.WithString("messageListVisibility",
			mcp.Description("Message list behavior: 'show' or 'hide'"),
		),
		mcp.WithString("labelListVisibility",
			mcp.Description("Label list behavior: 'labelShow', 'labelShowIfUnread' or 'labelHide'"),
		),
	)

	s.AddTool(patchLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_labels_patch", instrumentation.ResourceLabels, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			labelID := stringArg(args, "labelId")
			if labelID == "" {
				return mcp.NewToolResultError("labelId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			label, err := client.Labels.Patch(ctx, labelID, labels.LabelInput{
				Name:                  stringArg(args, "name"),
				MessageListVisibility: stringArg(args, "messageListVisibility"),
				LabelListVisibility:   stringArg(args, "labelListVisibility"),
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to patch label: %v", err)), nil
			}

			return jsonResult(label)
		}))

	deleteLabelTool := mcp.NewTool("gmail_labels_delete",
		mcp.WithDescription("Delete a user label. The label is removed from all messages and threads."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to delete"),
		),
	)

	s.AddTool(deleteLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_labels_delete", instrumentation.ResourceLabels, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			labelID := stringArg(args, "labelId")
			if labelID == "" {
				return mcp.NewToolResultError("labelId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.Labels.Delete(ctx, labelID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete label: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Label %s deleted", labelID)), nil
		}))

	return nil
}
