package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gmailclient/internal/drafts"
	"github.com/teemow/gmailclient/internal/instrumentation"
	"github.com/teemow/gmailclient/internal/server"
	"github.com/teemow/gmailclient/internal/tools/common"
)

// draftPage is the tool result shape for paged draft listings.
type draftPage struct {
	Drafts        []drafts.Draft `json:"drafts"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// registerDraftTools registers draft management tools.
func registerDraftTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listDraftsTool := mcp.NewTool("gmail_drafts_list",
		mcp.WithDescription("List Gmail drafts. Returns one page and a nextPageToken for the following page."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query to filter drafts (e.g., 'to:alice')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of drafts per page"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token from a previous listing"),
		),
	)

	s.AddTool(listDraftsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_drafts_list", instrumentation.ResourceDrafts, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			opts := &drafts.ListOptions{
				Query:      stringArg(args, "query"),
				MaxResults: intArg(args, "maxResults"),
				PageToken:  stringArg(args, "pageToken"),
			}

			result, token, err := client.Drafts.List(ctx, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list drafts: %v", err)), nil
			}

			return jsonResult(draftPage{Drafts: result, NextPageToken: token})
		}))

	getDraftTool := mcp.NewTool("gmail_drafts_get",
		mcp.WithDescription("Get a Gmail draft including its message content"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to retrieve"),
		),
	)

	s.AddTool(getDraftTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_drafts_get", instrumentation.ResourceDrafts, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			draftID := stringArg(args, "draftId")
			if draftID == "" {
				return mcp.NewToolResultError("draftId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			draft, err := client.Drafts.Get(ctx, draftID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get draft: %v", err)), nil
			}

			return jsonResult(draft)
		}))

	if readOnly {
		return nil
	}

	createDraftTool := mcp.NewTool("gmail_drafts_create",
		mcp.WithDescription("Create a plain-text draft message"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email addresses, comma-separated"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email addresses, comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email addresses, comma-separated"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Draft subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain-text draft body"),
		),
		mcp.WithString("threadId",
			mcp.Description("Thread ID to attach the draft to (for replies)"),
		),
	)

	s.AddTool(createDraftTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_drafts_create", instrumentation.ResourceDrafts, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			to := stringArg(args, "to")
			subject := stringArg(args, "subject")
			if to == "" {
				return mcp.NewToolResultError("to is required"), nil
			}
			if subject == "" {
				return mcp.NewToolResultError("subject is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw := buildRFC2822(to, stringArg(args, "cc"), stringArg(args, "bcc"),
				subject, stringArg(args, "body"))

			draft, err := client.Drafts.Create(ctx, raw, stringArg(args, "threadId"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create draft: %v", err)), nil
			}

			return jsonResult(draft)
		}))

	updateDraftTool := mcp.NewTool("gmail_drafts_update",
		mcp.WithDescription("Replace the content of an existing draft"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to update"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email addresses, comma-separated"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email addresses, comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email addresses, comma-separated"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Draft subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain-text draft body"),
		),
		mcp.WithString("threadId",
			mcp.Description("Thread ID to attach the draft to (for replies)"),
		),
	)

	s.AddTool(updateDraftTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_drafts_update", instrumentation.ResourceDrafts, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			draftID := stringArg(args, "draftId")
			if draftID == "" {
				return mcp.NewToolResultError("draftId is required"), nil
			}
			to := stringArg(args, "to")
			subject := stringArg(args, "subject")
			if to == "" {
				return mcp.NewToolResultError("to is required"), nil
			}
			if subject == "" {
				return mcp.NewToolResultError("subject is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw := buildRFC2822(to, stringArg(args, "cc"), stringArg(args, "bcc"),
				subject, stringArg(args, "body"))

			draft, err := client.Drafts.Update(ctx, draftID, raw, stringArg(args, "threadId"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update draft: %v", err)), nil
			}

			return jsonResult(draft)
		}))

	sendDraftTool := mcp.NewTool("gmail_drafts_send",
		mcp.WithDescription("Send an existing draft. The draft is consumed and the sent message is returned."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to send"),
		),
	)

	s.AddTool(sendDraftTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_drafts_send", instrumentation.ResourceDrafts, instrumentation.OperationSend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			draftID := stringArg(args, "draftId")
			if draftID == "" {
				return mcp.NewToolResultError("draftId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			msg, err := client.Drafts.Send(ctx, draftID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to send draft: %v", err)), nil
			}

			return jsonResult(msg)
		}))

	deleteDraftTool := mcp.NewTool("gmail_drafts_delete",
		mcp.WithDescription("Delete a draft without sending it"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to delete"),
		),
	)

	s.AddTool(deleteDraftTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_drafts_delete", instrumentation.ResourceDrafts, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			draftID := stringArg(args, "draftId")
			if draftID == "" {
				return mcp.NewToolResultError("draftId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.Drafts.Delete(ctx, draftID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete draft: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Draft %s deleted", draftID)), nil
		}))

	return nil
}
