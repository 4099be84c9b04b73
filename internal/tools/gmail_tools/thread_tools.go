package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gmailclient/internal/instrumentation"
	"github.com/teemow/gmailclient/internal/server"
	"github.com/teemow/gmailclient/internal/threads"
	"github.com/teemow/gmailclient/internal/tools/common"
)

// threadPage is the tool result shape for paged thread listings.
type threadPage struct {
	Threads       []threads.Thread `json:"threads"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

// registerThreadTools registers thread management tools.
func registerThreadTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listThreadsTool := mcp.NewTool("gmail_threads_list",
		mcp.WithDescription("List Gmail threads, optionally filtered by query and labels. Returns one page and a nextPageToken for the following page."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'in:inbox', 'from:user@example.com')"),
		),
		mcp.WithString("labelIds",
			mcp.Description("Comma-separated list of label IDs to filter by (e.g., 'INBOX,UNREAD')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of threads per page"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token from a previous listing"),
		),
		mcp.WithBoolean("includeSpamTrash",
			mcp.Description("Include threads from SPAM and TRASH"),
		),
	)

	s.AddTool(listThreadsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_list", instrumentation.ResourceThreads, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			opts := &threads.ListOptions{
				Query:            stringArg(args, "query"),
				LabelIDs:         splitLabelIDs(stringArg(args, "labelIds")),
				MaxResults:       intArg(args, "maxResults"),
				PageToken:        stringArg(args, "pageToken"),
				IncludeSpamTrash: boolArg(args, "includeSpamTrash"),
			}

			result, token, err := client.Threads.List(ctx, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list threads: %v", err)), nil
			}

			return jsonResult(threadPage{Threads: result, NextPageToken: token})
		}))

	getThreadTool := mcp.NewTool("gmail_threads_get",
		mcp.WithDescription("Get a Gmail thread with all of its messages"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to retrieve"),
		),
		mcp.WithString("format",
			mcp.Description("Message detail level: full, metadata or minimal (default: full)"),
		),
	)

	s.AddTool(getThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_get", instrumentation.ResourceThreads, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			threadID := stringArg(args, "threadId")
			if threadID == "" {
				return mcp.NewToolResultError("threadId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var opts *threads.GetOptions
			if format := stringArg(args, "format"); format != "" {
				opts = &threads.GetOptions{Format: format}
			}

			thread, err := client.Threads.Get(ctx, threadID, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get thread: %v", err)), nil
			}

			return jsonResult(thread)
		}))

	searchThreadsTool := mcp.NewTool("gmail_threads_search",
		mcp.WithDescription("Search Gmail threads with the Gmail query syntax"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'from:alice subject:invoice')"),
		),
	)

	s.AddTool(searchThreadsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_search", instrumentation.ResourceThreads, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			query := stringArg(args, "query")
			if query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := client.Threads.Search(ctx, query)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search threads: %v", err)), nil
			}

			return jsonResult(threadPage{Threads: result})
		}))

	if readOnly {
		return nil
	}

	modifyThreadTool := mcp.NewTool("gmail_threads_modify",
		mcp.WithDescription("Add or remove labels on a Gmail thread"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to modify"),
		),
		mcp.WithString("addLabelIds",
			mcp.Description("Comma-separated list of label IDs to add"),
		),
		mcp.WithString("removeLabelIds",
			mcp.Description("Comma-separated list of label IDs to remove"),
		),
	)

	s.AddTool(modifyThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_modify", instrumentation.ResourceThreads, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			threadID := stringArg(args, "threadId")
			if threadID == "" {
				return mcp.NewToolResultError("threadId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			thread, err := client.Threads.Modify(ctx, threadID,
				splitLabelIDs(stringArg(args, "addLabelIds")),
				splitLabelIDs(stringArg(args, "removeLabelIds")))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to modify thread: %v", err)), nil
			}

			return jsonResult(thread)
		}))

	archiveThreadTool := mcp.NewTool("gmail_threads_archive",
		mcp.WithDescription("Archive a Gmail thread by removing the INBOX label"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to archive"),
		),
	)

	s.AddTool(archiveThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_archive", instrumentation.ResourceThreads, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			threadID := stringArg(args, "threadId")
			if threadID == "" {
				return mcp.NewToolResultError("threadId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if _, err := client.Threads.Archive(ctx, threadID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to archive thread: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Thread %s archived", threadID)), nil
		}))

	trashThreadTool := mcp.NewTool("gmail_threads_trash",
		mcp.WithDescription("Move a Gmail thread to the trash"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to trash"),
		),
	)

	s.AddTool(trashThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_trash", instrumentation.ResourceThreads, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			threadID := stringArg(args, "threadId")
			if threadID == "" {
				return mcp.NewToolResultError("threadId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if _, err := client.Threads.Trash(ctx, threadID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to trash thread: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Thread %s moved to trash", threadID)), nil
		}))

	untrashThreadTool := mcp.NewTool("gmail_threads_untrash",
		mcp.WithDescription("Restore a Gmail thread from the trash"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to restore"),
		),
	)

	s.AddTool(untrashThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_untrash", instrumentation.ResourceThreads, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			threadID := stringArg(args, "threadId")
			if threadID == "" {
				return mcp.NewToolResultError("threadId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if _, err := client.Threads.Untrash(ctx, threadID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to untrash thread: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Thread %s restored from trash", threadID)), nil
		}))

	deleteThreadTool := mcp.NewTool("gmail_threads_delete",
		mcp.WithDescription("Permanently delete a Gmail thread. This cannot be undone; prefer gmail_threads_trash."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to delete"),
		),
	)

	s.AddTool(deleteThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_threads_delete", instrumentation.ResourceThreads, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			threadID := stringArg(args, "threadId")
			if threadID == "" {
				return mcp.NewToolResultError("threadId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.Threads.Delete(ctx, threadID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete thread: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Thread %s permanently deleted", threadID)), nil
		}))

	return nil
}

// jsonResult marshals a value as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
