package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gmailclient/internal/instrumentation"
	"github.com/teemow/gmailclient/internal/messages"
	"github.com/teemow/gmailclient/internal/server"
	"github.com/teemow/gmailclient/internal/tools/common"
)

// messagePage is the tool result shape for paged message listings.
type messagePage struct {
	Messages      []messages.Message `json:"messages"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
}

// buildRFC2822 assembles a plain-text RFC 2822 message from tool arguments.
func buildRFC2822(to, cc, bcc, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	if cc != "" {
		b.WriteString("Cc: " + cc + "\r\n")
	}
	if bcc != "" {
		b.WriteString("Bcc: " + bcc + "\r\n")
	}
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// registerMessageTools registers message management tools.
func registerMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listMessagesTool := mcp.NewTool("gmail_messages_list",
		mcp.WithDescription("List Gmail messages, optionally filtered by query and labels. Returns one page and a nextPageToken for the following page."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'is:unread', 'from:user@example.com')"),
		),
		mcp.WithString("labelIds",
			mcp.Description("Comma-separated list of label IDs to filter by (e.g., 'INBOX,UNREAD')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages per page"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token from a previous listing"),
		),
		mcp.WithBoolean("includeSpamTrash",
			mcp.Description("Include messages from SPAM and TRASH"),
		),
	)

	s.AddTool(listMessagesTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_list", instrumentation.ResourceMessages, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			opts := &messages.ListOptions{
				Query:            stringArg(args, "query"),
				LabelIDs:         splitLabelIDs(stringArg(args, "labelIds")),
				MaxResults:       intArg(args, "maxResults"),
				PageToken:        stringArg(args, "pageToken"),
				IncludeSpamTrash: boolArg(args, "includeSpamTrash"),
			}

			result, token, err := client.Messages.List(ctx, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
			}

			return jsonResult(messagePage{Messages: result, NextPageToken: token})
		}))

	getMessageTool := mcp.NewTool("gmail_messages_get",
		mcp.WithDescription("Get a Gmail message including headers and body"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to retrieve"),
		),
		mcp.WithString("format",
			mcp.Description("Message detail level: full, metadata, minimal or raw (default: full)"),
		),
	)

	s.AddTool(getMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_get", instrumentation.ResourceMessages, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			messageID := stringArg(args, "messageId")
			if messageID == "" {
				return mcp.NewToolResultError("messageId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var opts *messages.GetOptions
			if format := stringArg(args, "format"); format != "" {
				opts = &messages.GetOptions{Format: format}
			}

			msg, err := client.Messages.Get(ctx, messageID, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
			}

			return jsonResult(msg)
		}))

	searchMessagesTool := mcp.NewTool("gmail_messages_search",
		mcp.WithDescription("Search Gmail messages with the Gmail query syntax"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'from:alice has:attachment')"),
		),
	)

	s.AddTool(searchMessagesTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_search", instrumentation.ResourceMessages, instrumentation.OperationSearch, sc,
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

			result, err := client.Messages.Search(ctx, query)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search messages: %v", err)), nil
			}

			return jsonResult(messagePage{Messages: result})
		}))

	if readOnly {
		return nil
	}

	sendMessageTool := mcp.NewTool("gmail_messages_send",
		mcp.WithDescription("Send a plain-text email message"),
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
			mcp.Description("Message subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain-text message body"),
		),
		mcp.WithString("threadId",
			mcp.Description("Thread ID to reply into. Leave empty for a new conversation."),
		),
	)

	s.AddTool(sendMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_send", instrumentation.ResourceMessages, instrumentation.OperationSend, sc,
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

			msg, err := client.Messages.Send(ctx, raw, stringArg(args, "threadId"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
			}

			return jsonResult(msg)
		}))

	modifyMessageTool := mcp.NewTool("gmail_messages_modify",
		mcp.WithDescription("Add or remove labels on a Gmail message"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to modify"),
		),
		mcp.WithString("addLabelIds",
			mcp.Description("Comma-separated list of label IDs to add"),
		),
		mcp.WithString("removeLabelIds",
			mcp.Description("Comma-separated list of label IDs to remove"),
		),
	)

	s.AddTool(modifyMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_modify", instrumentation.ResourceMessages, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			messageID := stringArg(args, "messageId")
			if messageID == "" {
				return mcp.NewToolResultError("messageId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			msg, err := client.Messages.Modify(ctx, messageID,
				splitLabelIDs(stringArg(args, "addLabelIds")),
				splitLabelIDs(stringArg(args, "removeLabelIds")))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to modify message: %v", err)), nil
			}

			return jsonResult(msg)
		}))

	trashMessageTool := mcp.NewTool("gmail_messages_trash",
		mcp.WithDescription("Move a Gmail message to the trash"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to trash"),
		),
	)

	s.AddTool(trashMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_trash", instrumentation.ResourceMessages, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			messageID := stringArg(args, "messageId")
			if messageID == "" {
				return mcp.NewToolResultError("messageId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if _, err := client.Messages.Trash(ctx, messageID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to trash message: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Message %s moved to trash", messageID)), nil
		}))

	untrashMessageTool := mcp.NewTool("gmail_messages_untrash",
		mcp.WithDescription("Restore a Gmail message from the trash"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to restore"),
		),
	)

	s.AddTool(untrashMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_untrash", instrumentation.ResourceMessages, instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			messageID := stringArg(args, "messageId")
			if messageID == "" {
				return mcp.NewToolResultError("messageId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if _, err := client.Messages.Untrash(ctx, messageID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to untrash message: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Message %s restored from trash", messageID)), nil
		}))

	deleteMessageTool := mcp.NewTool("gmail_messages_delete",
		mcp.WithDescription("Permanently delete a Gmail message. This cannot be undone; prefer gmail_messages_trash."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to delete"),
		),
	)

	s.AddTool(deleteMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_messages_delete", instrumentation.ResourceMessages, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			messageID := stringArg(args, "messageId")
			if messageID == "" {
				return mcp.NewToolResultError("messageId is required"), nil
			}

			client, err := getGmailClient(ctx, accountArg(args), sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.Messages.Delete(ctx, messageID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete message: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Message %s permanently deleted", messageID)), nil
		}))

	return nil
}
