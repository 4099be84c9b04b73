// Package gmail_tools implements MCP tools for Gmail: thread, message,
// label and draft management across multiple accounts. Write operations
// are omitted when the server runs in read-only mode.
package gmail_tools
