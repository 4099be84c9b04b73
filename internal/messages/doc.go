// Package messages provides a client for the Gmail messages resource.
//
// The client issues raw REST calls through the internal/api request helper
// and maps the JSON responses into Message records. Supported operations:
//   - Get, List (paged), Search
//   - Send, Insert
//   - Modify (labels), Trash, Untrash, Delete
//
// Convert is the canonical JSON-to-Message mapping; the threads package
// reuses it for the messages embedded in a fully fetched thread. Message
// bodies are base64url-decoded from the payload, preferring the text/plain
// part of multipart messages.
package messages
