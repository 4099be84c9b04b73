// Package threads provides a client for the Gmail threads resource.
//
// A thread is a conversation grouping one or more messages. The client
// issues raw REST calls through the internal/api request helper:
//   - Get fetches a thread with its messages, each mapped through the
//     messages package conversion in source order
//   - List pages through threads with an opaque cursor; a missing
//     nextPageToken means the final page, not an error
//   - Search runs a Gmail query and returns threads without messages
//   - Modify, Archive, Trash, Untrash, Delete manage thread state
//
// All query parameters, including the search query, are percent-encoded.
package threads
