package threads

import (
	"encoding/json"

	"github.com/teemow/gmailclient/internal/messages"
)

// Thread represents a Gmail conversation grouping one or more messages.
type Thread struct {
	// ID is the immutable identifier of the thread; non-empty on every
	// successfully fetched or listed thread
	ID string `json:"id"`

	// Snippet is a short preview of the most recent message text
	Snippet string `json:"snippet,omitempty"`

	// HistoryID is the opaque mailbox revision marker the thread was last
	// seen at, used for incremental sync
	HistoryID string `json:"historyId,omitempty"`

	// Messages are the messages of the thread in source order. Populated
	// only by Get; List and Search return threads with no messages.
	Messages []messages.Message `json:"messages,omitempty"`
}

// ListOptions contains options for listing threads.
type ListOptions struct {
	// Query filters results using Gmail search syntax (e.g. "from:bob")
	Query string

	// LabelIDs restricts results to threads carrying all of these labels
	LabelIDs []string

	// MaxResults is the maximum number of threads to return per page
	MaxResults int

	// PageToken is the opaque cursor returned by a previous List call
	PageToken string

	// IncludeSpamTrash includes threads from SPAM and TRASH
	IncludeSpamTrash bool
}

// GetOptions contains options for fetching a single thread.
type GetOptions struct {
	// Format is one of "full", "metadata", "minimal" (default: "full")
	Format string
}

// threadResource mirrors the Gmail v1 wire representation of a thread as it
// appears in list responses: id, historyId and snippet only.
type threadResource struct {
	ID        string `json:"id"`
	HistoryID string `json:"historyId"`
	Snippet   string `json:"snippet"`
}

// toThread maps a list entry into a Thread with empty Messages.
func (r *threadResource) toThread() Thread {
	return Thread{
		ID:        r.ID,
		HistoryID: r.HistoryID,
		Snippet:   r.Snippet,
	}
}

// threadDetail is the wire representation returned by the get endpoint,
// carrying the raw message objects for conversion.
type threadDetail struct {
	ID        string            `json:"id"`
	HistoryID string            `json:"historyId"`
	Snippet   string            `json:"snippet"`
	Messages  []json.RawMessage `json:"messages"`
}
