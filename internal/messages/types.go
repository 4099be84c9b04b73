package messages

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/teemow/gmailclient/internal/api"
)

// Message represents a single Gmail message.
type Message struct {
	// ID is the immutable identifier of the message
	ID string `json:"id"`

	// ThreadID is the ID of the thread the message belongs to
	ThreadID string `json:"threadId,omitempty"`

	// LabelIDs are the IDs of the labels applied to the message
	LabelIDs []string `json:"labelIds,omitempty"`

	// Snippet is a short preview of the message text
	Snippet string `json:"snippet,omitempty"`

	// HistoryID is the mailbox revision marker the message was last seen at
	HistoryID string `json:"historyId,omitempty"`

	// InternalDate is the server-assigned receive time
	InternalDate time.Time `json:"internalDate,omitempty"`

	// SizeEstimate is the estimated size of the message in bytes
	SizeEstimate int64 `json:"sizeEstimate,omitempty"`

	// MimeType is the MIME type of the top-level message part
	MimeType string `json:"mimeType,omitempty"`

	// Headers are the RFC 2822 headers of the message, in source order.
	// Populated only when the message was fetched with full detail.
	Headers []Header `json:"headers,omitempty"`

	// Body is the decoded text body, when one could be located
	Body string `json:"body,omitempty"`
}

// Header is a single RFC 2822 message header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Header returns the value of the first header with the given name
// (case-insensitive), or "" if absent.
func (m *Message) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ListOptions contains options for listing messages.
type ListOptions struct {
	// Query filters results using Gmail search syntax (e.g. "from:bob")
	Query string

	// LabelIDs restricts results to messages carrying all of these labels
	LabelIDs []string

	// MaxResults is the maximum number of messages to return per page
	MaxResults int

	// PageToken is the opaque cursor returned by a previous List call
	PageToken string

	// IncludeSpamTrash includes messages from SPAM and TRASH
	IncludeSpamTrash bool
}

// GetOptions contains options for fetching a single message.
type GetOptions struct {
	// Format is one of "full", "metadata", "minimal", "raw" (default: "full")
	Format string
}

// messageResource mirrors the Gmail v1 wire representation of a message.
type messageResource struct {
	ID           string    `json:"id"`
	ThreadID     string    `json:"threadId"`
	LabelIDs     []string  `json:"labelIds"`
	Snippet      string    `json:"snippet"`
	HistoryID    string    `json:"historyId"`
	InternalDate string    `json:"internalDate"`
	SizeEstimate int64     `json:"sizeEstimate"`
	Payload      *partWire `json:"payload"`
}

// partWire is a MIME part of a message payload.
type partWire struct {
	MimeType string     `json:"mimeType"`
	Headers  []Header   `json:"headers"`
	Body     *bodyWire  `json:"body"`
	Parts    []partWire `json:"parts"`
}

// bodyWire carries the base64url-encoded content of a part.
type bodyWire struct {
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// Convert maps a raw message JSON object into a Message. Responses that lack
// the mandatory id field yield an UnexpectedShapeError.
func Convert(raw json.RawMessage) (Message, error) {
	var res messageResource
	if err := json.Unmarshal(raw, &res); err != nil {
		return Message{}, &api.UnexpectedShapeError{Body: raw}
	}
	if res.ID == "" {
		return Message{}, &api.UnexpectedShapeError{Body: raw}
	}
	return res.toMessage(), nil
}

// toMessage maps the wire representation into the exported record.
func (r *messageResource) toMessage() Message {
	m := Message{
		ID:           r.ID,
		ThreadID:     r.ThreadID,
		LabelIDs:     r.LabelIDs,
		Snippet:      r.Snippet,
		HistoryID:    r.HistoryID,
		SizeEstimate: r.SizeEstimate,
	}

	// internalDate is epoch milliseconds encoded as a string
	if r.InternalDate != "" {
		if ms, err := strconv.ParseInt(r.InternalDate, 10, 64); err == nil {
			m.InternalDate = time.UnixMilli(ms).UTC()
		}
	}

	if r.Payload != nil {
		m.MimeType = r.Payload.MimeType
		m.Headers = r.Payload.Headers
		m.Body = extractBody(r.Payload)
	}

	return m
}

// extractBody returns the decoded text body of a payload: the part's own body
// when present, otherwise the first text/plain leaf, otherwise the first
// text/html leaf.
func extractBody(p *partWire) string {
	if body := decodeBody(p.Body); body != "" {
		return body
	}
	if body := findPart(p.Parts, "text/plain"); body != "" {
		return body
	}
	return findPart(p.Parts, "text/html")
}

// findPart depth-first searches parts for a leaf of the given MIME type.
func findPart(parts []partWire, mimeType string) string {
	for i := range parts {
		part := &parts[i]
		if part.MimeType == mimeType {
			if body := decodeBody(part.Body); body != "" {
				return body
			}
		}
		if body := findPart(part.Parts, mimeType); body != "" {
			return body
		}
	}
	return ""
}

// decodeBody decodes base64url part content. Gmail emits unpadded base64url;
// padded input is accepted too.
func decodeBody(b *bodyWire) string {
	if b == nil || b.Data == "" {
		return ""
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(b.Data, "="))
	if err != nil {
		return ""
	}
	return string(data)
}

// EncodeRaw encodes an RFC 2822 message for the send and insert endpoints.
func EncodeRaw(rfc2822 []byte) string {
	return base64.RawURLEncoding.EncodeToString(rfc2822)
}
