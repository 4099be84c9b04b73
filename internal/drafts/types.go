package drafts

import (
	"encoding/json"

	"github.com/teemow/gmailclient/internal/api"
	"github.com/teemow/gmailclient/internal/messages"
)

// Draft represents an unsent Gmail draft and its current message content.
type Draft struct {
	// ID is the immutable identifier of the draft
	ID string `json:"id"`

	// Message is the draft's message. List entries carry only the message
	// ID and thread ID; Get returns the full content.
	Message messages.Message `json:"message"`
}

// ListOptions contains options for listing drafts.
type ListOptions struct {
	// Query filters results using Gmail search syntax
	Query string

	// MaxResults is the maximum number of drafts to return per page
	MaxResults int

	// PageToken is the opaque cursor returned by a previous List call
	PageToken string
}

// draftWire mirrors the Gmail v1 wire representation of a draft.
type draftWire struct {
	ID      string          `json:"id"`
	Message json.RawMessage `json:"message"`
}

// toDraft maps the wire representation, converting the embedded message when
// present.
func (w *draftWire) toDraft() (Draft, error) {
	d := Draft{ID: w.ID}
	if len(w.Message) > 0 {
		msg, err := messages.Convert(w.Message)
		if err != nil {
			return Draft{}, err
		}
		d.Message = msg
	}
	return d, nil
}

// decodeDraft dispatches errors and maps a raw draft object.
func decodeDraft(raw json.RawMessage) (*Draft, error) {
	if err := api.CheckResponse(raw); err != nil {
		return nil, err
	}

	var wire draftWire
	if err := json.Unmarshal(raw, &wire); err != nil || wire.ID == "" {
		return nil, &api.UnexpectedShapeError{Body: raw}
	}

	draft, err := wire.toDraft()
	if err != nil {
		return nil, err
	}
	return &draft, nil
}
