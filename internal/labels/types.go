package labels

// Label represents a Gmail label, either system-provided (INBOX, SPAM, ...)
// or user-created.
type Label struct {
	// ID is the immutable identifier of the label
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Type is "system" or "user"
	Type string `json:"type,omitempty"`

	// MessageListVisibility controls whether messages with this label are
	// shown in the message list ("show" or "hide")
	MessageListVisibility string `json:"messageListVisibility,omitempty"`

	// LabelListVisibility controls whether the label is shown in the label
	// list ("labelShow", "labelShowIfUnread" or "labelHide")
	LabelListVisibility string `json:"labelListVisibility,omitempty"`

	// MessagesTotal is the total number of messages with the label
	MessagesTotal int64 `json:"messagesTotal,omitempty"`

	// MessagesUnread is the number of unread messages with the label
	MessagesUnread int64 `json:"messagesUnread,omitempty"`

	// ThreadsTotal is the total number of threads with the label
	ThreadsTotal int64 `json:"threadsTotal,omitempty"`

	// ThreadsUnread is the number of unread threads with the label
	ThreadsUnread int64 `json:"threadsUnread,omitempty"`
}

// LabelInput contains the writable fields for creating or updating a label.
type LabelInput struct {
	// Name is the display name (required on create)
	Name string `json:"name,omitempty"`

	// MessageListVisibility, when set, overrides the message list behavior
	MessageListVisibility string `json:"messageListVisibility,omitempty"`

	// LabelListVisibility, when set, overrides the label list behavior
	LabelListVisibility string `json:"labelListVisibility,omitempty"`
}
