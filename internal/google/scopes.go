package google

import (
	gmail "google.golang.org/api/gmail/v1"
)

// DefaultOAuthScopes are the Google OAuth scopes requested during
// authentication. Full mailbox access covers every operation the resource
// clients expose: reading threads and messages, modifying labels, managing
// drafts and sending mail.
var DefaultOAuthScopes = []string{
	gmail.MailGoogleComScope,
}

// ReadonlyOAuthScopes are the scopes for read-only use: listing and reading
// threads, messages and labels without write access to the mailbox.
var ReadonlyOAuthScopes = []string{
	gmail.GmailReadonlyScope,
}
