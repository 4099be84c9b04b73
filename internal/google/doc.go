// Package google provides OAuth2 authentication and token management for
// the Gmail API.
//
// Tokens are cached per account in the user cache directory, so one machine
// can hold credentials for several mailboxes side by side. OAuth client
// credentials are read from the GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET
// environment variables.
//
// The TokenProvider interface allows other token sources to be plugged in,
// for example in tests or when credentials come from a secret store.
package google
