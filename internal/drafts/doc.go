// Package drafts provides a client for the Gmail drafts resource: list,
// get, create, update, send and delete, mapped onto the
// users/{userId}/drafts endpoints through the internal/api request helper.
// Draft content is supplied as raw RFC 2822 messages and encoded with the
// URL-safe base64 alphabet Gmail expects.
package drafts
