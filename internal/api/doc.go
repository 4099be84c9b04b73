// Package api implements the base request helper shared by all Gmail
// resource clients.
//
// The helper resolves the configured base URL once at construction (repairing
// an empty or unusable value to the Gmail v1 default), prefixes every
// relative path with it, and delegates the HTTP verb call to a Transport.
// Authentication, retries, and timeouts are deliberately out of scope: the
// injected *http.Client carries OAuth, and callers needing retry policy add
// it externally.
//
// Responses are dispatched on shape, not HTTP status. CheckResponse
// recognizes the Google JSON error envelope and maps it to a small taxonomy:
//
//   - NotFoundError for a 404 envelope
//   - BadRequestError for a 400 envelope with a structured errors list
//     (first message only)
//   - ResponseError for any other envelope, details passed through verbatim
//
// Resource clients that fail to decode an expected success shape return
// UnexpectedShapeError rather than guessing.
package api
