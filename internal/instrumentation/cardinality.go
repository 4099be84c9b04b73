package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with user identifiers or
// request paths.

// NormalizePath collapses the variable segments of a Gmail API path so the
// path label stays low-cardinality. User IDs and resource IDs are replaced
// with placeholders while the resource and action segments are kept.
//
// Example:
//
//	NormalizePath("users/me/threads/18c2a9e5f0d")  // "users/{userId}/threads/{id}"
//	NormalizePath("users/me/drafts/send")          // "users/{userId}/drafts/send"
//	NormalizePath("users/me/labels")               // "users/{userId}/labels"
func NormalizePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "users" {
		return path
	}
	parts[1] = "{userId}"

	// users/{userId}/<resource>/<id or action>
	if len(parts) >= 4 && !isAction(parts[3]) {
		parts[3] = "{id}"
	}
	return strings.Join(parts, "/")
}

// isAction reports whether a path segment is a fixed action rather than a
// resource identifier.
func isAction(segment string) bool {
	switch segment {
	case "send", "trash", "untrash", "modify", "import", "insert":
		return true
	}
	return false
}

// ExtractUserDomain extracts the domain part from an email address.
// This reduces cardinality by using the domain instead of the full email.
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("invalid")           // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Common operation types for Gmail API metrics.
// Status, OAuth, and Resource constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationSend   = "send"
	OperationSearch = "search"
	OperationModify = "modify"
)
