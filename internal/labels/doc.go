// Package labels provides a client for the Gmail labels resource: list,
// get, create, update (PUT), patch (PATCH) and delete, mapped onto the
// users/{userId}/labels endpoints through the internal/api request helper.
package labels
