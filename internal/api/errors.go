package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports that the server answered with a 404 error envelope.
type NotFoundError struct {
	// Details is the raw "error" object from the response.
	Details json.RawMessage
}

func (e *NotFoundError) Error() string {
	return "gmail: resource not found"
}

// BadRequestError reports a 400 error envelope with a structured errors list.
// Only the first message from the list is surfaced; the rest are dropped.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return "gmail: bad request: " + e.Message
}

// ResponseError reports any other error envelope. The details are passed
// through verbatim for the caller to inspect.
type ResponseError struct {
	Code    int
	Details json.RawMessage
}

func (e *ResponseError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("gmail: server returned error %d", e.Code)
	}
	return "gmail: server returned an error"
}

// UnexpectedShapeError reports a response that matched neither a known error
// envelope nor the expected success shape.
type UnexpectedShapeError struct {
	// Body is the raw response that failed to match.
	Body json.RawMessage
}

func (e *UnexpectedShapeError) Error() string {
	return "gmail: response did not match any known shape"
}

// errorEnvelope mirrors the Google API JSON error format, e.g.
//
//	{"error": {"code": 404, "message": "Not Found", "errors": [{"message": "..."}]}}
type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  []struct {
		Domain  string `json:"domain"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"errors"`
}

// CheckResponse dispatches on the shape of a response body. It returns nil
// when the body carries no error envelope, otherwise one of the typed errors
// above, checked in priority order: 404, 400 with an errors list, generic.
func CheckResponse(raw json.RawMessage) error {
	details, ok := errorDetails(raw)
	if !ok {
		return nil
	}

	var env errorEnvelope
	// A malformed envelope still counts as an error response; it falls
	// through to the generic case with zero code.
	_ = json.Unmarshal(details, &env)

	switch {
	case env.Code == http.StatusNotFound:
		return &NotFoundError{Details: details}
	case env.Code == http.StatusBadRequest && len(env.Errors) > 0:
		return &BadRequestError{Message: env.Errors[0].Message}
	default:
		return &ResponseError{Code: env.Code, Details: details}
	}
}

// errorDetails extracts the raw "error" value from a response body, if any.
func errorDetails(raw json.RawMessage) (json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, false
	}
	details, ok := body["error"]
	return details, ok
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsBadRequest reports whether err is (or wraps) a BadRequestError.
func IsBadRequest(err error) bool {
	var br *BadRequestError
	return errors.As(err, &br)
}
