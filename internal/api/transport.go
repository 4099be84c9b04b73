package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Transport executes HTTP verb calls against absolute URLs and returns the
// raw JSON body. Implementations return an error only for transport-level
// failures (connection errors, cancelled contexts, unreadable bodies); API
// error envelopes are returned as the body and dispatched by CheckResponse.
type Transport interface {
	Get(ctx context.Context, url string) (json.RawMessage, error)
	Post(ctx context.Context, url string, body any) (json.RawMessage, error)
	Put(ctx context.Context, url string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, url string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, url string) (json.RawMessage, error)
}

// HTTPTransport is the default Transport backed by an *http.Client.
// Authentication is the HTTP client's concern: pass a client built from an
// oauth2 token source to talk to the real API.
type HTTPTransport struct {
	hc *http.Client
}

// NewHTTPTransport creates a transport backed by hc. A nil hc falls back to
// http.DefaultClient.
func NewHTTPTransport(hc *http.Client) *HTTPTransport {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPTransport{hc: hc}
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, url string) (json.RawMessage, error) {
	return t.do(ctx, http.MethodGet, url, nil)
}

// Post implements Transport.
func (t *HTTPTransport) Post(ctx context.Context, url string, body any) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPost, url, body)
}

// Put implements Transport.
func (t *HTTPTransport) Put(ctx context.Context, url string, body any) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPut, url, body)
}

// Patch implements Transport.
func (t *HTTPTransport) Patch(ctx context.Context, url string, body any) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPatch, url, body)
}

// Delete implements Transport.
func (t *HTTPTransport) Delete(ctx context.Context, url string) (json.RawMessage, error) {
	return t.do(ctx, http.MethodDelete, url, nil)
}

// do executes a single request. The body, if non-nil, is marshaled to JSON.
// The response body is returned regardless of the HTTP status code so that
// error envelopes reach the shape dispatch; an empty body (204 on DELETE)
// yields a nil RawMessage.
func (t *HTTPTransport) do(ctx context.Context, method, url string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}
