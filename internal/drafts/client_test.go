package drafts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gmailclient/internal/api"
)

// fakeTransport returns canned responses and records every call.
type fakeTransport struct {
	response json.RawMessage
	urls     []string
	methods  []string
	bodies   []any
}

func (t *fakeTransport) record(method, url string, body any) (json.RawMessage, error) {
	t.methods = append(t.methods, method)
	t.urls = append(t.urls, url)
	t.bodies = append(t.bodies, body)
	return t.response, nil
}

func (t *fakeTransport) Get(_ context.Context, url string) (json.RawMessage, error) {
	return t.record("GET", url, nil)
}

func (t *fakeTransport) Post(_ context.Context, url string, body any) (json.RawMessage, error) {
	return t.record("POST", url, body)
}

func (t *fakeTransport) Put(_ context.Context, url string, body any) (json.RawMessage, error) {
	return t.record("PUT", url, body)
}

func (t *fakeTransport) Patch(_ context.Context, url string, body any) (json.RawMessage, error) {
	return t.record("PATCH", url, body)
}

func (t *fakeTransport) Delete(_ context.Context, url string) (json.RawMessage, error) {
	return t.record("DELETE", url, nil)
}

func newTestClient(t *testing.T, response string, opts ...Option) (*Client, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{}
	if response != "" {
		ft.response = json.RawMessage(response)
	}
	apiClient, err := api.NewClient(api.Config{}, api.WithTransport(ft))
	require.NoError(t, err)
	return NewClient(apiClient, opts...), ft
}

func TestList_MapsDrafts(t *testing.T) {
	c, ft := newTestClient(t, `{
		"drafts": [
			{"id": "d1", "message": {"id": "m1", "threadId": "t1"}},
			{"id": "d2", "message": {"id": "m2", "threadId": "t2"}}
		],
		"nextPageToken": "p2"
	}`)

	result, token, err := c.List(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "p2", token)
	require.Len(t, result, 2)
	assert.Equal(t, "d1", result[0].ID)
	assert.Equal(t, "m1", result[0].Message.ID)
	assert.Equal(t, "t2", result[1].Message.ThreadID)

	assert.Equal(t, api.DefaultBaseURL+"users/me/drafts", ft.urls[0])
}

func TestList_EncodesOptions(t *testing.T) {
	c, ft := newTestClient(t, `{"drafts":[]}`)

	_, _, err := c.List(context.Background(), &ListOptions{
		Query:      "to:alice",
		MaxResults: 10,
		PageToken:  "p1",
	})
	require.NoError(t, err)

	want := api.DefaultBaseURL + "users/me/drafts?maxResults=10&pageToken=p1&q=to%3Aalice"
	assert.Equal(t, want, ft.urls[0])
}

func TestList_MissingTokenMeansLastPage(t *testing.T) {
	c, _ := newTestClient(t, `{"drafts":[{"id":"d1"}]}`)

	result, token, err := c.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Len(t, result, 1)
}

func TestGet_FullFormat(t *testing.T) {
	c, ft := newTestClient(t, `{
		"id": "d1",
		"message": {
			"id": "m1",
			"threadId": "t1",
			"payload": {
				"headers": [{"name": "Subject", "value": "Draft subject"}]
			}
		}
	}`)

	draft, err := c.Get(context.Background(), "d1")
	require.NoError(t, err)

	assert.Equal(t, "d1", draft.ID)
	assert.Equal(t, "Draft subject", draft.Message.Header("subject"))

	assert.Equal(t, api.DefaultBaseURL+"users/me/drafts/d1?format=full", ft.urls[0])
}

func TestGet_NotFound(t *testing.T) {
	c, _ := newTestClient(t, `{"error":{"code":404,"message":"Not Found"}}`)

	_, err := c.Get(context.Background(), "missing")
	assert.True(t, api.IsNotFound(err))
}

func TestCreate_EncodesRawContent(t *testing.T) {
	c, ft := newTestClient(t, `{"id":"d1","message":{"id":"m1"}}`)

	content := []byte("Subject: hi\r\n\r\nhello")
	draft, err := c.Create(context.Background(), content, "")
	require.NoError(t, err)
	assert.Equal(t, "d1", draft.ID)

	assert.Equal(t, "POST", ft.methods[0])
	assert.Equal(t, api.DefaultBaseURL+"users/me/drafts", ft.urls[0])

	body := ft.bodies[0].(map[string]any)
	message := body["message"].(map[string]string)
	decoded, err := base64.RawURLEncoding.DecodeString(message["raw"])
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
	_, hasThread := message["threadId"]
	assert.False(t, hasThread)
}

func TestCreate_WithThreadID(t *testing.T) {
	c, ft := newTestClient(t, `{"id":"d1"}`)

	_, err := c.Create(context.Background(), []byte("Subject: re\r\n\r\nreply"), "t1")
	require.NoError(t, err)

	body := ft.bodies[0].(map[string]any)
	message := body["message"].(map[string]string)
	assert.Equal(t, "t1", message["threadId"])
}

func TestCreate_RequiresContent(t *testing.T) {
	c, _ := newTestClient(t, `{}`)

	_, err := c.Create(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestUpdate_ReplacesContent(t *testing.T) {
	c, ft := newTestClient(t, `{"id":"d1","message":{"id":"m2"}}`)

	draft, err := c.Update(context.Background(), "d1", []byte("Subject: v2\r\n\r\nnew"), "")
	require.NoError(t, err)
	assert.Equal(t, "m2", draft.Message.ID)

	assert.Equal(t, "PUT", ft.methods[0])
	assert.Equal(t, api.DefaultBaseURL+"users/me/drafts/d1", ft.urls[0])
}

func TestSend_ReturnsSentMessage(t *testing.T) {
	c, ft := newTestClient(t, `{"id":"m9","threadId":"t9","labelIds":["SENT"]}`)

	msg, err := c.Send(context.Background(), "d1")
	require.NoError(t, err)

	assert.Equal(t, "m9", msg.ID)
	assert.Equal(t, []string{"SENT"}, msg.LabelIDs)

	assert.Equal(t, "POST", ft.methods[0])
	assert.Equal(t, api.DefaultBaseURL+"users/me/drafts/send", ft.urls[0])
	assert.Equal(t, map[string]string{"id": "d1"}, ft.bodies[0])
}

func TestSend_BadRequest(t *testing.T) {
	c, _ := newTestClient(t, `{"error":{"code":400,"errors":[{"message":"Recipient address required"},{"message":"ignored"}]}}`)

	_, err := c.Send(context.Background(), "d1")
	require.True(t, api.IsBadRequest(err))
	assert.Equal(t, "Recipient address required", err.(*api.BadRequestError).Message)
}

func TestDelete(t *testing.T) {
	c, ft := newTestClient(t, "")

	err := c.Delete(context.Background(), "d1")
	require.NoError(t, err)

	assert.Equal(t, "DELETE", ft.methods[0])
	assert.Equal(t, api.DefaultBaseURL+"users/me/drafts/d1", ft.urls[0])
}

func TestRequiredIDs(t *testing.T) {
	c, _ := newTestClient(t, `{}`)
	ctx := context.Background()

	_, err := c.Get(ctx, "")
	assert.Error(t, err)
	_, err = c.Update(ctx, "", []byte("x"), "")
	assert.Error(t, err)
	_, err = c.Send(ctx, "")
	assert.Error(t, err)
	assert.Error(t, c.Delete(ctx, ""))
}

func TestGet_UnexpectedShape(t *testing.T) {
	c, _ := newTestClient(t, `{"message":{"id":"m1"}}`)

	_, err := c.Get(context.Background(), "d1")
	var shapeErr *api.UnexpectedShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestCustomUserID(t *testing.T) {
	c, ft := newTestClient(t, `{"drafts":[]}`, WithUserID("bob@example.com"))

	_, _, err := c.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL+"users/bob@example.com/drafts", ft.urls[0])
}

func TestLogsOperationsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, _ := newTestClient(t, `{"drafts":[]}`, WithLogger(logger))

	_, _, err := c.List(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "listing drafts")
	assert.Contains(t, buf.String(), "users/me/drafts")
}
