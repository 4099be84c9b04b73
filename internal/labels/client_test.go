package labels

import (
	"context"
	"encoding/json"
	"testing"

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

func newTestClient(t *testing.T, response string) (*Client, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{}
	if response != "" {
		ft.response = json.RawMessage(response)
	}
	apiClient, err := api.NewClient(api.Config{}, api.WithTransport(ft))
	if err != nil {
		t.Fatalf("failed to create api client: %v", err)
	}
	return NewClient(apiClient), ft
}

func TestList(t *testing.T) {
	c, ft := newTestClient(t, `{"labels":[
		{"id":"INBOX","name":"INBOX","type":"system"},
		{"id":"Label_1","name":"Receipts","type":"user"}
	]}`)

	result, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(result))
	}
	if result[0].ID != "INBOX" || result[0].Type != "system" {
		t.Errorf("Unexpected first label: %+v", result[0])
	}
	if result[1].Name != "Receipts" {
		t.Errorf("Expected name 'Receipts', got %s", result[1].Name)
	}

	want := api.DefaultBaseURL + "users/me/labels"
	if ft.urls[0] != want {
		t.Errorf("Expected URL %q, got %q", want, ft.urls[0])
	}
}

func TestGet_IncludesCounts(t *testing.T) {
	c, ft := newTestClient(t, `{
		"id": "Label_1",
		"name": "Receipts",
		"type": "user",
		"messagesTotal": 42,
		"messagesUnread": 3,
		"threadsTotal": 17,
		"threadsUnread": 2
	}`)

	label, err := c.Get(context.Background(), "Label_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if label.MessagesTotal != 42 {
		t.Errorf("Expected 42 total messages, got %d", label.MessagesTotal)
	}
	if label.ThreadsUnread != 2 {
		t.Errorf("Expected 2 unread threads, got %d", label.ThreadsUnread)
	}

	want := api.DefaultBaseURL + "users/me/labels/Label_1"
	if ft.urls[0] != want {
		t.Errorf("Expected URL %q, got %q", want, ft.urls[0])
	}
}

func TestGet_NotFound(t *testing.T) {
	c, _ := newTestClient(t, `{"error":{"code":404,"message":"Not Found"}}`)
	_, err := c.Get(context.Background(), "missing")
	if !api.IsNotFound(err) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	c, ft := newTestClient(t, `{"id":"Label_2","name":"Travel","type":"user"}`)

	label, err := c.Create(context.Background(), LabelInput{
		Name:                "Travel",
		LabelListVisibility: "labelShow",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if label.ID != "Label_2" {
		t.Errorf("Expected ID 'Label_2', got %s", label.ID)
	}

	if ft.methods[0] != "POST" {
		t.Errorf("Expected POST, got %s", ft.methods[0])
	}
	input := ft.bodies[0].(LabelInput)
	if input.Name != "Travel" || input.LabelListVisibility != "labelShow" {
		t.Errorf("Unexpected body: %+v", input)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	c, _ := newTestClient(t, `{}`)
	if _, err := c.Create(context.Background(), LabelInput{}); err == nil {
		t.Fatal("Expected error for missing name")
	}
}

func TestCreate_BadRequest(t *testing.T) {
	c, _ := newTestClient(t, `{"error":{"code":400,"errors":[{"message":"Invalid label name"},{"message":"ignored"}]}}`)

	_, err := c.Create(context.Background(), LabelInput{Name: "//"})
	if !api.IsBadRequest(err) {
		t.Fatalf("Expected BadRequestError, got %v", err)
	}
	if err.(*api.BadRequestError).Message != "Invalid label name" {
		t.Errorf("Expected first error message only, got %q", err.Error())
	}
}

func TestUpdateAndPatch_Verbs(t *testing.T) {
	c, ft := newTestClient(t, `{"id":"Label_1","name":"Archive"}`)
	ctx := context.Background()

	if _, err := c.Update(ctx, "Label_1", LabelInput{Name: "Archive"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := c.Patch(ctx, "Label_1", LabelInput{Name: "Archive"}); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	if ft.methods[0] != "PUT" {
		t.Errorf("Expected PUT for update, got %s", ft.methods[0])
	}
	if ft.methods[1] != "PATCH" {
		t.Errorf("Expected PATCH for patch, got %s", ft.methods[1])
	}
	want := api.DefaultBaseURL + "users/me/labels/Label_1"
	if ft.urls[0] != want || ft.urls[1] != want {
		t.Errorf("Unexpected URLs: %v", ft.urls)
	}
}

func TestDelete(t *testing.T) {
	c, ft := newTestClient(t, "")

	if err := c.Delete(context.Background(), "Label_1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ft.methods[0] != "DELETE" {
		t.Errorf("Expected DELETE, got %s", ft.methods[0])
	}
	want := api.DefaultBaseURL + "users/me/labels/Label_1"
	if ft.urls[0] != want {
		t.Errorf("Expected URL %q, got %q", want, ft.urls[0])
	}
}

func TestDecodeLabel_UnexpectedShape(t *testing.T) {
	c, _ := newTestClient(t, `{"name":"no id"}`)
	_, err := c.Get(context.Background(), "Label_1")
	if _, ok := err.(*api.UnexpectedShapeError); !ok {
		t.Fatalf("Expected UnexpectedShapeError, got %v", err)
	}
}
