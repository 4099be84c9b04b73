package instrumentation

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"users/me/threads", "users/{userId}/threads"},
		{"users/me/threads/18c2a9e5f0d", "users/{userId}/threads/{id}"},
		{"users/me/threads/t1/modify", "users/{userId}/threads/{id}/modify"},
		{"users/bob@example.com/messages/m1", "users/{userId}/messages/{id}"},
		{"users/me/messages/send", "users/{userId}/messages/send"},
		{"users/me/drafts/send", "users/{userId}/drafts/send"},
		{"users/me/labels/Label_1", "users/{userId}/labels/{id}"},
		{"users/me/messages?maxResults=10", "users/{userId}/messages"},
		{"/users/me/labels", "users/{userId}/labels"},
		{"health", "health"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtractUserDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@example.com", "example.com"},
		{"user@gmail.com", "gmail.com"},
		{"invalid", "unknown"},
		{"user@", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ExtractUserDomain(tt.email); got != tt.want {
				t.Errorf("ExtractUserDomain(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}
