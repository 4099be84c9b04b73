package google

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid work", "work", false},
		{"valid with hyphen", "work-email", false},
		{"valid with underscore", "personal_email", false},
		{"valid alphanumeric", "account123", false},
		{"empty", "", true},
		{"with spaces", "my account", true},
		{"with special chars", "account@work", true},
		{"with slash", "work/personal", true},
		{"with dot", "work.email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccountName(tt.account)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAccountName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTokenFilePath(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{"default account", "default", "google-default.token"},
		{"work account", "work", "google-work.token"},
		{"personal account", "personal", "google-personal.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getTokenFilePath(tt.account)
			if filepath.Base(got) != tt.want {
				t.Errorf("getTokenFilePath() = %v, want base %v", got, tt.want)
			}
		})
	}
}

func TestHasTokenForAccount_InvalidNames(t *testing.T) {
	if HasTokenForAccount("invalid account") {
		t.Error("HasTokenForAccount() should return false for invalid account name")
	}
	if HasTokenForAccount("") {
		t.Error("HasTokenForAccount() should return false for empty account name")
	}
}

func TestGetAuthURL_RequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	if _, err := GetAuthURLForAccount("default"); err == nil {
		t.Error("GetAuthURLForAccount() should fail without client credentials")
	}
}

func TestGetAuthURL_CarriesAccountState(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "test-client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "test-client-secret")

	url, err := GetAuthURLForAccount("work")
	if err != nil {
		t.Fatalf("GetAuthURLForAccount() error = %v", err)
	}
	if !strings.Contains(url, "state=work") {
		t.Errorf("Auth URL should carry the account as state, got %s", url)
	}
	if !strings.Contains(url, "test-client-id") {
		t.Errorf("Auth URL should carry the client ID, got %s", url)
	}
}

func TestGetAuthenticationErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		account string
	}{
		{"default account", "default"},
		{"work account", "work"},
		{"personal account", "personal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GetAuthenticationErrorMessage(tt.account)
			if msg == "" {
				t.Error("GetAuthenticationErrorMessage() should return non-empty message")
			}
			if !strings.Contains(msg, tt.account) {
				t.Errorf("GetAuthenticationErrorMessage() should mention account %s", tt.account)
			}
			if !strings.Contains(msg, "OAuth") {
				t.Error("GetAuthenticationErrorMessage() should mention OAuth")
			}
		})
	}
}

func TestPinHTTP1_OAuthTransport(t *testing.T) {
	client := &http.Client{Transport: &oauth2.Transport{}}

	pinHTTP1(client)

	transport, ok := client.Transport.(*oauth2.Transport)
	if !ok {
		t.Fatalf("pinHTTP1() replaced the oauth2 transport with %T", client.Transport)
	}
	base, ok := transport.Base.(*http.Transport)
	if !ok {
		t.Fatalf("pinHTTP1() set Base to %T, want *http.Transport", transport.Base)
	}
	if base.ForceAttemptHTTP2 {
		t.Error("pinHTTP1() should disable HTTP/2 on the base transport")
	}
}

func TestPinHTTP1_ForeignTransport(t *testing.T) {
	original := &http.Transport{ForceAttemptHTTP2: true}
	client := &http.Client{Transport: original}

	pinHTTP1(client)

	if client.Transport != http.RoundTripper(original) {
		t.Errorf("pinHTTP1() should leave non-oauth2 transports untouched, got %T", client.Transport)
	}
	if !original.ForceAttemptHTTP2 {
		t.Error("pinHTTP1() should not modify a non-oauth2 transport")
	}
}

func TestDefaultAccountFunctions(t *testing.T) {
	defaultResult := HasTokenForAccount("default")
	legacyResult := HasToken()
	if defaultResult != legacyResult {
		t.Error("HasToken() should return same result as HasTokenForAccount('default')")
	}
}
