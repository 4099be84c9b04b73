package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultAccount is the account name used by the single-account helpers.
const DefaultAccount = "default"

// accountNamePattern restricts account names to filesystem-safe characters.
var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName checks that an account name is safe to use as part of
// a token file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name is required")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token file path for the given account.
func getTokenFilePath(account string) string {
	cacheDir := filepath.Join(userCacheDir(), "gmailclient")
	return filepath.Join(cacheDir, "google-"+account+".token")
}

// HasTokenForAccount checks if a cached OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// HasToken checks if a cached OAuth token exists for the default account.
func HasToken() bool {
	return HasTokenForAccount(DefaultAccount)
}

// GetAuthURLForAccount returns the OAuth URL the user must visit to
// authorize access for the account.
func GetAuthURLForAccount(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(account), nil
}

// GetAuthURL returns the OAuth URL for the default account.
func GetAuthURL() (string, error) {
	return GetAuthURLForAccount(DefaultAccount)
}

// SaveTokenForAccount exchanges an authorization code and caches the
// resulting token for the account.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// SaveToken exchanges an authorization code for the default account.
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, DefaultAccount, authCode)
}

// getOAuthConfig returns the OAuth2 configuration for the Gmail API. The
// client credentials come from the environment so they never end up in the
// binary.
func getOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	const OOB = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  OOB,
		Scopes:       DefaultOAuthScopes,
	}, nil
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// cached token of the account. The source refreshes the access token on
// first use.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no cached OAuth token for account %q", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %q", account)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for account %q is invalid: %w", account, err)
	}

	return ts, nil
}

// GetTokenSource returns a token source for the default account.
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, DefaultAccount)
}

// GetHTTPClientForAccount returns an HTTP client that attaches the account's
// OAuth2 credentials to every request. The client is pinned to HTTP/1.1 to
// avoid HTTP/2 protocol errors against the Gmail endpoints.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)
	pinHTTP1(client)

	return client, nil
}

// pinHTTP1 disables HTTP/2 on the client's oauth2 transport. Clients with a
// different transport (e.g. injected via the context) are left untouched.
func pinHTTP1(client *http.Client) {
	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{
			ForceAttemptHTTP2: false,
		}
	}
}

// GetHTTPClient returns an authenticated HTTP client for the default
// account.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, DefaultAccount)
}

// GetAuthenticationErrorMessage returns a user-facing message explaining how
// to authenticate the given account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no OAuth token for account %q: run 'gmailclient auth --account %s' and follow the instructions to authorize access", account, account)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
