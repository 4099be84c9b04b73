// Package google_tools implements MCP tools for the Google OAuth flow:
// obtaining the authorization URL and exchanging the authorization code
// for a stored per-account token.
package google_tools
