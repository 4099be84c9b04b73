package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default". Account names map to cached OAuth tokens managed
// by the internal/google package.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
