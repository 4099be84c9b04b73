// Package gmail bundles the per-resource Gmail clients (threads, messages,
// labels, drafts) behind a single authenticated client per account.
//
// The bundle shares one base request helper, so all resource clients use the
// same OAuth credentials, base URL and request observer. Accounts map to
// cached OAuth tokens managed by the internal/google package.
package gmail
