// Package cmd implements the gmailclient command line interface: auth,
// resource subcommands for threads, messages, labels and drafts, the MCP
// serve command and tool documentation generation.
package cmd
