// Package common provides shared helpers for MCP tool implementations:
// account resolution from tool arguments and handler wrappers that record
// metrics and tracing spans per tool invocation.
package common
