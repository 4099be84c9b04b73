package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"gmail_threads_list", "Thread Tools"},
		{"gmail_messages_send", "Message Tools"},
		{"gmail_labels_create", "Label Tools"},
		{"gmail_drafts_update", "Draft Tools"},
		{"google_get_auth_url", "Authentication Tools"},
		{"something_else", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getCategoryFromToolName(tt.name); got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("gmail_threads_get",
		mcp.WithDescription("Get a Gmail thread"),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread"),
		),
		mcp.WithString("format",
			mcp.Description("Message detail level"),
		),
	)

	md := generateToolMarkdown(tool)

	if !strings.Contains(md, "### gmail_threads_get") {
		t.Error("expected tool name heading")
	}
	if !strings.Contains(md, "Get a Gmail thread") {
		t.Error("expected tool description")
	}
	if !strings.Contains(md, "`threadId` (required)") {
		t.Error("expected required argument")
	}
	if !strings.Contains(md, "`format` (optional)") {
		t.Error("expected optional argument")
	}
}

func TestGenerateToolsMarkdown_GroupsByCategory(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("gmail_threads_list", mcp.WithDescription("List threads")),
		mcp.NewTool("gmail_labels_list", mcp.WithDescription("List labels")),
	}

	md := generateToolsMarkdown(tools)

	if !strings.Contains(md, "## Thread Tools") {
		t.Error("expected Thread Tools section")
	}
	if !strings.Contains(md, "## Label Tools") {
		t.Error("expected Label Tools section")
	}
	if !strings.Contains(md, "## Table of Contents") {
		t.Error("expected table of contents")
	}
}

func TestRootCommandStructure(t *testing.T) {
	expected := []string{"auth", "threads", "messages", "labels", "drafts", "serve", "version", "generate-docs"}

	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}
