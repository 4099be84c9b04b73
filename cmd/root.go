package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gmailclient application
var rootCmd = &cobra.Command{
	Use:   "gmailclient",
	Short: "Manage Gmail threads, messages, labels and drafts",
	Long: `gmailclient is a Gmail client for the command line.

It talks to the Gmail REST API directly and supports multiple Google
accounts. It can run as:
  - A standalone CLI tool for threads, messages, labels and drafts
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

var debugMode bool

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmailclient version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging configures the default slog logger. Debug output goes to
// stderr so it never interferes with JSON results or the stdio transport.
func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gmailclient version %s\n", version)
		},
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newThreadsCmd())
	rootCmd.AddCommand(newMessagesCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
