package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for zhproof.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zhproof",
		Short: "Proofreading tool for Chinese EPUB sources",
		Long: `zhproof proofreads the XHTML, SVG and OPF sources of Chinese EPUB books.

It converts a book between Traditional and Simplified Chinese, cleans the
text of headings and paragraphs with rewrite rules, and shows the lines a
proofreader should look at in an interactive viewer.

Only text inside the configured tags is touched, and untouched bytes are
written back exactly as they were read.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .zhproof.yaml in current directory or XDG config directory)")

	// Add subcommands
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewPRCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
