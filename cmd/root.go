// Package cmd contains all CLI commands for the excel-tool binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jewettg/excel-tool/cmd/completion"
	cmdconfig "github.com/jewettg/excel-tool/cmd/config"
	"github.com/jewettg/excel-tool/cmd/info"
	"github.com/jewettg/excel-tool/cmd/split"
	"github.com/jewettg/excel-tool/cmd/version"
	cmdwatch "github.com/jewettg/excel-tool/cmd/watch"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "excel-tool",
		Short: "Excel spreadsheet manipulation tool",
		Long: `excel-tool — perform Excel spreadsheet manipulations from the terminal.

Split a combined workbook into one file per distinct column value,
inspect sheet layouts, or watch a directory and split on arrival.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("a subcommand is required")
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	rootCmd.AddCommand(split.NewCommand())
	rootCmd.AddCommand(info.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
