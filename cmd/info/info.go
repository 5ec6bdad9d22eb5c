// Package info provides the "excel-tool info" command.
package info

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jewettg/excel-tool/internal/xlsx"
)

// NewCommand returns the info subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.xlsx>",
		Short: "List the sheets of an Excel file with their row counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			infos, err := xlsx.ReadInfo(args[0])
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			header := color.New(color.Bold, color.FgCyan)
			dim := color.New(color.FgHiBlack)

			header.Printf("%s\n", args[0])
			for _, s := range infos {
				fmt.Printf("  %s", s.Name)
				dim.Printf("  (%d rows)\n", s.Rows)
			}
			return nil
		},
	}
}
