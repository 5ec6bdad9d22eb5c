// Package split provides the "excel-tool split" command.
package split

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jewettg/excel-tool/internal/config"
	"github.com/jewettg/excel-tool/internal/runlog"
	splitter "github.com/jewettg/excel-tool/internal/split"
	"github.com/jewettg/excel-tool/internal/xlsx"
)

const logName = "excel_tool"
const logTag = "EXCELTOOL"

// NewCommand returns the split subcommand.
func NewCommand() *cobra.Command {
	var (
		file   string
		column string
	)

	cmd := &cobra.Command{
		Use:   "split -f <file.xlsx> -c <column>",
		Short: "Split an Excel file into one workbook per distinct column value",
		Long: `Reads the first sheet of an .xlsx file, groups its rows by the distinct
values of one column, and writes each group to its own workbook (header
row included) inside a sibling {stem}_split directory. Output columns are
auto-sized and the header row is highlighted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, cfgErr := config.Load()

			minLevel := runlog.ParseLevel(cfg.Logs.Level)
			if verbose {
				minLevel = runlog.LevelDebug
			}
			log := runlog.New(cfg.Logs.Dir, logName, logTag, minLevel)
			defer log.Close()

			configFailed := false
			if cfgErr != nil {
				// The original tool degrades gracefully here: a broken
				// config fails the run but never blocks the split.
				log.Errorf("Error reading configuration file: %v", cfgErr)
				configFailed = true
			}

			log.Infof("Starting Excel Manipulation Tool")
			result := splitter.Run(splitter.Options{
				SourcePath: file,
				Column:     column,
				SheetIndex: cfg.Split.SheetIndex,
				Style: xlsx.Style{
					HeaderFill:   cfg.Output.HeaderFill,
					WidthPadding: cfg.Output.WidthPadding,
					MaxColWidth:  cfg.Output.MaxColWidth,
				},
			}, log)

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			}

			if result.Failed() || configFailed {
				log.Errorf("Script encountered errors in processing Excel manipulations")
				log.Errorf("One or more tasks failed, please check the log file for details: %s", runlog.FilePath(cfg.Logs.Dir, logName))
				return errors.New("split finished with errors — check the log for details")
			}

			log.Infof("Script finished, all tasks completed successfully")
			if !jsonFlag {
				fmt.Printf("Wrote %d file(s) to %s\n", len(result.Files), splitter.OutputDir(file))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path of the Excel file to split (required)")
	cmd.Flags().StringVarP(&column, "column", "c", "", "Name of the column to split the sheet on (required)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}
