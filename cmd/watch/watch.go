// Package watch provides the "excel-tool watch" command.
package watch

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jewettg/excel-tool/internal/config"
	"github.com/jewettg/excel-tool/internal/runlog"
	splitter "github.com/jewettg/excel-tool/internal/split"
	w "github.com/jewettg/excel-tool/internal/watch"
	"github.com/jewettg/excel-tool/internal/xlsx"
)

const logName = "excel_tool"
const logTag = "EXCELTOOL"

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		column    string
		recursive bool
		debounce  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch -c <column> <directory> [directory...]",
		Short: "Watch directories and split workbooks as they arrive",
		Long: `Monitors the given directories for new or modified .xlsx files and runs
the split pipeline on each, keyed on the given column. Files inside
_split output directories are ignored so output never feeds back in.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, cfgErr := config.Load()

			minLevel := runlog.ParseLevel(cfg.Logs.Level)
			if verbose {
				minLevel = runlog.LevelDebug
			}
			log := runlog.New(cfg.Logs.Dir, logName, logTag, minLevel)
			defer log.Close()

			if cfgErr != nil {
				log.Errorf("Error reading configuration file: %v", cfgErr)
			}

			watcher, err := w.New(w.Config{
				Directories: args,
				Recursive:   recursive,
				Debounce:    debounce,
			}, log)
			if err != nil {
				return err
			}

			watcher.Handler = func(path string) error {
				result := splitter.Run(splitter.Options{
					SourcePath: path,
					Column:     column,
					SheetIndex: cfg.Split.SheetIndex,
					Style: xlsx.Style{
						HeaderFill:   cfg.Output.HeaderFill,
						WidthPadding: cfg.Output.WidthPadding,
						MaxColWidth:  cfg.Output.MaxColWidth,
					},
				}, log)
				if result.Failed() {
					return errors.New("split finished with errors")
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "Name of the column to split arriving sheets on (required)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch subdirectories too")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Settle time before a changed file is processed")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}
