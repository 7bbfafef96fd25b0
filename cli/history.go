package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/journal"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show journaled batch runs",
		Long: `List the runs recorded in the journal, newest first, or the per-file rows of
one run. A row marked changed had different content after the operation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.cfg.JournalPath()
			if err != nil {
				return err
			}
			j, err := journal.Open(path, a.logger)
			if err != nil {
				return err
			}
			defer j.Close()

			ctx := commandContext(cmd)
			if len(args) == 1 {
				return showRun(ctx, a, j, args[0])
			}

			runs, err := j.Runs(ctx, limit)
			if err != nil {
				return err
			}
			if a.printer.JSON {
				a.printer.PrintValue(runs)
				return nil
			}
			if len(runs) == 0 {
				a.printer.PrintInfo("no runs recorded in " + path)
				return nil
			}
			w := tabwriter.NewWriter(a.printer.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tOP\tSTARTED\tFILES\tOK\tFAILED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
					r.ID, r.Op, core.FormatTimestamp(r.Started), r.Total, r.Succeeded, r.Failed)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list (0 = all)")
	return cmd
}

func showRun(ctx context.Context, a *app, j *journal.Journal, id string) error {
	run, err := j.Run(ctx, id)
	if err != nil {
		return err
	}
	files, err := j.Outcomes(ctx, id)
	if err != nil {
		return err
	}
	if a.printer.JSON {
		a.printer.PrintValue(struct {
			Run   journal.Run    `json:"run"`
			Files []journal.File `json:"files"`
		}{run, files})
		return nil
	}

	fmt.Fprintf(a.printer.Writer, "%s  %s  %s\n", run.ID, run.Op, core.FormatTimestamp(run.Started))
	w := tabwriter.NewWriter(a.printer.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFILE\tRESULT\tCHANGED\tMESSAGE")
	for _, f := range files {
		result := "ok"
		if !f.Success {
			result = f.Code
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", f.Index+1, f.Path, result, yesNo(f.Changed()), a.printer.Labels.T(f.Message))
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
