package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
)

const progressTemplate = `{{counters . }} {{bar . }} {{percent . }} {{string . "file"}}`

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "View or strip many files in one run",
		Long: `Run view or strip over a list of files, one file at a time. Duplicate paths
are listed once and missing files are reported and skipped. Every listed file
gets an outcome; a failure on one file never stops the others.`,
	}

	cmd.AddCommand(newBatchViewCommand())
	cmd.AddCommand(newBatchStripCommand())
	return cmd
}

func newBatchViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>...",
		Short: "Summarise the properties of many files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, batch.OpView)
		},
	}
}

func newBatchStripCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "strip <file>...",
		Short: "Remove the metadata of many files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), len(args)); err != nil {
					return err
				}
			}
			return runBatch(cmd, args, batch.OpStrip)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string, op batch.Op) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	list := batch.NewList()
	_, errs := list.Add(args...)
	for _, err := range errs {
		a.printer.PrintError(err)
	}
	if list.Len() == 0 {
		return &exitError{code: 1}
	}

	// Interrupting gives the remaining files canceled outcomes.
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	var res *batch.Result
	if a.showProgress(cmd) {
		res, err = runWithProgress(ctx, a, cmd, list.Selected(), op)
	} else {
		res, err = a.runner.Run(ctx, list.Selected(), op)
	}
	if err != nil {
		return err
	}

	if op == batch.OpView {
		for _, o := range res.Outcomes {
			if o.Success && o.Report != nil {
				a.printer.PrintSummary(batch.Summarize(o.Report))
			}
		}
	}
	a.printer.PrintOutcomes(res.Outcomes, res.Processed)

	if res.Failed > 0 || len(errs) > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func (a *app) showProgress(cmd *cobra.Command) bool {
	if a.printer.JSON || a.printer.Quiet || !a.cfg.Output.Progress {
		return false
	}
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && isTerminal(f)
}

func runWithProgress(ctx context.Context, a *app, cmd *cobra.Command, paths []string, op batch.Op) (*batch.Result, error) {
	job, err := a.runner.Start(ctx, paths, op)
	if err != nil {
		return nil, err
	}

	bar := pb.New(len(paths))
	bar.SetWriter(cmd.ErrOrStderr())
	bar.SetTemplateString(progressTemplate)
	bar.Start()
	for p := range job.Progress() {
		bar.Set("file", filepath.Base(p.Path))
		bar.Increment()
	}
	bar.Finish()

	return job.Wait(), nil
}
