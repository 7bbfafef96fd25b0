package main

import (
	"errors"
	"os"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err, newFlagPrinter(root)))
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fileprops",
		Short: "Inspect and strip file metadata",
		Long: `fileprops reads the properties embedded in images, PDF and Word documents
together with their filesystem attributes, and removes that metadata by
rewriting the file atomically. Batches run one file at a time and report an
outcome for every file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(root)

	root.AddCommand(newViewCommand())
	root.AddCommand(newStripCommand())
	root.AddCommand(newBatchCommand())
	root.AddCommand(newFormatsCommand())
	root.AddCommand(newHistoryCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newConfigCommand())
	root.AddCommand(newVersionCommand())
	root.AddCommand(newSysinfoCommand())
	return root
}

// exitError ends the process with code once its output has been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "one or more files failed" }

func exitCode(err error, p *core.Printer) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	p.PrintError(err)
	return 1
}

// newFlagPrinter builds a printer from the raw flags, for output produced
// without an app.
func newFlagPrinter(cmd *cobra.Command) *core.Printer {
	loc, _ := core.ParseLocale(globalFlags.Locale)
	p := core.NewPrinter(globalFlags.JSON, false, loc)
	p.Writer = cmd.OutOrStdout()
	p.ErrWriter = cmd.ErrOrStderr()
	return p
}
