package main

import (
	"github.com/spf13/cobra"
)

func newViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Show every property of a file",
		Long: `Show the basic filesystem properties of a file followed by the properties of
its category: EXIF tags for images, document info and page sizes for PDF,
core properties and body counts for Word documents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.registry.Inspect(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			a.printer.PrintReport(rep)
			return nil
		},
	}
}
