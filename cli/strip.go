package main

import (
	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/spf13/cobra"
)

func newStripCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "strip <file>...",
		Short: "Remove the metadata of files",
		Long: `Remove the category metadata of each file. The file is rewritten through a
temporary sibling and renamed over the original, so a failure never leaves a
partial file behind.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), len(args)); err != nil {
					return err
				}
			}

			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.runner.Run(commandContext(cmd), args, batch.OpStrip)
			if err != nil {
				return err
			}
			if len(res.Outcomes) == 1 && !res.Outcomes[0].Success {
				return res.Outcomes[0].Err
			}
			for _, o := range res.Outcomes {
				a.printer.PrintOutcome(o)
			}
			if res.Failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
