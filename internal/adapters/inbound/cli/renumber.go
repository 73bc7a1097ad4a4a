package cli

import (
	"github.com/spf13/cobra"
)

func newRenumberCmd() *cobra.Command {
	var (
		out   string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "renumber <results.xqar>",
		Short: "Assign ids to issues that have none",
		Long:  "Give every issue without an id the next free id, or renumber all issues 1..N with --reset. The document is rewritten in place unless --output is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := newUI(cmd)

			n, err := newReportService().Renumber(args[0], out, reset)
			if err != nil {
				return err
			}

			target := out
			if target == "" {
				target = args[0]
			}
			if n == 0 {
				ui.Info("all issues already numbered, wrote %s", target)
				return nil
			}
			ui.Success("numbered %d issues, wrote %s", n, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file instead of rewriting the input")
	cmd.Flags().BoolVar(&reset, "reset", false, "Renumber all issues 1..N in document order")

	return cmd
}
