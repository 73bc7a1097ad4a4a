package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/qcresult/internal/adapters/outbound/tui"
)

func newValidateCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate <results.xqar>",
		Short: "Check a result document for malformed issues",
		Long:  "Parse every issue of a result document and list the ones that are malformed. Exits 1 when any issue is malformed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newReportService().Validate(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd, v); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidation(v))
			}

			if !v.Valid {
				return fmt.Errorf("%s: %d malformed issues", args[0], len(v.Problems))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")

	return cmd
}
