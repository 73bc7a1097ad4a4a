package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/qcresult/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput  bool
		projectPath string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded report summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := newReportService().History(projectPath)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Directory holding the history")

	return cmd
}
