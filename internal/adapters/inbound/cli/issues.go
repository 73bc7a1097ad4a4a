package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/qcresult/internal/application"
)

func newIssuesCmd() *cobra.Command {
	var (
		showAll     bool
		projectPath string
	)

	cmd := &cobra.Command{
		Use:   "issues <results.xqar>",
		Short: "List issues as a plain table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newReportService().Summarize(args[0], projectPath, application.ReportOptions{
				ShowDisabled: showAll,
			})
			if err != nil {
				return err
			}
			return newUI(cmd).IssueTable(summary.Issues)
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "List disabled issues too")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Directory holding .qcresult.yaml")

	return cmd
}
