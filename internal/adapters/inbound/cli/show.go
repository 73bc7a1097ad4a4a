package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/qcresult/internal/adapters/outbound/tui"
	"github.com/abdidvp/qcresult/internal/application"
	"github.com/abdidvp/qcresult/internal/domain"
)

func newShowCmd() *cobra.Command {
	var (
		jsonOutput  bool
		ciMode      bool
		showAll     bool
		strict      bool
		record      bool
		minLevel    string
		issueID     uint64
		projectPath string
	)

	cmd := &cobra.Command{
		Use:   "show <results.xqar>",
		Short: "Summarize a result document",
		Long:  "Parse a result document, apply .qcresult.yaml and print the remaining issues grouped by checker.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := newUI(cmd)

			opts := application.ReportOptions{
				Strict:       strict,
				ShowDisabled: showAll || issueID != 0,
			}
			if minLevel != "" {
				lvl, err := domain.ParseIssueLevel(minLevel)
				if err != nil {
					return fmt.Errorf("--min-level: %w", err)
				}
				opts.MinLevel = lvl
			}

			svc := newReportService()
			ui.VerboseLog("loading %s with config from %s", args[0], projectPath)

			summary, err := svc.Summarize(args[0], projectPath, opts)
			if err != nil {
				return err
			}
			for _, s := range summary.Skipped {
				ui.Warning("skipped %s", s)
			}

			if record {
				if err := svc.Record(projectPath, summary); err != nil {
					return err
				}
				ui.VerboseLog("recorded summary in %s", projectPath)
			}

			switch {
			case issueID != 0:
				view, ok := findIssue(summary, issueID)
				if !ok {
					return fmt.Errorf("issue %d not found in %s", issueID, args[0])
				}
				if jsonOutput {
					return writeJSON(cmd, view)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderIssue(view))
				return nil
			case jsonOutput:
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(summary))
			}

			if ciMode && !summary.Passed() {
				return fmt.Errorf("%d error-level issues reported", summary.Errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output summary as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if error-level issues remain")
	cmd.Flags().BoolVar(&showAll, "all", false, "List disabled issues too")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first malformed issue instead of skipping it")
	cmd.Flags().BoolVar(&record, "record", false, "Append the summary to the report history")
	cmd.Flags().StringVar(&minLevel, "min-level", "", "Lowest level to report (error, warning, information)")
	cmd.Flags().Uint64Var(&issueID, "issue", 0, "Show a single issue by id")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Directory holding .qcresult.yaml and the history")

	return cmd
}

func findIssue(summary *domain.Summary, id uint64) (domain.IssueView, bool) {
	for _, v := range summary.Issues {
		if v.ID == id {
			return v, true
		}
	}
	return domain.IssueView{}, false
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
