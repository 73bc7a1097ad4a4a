package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/qcresult/internal/adapters/outbound/config"
	"github.com/abdidvp/qcresult/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/qcresult/internal/adapters/outbound/history"
	"github.com/abdidvp/qcresult/internal/adapters/outbound/xqar"
	"github.com/abdidvp/qcresult/internal/application"
	"github.com/abdidvp/qcresult/internal/output"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "qcresult",
		Short:         "Inspect and maintain conformance checker results",
		Long:          "qcresult reads .xqar result documents written by rule-based conformance checkers, filters and summarizes their issues, and keeps issue ids consistent.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool("verbose", false, "Print progress details")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newIssuesCmd())
	cmd.AddCommand(newRenumberCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newReportService() *application.ReportService {
	return application.NewReportService(
		xqar.New(),
		config.New(),
		gitinfo.New(),
		history.New(),
	)
}

// newUI binds status output to the command's writers.
func newUI(cmd *cobra.Command) *output.UI {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return &output.UI{
		Verbose: verbose,
		Out:     cmd.OutOrStdout(),
		ErrOut:  cmd.ErrOrStderr(),
	}
}
