package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/rtrim/internal/config"
	"github.com/mouse-blink/rtrim/internal/domain"
	m "github.com/mouse-blink/rtrim/internal/model"
)

var errReportRequired = errors.New("--report is required")

var viewReportFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "view",
		Short:        "View a previously saved run report",
		Long:         "View a YAML report written by rtrim --report. On a terminal, long reports open in a scrollable list.",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if viewReportFlag == "" {
				return errReportRequired
			}

			return resolveWorkflow(cmd, false).View(domain.ViewArgs{Report: m.Path(viewReportFlag)})
		},
	}
	cmd.Flags().StringVarP(&viewReportFlag, config.KeyReport, "r", "", "report file to display")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
