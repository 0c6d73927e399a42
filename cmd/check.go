package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/rtrim/internal/config"
)

var errNeedsTrim = errors.New("trailing whitespace found")

const checkLongDescription = `Check reports files that contain trailing whitespace without modifying
them, and exits with a non-zero status when any are found. It accepts the
same paths and flags as rtrim; --dry-run is implied.

Use it as a CI gate:
  rtrim check -x 'vendor/**' .`

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check [paths...]",
		Short:        "Fail if any file has trailing whitespace",
		Long:         checkLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			cfg.DryRun = true

			summary, err := resolveWorkflow(cmd, cfg.Verbose).Run(cmd.Context(), cfg.RunArgs())
			if err != nil {
				return err
			}

			if summary.HasFailures() {
				return fmt.Errorf("%d file(s) could not be processed", summary.Failed)
			}

			if summary.Modified > 0 {
				return fmt.Errorf("%w in %d file(s)", errNeedsTrim, summary.Modified)
			}

			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	_ = cmd.Flags().MarkHidden(config.KeyDryRun)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
