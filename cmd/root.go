// Package cmd provides the root command and CLI setup for rtrim.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/rtrim/internal/adapter"
	"github.com/mouse-blink/rtrim/internal/config"
	"github.com/mouse-blink/rtrim/internal/controller"
	"github.com/mouse-blink/rtrim/internal/domain"
)

// workflow is built per command from the resolved flags unless a test has
// installed one.
var workflow domain.Workflow

const rootLongDescription = `rtrim strips trailing whitespace (spaces, tabs, carriage returns) from the
end of every line of UTF-8 text files, keeping LF and CRLF line endings.

Files are rewritten atomically: the new content is written to a temporary
sibling, flushed to disk and renamed over the original, so an interrupted
run never leaves a file half-written. Permission bits are preserved.

Symbolic links, non-regular files and binary (non UTF-8) files are skipped.
Folders are walked recursively; VCS, dependency and hidden directories are
ignored.

Examples:
  rtrim                       trim everything under the current directory
  rtrim src README.md         trim a folder and a file
  rtrim -n -x '**/*.snap' .   show what would change, ignoring snapshots
  rtrim -p 8 -r report.yaml   use 8 workers and save a report`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rtrim [paths...]",
		Short:        "Strip trailing whitespace from text files",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			summary, err := resolveWorkflow(cmd, cfg.Verbose).Run(cmd.Context(), cfg.RunArgs())
			if err != nil {
				return err
			}

			if summary.HasFailures() {
				return fmt.Errorf("%d file(s) could not be processed", summary.Failed)
			}

			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}

	return config.Load(v, args)
}

func resolveWorkflow(cmd *cobra.Command, verbose bool) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	return newWorkflow(cmd, verbose)
}

func newWorkflow(cmd *cobra.Command, verbose bool) domain.Workflow {
	log := adapter.NewLogger(cmd.ErrOrStderr(), verbose)
	fsAdapter := adapter.NewLocalSourceFSAdapter()
	committer := domain.NewCommitter(fsAdapter, log)

	return domain.NewWorkflow(
		domain.NewCollector(fsAdapter, log),
		domain.NewClassifier(fsAdapter, log),
		committer,
		adapter.NewReportStore(fsAdapter, committer),
		controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout())),
		log,
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt stops new files from starting; commits in flight complete.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
