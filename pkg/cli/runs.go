package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/leowmjw/tempocorrelate/pkg/jobstore"
)

// NewRunsCommand builds the `runs` subcommand: list recorded runs for a job
// ID directly from the job store, without a Temporal server.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:           "runs <job-id>",
		Short:         "List recorded runs for a job",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListRuns(rootOpts, storePath, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&storePath, "job-store", "tempocorrelate.db", "path to the job store database")
	return cmd
}

func runListRuns(opts *RootOptions, storePath, jobID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}

	store, err := jobstore.Open(storePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open job store", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), jobID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	return formatter.Success(runs)
}
