package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/leowmjw/tempocorrelate/pkg/hcl"
	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// NewRunCommand builds the `run` subcommand: submit a job spec as a
// CorrelationWorkflow and block for its result.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run <path>",
		Short:         "Run a correlation job and wait for its result",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runJob(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}

	spec, err := hcl.ParseJobSpecFromPath(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse job spec", err)
	}

	c, err := client.Dial(client.Options{HostPort: opts.TemporalAddr, Namespace: opts.Namespace})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect to Temporal", err)
	}
	defer c.Close()

	ctx := context.Background()
	workflowOpts := client.StartWorkflowOptions{
		ID:        temporal.GenerateCorrelationWorkflowID(spec.JobID),
		TaskQueue: opts.TaskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, workflowOpts, temporal.CorrelationWorkflow, *spec)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start correlation workflow", err)
	}

	var result temporal.JobResult
	if err := run.Get(ctx, &result); err != nil {
		return WrapExitError(ExitFailure, "correlation workflow failed", err)
	}

	if opts.Format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "job %s: %d match(es), %d miss(es)\n", result.JobID, result.MatchCount, result.MissCount)
		return nil
	}
	return formatter.Success(result)
}
