package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/leowmjw/tempocorrelate/pkg/hcl"
	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// NewStreamCommand builds the `stream` subcommand: start a
// StreamingCorrelationWorkflow and return immediately.
func NewStreamCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stream <path>",
		Short:         "Start a long-running streaming correlation job",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStream(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runStream(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	workflowID := temporal.GenerateStreamWorkflowID(spec.JobID)
	workflowOpts := client.StartWorkflowOptions{ID: workflowID, TaskQueue: opts.TaskQueue}

	run, err := c.ExecuteWorkflow(context.Background(), workflowOpts, temporal.StreamingCorrelationWorkflow, *spec)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start streaming workflow", err)
	}

	if opts.Format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "started streaming job %s, workflow id %s\n", spec.JobID, run.GetID())
		return nil
	}
	return formatter.Success(map[string]string{"job_id": spec.JobID, "workflow_id": run.GetID()})
}
