// Package cli implements the tempocorrelate operator command line: submit
// HCL job specs to a running worker, validate them locally, and inspect
// recorded job history.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by every subcommand.
type RootOptions struct {
	Format        string // "text" | "json"
	TemporalAddr  string
	Namespace     string
	TaskQueue     string
}

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand builds the tempocorrelate root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tempocorrelate",
		Short: "tempocorrelate - Allen's interval algebra correlation jobs",
		Long:  "Submit, validate, and inspect temporal correlation jobs defined in HCL.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.TemporalAddr, "temporal-addr", "localhost:7233", "address of the Temporal server")
	cmd.PersistentFlags().StringVar(&opts.Namespace, "namespace", "default", "Temporal namespace")
	cmd.PersistentFlags().StringVar(&opts.TaskQueue, "task-queue", "tempocorrelate-task-queue", "Temporal task queue")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewStreamCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
