package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leowmjw/tempocorrelate/pkg/hcl"
	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// ValidationResult is the JSON/text payload the validate command emits.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	JobIDs []string `json:"job_ids,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand builds the `validate` subcommand: decode every job
// spec at path and check its policy fields, without contacting a Temporal
// server.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <path>",
		Short:         "Validate job specs without running them",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}

	specs, err := hcl.ParseJobSpecsFromPath(path)
	if err != nil {
		_ = formatter.Error("E_PARSE", err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	result := ValidationResult{Valid: true}
	for _, spec := range specs {
		result.JobIDs = append(result.JobIDs, spec.JobID)
		if err := temporal.ValidateJobSpec(*spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", spec.JobID, err))
		}
	}

	if !result.Valid {
		_ = formatter.Error("E_POLICY", "one or more job specs are invalid", result.Errors)
		return NewExitError(ExitFailure, fmt.Sprintf("%d job(s) failed validation", len(result.Errors)))
	}

	return formatter.Success(result)
}
