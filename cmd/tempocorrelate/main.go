// Command tempocorrelate is the operator-facing CLI for submitting,
// validating, and inspecting temporal correlation jobs.
package main

import (
	"fmt"
	"os"

	"github.com/leowmjw/tempocorrelate/pkg/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
