package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, overridden at link time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "sprocket %s (commit %s, built %s, %s)\n",
				version, commit, date, runtime.Version())
			return nil
		},
	}
}
