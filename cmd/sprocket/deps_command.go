package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sprocket/internal/deps"
	"sprocket/internal/preflight"
)

// depsReport is the JSON shape of the full diagnosis: binary resolution plus
// the directory checks every operation relies on.
type depsReport struct {
	Binaries    []deps.Status      `json:"binaries"`
	Environment []preflight.Result `json:"environment"`
}

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check the external binaries and the configured directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := preflight.CheckSystemDeps(cfg)
			environment := preflight.RunAll(cfg)

			missing := false
			for _, status := range statuses {
				if !status.Available {
					missing = true
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, depsReport{Binaries: statuses, Environment: environment}); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(statuses)+len(environment))
				for _, status := range statuses {
					state := "ok"
					if !status.Available {
						state = "missing"
					}
					detail := status.Detail
					if detail == "" {
						detail = status.Command
					}
					rows = append(rows, []string{status.Name, state, detail})
				}
				for _, result := range environment {
					state := "ok"
					if !result.Passed {
						state = "failed"
					}
					rows = append(rows, []string{result.Name, state, result.Detail})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Check", "Status", "Detail"},
					rows,
				))
			}

			if missing {
				return fmt.Errorf("one or more required binaries are missing")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}
