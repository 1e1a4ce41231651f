package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeyframesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "keyframes <file>",
		Short: "Print keyframe timestamps in ascending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ffprobeClient()
			if err != nil {
				return err
			}

			runCtx, cancel := signalContext(cmd)
			defer cancel()

			stamps, err := client.Keyframes(runCtx, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				if stamps == nil {
					stamps = []float64{}
				}
				return writeJSON(cmd, stamps)
			}
			out := cmd.OutOrStdout()
			for _, stamp := range stamps {
				fmt.Fprintf(out, "%.3f\n", stamp)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the timestamps as a JSON array")
	return cmd
}
