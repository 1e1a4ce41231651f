package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sprocket/internal/ffmpeg"
	"sprocket/internal/history"
)

func newConcatCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "concat <output> <input>...",
		Short: "Losslessly concatenate inputs via the concat demuxer",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			spec := ffmpeg.ConcatSpec{
				Inputs:   args[1:],
				Output:   args[0],
				LogLevel: cfg.Transcode.LogLevel,
			}

			manifestDir, err := os.MkdirTemp("", "sprocket-concat-")
			if err != nil {
				return fmt.Errorf("create manifest directory: %w", err)
			}
			defer os.RemoveAll(manifestDir)

			manifestPath := filepath.Join(manifestDir, "inputs.txt")
			if err := os.WriteFile(manifestPath, []byte(spec.Manifest()), 0o644); err != nil {
				return fmt.Errorf("write concat manifest: %w", err)
			}

			compiled, err := ffmpeg.CompileConcat(spec, manifestPath)
			if err != nil {
				return err
			}

			return runOperation(cmd, ctx, operation{
				Kind:   history.KindConcat,
				Input:  args[1],
				Output: args[0],
				Args:   compiled,
			}, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the argument vector without executing")
	return cmd
}
