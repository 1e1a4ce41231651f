package main

import (
	"github.com/spf13/cobra"

	"sprocket/internal/ffmpeg"
	"sprocket/internal/history"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	var at float64
	var scale string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "frame <input> <output>",
		Short: "Extract a single frame at a timestamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			frameScale, err := parseScale(scale)
			if err != nil {
				return err
			}

			spec := ffmpeg.FrameSpec{
				Input:    args[0],
				At:       at,
				Scale:    frameScale,
				Output:   args[1],
				LogLevel: cfg.Transcode.LogLevel,
			}
			compiled, err := ffmpeg.CompileFrame(spec)
			if err != nil {
				return err
			}

			return runOperation(cmd, ctx, operation{
				Kind:   history.KindFrame,
				Input:  args[0],
				Output: args[1],
				Args:   compiled,
			}, dryRun)
		},
	}

	cmd.Flags().Float64Var(&at, "at", 0, "Timestamp of the frame in seconds")
	cmd.Flags().StringVar(&scale, "scale", "", "Resize target WxH; -2 derives a side proportionally")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the argument vector without executing")
	return cmd
}

func newFramesCommand(ctx *commandContext) *cobra.Command {
	var fps float64
	var width int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "frames <input> <pattern>",
		Short: "Extract a continuous frame sequence at a target rate",
		Long: `Extract frames continuously at a target frame rate. The output pattern
uses FFmpeg image sequence syntax, e.g. frames/out_%04d.png.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			spec := ffmpeg.FrameSequenceSpec{
				Input:    args[0],
				FPS:      fps,
				Width:    optionalInt(cmd, "width", width),
				Output:   args[1],
				LogLevel: cfg.Transcode.LogLevel,
			}
			compiled, err := ffmpeg.CompileFrameSequence(spec)
			if err != nil {
				return err
			}

			return runOperation(cmd, ctx, operation{
				Kind:   history.KindFrames,
				Input:  args[0],
				Output: args[1],
				Args:   compiled,
			}, dryRun)
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 1, "Frames extracted per second of input")
	cmd.Flags().IntVar(&width, "width", 0, "Downscale to this width, height derived proportionally")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the argument vector without executing")
	return cmd
}
