package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sprocket/internal/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect container and stream properties of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ffprobeClient()
			if err != nil {
				return err
			}

			runCtx, cancel := signalContext(cmd)
			defer cancel()

			result, err := client.Inspect(runCtx, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, probeView(result))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProbeTable(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	return cmd
}

// probeResultView is the JSON shape of a probe result. Pointers stay
// pointers so absent fields render as null rather than zero.
type probeResultView struct {
	Container string            `json:"container,omitempty"`
	Duration  *float64          `json:"duration,omitempty"`
	SizeBytes int64             `json:"size_bytes,omitempty"`
	Video     *videoStreamView  `json:"video,omitempty"`
	Audio     *audioStreamView  `json:"audio,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type videoStreamView struct {
	Codec  string  `json:"codec"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
}

type audioStreamView struct {
	Codec      string `json:"codec"`
	Channels   int    `json:"channels"`
	SampleRate int    `json:"sample_rate"`
	BitRate    *int64 `json:"bit_rate,omitempty"`
}

func probeView(result ffprobe.Result) probeResultView {
	view := probeResultView{
		Container: result.ContainerFormat,
		Duration:  result.Duration,
		SizeBytes: result.SizeBytes,
		Metadata:  result.Metadata,
	}
	if result.Video != nil {
		view.Video = &videoStreamView{
			Codec:  result.Video.Codec,
			Width:  result.Video.Width,
			Height: result.Video.Height,
			FPS:    result.Video.FPS,
		}
	}
	if result.Audio != nil {
		view.Audio = &audioStreamView{
			Codec:      result.Audio.Codec,
			Channels:   result.Audio.Channels,
			SampleRate: result.Audio.SampleRate,
			BitRate:    result.Audio.BitRate,
		}
	}
	return view
}

func renderProbeTable(result ffprobe.Result) string {
	rows := [][]string{}

	if result.ContainerFormat != "" {
		rows = append(rows, []string{"Container", result.ContainerFormat})
	}
	if result.Duration != nil {
		rows = append(rows, []string{"Duration", fmt.Sprintf("%.3f s", *result.Duration)})
	}
	if result.SizeBytes > 0 {
		rows = append(rows, []string{"Size", humanize.Bytes(uint64(result.SizeBytes))})
	}

	if v := result.Video; v != nil {
		rows = append(rows, []string{"Video codec", v.Codec})
		rows = append(rows, []string{"Resolution", fmt.Sprintf("%dx%d", v.Width, v.Height)})
		if v.FPS > 0 {
			rows = append(rows, []string{"Frame rate", fmt.Sprintf("%.3f fps", v.FPS)})
		}
	} else {
		rows = append(rows, []string{"Video", "none"})
	}

	if a := result.Audio; a != nil {
		rows = append(rows, []string{"Audio codec", a.Codec})
		rows = append(rows, []string{"Channels", fmt.Sprintf("%d", a.Channels)})
		if a.SampleRate > 0 {
			rows = append(rows, []string{"Sample rate", fmt.Sprintf("%d Hz", a.SampleRate)})
		}
		if a.BitRate != nil {
			rows = append(rows, []string{"Bit rate", fmt.Sprintf("%d b/s", *a.BitRate)})
		}
	} else {
		rows = append(rows, []string{"Audio", "none"})
	}

	keys := make([]string, 0, len(result.Metadata))
	for key := range result.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, []string{"Tag " + key, result.Metadata[key]})
	}

	return renderTable([]string{"Property", "Value"}, rows)
}
