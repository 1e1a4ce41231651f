package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sprocket/internal/ffmpeg"
	"sprocket/internal/history"
)

// transcodeFlags collects the raw flag values before they are shaped into a
// TranscodeSpec. Optional numeric flags are resolved against Changed() so
// unset and zero stay distinguishable.
type transcodeFlags struct {
	start    float64
	duration float64
	end      float64
	copyTS   bool

	video    string
	preset   string
	crf      int
	vq       int
	loop     int
	vp9Mode  string
	bitrate  string
	minRate  string
	maxRate  string
	deadline string
	cpuUsed  int
	rowMT    bool
	fps      float64
	scale    string
	vfilter  string

	audio      string
	aq         int
	pcmSigned  string
	pcmBits    int
	pcmEndian  string
	sampleRate int
	mono       bool
	afilter    string

	outStart      float64
	outDuration   float64
	movFlags      []string
	maps          []string
	stripMetadata bool
	threads       int

	dryRun bool
}

func newTranscodeCommand(ctx *commandContext) *cobra.Command {
	var flags transcodeFlags

	cmd := &cobra.Command{
		Use:   "transcode <input> <output>",
		Short: "Transcode a media file with exact, reproducible FFmpeg arguments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			spec, err := buildTranscodeSpec(cmd, &flags, args[0], args[1])
			if err != nil {
				return err
			}
			spec.LogLevel = cfg.Transcode.LogLevel
			if !cmd.Flags().Changed("threads") && cfg.Transcode.Threads > 0 {
				spec.Threads = cfg.Transcode.Threads
			}
			if !cmd.Flags().Changed("movflags") && len(cfg.Transcode.MovFlags) > 0 && isMovContainer(args[1]) {
				spec.Output.MovFlags = append([]string(nil), cfg.Transcode.MovFlags...)
			}

			compiled, err := ffmpeg.Compile(spec)
			if err != nil {
				return err
			}

			return runOperation(cmd, ctx, operation{
				Kind:       history.KindTranscode,
				Input:      args[0],
				Output:     args[1],
				VideoCodec: ffmpeg.VideoCodecName(spec.Video),
				AudioCodec: ffmpeg.AudioCodecName(spec.Audio),
				Args:       compiled,
			}, flags.dryRun)
		},
	}

	fl := cmd.Flags()
	fl.SortFlags = false

	fl.Float64Var(&flags.start, "ss", 0, "Input start offset in seconds")
	fl.Float64Var(&flags.duration, "duration", 0, "Input duration in seconds (mutually exclusive with --to)")
	fl.Float64Var(&flags.end, "to", 0, "Input end offset in seconds (mutually exclusive with --duration)")
	fl.BoolVar(&flags.copyTS, "copyts", false, "Preserve source timestamps")

	fl.StringVar(&flags.video, "video", "copy", "Video handling: copy, none, libx264, libtheora, gif, vp9")
	fl.StringVar(&flags.preset, "preset", "medium", "x264 speed/size preset")
	fl.IntVar(&flags.crf, "crf", 23, "Constant rate factor (libx264, vp9 quality modes)")
	fl.IntVar(&flags.vq, "vq", 7, "Theora video quality 0-10")
	fl.IntVar(&flags.loop, "loop", 0, "GIF loop count (0 loops forever, -1 plays once)")
	fl.StringVar(&flags.vp9Mode, "vp9-mode", "cq", "VP9 rate control: abr, cq, constrained, bounded, cbr, lossless")
	fl.StringVar(&flags.bitrate, "bitrate", "", "Target bitrate, e.g. 2M (VP9 rate modes)")
	fl.StringVar(&flags.minRate, "minrate", "", "Bitrate floor (VP9 bounded mode)")
	fl.StringVar(&flags.maxRate, "maxrate", "", "Bitrate ceiling (VP9 bounded mode)")
	fl.StringVar(&flags.deadline, "deadline", "", "VP9 deadline: good, best, realtime")
	fl.IntVar(&flags.cpuUsed, "cpu-used", 0, "VP9 cpu-used speed setting")
	fl.BoolVar(&flags.rowMT, "row-mt", false, "Enable VP9 row-based multithreading")
	fl.Float64Var(&flags.fps, "fps", 0, "Output frame rate")
	fl.StringVar(&flags.scale, "scale", "", "Resize target WxH; -2 derives a side proportionally")
	fl.StringVar(&flags.vfilter, "vf", "", "Free-form video filter fragment")

	fl.StringVar(&flags.audio, "audio", "copy", "Audio handling: copy, none, aac, flac, mp3, opus, vorbis, pcm")
	fl.IntVar(&flags.aq, "aq", 4, "Audio quality (mp3 0-9, vorbis -1-10)")
	fl.StringVar(&flags.pcmSigned, "pcm-signed", "s", "PCM signedness: s or u")
	fl.IntVar(&flags.pcmBits, "pcm-bits", 16, "PCM bit depth")
	fl.StringVar(&flags.pcmEndian, "pcm-endian", "le", "PCM endianness: le, be, or empty")
	fl.IntVar(&flags.sampleRate, "ar", 0, "Audio sample rate override in Hz")
	fl.BoolVar(&flags.mono, "mono", false, "Downmix audio to mono")
	fl.StringVar(&flags.afilter, "af", "", "Free-form audio filter fragment")

	fl.Float64Var(&flags.outStart, "out-ss", 0, "Output start offset in seconds")
	fl.Float64Var(&flags.outDuration, "out-duration", 0, "Output duration in seconds")
	fl.StringSliceVar(&flags.movFlags, "movflags", nil, "Container movflags, joined with '+'")
	fl.StringSliceVar(&flags.maps, "map", nil, "Stream selector [-]input[:type[:index]][?], repeatable")
	fl.BoolVar(&flags.stripMetadata, "strip-metadata", false, "Strip all source metadata")
	fl.IntVar(&flags.threads, "threads", 0, "FFmpeg thread count (0 omits the flag)")

	fl.BoolVar(&flags.dryRun, "dry-run", false, "Print the argument vector without executing")

	return cmd
}

func buildTranscodeSpec(cmd *cobra.Command, flags *transcodeFlags, input, output string) (ffmpeg.TranscodeSpec, error) {
	video, err := buildVideoSetting(cmd, flags)
	if err != nil {
		return ffmpeg.TranscodeSpec{}, err
	}
	audio, err := buildAudioSetting(flags)
	if err != nil {
		return ffmpeg.TranscodeSpec{}, err
	}
	maps, err := parseStreamMaps(flags.maps)
	if err != nil {
		return ffmpeg.TranscodeSpec{}, err
	}

	return ffmpeg.TranscodeSpec{
		Input: ffmpeg.Input{
			Path:           input,
			Start:          optionalFloat(cmd, "ss", flags.start),
			Duration:       optionalFloat(cmd, "duration", flags.duration),
			End:            optionalFloat(cmd, "to", flags.end),
			CopyTimestamps: flags.copyTS,
		},
		Video: video,
		Audio: audio,
		Output: ffmpeg.Output{
			Path:     output,
			Start:    optionalFloat(cmd, "out-ss", flags.outStart),
			Duration: optionalFloat(cmd, "out-duration", flags.outDuration),
			MovFlags: flags.movFlags,
		},
		Maps:          maps,
		StripMetadata: flags.stripMetadata,
		Threads:       flags.threads,
	}, nil
}

func buildVideoSetting(cmd *cobra.Command, flags *transcodeFlags) (ffmpeg.VideoSetting, error) {
	filters, err := buildVideoFilters(flags)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(flags.video)) {
	case "copy", "":
		return ffmpeg.VideoPassthrough(true), nil
	case "none":
		return ffmpeg.VideoPassthrough(false), nil
	case "libx264", "x264", "h264":
		return ffmpeg.Libx264{Preset: flags.preset, CRF: flags.crf, VideoFilters: filters}, nil
	case "libtheora", "theora":
		return ffmpeg.Libtheora{Quality: flags.vq, VideoFilters: filters}, nil
	case "gif":
		return ffmpeg.GIF{Loop: optionalInt(cmd, "loop", flags.loop), VideoFilters: filters}, nil
	case "vp9", "libvpx-vp9":
		mode, err := buildRateControl(flags)
		if err != nil {
			return nil, err
		}
		return ffmpeg.VP9{
			RateControl:  mode,
			Deadline:     flags.deadline,
			CPUUsed:      optionalInt(cmd, "cpu-used", flags.cpuUsed),
			RowMT:        flags.rowMT,
			VideoFilters: filters,
		}, nil
	default:
		return nil, fmt.Errorf("unknown --video value %q", flags.video)
	}
}

func buildVideoFilters(flags *transcodeFlags) (ffmpeg.VideoFilters, error) {
	scale, err := parseScale(flags.scale)
	if err != nil {
		return ffmpeg.VideoFilters{}, err
	}
	return ffmpeg.VideoFilters{
		FrameRate: flags.fps,
		Scale:     scale,
		Filter:    flags.vfilter,
	}, nil
}

func buildRateControl(flags *transcodeFlags) (ffmpeg.RateControl, error) {
	mode := strings.ToLower(strings.TrimSpace(flags.vp9Mode))
	switch mode {
	case "abr":
		if flags.bitrate == "" {
			return nil, fmt.Errorf("--vp9-mode abr requires --bitrate")
		}
		return ffmpeg.AverageBitrate{Bitrate: flags.bitrate}, nil
	case "cq", "":
		return ffmpeg.ConstantQuality{CRF: flags.crf}, nil
	case "constrained":
		if flags.bitrate == "" {
			return nil, fmt.Errorf("--vp9-mode constrained requires --bitrate")
		}
		return ffmpeg.ConstrainedQuality{CRF: flags.crf, Bitrate: flags.bitrate}, nil
	case "bounded":
		if flags.minRate == "" || flags.bitrate == "" || flags.maxRate == "" {
			return nil, fmt.Errorf("--vp9-mode bounded requires --minrate, --bitrate, and --maxrate")
		}
		return ffmpeg.ConstrainedBitrate{MinRate: flags.minRate, Bitrate: flags.bitrate, MaxRate: flags.maxRate}, nil
	case "cbr":
		if flags.bitrate == "" {
			return nil, fmt.Errorf("--vp9-mode cbr requires --bitrate")
		}
		return ffmpeg.ConstantBitrate{Bitrate: flags.bitrate}, nil
	case "lossless":
		return ffmpeg.Lossless{}, nil
	default:
		return nil, fmt.Errorf("unknown --vp9-mode value %q", flags.vp9Mode)
	}
}

func buildAudioSetting(flags *transcodeFlags) (ffmpeg.AudioSetting, error) {
	opts := ffmpeg.AudioOptions{
		SampleRate:  flags.sampleRate,
		DownmixMono: flags.mono,
		Filter:      flags.afilter,
	}

	switch strings.ToLower(strings.TrimSpace(flags.audio)) {
	case "copy", "":
		return ffmpeg.AudioPassthrough(true), nil
	case "none":
		return ffmpeg.AudioPassthrough(false), nil
	case "aac":
		return ffmpeg.AAC{AudioOptions: opts}, nil
	case "flac":
		return ffmpeg.FLAC{AudioOptions: opts}, nil
	case "mp3", "libmp3lame":
		return ffmpeg.LibMP3Lame{Quality: flags.aq, AudioOptions: opts}, nil
	case "opus", "libopus":
		return ffmpeg.LibOpus{AudioOptions: opts}, nil
	case "vorbis", "libvorbis":
		return ffmpeg.LibVorbis{Quality: flags.aq, AudioOptions: opts}, nil
	case "pcm":
		return ffmpeg.PCM{
			Signedness:   ffmpeg.Signedness(flags.pcmSigned),
			BitDepth:     flags.pcmBits,
			Endianness:   ffmpeg.Endianness(flags.pcmEndian),
			AudioOptions: opts,
		}, nil
	default:
		return nil, fmt.Errorf("unknown --audio value %q", flags.audio)
	}
}

func isMovContainer(output string) bool {
	lower := strings.ToLower(output)
	return strings.HasSuffix(lower, ".mp4") || strings.HasSuffix(lower, ".mov") || strings.HasSuffix(lower, ".m4v")
}
