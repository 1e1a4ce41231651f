package ffmpeg

import (
	"fmt"
	"strings"

	"sprocket/internal/services"
)

// DefaultLogLevel is passed to -loglevel when a spec does not override it.
// FFmpeg's own default floods stderr with per-frame stats; error keeps the
// stderr channel meaningful.
const DefaultLogLevel = "error"

// Compile lowers a TranscodeSpec into the exact ordered argument vector for
// one ffmpeg invocation. The result is deterministic: equal specs produce
// equal slices. The input spec is never mutated.
//
// Emission order: fixed global prefix, thread count, input trims, input path,
// metadata policy, stream maps, video selection and tuning, audio selection
// and tuning, output trims, container flags, output path.
func Compile(spec TranscodeSpec) ([]string, error) {
	args := &argList{}
	writeGlobalPrefix(args, spec.LogLevel, spec.Threads)

	if err := writeInput(args, spec.Input); err != nil {
		return nil, err
	}

	if spec.StripMetadata {
		args.add("-map_metadata", "-1")
	}
	for _, m := range spec.Maps {
		args.add("-map", mapToken(m))
	}

	if err := writeVideo(args, spec.Video); err != nil {
		return nil, err
	}
	if err := writeAudio(args, spec.Audio); err != nil {
		return nil, err
	}

	if err := writeOutput(args, spec.Output); err != nil {
		return nil, err
	}
	return args.tokens, nil
}

func writeGlobalPrefix(args *argList, logLevel string, threads int) {
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	args.add("-hide_banner", "-nostdin", "-y", "-loglevel", logLevel)
	if threads > 0 {
		args.addInt("-threads", threads)
	}
}

func writeInput(args *argList, in Input) error {
	if in.Path == "" {
		return invalidSpec("input", "input path required")
	}
	if in.Duration != nil && in.End != nil {
		return invalidSpec("input", "duration and end offset are mutually exclusive")
	}
	args.addSeconds("-ss", in.Start)
	args.addSeconds("-t", in.Duration)
	args.addSeconds("-to", in.End)
	if in.CopyTimestamps {
		args.add("-copyts")
	}
	args.add("-i", in.Path)
	return nil
}

func writeVideo(args *argList, setting VideoSetting) error {
	switch v := setting.(type) {
	case VideoPassthrough:
		if v {
			args.add("-c:v", "copy")
		} else {
			args.add("-vn")
		}
		return nil
	case Libx264:
		args.add("-c:v", "libx264")
		args.addString("-preset", v.Preset)
		args.addInt("-crf", v.CRF)
		writeVideoFilters(args, v.VideoFilters)
		return nil
	case Libtheora:
		args.add("-c:v", "libtheora")
		args.addInt("-q:v", v.Quality)
		writeVideoFilters(args, v.VideoFilters)
		return nil
	case GIF:
		args.add("-c:v", "gif")
		if v.Loop != nil {
			args.addInt("-loop", *v.Loop)
		}
		writeVideoFilters(args, v.VideoFilters)
		return nil
	case VP9:
		args.add("-c:v", "libvpx-vp9")
		if err := writeRateControl(args, v.RateControl); err != nil {
			return err
		}
		args.addString("-deadline", v.Deadline)
		if v.CPUUsed != nil {
			args.addInt("-cpu-used", *v.CPUUsed)
		}
		if v.RowMT {
			args.add("-row-mt", "1")
		}
		writeVideoFilters(args, v.VideoFilters)
		return nil
	case nil:
		return invalidSpec("video", "video setting required")
	default:
		return unsupportedVariant("video", setting)
	}
}

func writeRateControl(args *argList, mode RateControl) error {
	switch m := mode.(type) {
	case AverageBitrate:
		args.add("-b:v", m.Bitrate)
		return nil
	case ConstantQuality:
		args.addInt("-crf", m.CRF)
		args.add("-b:v", "0")
		return nil
	case ConstrainedQuality:
		args.addInt("-crf", m.CRF)
		args.add("-b:v", m.Bitrate)
		return nil
	case ConstrainedBitrate:
		args.add("-minrate", m.MinRate)
		args.add("-b:v", m.Bitrate)
		args.add("-maxrate", m.MaxRate)
		return nil
	case ConstantBitrate:
		args.add("-minrate", m.Bitrate)
		args.add("-maxrate", m.Bitrate)
		args.add("-b:v", m.Bitrate)
		return nil
	case Lossless:
		args.add("-lossless", "1")
		return nil
	case nil:
		return invalidSpec("video", "vp9 rate control mode required")
	default:
		return unsupportedVariant("rate control", mode)
	}
}

func writeVideoFilters(args *argList, filters VideoFilters) {
	if expr := filterExpression(filters); expr != "" {
		args.add("-vf", expr)
	}
}

func writeAudio(args *argList, setting AudioSetting) error {
	switch a := setting.(type) {
	case AudioPassthrough:
		if a {
			args.add("-c:a", "copy")
		} else {
			args.add("-an")
		}
		return nil
	case AAC:
		args.add("-c:a", "aac")
		writeAudioOptions(args, a.AudioOptions)
		return nil
	case FLAC:
		args.add("-c:a", "flac")
		writeAudioOptions(args, a.AudioOptions)
		return nil
	case LibMP3Lame:
		if a.Quality < 0 || a.Quality > 9 {
			return invalidSpec("audio", fmt.Sprintf("mp3 quality %d outside 0-9", a.Quality))
		}
		args.add("-c:a", "libmp3lame")
		args.addInt("-q:a", a.Quality)
		writeAudioOptions(args, a.AudioOptions)
		return nil
	case LibOpus:
		args.add("-c:a", "libopus")
		writeAudioOptions(args, a.AudioOptions)
		return nil
	case LibVorbis:
		if a.Quality < -1 || a.Quality > 10 {
			return invalidSpec("audio", fmt.Sprintf("vorbis quality %d outside -1-10", a.Quality))
		}
		args.add("-c:a", "libvorbis")
		args.addInt("-q:a", a.Quality)
		writeAudioOptions(args, a.AudioOptions)
		return nil
	case PCM:
		if a.Signedness == "" || a.BitDepth <= 0 {
			return invalidSpec("audio", "pcm requires signedness and bit depth")
		}
		args.add("-c:a", a.CodecName())
		writeAudioOptions(args, a.AudioOptions)
		return nil
	case nil:
		return invalidSpec("audio", "audio setting required")
	default:
		return unsupportedVariant("audio", setting)
	}
}

func writeAudioOptions(args *argList, opts AudioOptions) {
	if opts.SampleRate > 0 {
		args.addInt("-ar", opts.SampleRate)
	}
	if opts.DownmixMono {
		args.add("-ac", "1")
	}
	args.addString("-af", strings.TrimSpace(opts.Filter))
}

func writeOutput(args *argList, out Output) error {
	if out.Path == "" {
		return invalidSpec("output", "output path required")
	}
	args.addSeconds("-ss", out.Start)
	args.addSeconds("-t", out.Duration)
	if len(out.MovFlags) > 0 {
		args.add("-movflags", strings.Join(out.MovFlags, "+"))
	}
	args.add(out.Path)
	return nil
}

// VideoCodecName reports the encoder token the spec selects, "copy" for
// passthrough, or "" for a dropped stream.
func VideoCodecName(setting VideoSetting) string {
	switch v := setting.(type) {
	case VideoPassthrough:
		if v {
			return "copy"
		}
		return ""
	case Libx264:
		return "libx264"
	case Libtheora:
		return "libtheora"
	case GIF:
		return "gif"
	case VP9:
		return "libvpx-vp9"
	default:
		return ""
	}
}

// AudioCodecName reports the encoder token the spec selects, "copy" for
// passthrough, or "" for a dropped stream.
func AudioCodecName(setting AudioSetting) string {
	switch a := setting.(type) {
	case AudioPassthrough:
		if a {
			return "copy"
		}
		return ""
	case AAC:
		return "aac"
	case FLAC:
		return "flac"
	case LibMP3Lame:
		return "libmp3lame"
	case LibOpus:
		return "libopus"
	case LibVorbis:
		return "libvorbis"
	case PCM:
		return a.CodecName()
	default:
		return ""
	}
}

func invalidSpec(operation, message string) error {
	return services.Wrap(services.ErrValidation, "ffmpeg", operation, message, nil)
}

func unsupportedVariant(family string, value any) error {
	return services.Wrap(services.ErrUnsupportedVariant, "ffmpeg", family, fmt.Sprintf("no dispatch for %T", value), nil)
}
