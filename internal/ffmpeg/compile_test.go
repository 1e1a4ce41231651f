package ffmpeg

import (
	"errors"
	"slices"
	"testing"

	"sprocket/internal/services"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func baseSpec() TranscodeSpec {
	return TranscodeSpec{
		Input:  Input{Path: "in.mkv"},
		Video:  VideoPassthrough(true),
		Audio:  AudioPassthrough(true),
		Output: Output{Path: "out.mp4"},
	}
}

func TestCompileGlobalPrefix(t *testing.T) {
	args, err := Compile(baseSpec())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	prefix := []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}
	if !slices.Equal(args[:len(prefix)], prefix) {
		t.Fatalf("unexpected prefix: %v", args[:len(prefix)])
	}
	if args[len(args)-1] != "out.mp4" {
		t.Fatalf("expected output path last, got %q", args[len(args)-1])
	}
}

func TestCompileDeterminism(t *testing.T) {
	spec := baseSpec()
	spec.Input.Start = floatPtr(1.5)
	spec.Video = VP9{
		RateControl:  ConstrainedQuality{CRF: 31, Bitrate: "2M"},
		VideoFilters: VideoFilters{FrameRate: 24, Scale: &Scale{Width: 1280, Height: -2}},
	}
	spec.Audio = LibOpus{AudioOptions: AudioOptions{SampleRate: 48000}}

	first, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	second, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("expected identical vectors, got %v vs %v", first, second)
	}
}

func TestCompileThreadsFollowPrefix(t *testing.T) {
	spec := baseSpec()
	spec.Threads = 4
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	idx := slices.Index(args, "-threads")
	if idx == -1 || args[idx+1] != "4" {
		t.Fatalf("expected -threads 4, got %v", args)
	}
	if idx > slices.Index(args, "-i") {
		t.Fatalf("thread count must precede input options: %v", args)
	}
}

func TestCompileInputTrimsPrecedeInputPath(t *testing.T) {
	spec := baseSpec()
	spec.Input.Start = floatPtr(5)
	spec.Input.Duration = floatPtr(10.5)
	spec.Output.Start = floatPtr(1)
	spec.Output.Duration = floatPtr(2)

	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	inputIdx := slices.Index(args, "in.mkv")
	ssIdx := slices.Index(args, "-ss")
	tIdx := slices.Index(args, "-t")
	if ssIdx == -1 || ssIdx > inputIdx {
		t.Fatalf("input -ss must precede input path: %v", args)
	}
	if tIdx == -1 || tIdx > inputIdx {
		t.Fatalf("input -t must precede input path: %v", args)
	}
	if args[ssIdx+1] != "5.000" {
		t.Fatalf("expected three-decimal start, got %q", args[ssIdx+1])
	}
	if args[tIdx+1] != "10.500" {
		t.Fatalf("expected three-decimal duration, got %q", args[tIdx+1])
	}

	outIdx := len(args) - 1
	outSS := lastIndex(args, "-ss")
	outT := lastIndex(args, "-t")
	if outSS <= inputIdx || outSS >= outIdx {
		t.Fatalf("output -ss must sit between input and output path: %v", args)
	}
	if outT <= inputIdx || outT >= outIdx {
		t.Fatalf("output -t must sit between input and output path: %v", args)
	}
}

func lastIndex(tokens []string, want string) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] == want {
			return i
		}
	}
	return -1
}

func TestCompileEndOffsetUsesTo(t *testing.T) {
	spec := baseSpec()
	spec.Input.End = floatPtr(30)
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	idx := slices.Index(args, "-to")
	if idx == -1 || args[idx+1] != "30.000" {
		t.Fatalf("expected -to 30.000, got %v", args)
	}
}

func TestCompileRejectsDurationAndEnd(t *testing.T) {
	spec := baseSpec()
	spec.Input.Duration = floatPtr(10)
	spec.Input.End = floatPtr(20)
	if _, err := Compile(spec); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompileCopyTimestamps(t *testing.T) {
	spec := baseSpec()
	spec.Input.CopyTimestamps = true
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	copyIdx := slices.Index(args, "-copyts")
	if copyIdx == -1 || copyIdx > slices.Index(args, "in.mkv") {
		t.Fatalf("expected -copyts before input path, got %v", args)
	}
}

func TestCompileBooleanShorthands(t *testing.T) {
	cases := []struct {
		name   string
		video  VideoSetting
		audio  AudioSetting
		want   []string
		forbid []string
	}{
		{
			name:   "copy both",
			video:  VideoPassthrough(true),
			audio:  AudioPassthrough(true),
			want:   []string{"-c:v", "copy", "-c:a", "copy"},
			forbid: []string{"-vn", "-an", "-crf", "-q:a"},
		},
		{
			name:   "drop both",
			video:  VideoPassthrough(false),
			audio:  AudioPassthrough(false),
			want:   []string{"-vn", "-an"},
			forbid: []string{"-c:v", "-c:a"},
		},
	}
	for _, tc := range cases {
		spec := baseSpec()
		spec.Video = tc.video
		spec.Audio = tc.audio
		args, err := Compile(spec)
		if err != nil {
			t.Fatalf("%s: Compile returned error: %v", tc.name, err)
		}
		for _, token := range tc.want {
			if !slices.Contains(args, token) {
				t.Fatalf("%s: expected %q in %v", tc.name, token, args)
			}
		}
		for _, token := range tc.forbid {
			if slices.Contains(args, token) {
				t.Fatalf("%s: did not expect %q in %v", tc.name, token, args)
			}
		}
	}
}

func TestCompileRequiresSettings(t *testing.T) {
	spec := baseSpec()
	spec.Video = nil
	if _, err := Compile(spec); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for nil video, got %v", err)
	}

	spec = baseSpec()
	spec.Audio = nil
	if _, err := Compile(spec); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for nil audio, got %v", err)
	}
}

type bogusVideo struct{}

func (bogusVideo) isVideoSetting() {}

type bogusAudio struct{}

func (bogusAudio) isAudioSetting() {}

func TestCompileRejectsUnknownVariants(t *testing.T) {
	spec := baseSpec()
	spec.Video = bogusVideo{}
	if _, err := Compile(spec); !errors.Is(err, services.ErrUnsupportedVariant) {
		t.Fatalf("expected unsupported variant error, got %v", err)
	}

	spec = baseSpec()
	spec.Audio = bogusAudio{}
	if _, err := Compile(spec); !errors.Is(err, services.ErrUnsupportedVariant) {
		t.Fatalf("expected unsupported variant error, got %v", err)
	}
}

func TestCompileMetadataStrip(t *testing.T) {
	spec := baseSpec()
	spec.StripMetadata = true
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	idx := slices.Index(args, "-map_metadata")
	if idx == -1 || args[idx+1] != "-1" {
		t.Fatalf("expected -map_metadata -1, got %v", args)
	}
}

func TestCompileMapTokens(t *testing.T) {
	spec := baseSpec()
	spec.Maps = []StreamMap{
		{InputIndex: 0, StreamType: StreamVideo},
		{InputIndex: 0, StreamType: StreamAudio, StreamIndex: intPtr(1), Optional: true},
		{Exclude: true, InputIndex: 0, StreamType: StreamSubtitle},
		{InputIndex: 1},
	}
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	want := []string{"0:v", "0:a:1?", "-0:s", "1"}
	got := make([]string, 0, len(want))
	for i, token := range args {
		if token == "-map" {
			got = append(got, args[i+1])
		}
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected map tokens %v, got %v", want, got)
	}
}

func TestCompileMovflagsJoin(t *testing.T) {
	spec := baseSpec()
	spec.Output.MovFlags = []string{"frag_keyframe", "empty_moov"}
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	idx := slices.Index(args, "-movflags")
	if idx == -1 || args[idx+1] != "frag_keyframe+empty_moov" {
		t.Fatalf("expected joined movflags, got %v", args)
	}
	if idx > len(args)-3 {
		t.Fatalf("movflags must precede output path: %v", args)
	}
}

func TestCompileSingleMovflag(t *testing.T) {
	spec := baseSpec()
	spec.Output.MovFlags = []string{"faststart"}
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	idx := slices.Index(args, "-movflags")
	if idx == -1 || args[idx+1] != "faststart" {
		t.Fatalf("expected single movflag, got %v", args)
	}
}

func TestCompileRequiresPaths(t *testing.T) {
	spec := baseSpec()
	spec.Input.Path = ""
	if _, err := Compile(spec); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing input, got %v", err)
	}

	spec = baseSpec()
	spec.Output.Path = ""
	if _, err := Compile(spec); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing output, got %v", err)
	}
}

func TestCompileLogLevelOverride(t *testing.T) {
	spec := baseSpec()
	spec.LogLevel = "warning"
	args, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	idx := slices.Index(args, "-loglevel")
	if idx == -1 || args[idx+1] != "warning" {
		t.Fatalf("expected -loglevel warning, got %v", args)
	}
}

func TestCodecNameHelpers(t *testing.T) {
	if got := VideoCodecName(VideoPassthrough(true)); got != "copy" {
		t.Fatalf("expected copy, got %q", got)
	}
	if got := VideoCodecName(VideoPassthrough(false)); got != "" {
		t.Fatalf("expected empty name for dropped stream, got %q", got)
	}
	if got := VideoCodecName(VP9{}); got != "libvpx-vp9" {
		t.Fatalf("expected libvpx-vp9, got %q", got)
	}
	if got := AudioCodecName(PCM{Signedness: Signed, BitDepth: 24, Endianness: BigEndian}); got != "pcm_s24be" {
		t.Fatalf("expected pcm_s24be, got %q", got)
	}
}
