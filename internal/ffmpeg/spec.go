package ffmpeg

// Input describes one source file and the input-side options that apply to
// it. Start, Duration, and End are seconds; Duration and End are mutually
// exclusive.
type Input struct {
	Path           string
	Start          *float64
	Duration       *float64
	End            *float64
	CopyTimestamps bool
}

// Output describes the destination and its output-side options. MovFlags are
// only meaningful for fragmented-MP4-like containers; multiple flags join
// with "+" behind a single -movflags token.
type Output struct {
	Path     string
	Start    *float64
	Duration *float64
	MovFlags []string
}

// StreamType narrows a stream map to one elementary stream kind.
type StreamType string

const (
	StreamVideo    StreamType = "v"
	StreamAudio    StreamType = "a"
	StreamSubtitle StreamType = "s"
	StreamData     StreamType = "d"
)

// StreamMap selects or excludes streams from a source input. It renders as a
// single composite -map token: exclusion marker, input index, optional
// stream-type suffix, optional stream-index suffix, optional "?" marker for
// streams that may be missing.
type StreamMap struct {
	Exclude     bool
	InputIndex  int
	StreamType  StreamType
	StreamIndex *int
	Optional    bool
}

// TranscodeSpec is the root configuration for one transcode invocation. It is
// an immutable value object; Compile never mutates it and returns a fresh
// argument slice per call.
type TranscodeSpec struct {
	Input         Input
	Video         VideoSetting
	Audio         AudioSetting
	Output        Output
	Maps          []StreamMap
	StripMetadata bool
	Threads       int
	LogLevel      string
}

// FrameSpec extracts a single frame at a timestamp. Scale, when set,
// resizes the extracted frame.
type FrameSpec struct {
	Input    string
	At       float64
	Scale    *Scale
	Output   string
	LogLevel string
}

// FrameSequenceSpec extracts a continuous frame sequence at a target rate.
// Width, when set, downscales proportionally (height derived).
type FrameSequenceSpec struct {
	Input    string
	FPS      float64
	Width    *int
	Output   string
	LogLevel string
}

// ConcatSpec losslessly joins inputs in order via a concat manifest.
type ConcatSpec struct {
	Inputs   []string
	Output   string
	LogLevel string
}
