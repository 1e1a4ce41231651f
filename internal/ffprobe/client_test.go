package ffprobe_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"sprocket/internal/ffprobe"
	"sprocket/internal/services"
)

type stubRunner struct {
	output []byte
	err    error
	binary string
	args   [][]string
}

func (s *stubRunner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	s.binary = binary
	s.args = append(s.args, append([]string(nil), args...))
	return s.output, s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ffprobe.New("  "); err == nil {
		t.Fatal("expected error for blank binary")
	}
}

func TestInspectDecodesOutput(t *testing.T) {
	runner := &stubRunner{output: []byte(`{
  "streams": [{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "r_frame_rate": "25/1"}],
  "format": {"format_name": "matroska,webm", "duration": "42.0"}
}`)}
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := client.Inspect(context.Background(), "in.mkv")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.Video == nil || result.Video.Codec != "h264" {
		t.Fatalf("unexpected video stream: %+v", result.Video)
	}
	if result.DurationSeconds() != 42 {
		t.Fatalf("expected duration 42, got %v", result.DurationSeconds())
	}

	if runner.binary != "ffprobe" {
		t.Fatalf("unexpected binary: %q", runner.binary)
	}
	args := runner.args[0]
	if !slices.Contains(args, "-show_streams") || !slices.Contains(args, "-show_format") {
		t.Fatalf("expected stream and format flags, got %v", args)
	}
	if args[len(args)-1] != "in.mkv" {
		t.Fatalf("expected path last, got %v", args)
	}
}

func TestInspectToleratesNonZeroExitWithUsableOutput(t *testing.T) {
	runner := &stubRunner{
		output: []byte(`{"streams":[{"codec_type":"audio","codec_name":"mp3","channels":2}]}`),
		err:    errors.New("exit status 1"),
	}
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := client.Inspect(context.Background(), "damaged.mp3")
	if err != nil {
		t.Fatalf("expected parseable output to win over exit status, got %v", err)
	}
	if result.Audio == nil || result.Audio.Codec != "mp3" {
		t.Fatalf("unexpected audio stream: %+v", result.Audio)
	}
}

func TestInspectFailsWithoutOutput(t *testing.T) {
	runner := &stubRunner{err: errors.New("exit status 1")}
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Inspect(context.Background(), "missing.mkv"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestInspectSurfacesParseFailure(t *testing.T) {
	runner := &stubRunner{output: []byte(`{"streams": [`)}
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, inspectErr := client.Inspect(context.Background(), "odd.mkv")
	if !errors.Is(inspectErr, services.ErrParse) {
		t.Fatalf("expected parse marker, got %v", inspectErr)
	}
	var parseErr *ffprobe.ParseError
	if !errors.As(inspectErr, &parseErr) {
		t.Fatalf("expected ParseError, got %T", inspectErr)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(&stubRunner{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Inspect(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestKeyframesSortsOutput(t *testing.T) {
	runner := &stubRunner{output: []byte("0.000000\n2.502500\n1.251250\n")}
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	stamps, err := client.Keyframes(context.Background(), "in.mkv")
	if err != nil {
		t.Fatalf("Keyframes returned error: %v", err)
	}
	want := []float64{0, 1.25125, 2.5025}
	if !slices.Equal(stamps, want) {
		t.Fatalf("expected %v, got %v", want, stamps)
	}
	args := runner.args[0]
	if !slices.Contains(args, "nokey") || !slices.Contains(args, "frame=pts_time") {
		t.Fatalf("expected keyframe dump flags, got %v", args)
	}
}

func TestKeyframesFailsWithoutOutput(t *testing.T) {
	runner := &stubRunner{err: errors.New("exit status 1")}
	client, err := ffprobe.New("ffprobe", ffprobe.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Keyframes(context.Background(), "missing.mkv"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}
