package ffprobe

import (
	"errors"
	"math"
	"testing"

	"sprocket/internal/services"
)

func TestParseSectionsVideoStream(t *testing.T) {
	raw := "[STREAM]codec_type=video\nwidth=1920\nheight=1080\nr_frame_rate=30000/1001\n[/STREAM]"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video == nil {
		t.Fatal("expected video stream")
	}
	if result.Video.Width != 1920 || result.Video.Height != 1080 {
		t.Fatalf("unexpected dimensions: %dx%d", result.Video.Width, result.Video.Height)
	}
	if math.Abs(result.Video.FPS-29.97) > 0.001 {
		t.Fatalf("expected fps near 29.97, got %v", result.Video.FPS)
	}
	if result.Audio != nil {
		t.Fatalf("expected no audio stream, got %+v", result.Audio)
	}
}

func TestParseSectionsFullProbe(t *testing.T) {
	raw := `
[STREAM]
codec_type=video
codec_name=h264
width=1280
height=720
r_frame_rate=25/1
[/STREAM]
[STREAM]
codec_type=audio
codec_name=aac
channels=2
sample_rate=48000
bit_rate=128000
[/STREAM]
[FORMAT]
format_name=mov,mp4,m4a,3gp,3g2,mj2
duration=12.500000
size=1048576
TAG:title=Night Train
TAG:encoder=Lavf61.1.100
[/FORMAT]
`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video == nil || result.Video.Codec != "h264" || result.Video.FPS != 25 {
		t.Fatalf("unexpected video stream: %+v", result.Video)
	}
	if result.Audio == nil || result.Audio.Codec != "aac" {
		t.Fatalf("unexpected audio stream: %+v", result.Audio)
	}
	if result.Audio.Channels != 2 || result.Audio.SampleRate != 48000 {
		t.Fatalf("unexpected audio shape: %+v", result.Audio)
	}
	if result.Audio.BitRate == nil || *result.Audio.BitRate != 128000 {
		t.Fatalf("expected bit rate 128000, got %+v", result.Audio.BitRate)
	}
	if result.Duration == nil || *result.Duration != 12.5 {
		t.Fatalf("expected duration 12.5, got %+v", result.Duration)
	}
	if result.ContainerFormat != "mov,mp4,m4a,3gp,3g2,mj2" {
		t.Fatalf("unexpected container format: %q", result.ContainerFormat)
	}
	if result.SizeBytes != 1048576 {
		t.Fatalf("expected size 1048576, got %d", result.SizeBytes)
	}
	if len(result.Metadata) != 2 || result.Metadata["title"] != "Night Train" {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
}

func TestParseSectionsAbsentNumerics(t *testing.T) {
	raw := `[STREAM]
codec_type=audio
codec_name=flac
channels=2
sample_rate=N/A
bit_rate=N/A
[/STREAM]
[FORMAT]
duration=N/A
[/FORMAT]
`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Audio == nil {
		t.Fatal("expected audio stream")
	}
	if result.Audio.BitRate != nil {
		t.Fatalf("expected absent bit rate, got %v", *result.Audio.BitRate)
	}
	if result.Audio.SampleRate != 0 {
		t.Fatalf("expected zero sample rate, got %d", result.Audio.SampleRate)
	}
	if result.Duration != nil {
		t.Fatalf("expected absent duration, got %v", *result.Duration)
	}
}

func TestParseSectionsWithoutMarkers(t *testing.T) {
	for _, raw := range []string{"", "   \n", "no sections here\njust noise"} {
		result, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", raw, err)
		}
		if result.HasStreams() {
			t.Fatalf("Parse(%q) found streams: %+v", raw, result)
		}
		if result.Duration != nil {
			t.Fatalf("Parse(%q) set duration: %v", raw, *result.Duration)
		}
	}
}

func TestParseSectionsSkipsNestedSideData(t *testing.T) {
	raw := `[STREAM]
codec_type=video
codec_name=h264
width=1920
height=1080
r_frame_rate=24000/1001
[SIDE_DATA]
side_data_type=Display Matrix
rotation=-90
[/SIDE_DATA]
[/STREAM]
`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video == nil || result.Video.Width != 1920 {
		t.Fatalf("unexpected video stream: %+v", result.Video)
	}
}

func TestParseSectionsUnbalancedMarkers(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unterminated", "[STREAM]\ncodec_type=video\n"},
		{"close without open", "codec_type=video\n[/STREAM]\n"},
		{"mismatched close", "[STREAM]\ncodec_type=video\n[/FORMAT]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, services.ErrParse) {
				t.Fatalf("expected parse marker, got %v", err)
			}
		})
	}
}

func TestParseErrorRetainsRawText(t *testing.T) {
	raw := "[STREAM]\ncodec_type=video\n"
	_, err := Parse(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if parseErr.Raw != raw {
		t.Fatalf("expected raw text retained, got %q", parseErr.Raw)
	}
}

func TestParseJSONAudioOnly(t *testing.T) {
	raw := `{"streams":[{"codec_type":"audio","codec_name":"aac","channels":2}],"format":{"duration":"12.5"}}`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video != nil {
		t.Fatalf("expected no video stream, got %+v", result.Video)
	}
	if result.Audio == nil || result.Audio.Codec != "aac" || result.Audio.Channels != 2 {
		t.Fatalf("unexpected audio stream: %+v", result.Audio)
	}
	if result.Duration == nil || *result.Duration != 12.5 {
		t.Fatalf("expected duration 12.5, got %+v", result.Duration)
	}
}

func TestParseJSONFullDocument(t *testing.T) {
	raw := `{
  "streams": [
    {"codec_type": "video", "codec_name": "vp9", "width": 3840, "height": 2160, "r_frame_rate": "60/1"},
    {"codec_type": "audio", "codec_name": "opus", "channels": 6, "sample_rate": "48000", "bit_rate": "256000"}
  ],
  "format": {
    "format_name": "matroska,webm",
    "duration": "3600.250000",
    "size": "734003200",
    "tags": {"title": "Night Train", "DATE": "2024"}
  }
}`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video == nil || result.Video.Codec != "vp9" || result.Video.FPS != 60 {
		t.Fatalf("unexpected video stream: %+v", result.Video)
	}
	if result.Audio == nil || result.Audio.Channels != 6 || result.Audio.SampleRate != 48000 {
		t.Fatalf("unexpected audio stream: %+v", result.Audio)
	}
	if result.Audio.BitRate == nil || *result.Audio.BitRate != 256000 {
		t.Fatalf("expected bit rate 256000, got %+v", result.Audio.BitRate)
	}
	if result.ContainerFormat != "matroska,webm" || result.SizeBytes != 734003200 {
		t.Fatalf("unexpected format detail: %q size %d", result.ContainerFormat, result.SizeBytes)
	}
	if result.Metadata["title"] != "Night Train" || result.Metadata["DATE"] != "2024" {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
}

func TestParseJSONEmptyDocument(t *testing.T) {
	result, err := Parse("{}")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.HasStreams() || result.Duration != nil {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestParseJSONInvalidDocument(t *testing.T) {
	raw := `{"streams": [`
	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected parse marker, got %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Raw != raw {
		t.Fatalf("expected raw text retained, got %v", err)
	}
}

func TestParseDetectsJSONPastLeadingWhitespace(t *testing.T) {
	result, err := Parse("  \n\t{\"streams\":[{\"codec_type\":\"video\",\"codec_name\":\"av1\"}]}")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video == nil || result.Video.Codec != "av1" {
		t.Fatalf("expected JSON decode, got %+v", result.Video)
	}
}

func TestParseKeepsFirstStreamOfEachKind(t *testing.T) {
	raw := `{"streams":[
  {"codec_type":"video","codec_name":"h264"},
  {"codec_type":"video","codec_name":"mjpeg"},
  {"codec_type":"audio","codec_name":"aac"},
  {"codec_type":"audio","codec_name":"ac3"}
]}`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Video == nil || result.Video.Codec != "h264" {
		t.Fatalf("expected first video stream, got %+v", result.Video)
	}
	if result.Audio == nil || result.Audio.Codec != "aac" {
		t.Fatalf("expected first audio stream, got %+v", result.Audio)
	}
}

func TestParseFrameRateForms(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"25/1", 25},
		{"25", 25},
		{"N/A", 0},
		{"", 0},
		{"x/y", 0},
		{"10/0", 0},
	}
	for _, tc := range cases {
		if got := parseFrameRate(tc.value); got != tc.want {
			t.Fatalf("parseFrameRate(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
	if got := parseFrameRate("30000/1001"); math.Abs(got-29.97) > 0.001 {
		t.Fatalf("parseFrameRate(30000/1001) = %v", got)
	}
}
