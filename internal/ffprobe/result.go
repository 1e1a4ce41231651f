package ffprobe

// Result is the normalized outcome of a media inspection. Stream fields are
// nil when the container carries no stream of that kind, and Duration is nil
// when the inspector could not determine one.
type Result struct {
	Video           *VideoStream
	Audio           *AudioStream
	Duration        *float64
	ContainerFormat string
	SizeBytes       int64
	Metadata        map[string]string
}

// VideoStream describes the first video stream found in the container.
type VideoStream struct {
	Codec  string
	Width  int
	Height int
	FPS    float64
}

// AudioStream describes the first audio stream found in the container.
// BitRate is nil when the inspector reports none.
type AudioStream struct {
	Codec      string
	Channels   int
	SampleRate int
	BitRate    *int64
}

// DurationSeconds returns the container duration in seconds, or 0 when
// unavailable.
func (r Result) DurationSeconds() float64 {
	if r.Duration == nil {
		return 0
	}
	return *r.Duration
}

// HasStreams reports whether the inspection found at least one recognized
// stream.
func (r Result) HasStreams() bool {
	return r.Video != nil || r.Audio != nil
}
