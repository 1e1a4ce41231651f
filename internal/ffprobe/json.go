package ffprobe

import "encoding/json"

// Wire shapes for ffprobe's -of json output. Container-level numerics arrive
// as strings and are normalized during conversion; stream dimensions arrive
// as numbers.
type jsonDocument struct {
	Streams []jsonStream `json:"streams"`
	Format  jsonFormat   `json:"format"`
}

type jsonStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	Channels   int    `json:"channels"`
	SampleRate string `json:"sample_rate"`
	BitRate    string `json:"bit_rate"`
}

type jsonFormat struct {
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	Tags       map[string]string `json:"tags"`
}

// parseJSON decodes the structured wire format. Absent streams or format
// keys decode to an empty Result; only malformed JSON fails.
func parseJSON(raw string) (Result, error) {
	var doc jsonDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Result{}, parseFailure("invalid json document", raw, err)
	}

	result := Result{
		ContainerFormat: doc.Format.FormatName,
		Duration:        parseOptionalFloat(doc.Format.Duration),
	}
	if size := parseOptionalInt64(doc.Format.Size); size != nil {
		result.SizeBytes = *size
	}
	if len(doc.Format.Tags) > 0 {
		result.Metadata = make(map[string]string, len(doc.Format.Tags))
		for key, value := range doc.Format.Tags {
			result.Metadata[key] = value
		}
	}

	for _, stream := range doc.Streams {
		switch stream.CodecType {
		case "video":
			if result.Video != nil {
				continue
			}
			result.Video = &VideoStream{
				Codec:  stream.CodecName,
				Width:  stream.Width,
				Height: stream.Height,
				FPS:    parseFrameRate(stream.RFrameRate),
			}
		case "audio":
			if result.Audio != nil {
				continue
			}
			result.Audio = &AudioStream{
				Codec:      stream.CodecName,
				Channels:   stream.Channels,
				SampleRate: parseIntDefault(stream.SampleRate),
				BitRate:    parseOptionalInt64(stream.BitRate),
			}
		}
	}
	return result, nil
}
