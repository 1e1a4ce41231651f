package ffprobe

import "strings"

// Section names the bracketed format routes on. Anything else parses but is
// discarded.
const (
	sectionStream = "STREAM"
	sectionFormat = "FORMAT"
)

// metadataTagPrefix marks container tag keys inside a FORMAT section.
const metadataTagPrefix = "TAG:"

// parseSections decodes the bracketed key=value wire format. Sections open
// with a [NAME] marker and close with [/NAME]; the first key may share a line
// with the opening marker. Text outside any section is ignored, which also
// makes markerless output decode to an empty Result. Nested sections (side
// data blocks inside a stream) are skipped wholesale. Unbalanced markers are
// the only structural failure.
func parseSections(raw string) (Result, error) {
	scanner := sectionScanner{raw: raw}
	for _, line := range strings.Split(raw, "\n") {
		if err := scanner.feed(line); err != nil {
			return Result{}, err
		}
	}
	if scanner.name != "" {
		return Result{}, parseFailure("unterminated section ["+scanner.name+"]", raw, nil)
	}
	return scanner.result, nil
}

type sectionScanner struct {
	raw     string
	result  Result
	name    string
	fields  map[string]string
	skipped int
}

func (s *sectionScanner) feed(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "[") {
		end := strings.Index(line, "]")
		if end < 0 {
			return nil
		}
		if err := s.marker(line[1:end], line); err != nil {
			return err
		}
		return s.feed(line[end+1:])
	}
	s.keyValue(line)
	return nil
}

func (s *sectionScanner) marker(name, line string) error {
	if closing, ok := strings.CutPrefix(name, "/"); ok {
		if s.skipped > 0 {
			s.skipped--
			return nil
		}
		if s.name == "" {
			return parseFailure("close marker without open section: "+line, s.raw, nil)
		}
		if !strings.EqualFold(closing, s.name) {
			return parseFailure("mismatched close marker: "+line, s.raw, nil)
		}
		s.apply()
		s.name = ""
		return nil
	}
	if name == "" {
		return parseFailure("empty section marker", s.raw, nil)
	}
	if s.name != "" {
		s.skipped++
		return nil
	}
	s.name = name
	s.fields = make(map[string]string)
	return nil
}

// keyValue records one body line, splitting on the first '=' so values may
// themselves contain '='. Lines outside a section or inside a skipped nested
// section are noise.
func (s *sectionScanner) keyValue(line string) {
	if s.name == "" || s.skipped > 0 {
		return
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	s.fields[strings.TrimSpace(key)] = value
}

func (s *sectionScanner) apply() {
	switch strings.ToUpper(s.name) {
	case sectionStream:
		s.applyStream()
	case sectionFormat:
		s.applyFormat()
	}
}

// applyStream routes on codec_type. Only the first stream of each kind feeds
// the result; subtitle and data streams are not modeled.
func (s *sectionScanner) applyStream() {
	switch s.fields["codec_type"] {
	case "video":
		if s.result.Video != nil {
			return
		}
		s.result.Video = &VideoStream{
			Codec:  s.fields["codec_name"],
			Width:  parseIntDefault(s.fields["width"]),
			Height: parseIntDefault(s.fields["height"]),
			FPS:    parseFrameRate(s.fields["r_frame_rate"]),
		}
	case "audio":
		if s.result.Audio != nil {
			return
		}
		s.result.Audio = &AudioStream{
			Codec:      s.fields["codec_name"],
			Channels:   parseIntDefault(s.fields["channels"]),
			SampleRate: parseIntDefault(s.fields["sample_rate"]),
			BitRate:    parseOptionalInt64(s.fields["bit_rate"]),
		}
	}
}

func (s *sectionScanner) applyFormat() {
	for key, value := range s.fields {
		switch {
		case key == "format_name":
			s.result.ContainerFormat = value
		case key == "duration":
			s.result.Duration = parseOptionalFloat(value)
		case key == "size":
			if size := parseOptionalInt64(value); size != nil {
				s.result.SizeBytes = *size
			}
		case strings.HasPrefix(key, metadataTagPrefix):
			if s.result.Metadata == nil {
				s.result.Metadata = make(map[string]string)
			}
			s.result.Metadata[strings.TrimPrefix(key, metadataTagPrefix)] = value
		}
	}
}
