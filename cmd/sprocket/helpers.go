package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sprocket/internal/ffmpeg"
)

// optionalFloat returns a pointer to the flag value only when the flag was
// set on the command line, preserving the unset/zero distinction the
// TranscodeSpec optionals rely on.
func optionalFloat(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := value
	return &v
}

func optionalInt(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := value
	return &v
}

// parseScale parses a WxH target such as "1280x720" or "1280x-2". Either
// dimension may be -2 to derive it proportionally.
func parseScale(value string) (*ffmpeg.Scale, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	wText, hText, ok := strings.Cut(strings.ToLower(value), "x")
	if !ok {
		return nil, fmt.Errorf("scale %q: expected WxH", value)
	}
	width, err := strconv.Atoi(strings.TrimSpace(wText))
	if err != nil {
		return nil, fmt.Errorf("scale %q: bad width: %w", value, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(hText))
	if err != nil {
		return nil, fmt.Errorf("scale %q: bad height: %w", value, err)
	}
	return &ffmpeg.Scale{Width: width, Height: height}, nil
}

// parseStreamMap parses one -map style selector: [-]input[:type[:index]][?].
// Examples: "0", "0:v", "0:a:1", "-0:s", "0:a:2?".
func parseStreamMap(value string) (ffmpeg.StreamMap, error) {
	var m ffmpeg.StreamMap

	token := strings.TrimSpace(value)
	if token == "" {
		return m, fmt.Errorf("empty map selector")
	}
	if strings.HasSuffix(token, "?") {
		m.Optional = true
		token = strings.TrimSuffix(token, "?")
	}
	if strings.HasPrefix(token, "-") {
		m.Exclude = true
		token = strings.TrimPrefix(token, "-")
	}

	parts := strings.Split(token, ":")
	if len(parts) > 3 {
		return m, fmt.Errorf("map selector %q: too many components", value)
	}

	input, err := strconv.Atoi(parts[0])
	if err != nil || input < 0 {
		return m, fmt.Errorf("map selector %q: bad input index", value)
	}
	m.InputIndex = input

	if len(parts) > 1 {
		switch parts[1] {
		case "v", "a", "s", "d":
			m.StreamType = ffmpeg.StreamType(parts[1])
		default:
			return m, fmt.Errorf("map selector %q: unknown stream type %q", value, parts[1])
		}
	}
	if len(parts) > 2 {
		index, err := strconv.Atoi(parts[2])
		if err != nil || index < 0 {
			return m, fmt.Errorf("map selector %q: bad stream index", value)
		}
		m.StreamIndex = &index
	}
	return m, nil
}

func parseStreamMaps(values []string) ([]ffmpeg.StreamMap, error) {
	if len(values) == 0 {
		return nil, nil
	}
	maps := make([]ffmpeg.StreamMap, 0, len(values))
	for _, value := range values {
		m, err := parseStreamMap(value)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}

// fileSize returns the size of path in bytes, or 0 when it cannot be read.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}
