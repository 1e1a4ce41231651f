package ffprobe

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ParseKeyframes decodes a keyframe timestamp dump into ascending seconds.
// Tokens are separated by whitespace or commas; non-numeric tokens (flag
// columns, side data noise) are skipped. Empty input yields an empty list.
func ParseKeyframes(raw string) []float64 {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	var stamps []float64
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		stamps = append(stamps, value)
	}
	slices.Sort(stamps)
	return stamps
}
