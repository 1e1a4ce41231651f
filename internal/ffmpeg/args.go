package ffmpeg

import (
	"strconv"
	"strings"
)

// argList accumulates argument tokens in order. The conditional helpers keep
// flag assembly declarative: each call appends zero or more tokens, and the
// final slice is exactly the emission order.
type argList struct {
	tokens []string
}

func (a *argList) add(tokens ...string) {
	a.tokens = append(a.tokens, tokens...)
}

// addSeconds appends flag plus a fixed three-decimal rendering of the value
// when present. Millisecond precision avoids rounding ambiguity in the
// external tool's own parser.
func (a *argList) addSeconds(flag string, value *float64) {
	if value == nil {
		return
	}
	a.add(flag, formatSeconds(*value))
}

func (a *argList) addString(flag, value string) {
	if value == "" {
		return
	}
	a.add(flag, value)
}

func (a *argList) addInt(flag string, value int) {
	a.add(flag, strconv.Itoa(value))
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// formatRate renders a frame rate without trailing zeros (30, 29.97, 0.5).
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// mapToken renders one stream map directive as its composite token.
func mapToken(m StreamMap) string {
	var b strings.Builder
	if m.Exclude {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(m.InputIndex))
	if m.StreamType != "" {
		b.WriteByte(':')
		b.WriteString(string(m.StreamType))
	}
	if m.StreamIndex != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*m.StreamIndex))
	}
	if m.Optional {
		b.WriteByte('?')
	}
	return b.String()
}

// filterExpression joins the fixed-order filter chain into the single -vf
// value: frame-rate conversion first, then resize, then the free-form
// fragment. Returns "" when no filtering applies.
func filterExpression(f VideoFilters) string {
	parts := make([]string, 0, 3)
	if f.FrameRate > 0 {
		parts = append(parts, "fps="+formatRate(f.FrameRate))
	}
	if f.Scale != nil {
		parts = append(parts, "scale="+strconv.Itoa(f.Scale.Width)+":"+strconv.Itoa(f.Scale.Height))
	}
	if fragment := strings.TrimSpace(f.Filter); fragment != "" {
		parts = append(parts, fragment)
	}
	return strings.Join(parts, ",")
}
