package ffprobe

import (
	"fmt"
	"strconv"
	"strings"

	"sprocket/internal/services"
)

// absentToken is the literal ffprobe emits for values it cannot determine.
const absentToken = "N/A"

// Parse decodes raw inspector output into a Result. The wire format is
// detected from the first non-whitespace character: a document starting with
// '{' decodes as JSON, anything else as bracketed key=value sections. Output
// with no recognizable content yields an empty Result rather than an error;
// only structurally broken input (invalid JSON, unbalanced section markers)
// fails.
func Parse(raw string) (Result, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return parseJSON(raw)
	}
	return parseSections(raw)
}

// ParseError reports probe output that matches neither known format. The
// offending text is retained so callers can log or surface it.
type ParseError struct {
	Raw    string
	reason string
	cause  error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v: ffprobe: %s: %v", services.ErrParse, e.reason, e.cause)
	}
	return fmt.Sprintf("%v: ffprobe: %s", services.ErrParse, e.reason)
}

func (e *ParseError) Unwrap() error { return e.cause }

// Is matches services.ErrParse so callers can classify the failure without
// depending on this package's error type.
func (e *ParseError) Is(target error) bool { return target == services.ErrParse }

func parseFailure(reason, raw string, cause error) error {
	return &ParseError{Raw: raw, reason: reason, cause: cause}
}

// parseOptionalFloat maps empty, N/A, and unparseable values to nil.
func parseOptionalFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == absentToken {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseOptionalInt64 maps empty, N/A, and unparseable values to nil.
func parseOptionalInt64(value string) *int64 {
	value = strings.TrimSpace(value)
	if value == "" || value == absentToken {
		return nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseIntDefault returns 0 for empty, N/A, and unparseable values.
func parseIntDefault(value string) int {
	value = strings.TrimSpace(value)
	if value == "" || value == absentToken {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

// parseFrameRate reduces ffprobe's "numerator/denominator" encoding to a
// float. A bare number is accepted as-is; anything else yields 0.
func parseFrameRate(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == absentToken {
		return 0
	}
	num, den, ok := strings.Cut(value, "/")
	if !ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		return 0
	}
	numerator, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	denominator, err := strconv.ParseFloat(den, 64)
	if err != nil || denominator == 0 {
		return 0
	}
	return numerator / denominator
}
