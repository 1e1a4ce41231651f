// Package ffprobe decodes media inspection output into typed results.
//
// Two wire formats share a single entry point: the JSON document produced
// by -of json, and the older bracketed key=value section dump. Parse picks
// the format from the first non-whitespace character. Absent streams, tags,
// and N/A numerics are represented as absent values, never as errors.
//
// Key types:
//   - Result: normalized container and stream properties
//   - VideoStream, AudioStream: per-stream detail, nil when the container
//     has no stream of that kind
//   - ParseError: unrecognized output with the raw text retained
//
// Primary entry points:
//   - Parse: decode raw inspector output
//   - ParseKeyframes: decode a keyframe timestamp dump
//   - Client.Inspect, Client.Keyframes: run the binary and decode
package ffprobe
