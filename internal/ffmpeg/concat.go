package ffmpeg

import "strings"

// Manifest renders the concat demuxer manifest content for the spec's inputs,
// one "file '<path>'" line per input in order. A single quote inside a path
// is escaped the way the demuxer expects: close the quote, emit \', reopen.
func (s ConcatSpec) Manifest() string {
	var b strings.Builder
	for _, input := range s.Inputs {
		b.WriteString("file '")
		b.WriteString(escapeManifestPath(input))
		b.WriteString("'\n")
	}
	return b.String()
}

func escapeManifestPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

// CompileConcat lowers a ConcatSpec into the argument vector for a lossless
// stream-copy concatenation. manifestPath names the file holding the content
// produced by Manifest; writing it is the caller's concern.
func CompileConcat(spec ConcatSpec, manifestPath string) ([]string, error) {
	if len(spec.Inputs) == 0 {
		return nil, invalidSpec("concat", "at least one input required")
	}
	if spec.Output == "" {
		return nil, invalidSpec("concat", "output path required")
	}
	if manifestPath == "" {
		return nil, invalidSpec("concat", "manifest path required")
	}

	args := &argList{}
	writeGlobalPrefix(args, spec.LogLevel, 0)
	args.add("-f", "concat", "-safe", "0")
	args.add("-i", manifestPath)
	args.add("-c", "copy")
	args.add(spec.Output)
	return args.tokens, nil
}
