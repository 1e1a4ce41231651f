package ffmpeg

// CompileFrame lowers a FrameSpec into the argument vector extracting a
// single frame. The seek lands before the input so the demuxer jumps straight
// to the nearest preceding keyframe.
func CompileFrame(spec FrameSpec) ([]string, error) {
	if spec.Input == "" {
		return nil, invalidSpec("frame", "input path required")
	}
	if spec.Output == "" {
		return nil, invalidSpec("frame", "output path required")
	}
	if spec.At < 0 {
		return nil, invalidSpec("frame", "timestamp must not be negative")
	}

	args := &argList{}
	writeGlobalPrefix(args, spec.LogLevel, 0)
	at := spec.At
	args.addSeconds("-ss", &at)
	args.add("-i", spec.Input)
	args.add("-frames:v", "1")
	if spec.Scale != nil {
		args.add("-vf", filterExpression(VideoFilters{Scale: spec.Scale}))
	}
	args.add(spec.Output)
	return args.tokens, nil
}

// CompileFrameSequence lowers a FrameSequenceSpec into the argument vector
// extracting a continuous frame sequence at the target rate. The rate
// conversion and the optional proportional downscale share a single -vf
// expression.
func CompileFrameSequence(spec FrameSequenceSpec) ([]string, error) {
	if spec.Input == "" {
		return nil, invalidSpec("frames", "input path required")
	}
	if spec.Output == "" {
		return nil, invalidSpec("frames", "output pattern required")
	}
	if spec.FPS <= 0 {
		return nil, invalidSpec("frames", "target frame rate must be positive")
	}

	filters := VideoFilters{FrameRate: spec.FPS}
	if spec.Width != nil {
		filters.Scale = &Scale{Width: *spec.Width, Height: -2}
	}

	args := &argList{}
	writeGlobalPrefix(args, spec.LogLevel, 0)
	args.add("-i", spec.Input)
	args.add("-vf", filterExpression(filters))
	args.add(spec.Output)
	return args.tokens, nil
}
