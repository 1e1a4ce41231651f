// Package deps resolves and verifies the external binaries sprocket drives.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Binary is one of the external tools sprocket shells out to. Command is a
// bare name resolved through PATH or an absolute path from configuration.
type Binary struct {
	Name    string
	Command string
	Purpose string
}

// FFmpeg returns the ffmpeg binary to drive: the configured value when set,
// otherwise the conventional name.
func FFmpeg(configured string) Binary {
	return Binary{
		Name:    "FFmpeg",
		Command: commandFor(configured, "ffmpeg"),
		Purpose: "transcoding, frame extraction, and concatenation",
	}
}

// FFprobe returns the ffprobe binary to drive: the configured value when
// set, otherwise the conventional name.
func FFprobe(configured string) Binary {
	return Binary{
		Name:    "FFprobe",
		Command: commandFor(configured, "ffprobe"),
		Purpose: "media inspection and keyframe analysis",
	}
}

// Status reports how a Binary resolved. Detail carries the resolved path
// when available and the failure reason when not.
type Status struct {
	Binary
	Available bool
	Detail    string
}

// Check resolves every binary and reports the outcomes in argument order.
func Check(binaries ...Binary) []Status {
	statuses := make([]Status, len(binaries))
	for i, binary := range binaries {
		statuses[i] = binary.check()
	}
	return statuses
}

func (b Binary) check() Status {
	status := Status{Binary: b}
	command := strings.TrimSpace(b.Command)
	if command == "" {
		status.Detail = "no command configured"
		return status
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		status.Detail = fmt.Sprintf("%s not found in PATH", command)
		return status
	}
	status.Available = true
	status.Detail = resolved
	return status
}

func commandFor(configured, fallback string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return trimmed
	}
	return fallback
}
