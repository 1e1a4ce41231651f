package preflight

import (
	"path/filepath"

	"sprocket/internal/config"
	"sprocket/internal/deps"
)

// minOutputFreeBytes is the floor applied to output-directory space checks.
// It only has to catch obviously full disks; FFmpeg reports real write
// failures itself.
const minOutputFreeBytes = 64 << 20

// RunAll executes the environment checks that apply regardless of the
// requested operation.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	return results
}

// CheckOutputTarget verifies that the directory an operation writes into is
// usable: accessible and not on a full disk.
func CheckOutputTarget(outputPath string) []Result {
	dir := filepath.Dir(outputPath)
	access := CheckDirectoryAccess("Output directory", dir)
	if !access.Passed {
		return []Result{access}
	}
	return []Result{
		access,
		CheckFreeSpace("Output free space", dir, minOutputFreeBytes),
	}
}

// CheckSystemDeps evaluates the external binaries sprocket drives. The CLI
// "deps" command and the per-operation preflight share this list so the two
// never disagree about what is required.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.Check(
		deps.FFmpeg(cfg.FFmpegBinary()),
		deps.FFprobe(cfg.FFprobeBinary()),
	)
}
