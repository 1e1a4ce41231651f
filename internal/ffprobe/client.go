package ffprobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"sprocket/internal/logging"
	"sprocket/internal/services"
)

// Runner abstracts output-capturing command execution for testability. Both
// return values are meaningful on failure because ffprobe often emits usable
// output alongside a non-zero exit.
type Runner interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(runner Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithLogger attaches a logger; without one the client stays silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "ffprobe")
		}
	}
}

// Client runs inspection commands against an ffprobe binary.
type Client struct {
	binary string
	logger *slog.Logger
	runner Runner
}

// New constructs a client for the given binary path or name.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffprobe binary required")
	}
	client := &Client{
		binary: binary,
		logger: logging.NewNop(),
		runner: commandRunner{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Inspect probes the container and stream properties of path. Output that
// parses cleanly is returned even when ffprobe exits non-zero, because the
// tool emits usable data alongside warnings on damaged media.
func (c *Client) Inspect(ctx context.Context, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrValidation, "ffprobe", "inspect", "empty path", nil)
	}

	args := []string{
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_streams",
		"-of", "json",
		"--", path,
	}
	c.logger.Debug("running ffprobe",
		logging.String(logging.FieldBinary, c.binary),
		logging.String("args", strings.Join(args, " ")),
	)

	output, runErr := c.runner.Output(ctx, c.binary, args)
	text := strings.TrimSpace(string(output))
	if text == "" {
		if runErr != nil {
			return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", "", runErr)
		}
		return Result{}, nil
	}

	result, parseErr := Parse(text)
	if parseErr != nil {
		if runErr != nil {
			return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", "", runErr)
		}
		return Result{}, parseErr
	}
	if runErr != nil {
		c.logger.Warn("ffprobe exited non-zero but produced parseable output",
			logging.Error(runErr),
			logging.String(logging.FieldInput, path),
		)
	}
	return result, nil
}

// Keyframes returns the keyframe timestamps of the first video stream,
// sorted ascending. The frame dump decodes only keyframes, so every
// timestamp in the output belongs to one.
func (c *Client) Keyframes(ctx context.Context, path string) ([]float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrValidation, "ffprobe", "keyframes", "empty path", nil)
	}

	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-skip_frame", "nokey",
		"-show_entries", "frame=pts_time",
		"-of", "csv=print_section=0",
		"--", path,
	}
	c.logger.Debug("running ffprobe",
		logging.String(logging.FieldBinary, c.binary),
		logging.String("args", strings.Join(args, " ")),
	)

	output, runErr := c.runner.Output(ctx, c.binary, args)
	stamps := ParseKeyframes(string(output))
	if runErr != nil && len(stamps) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "ffprobe", "keyframes", "", runErr)
	}
	return stamps, nil
}

type commandRunner struct{}

var commandContext = exec.CommandContext

func (commandRunner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return stdout.Bytes(), fmt.Errorf("%w: %s", err, detail)
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}
