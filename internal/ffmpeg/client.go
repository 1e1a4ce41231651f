package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"sprocket/internal/logging"
	"sprocket/internal/services"
)

// stderrTailLines bounds how much diagnostic output is kept for error
// reporting. FFmpeg prints the useful part last.
const stderrTailLines = 20

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(line string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger; without one the client stays silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "ffmpeg")
		}
	}
}

// Client runs compiled argument vectors against an ffmpeg binary.
type Client struct {
	binary string
	logger *slog.Logger
	exec   Executor
}

// New constructs a client for the given binary path or name.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary: binary,
		logger: logging.NewNop(),
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Run executes the argument vector. When onProgress is non-nil the progress
// stream flags are spliced in ahead of the output token and each decoded
// block is delivered to the callback. A non-zero exit wraps the stderr tail
// into the returned error.
func (c *Client) Run(ctx context.Context, args []string, onProgress func(Progress)) error {
	if len(args) == 0 {
		return invalidSpec("run", "empty argument vector")
	}

	runArgs := args
	if onProgress != nil {
		runArgs = withProgressFlags(args)
	}

	c.logger.Debug("running ffmpeg",
		logging.String(logging.FieldBinary, c.binary),
		logging.String("args", strings.Join(runArgs, " ")),
	)

	var decoder progressDecoder
	tail := newTailBuffer(stderrTailLines)

	err := c.exec.Run(ctx, c.binary, runArgs,
		func(line string) {
			if onProgress == nil {
				return
			}
			if update, ok := decoder.feed(line); ok {
				onProgress(update)
			}
		},
		tail.append,
	)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "run", tail.String(), err)
	}
	return nil
}

// withProgressFlags returns a copy of args with the progress flags inserted
// immediately before the trailing output token.
func withProgressFlags(args []string) []string {
	progress := ProgressArgs()
	out := make([]string, 0, len(args)+len(progress))
	out = append(out, args[:len(args)-1]...)
	out = append(out, progress...)
	out = append(out, args[len(args)-1])
	return out
}

// tailBuffer keeps the last n non-empty lines written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.lines) == 0 {
		return "no diagnostic output"
	}
	return strings.Join(t.lines, "; ")
}

type commandExecutor struct{}

var commandContext = exec.CommandContext

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if forward != nil {
				forward(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout, onStdout)
	go scan(stderr, onStderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
