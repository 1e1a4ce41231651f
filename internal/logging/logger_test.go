package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sprocket/internal/logging"
	"sprocket/internal/services"
)

func TestConsoleFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "ffmpeg")
	logger.Info("transcode complete", logging.String("output", "clip.webm"), logging.Int64("size", 1024))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, "INFO ffmpeg: transcode complete") {
		t.Fatalf("expected component prefix in %q", line)
	}
	if !strings.Contains(line, "output=clip.webm") {
		t.Fatalf("expected output attr in %q", line)
	}
	if !strings.Contains(line, "size=1024") {
		t.Fatalf("expected size attr in %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("probe warning", logging.String("detail", "duration missing from format"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `detail="duration missing from format"`) {
		t.Fatalf("expected quoted value in %q", string(data))
	}
}

func TestJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("probe complete", logging.String(logging.FieldInput, "movie.mkv"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &decoded); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if decoded["msg"] != "probe complete" {
		t.Fatalf("unexpected msg field: %v", decoded["msg"])
	}
	if decoded["level"] != "info" {
		t.Fatalf("unexpected level field: %v", decoded["level"])
	}
	if decoded["input"] != "movie.mkv" {
		t.Fatalf("unexpected input field: %v", decoded["input"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "filtered.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Fatalf("info line leaked through warn level: %q", string(data))
	}
	if !strings.Contains(string(data), "should be kept") {
		t.Fatalf("warn line missing: %q", string(data))
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-7")
	ctx = services.WithOperation(ctx, "concat")
	logging.WithContext(ctx, logger).Info("starting")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "run_id=run-7") {
		t.Fatalf("expected run_id attr in %q", line)
	}
	if !strings.Contains(line, "operation=concat") {
		t.Fatalf("expected operation attr in %q", line)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing should happen", logging.Error(os.ErrNotExist))
}
