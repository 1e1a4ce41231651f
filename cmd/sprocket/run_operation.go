package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sprocket/internal/history"
	"sprocket/internal/locking"
	"sprocket/internal/logging"
	"sprocket/internal/preflight"
	"sprocket/internal/services"
)

// operation bundles everything the shared runner needs to execute one
// compiled argument vector and account for it afterwards.
type operation struct {
	Kind       history.Kind
	Input      string
	Output     string
	VideoCodec string
	AudioCodec string
	Args       []string
}

// runOperation is the common back half of every compiling command: preflight
// the environment, lock the destination, run ffmpeg with progress, and
// record the outcome in the history ledger. With dryRun set it prints the
// argument vector and stops before any I/O.
func runOperation(cmd *cobra.Command, cmdCtx *commandContext, op operation, dryRun bool) error {
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(op.Args, " "))
		return nil
	}

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return err
	}

	for _, check := range preflight.CheckSystemDeps(cfg) {
		if check.Name == "FFmpeg" && !check.Available {
			return services.Wrap(services.ErrConfiguration, "preflight", "binaries", check.Detail, nil)
		}
	}
	for _, check := range preflight.CheckOutputTarget(op.Output) {
		if !check.Passed {
			return services.Wrap(services.ErrValidation, "preflight", "output", check.Detail, nil)
		}
	}

	lock, err := locking.AcquireOutput(op.Output)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("failed to release output lock", logging.Error(releaseErr))
		}
	}()

	client, err := cmdCtx.ffmpegClient()
	if err != nil {
		return err
	}

	runCtx, cancel := signalContext(cmd)
	defer cancel()

	runID := uuid.NewString()
	runCtx = services.WithRunID(runCtx, runID)
	runCtx = services.WithOperation(runCtx, string(op.Kind))
	opLogger := logging.WithContext(runCtx, logger)

	onProgress, finishProgress := newProgressRenderer(cmd.OutOrStdout(), opLogger, inputDuration(runCtx, cmdCtx, op.Input))

	opLogger.Info("running ffmpeg",
		logging.String(logging.FieldInput, op.Input),
		logging.String(logging.FieldOutput, op.Output),
	)

	started := time.Now()
	runErr := client.Run(runCtx, op.Args, onProgress)
	elapsed := time.Since(started)
	finishProgress()

	recordOperation(runCtx, cmdCtx, opLogger, op, runID, elapsed, runErr)

	if runErr != nil {
		return runErr
	}
	opLogger.Info("operation completed",
		logging.String(logging.FieldOutput, op.Output),
		logging.Duration("elapsed", elapsed),
	)
	return nil
}

// inputDuration probes the input so the progress bar has a total to count
// toward. Best effort only: 0 means unknown and downgrades the bar to log
// lines.
func inputDuration(ctx context.Context, cmdCtx *commandContext, input string) float64 {
	if input == "" {
		return 0
	}
	prober, err := cmdCtx.ffprobeClient()
	if err != nil {
		return 0
	}
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	result, err := prober.Inspect(probeCtx, input)
	if err != nil {
		return 0
	}
	return result.DurationSeconds()
}

// recordOperation writes the ledger row. The ledger is advisory: failures
// log a warning and never fail the operation itself.
func recordOperation(ctx context.Context, cmdCtx *commandContext, logger *slog.Logger, op operation, runID string, elapsed time.Duration, runErr error) {
	store, err := cmdCtx.historyStore()
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	rec := &history.Record{
		ID:         runID,
		Kind:       op.Kind,
		Title:      history.DeriveTitle(op.Input),
		InputPath:  op.Input,
		OutputPath: op.Output,
		VideoCodec: op.VideoCodec,
		AudioCodec: op.AudioCodec,
		Arguments:  op.Args,
		Status:     history.StatusCompleted,
		InputSize:  fileSize(op.Input),
		OutputSize: fileSize(op.Output),
		Duration:   elapsed,
	}
	if runErr != nil {
		rec.Status = history.StatusFailed
		rec.ErrorMessage = runErr.Error()
	}
	if _, err := store.Add(ctx, rec); err != nil {
		logger.Warn("failed to record operation", logging.Error(err))
	}
}
