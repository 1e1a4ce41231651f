package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"sprocket/internal/ffmpeg"
	"sprocket/internal/logging"
)

// progressLogInterval spaces the fallback log lines so a long encode does
// not flood the log with one line per progress block.
const progressLogInterval = 5 * time.Second

// newProgressRenderer returns a progress callback and a finish function.
// With a terminal and a known input duration it draws a live bar; otherwise
// it degrades to periodic structured log lines.
func newProgressRenderer(out io.Writer, logger *slog.Logger, totalSeconds float64) (func(ffmpeg.Progress), func()) {
	if totalSeconds > 0 && isTerminal(out) {
		bar := progressbar.NewOptions64(
			int64(totalSeconds*1000),
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("transcoding"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionThrottle(200*time.Millisecond),
		)
		callback := func(p ffmpeg.Progress) {
			_ = bar.Set64(p.OutTime.Milliseconds())
			if p.Done {
				_ = bar.Finish()
			}
		}
		finish := func() {
			_ = bar.Clear()
		}
		return callback, finish
	}

	var lastLogged time.Time
	callback := func(p ffmpeg.Progress) {
		if !p.Done && time.Since(lastLogged) < progressLogInterval {
			return
		}
		lastLogged = time.Now()
		logger.Info("transcode progress",
			logging.Int64("frame", p.Frame),
			logging.Float64("fps", p.FPS),
			logging.Float64("speed", p.Speed),
			logging.Duration("out_time", p.OutTime),
			logging.Int64("total_size", p.TotalSize),
			logging.Bool("done", p.Done),
		)
	}
	return callback, func() {}
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
