package ffmpeg

import (
	"strconv"
	"strings"
	"time"
)

// Progress is one decoded block of ffmpeg's -progress stream.
type Progress struct {
	Frame     int64
	FPS       float64
	Bitrate   string
	TotalSize int64
	OutTime   time.Duration
	Speed     float64
	Done      bool
}

// progressDecoder folds the key=value lines ffmpeg writes to the progress
// pipe into Progress blocks. ffmpeg terminates each block with a
// progress=continue|end line; values carry forward between blocks so a
// sparse block still yields a complete snapshot.
type progressDecoder struct {
	current Progress
}

// feed consumes one line and reports a completed block when the line is the
// block terminator.
func (d *progressDecoder) feed(line string) (Progress, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return Progress{}, false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if value == "N/A" {
		return Progress{}, false
	}

	switch key {
	case "frame":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			d.current.Frame = n
		}
	case "fps":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			d.current.FPS = f
		}
	case "bitrate":
		d.current.Bitrate = value
	case "total_size":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			d.current.TotalSize = n
		}
	case "out_time_us", "out_time_ms":
		// Both keys carry microseconds; out_time_ms predates the _us name.
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			d.current.OutTime = time.Duration(n) * time.Microsecond
		}
	case "speed":
		if f, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
			d.current.Speed = f
		}
	case "progress":
		snapshot := d.current
		snapshot.Done = value == "end"
		return snapshot, true
	}
	return Progress{}, false
}

// ProgressArgs returns the flags that route the machine-readable progress
// stream to stdout while silencing the interactive stats line.
func ProgressArgs() []string {
	return []string{"-progress", "pipe:1", "-nostats"}
}
