package history

import "time"

// Kind identifies which command family produced a record.
type Kind string

const (
	KindTranscode Kind = "transcode"
	KindFrame     Kind = "frame"
	KindFrames    Kind = "frames"
	KindConcat    Kind = "concat"
)

// Status reports how an invocation ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record captures one external tool invocation: what was asked for, the
// exact argument vector, and how it went.
type Record struct {
	ID           string
	Kind         Kind
	Title        string
	InputPath    string
	OutputPath   string
	VideoCodec   string
	AudioCodec   string
	Arguments    []string
	Status       Status
	ErrorMessage string
	InputSize    int64
	OutputSize   int64
	Duration     time.Duration
	CreatedAt    time.Time
}
