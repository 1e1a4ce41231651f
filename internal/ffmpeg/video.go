package ffmpeg

// VideoSetting is the closed set of video handling strategies. Exactly one
// variant is active per spec; the compiler dispatches exhaustively and
// rejects anything outside this set.
type VideoSetting interface {
	isVideoSetting()
}

// VideoPassthrough is the boolean shorthand for the two most common cases:
// true copies the video stream unchanged, false drops it entirely. It
// short-circuits before any codec-specific logic.
type VideoPassthrough bool

func (VideoPassthrough) isVideoSetting() {}

// Scale is a resize target. A dimension of -2 derives that side
// proportionally while keeping it divisible by two.
type Scale struct {
	Width  int
	Height int
}

// VideoFilters carries the filter options shared by every codec variant.
// They assemble into a single comma-joined -vf expression in fixed order:
// frame-rate conversion, resize, then the free-form fragment.
type VideoFilters struct {
	FrameRate float64
	Scale     *Scale
	Filter    string
}

// Libx264 selects the H.264 encoder.
type Libx264 struct {
	Preset string
	CRF    int
	VideoFilters
}

func (Libx264) isVideoSetting() {}

// Libtheora selects the Theora encoder. Quality maps to -q:v (0 worst, 10
// best).
type Libtheora struct {
	Quality int
	VideoFilters
}

func (Libtheora) isVideoSetting() {}

// GIF renders an animated GIF. Loop, when set, maps to -loop (0 loops
// forever, -1 plays once).
type GIF struct {
	Loop *int
	VideoFilters
}

func (GIF) isVideoSetting() {}

// VP9 selects the libvpx-vp9 encoder. RateControl chooses one of the six
// mutually exclusive bitrate modes; Deadline and CPUUsed tune the
// quality/speed tradeoff; RowMT enables row-based multithreading.
type VP9 struct {
	RateControl RateControl
	Deadline    string
	CPUUsed     *int
	RowMT       bool
	VideoFilters
}

func (VP9) isVideoSetting() {}

// RateControl is the closed set of VP9 rate-control strategies. Each mode
// emits a distinct, fixed, non-overlapping flag set.
type RateControl interface {
	isRateControl()
}

// AverageBitrate targets an average bitrate with default variability.
type AverageBitrate struct {
	Bitrate string
}

func (AverageBitrate) isRateControl() {}

// ConstantQuality holds a quality level regardless of output size.
type ConstantQuality struct {
	CRF int
}

func (ConstantQuality) isRateControl() {}

// ConstrainedQuality holds a quality level while capping the bitrate.
type ConstrainedQuality struct {
	CRF     int
	Bitrate string
}

func (ConstrainedQuality) isRateControl() {}

// ConstrainedBitrate keeps the bitrate between an explicit floor and ceiling
// around the target.
type ConstrainedBitrate struct {
	MinRate string
	Bitrate string
	MaxRate string
}

func (ConstrainedBitrate) isRateControl() {}

// ConstantBitrate pins floor, target, and ceiling to the same value.
type ConstantBitrate struct {
	Bitrate string
}

func (ConstantBitrate) isRateControl() {}

// Lossless enables the encoder's lossless mode.
type Lossless struct{}

func (Lossless) isRateControl() {}
