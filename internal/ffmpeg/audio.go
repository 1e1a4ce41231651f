package ffmpeg

import (
	"fmt"
	"strconv"
)

// AudioSetting is the closed set of audio handling strategies.
type AudioSetting interface {
	isAudioSetting()
}

// AudioPassthrough is the boolean shorthand: true copies the audio stream
// unchanged, false drops it entirely.
type AudioPassthrough bool

func (AudioPassthrough) isAudioSetting() {}

// AudioOptions carries the options shared by every audio codec variant.
type AudioOptions struct {
	SampleRate  int
	DownmixMono bool
	Filter      string
}

// AAC selects the native AAC encoder.
type AAC struct {
	AudioOptions
}

func (AAC) isAudioSetting() {}

// FLAC selects the FLAC encoder.
type FLAC struct {
	AudioOptions
}

func (FLAC) isAudioSetting() {}

// LibMP3Lame selects the LAME MP3 encoder. Quality is the VBR level 0 (best)
// through 9 (worst), mapped to -q:a.
type LibMP3Lame struct {
	Quality int
	AudioOptions
}

func (LibMP3Lame) isAudioSetting() {}

// LibOpus selects the Opus encoder.
type LibOpus struct {
	AudioOptions
}

func (LibOpus) isAudioSetting() {}

// LibVorbis selects the Vorbis encoder. Quality is the VBR level -1 through
// 10, mapped to -q:a.
type LibVorbis struct {
	Quality int
	AudioOptions
}

func (LibVorbis) isAudioSetting() {}

// Signedness is the PCM sample representation.
type Signedness string

const (
	Signed   Signedness = "s"
	Unsigned Signedness = "u"
	Floating Signedness = "f"
)

// Endianness is the PCM byte order. Eight-bit formats carry none.
type Endianness string

const (
	LittleEndian Endianness = "le"
	BigEndian    Endianness = "be"
)

// PCM selects an uncompressed PCM encoder. The codec name is derived, never
// stored: pcm_<signedness><bits><endianness?>.
type PCM struct {
	Signedness Signedness
	BitDepth   int
	Endianness Endianness
	AudioOptions
}

func (PCM) isAudioSetting() {}

// CodecName derives the encoder token, e.g. pcm_s16le or pcm_u8.
func (p PCM) CodecName() string {
	return fmt.Sprintf("pcm_%s%s%s", p.Signedness, strconv.Itoa(p.BitDepth), p.Endianness)
}
