package pipeline

import (
	"time"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/input"
	"github.com/xaionaro-go/avkitchen/types"
)

// Progress is a snapshot handed to OnProgress every N processed frames.
type Progress struct {
	Frames   uint64
	Packets  uint64
	Position time.Duration
}

type Config struct {
	InputURL        string
	InputFormatName string
	InputOptions    types.DictionaryItems

	OutputURL        string
	OutputFormatName string
	OutputOptions    types.DictionaryItems

	// Kind selects which stream of the input to process.
	Kind             types.MediaKind
	StreamPreference input.StreamPreference

	// CopyKinds lists additional kinds whose streams are carried over
	// packet-for-packet without re-encoding (e.g. keep the audio while
	// transcoding the video). A kind with no matching stream is skipped.
	CopyKinds []types.MediaKind

	// FilterDescription is the filter-graph DSL; empty means a pass-through
	// graph is skipped entirely and frames go straight from the decoder to
	// the encoder (through the scaler/resampler where formats demand it).
	// The sink format names (FFmpeg spelling, e.g. "yuv420p", "s16") pin
	// the graph's output format when set.
	FilterDescription    string
	SinkPixelFormatName  string
	SinkSampleFormatName string

	// Encoder parameterizes the target codec. Zero-valued fields inherit
	// from the source stream (resolution, rates) or from the container
	// format (the codec itself).
	Encoder codec.EncoderParams

	// SecondaryInputURLs are additional sources bound to the `in1`..`inN`
	// pads of the filter graph (overlay, PiP). They are decoded in full and
	// fed up-front, which suits stills and short clips.
	SecondaryInputURLs []string

	// SyntheticTimestamps replaces the source timestamps with a generated
	// monotone sequence. Useful for inputs with broken or absent PTS.
	SyntheticTimestamps bool

	// MaxOutputFrames stops the run after that many frames have reached
	// the encoder; 0 means unlimited. Used by single-frame recipes.
	MaxOutputFrames uint64

	HardwareDeviceType astiav.HardwareDeviceType
	HardwareDeviceName string

	// ProgressEveryNFrames throttles OnProgress; 0 picks a per-kind
	// default (30 for video, 100 for audio).
	ProgressEveryNFrames uint
	OnProgress           func(Progress)
}

func (cfg Config) progressInterval() uint {
	if cfg.ProgressEveryNFrames != 0 {
		return cfg.ProgressEveryNFrames
	}
	if cfg.Kind == types.MediaKindAudio {
		return 100
	}
	return 30
}

func (cfg Config) needsFilterGraph() bool {
	return cfg.FilterDescription != "" ||
		len(cfg.SecondaryInputURLs) != 0 ||
		cfg.SinkPixelFormatName != "" ||
		cfg.SinkSampleFormatName != ""
}
