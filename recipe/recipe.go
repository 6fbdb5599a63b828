// Package recipe turns named processing recipes into pipeline
// configurations. A recipe is pure data plus validation: nothing here
// touches libav, so every parameter error is reported as BadParameter
// before any resource is allocated.
package recipe

import (
	"strconv"
	"strings"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/pipeline"
	"github.com/xaionaro-go/avkitchen/types"
)

// Recipe produces a runnable pipeline configuration for an input/output
// pair.
type Recipe interface {
	Config(inputURL, outputURL string) (pipeline.Config, error)
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(vs []float64, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fnum(v)
	}
	return strings.Join(parts, sep)
}

func badParam(op, format string, args ...any) error {
	return averror.Errorf(averror.KindBadParameter, op, format, args...)
}

func audioConfig(inputURL, outputURL, filterDescription string) pipeline.Config {
	return pipeline.Config{
		InputURL:          inputURL,
		OutputURL:         outputURL,
		Kind:              types.MediaKindAudio,
		FilterDescription: filterDescription,
	}
}

// Transcode is the plain decode/encode recipe: no filtering, optional
// codec, bitrate and resolution overrides. Video transcodes carry the
// audio stream over as a copy unless DropAudio is set.
type Transcode struct {
	Kind       types.MediaKind
	CodecName  string
	BitRate    int64
	Width      int
	Height     int
	SampleRate int
	DropAudio  bool
}

var _ Recipe = Transcode{}

func (r Transcode) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.Kind != types.MediaKindVideo && r.Kind != types.MediaKindAudio {
		return pipeline.Config{}, badParam("transcode", "unsupported media kind %v", r.Kind)
	}
	if r.BitRate < 0 {
		return pipeline.Config{}, badParam("transcode", "negative bit rate %d", r.BitRate)
	}
	if (r.Width < 0 || r.Height < 0) || (r.Width == 0) != (r.Height == 0) {
		return pipeline.Config{}, badParam("transcode", "invalid resolution %dx%d", r.Width, r.Height)
	}
	var copyKinds []types.MediaKind
	if r.Kind == types.MediaKindVideo && !r.DropAudio {
		copyKinds = []types.MediaKind{types.MediaKindAudio}
	}
	return pipeline.Config{
		InputURL:  inputURL,
		OutputURL: outputURL,
		Kind:      r.Kind,
		CopyKinds: copyKinds,
		Encoder: codec.EncoderParams{
			CodecName:  r.CodecName,
			BitRate:    r.BitRate,
			Width:      r.Width,
			Height:     r.Height,
			SampleRate: r.SampleRate,
		},
	}, nil
}
