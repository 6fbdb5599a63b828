package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/pipeline"
	"github.com/xaionaro-go/avkitchen/types"
)

// Thumbnail extracts one representative frame, scaled to the requested
// size, as a JPEG.
type Thumbnail struct {
	Width  int
	Height int
}

var _ Recipe = Thumbnail{}

func (r Thumbnail) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return pipeline.Config{}, badParam("thumbnail", "invalid resolution %dx%d", r.Width, r.Height)
	}
	return pipeline.Config{
		InputURL:            inputURL,
		OutputURL:           outputURL,
		OutputFormatName:    "image2",
		Kind:                types.MediaKindVideo,
		FilterDescription:   fmt.Sprintf("thumbnail,scale=%d:%d", r.Width, r.Height),
		SinkPixelFormatName: "yuvj420p",
		MaxOutputFrames:     1,
	}, nil
}

// GIF renders the input as an animated GIF with a dedicated palette.
// The split/palettegen/paletteuse arrangement computes the palette and
// applies it in a single pass over the input.
type GIF struct {
	Width     int
	Height    int
	FPS       int
	MaxColors int
}

var _ Recipe = GIF{}

func (r GIF) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return pipeline.Config{}, badParam("gif", "invalid resolution %dx%d", r.Width, r.Height)
	}
	if r.FPS <= 0 || r.FPS > 50 {
		return pipeline.Config{}, badParam("gif", "fps must be in [1, 50], got %d", r.FPS)
	}
	if r.MaxColors < 2 || r.MaxColors > 256 {
		return pipeline.Config{}, badParam("gif", "max colors must be in [2, 256], got %d", r.MaxColors)
	}
	desc := fmt.Sprintf(
		"fps=%d,scale=%d:%d:flags=lanczos,split[s0][s1];[s0]palettegen=max_colors=%d[p];[s1][p]paletteuse",
		r.FPS, r.Width, r.Height, r.MaxColors,
	)
	return pipeline.Config{
		InputURL:          inputURL,
		OutputURL:         outputURL,
		OutputFormatName:  "gif",
		Kind:              types.MediaKindVideo,
		FilterDescription: desc,
	}, nil
}

// HLS segments the input into an .m3u8 playlist plus numbered .ts
// segments.
type HLS struct {
	SegmentDuration time.Duration // 0 defaults to 4s
}

var _ Recipe = HLS{}

func (r HLS) Config(inputURL, outputURL string) (pipeline.Config, error) {
	d := r.SegmentDuration
	if d == 0 {
		d = 4 * time.Second
	}
	if d < time.Second {
		return pipeline.Config{}, badParam("hls", "segment duration must be at least 1s, got %v", d)
	}
	base := outputURL[:len(outputURL)-len(filepath.Ext(outputURL))]
	return pipeline.Config{
		InputURL:         inputURL,
		OutputURL:        outputURL,
		OutputFormatName: "hls",
		Kind:             types.MediaKindVideo,
		OutputOptions: types.DictionaryItems{
			{Key: "hls_time", Value: fnum(d.Seconds())},
			{Key: "hls_list_size", Value: "0"},
			{Key: "hls_segment_filename", Value: base + "_%03d.ts"},
		},
	}, nil
}

// Watermark overlays a still image at a fixed position.
type Watermark struct {
	OverlayURL string
	X          int
	Y          int
}

var _ Recipe = Watermark{}

func (r Watermark) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.OverlayURL == "" {
		return pipeline.Config{}, badParam("watermark", "an overlay image is required")
	}
	return pipeline.Config{
		InputURL:           inputURL,
		OutputURL:          outputURL,
		Kind:               types.MediaKindVideo,
		SecondaryInputURLs: []string{r.OverlayURL},
		FilterDescription:  fmt.Sprintf("[in0][in1]overlay=%d:%d", r.X, r.Y),
	}, nil
}

// PictureInPicture composites a downscaled secondary video into a
// corner of the primary one.
type PictureInPicture struct {
	SecondaryURL string
	X            int
	Y            int
	ScaleDivisor int // secondary is scaled to 1/N of its size; 0 means 4
}

var _ Recipe = PictureInPicture{}

func (r PictureInPicture) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.SecondaryURL == "" {
		return pipeline.Config{}, badParam("pip", "a secondary input is required")
	}
	div := r.ScaleDivisor
	if div == 0 {
		div = 4
	}
	if div < 1 {
		return pipeline.Config{}, badParam("pip", "scale divisor must be positive, got %d", div)
	}
	desc := fmt.Sprintf("[in1]scale=iw/%d:ih/%d[pip];[in0][pip]overlay=%d:%d", div, div, r.X, r.Y)
	return pipeline.Config{
		InputURL:           inputURL,
		OutputURL:          outputURL,
		Kind:               types.MediaKindVideo,
		SecondaryInputURLs: []string{r.SecondaryURL},
		FilterDescription:  desc,
	}, nil
}

// Stabilize removes camera shake with a two-pass vidstab run: the first
// pass writes motion vectors into a transient transforms file, the
// second applies them. The transforms file is removed on both paths.
type Stabilize struct {
	Shakiness int // 1..10; 0 defaults to 5
	Smoothing int // frames; 0 defaults to 10
}

func (r Stabilize) Run(ctx context.Context, inputURL, outputURL string) (_err error) {
	logger.Debugf(ctx, "Stabilize('%s' -> '%s')", inputURL, outputURL)
	defer func() { logger.Debugf(ctx, "/Stabilize('%s' -> '%s'): %v", inputURL, outputURL, _err) }()

	shakiness := r.Shakiness
	if shakiness == 0 {
		shakiness = 5
	}
	if shakiness < 1 || shakiness > 10 {
		return badParam("stabilize", "shakiness must be in [1, 10], got %d", shakiness)
	}
	smoothing := r.Smoothing
	if smoothing == 0 {
		smoothing = 10
	}
	if smoothing < 0 {
		return badParam("stabilize", "smoothing must be non-negative, got %d", smoothing)
	}

	trf, err := os.CreateTemp("", "transforms-*.trf")
	if err != nil {
		return averror.E(averror.KindIo, "stabilize", err)
	}
	trfPath := trf.Name()
	_ = trf.Close()
	defer func() {
		if err := os.Remove(trfPath); err != nil && !os.IsNotExist(err) {
			logger.Warnf(ctx, "unable to remove '%s': %v", trfPath, err)
		}
	}()

	// pass 1: detection only, the encoded result is discarded
	if err := pipeline.Run(ctx, pipeline.Config{
		InputURL:          inputURL,
		OutputURL:         os.DevNull,
		OutputFormatName:  "null",
		Kind:              types.MediaKindVideo,
		FilterDescription: fmt.Sprintf("vidstabdetect=shakiness=%d:result=%s", shakiness, trfPath),
	}); err != nil {
		return fmt.Errorf("detection pass: %w", err)
	}

	return pipeline.Run(ctx, pipeline.Config{
		InputURL:          inputURL,
		OutputURL:         outputURL,
		Kind:              types.MediaKindVideo,
		FilterDescription: fmt.Sprintf("vidstabtransform=smoothing=%d:input=%s,unsharp=5:5:0.8:3:3:0.4", smoothing, trfPath),
	})
}
