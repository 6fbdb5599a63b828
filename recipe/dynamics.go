package recipe

import (
	"fmt"
	"time"

	"github.com/xaionaro-go/avkitchen/pipeline"
	"github.com/xaionaro-go/avkitchen/types"
)

// Limiter caps peaks at Limit. Only the knobs the underlying filter
// actually honors are exposed: ceiling, attack and release.
type Limiter struct {
	Limit   float64 // ceiling, (0, 1]
	Attack  time.Duration
	Release time.Duration
}

var _ Recipe = Limiter{}

func (r Limiter) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.Limit <= 0 || r.Limit > 1 {
		return pipeline.Config{}, badParam("limiter", "limit must be in (0, 1], got %v", r.Limit)
	}
	if r.Attack < 0 || r.Release < 0 {
		return pipeline.Config{}, badParam("limiter", "attack/release must be non-negative")
	}
	desc := fmt.Sprintf("alimiter=limit=%s", fnum(r.Limit))
	if r.Attack > 0 {
		desc += fmt.Sprintf(":attack=%d", r.Attack.Milliseconds())
	}
	if r.Release > 0 {
		desc += fmt.Sprintf(":release=%d", r.Release.Milliseconds())
	}
	return audioConfig(inputURL, outputURL, desc), nil
}

// Gate mutes the signal below a threshold.
type Gate struct {
	Threshold float64 // (0, 1]
	Ratio     float64 // >= 1
	Attack    time.Duration
	Release   time.Duration
}

var _ Recipe = Gate{}

func (r Gate) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.Threshold <= 0 || r.Threshold > 1 {
		return pipeline.Config{}, badParam("gate", "threshold must be in (0, 1], got %v", r.Threshold)
	}
	if r.Ratio < 1 {
		return pipeline.Config{}, badParam("gate", "ratio must be >= 1, got %v", r.Ratio)
	}
	desc := fmt.Sprintf("agate=threshold=%s:ratio=%s", fnum(r.Threshold), fnum(r.Ratio))
	if r.Attack > 0 {
		desc += fmt.Sprintf(":attack=%d", r.Attack.Milliseconds())
	}
	if r.Release > 0 {
		desc += fmt.Sprintf(":release=%d", r.Release.Milliseconds())
	}
	return audioConfig(inputURL, outputURL, desc), nil
}

// Normalize performs EBU R128 loudness normalization.
type Normalize struct {
	IntegratedLUFS float64 // target, [-70, -5]; 0 defaults to -24
	TruePeakDB     float64 // ceiling, [-9, 0]; 0 defaults to -2
	LoudnessRange  float64 // LRA, [1, 50]; 0 defaults to 7
}

var _ Recipe = Normalize{}

func (r Normalize) Config(inputURL, outputURL string) (pipeline.Config, error) {
	i, tp, lra := r.IntegratedLUFS, r.TruePeakDB, r.LoudnessRange
	if i == 0 {
		i = -24
	}
	if tp == 0 {
		tp = -2
	}
	if lra == 0 {
		lra = 7
	}
	if i < -70 || i > -5 {
		return pipeline.Config{}, badParam("normalize", "integrated loudness must be in [-70, -5] LUFS, got %v", i)
	}
	if tp < -9 || tp > 0 {
		return pipeline.Config{}, badParam("normalize", "true peak must be in [-9, 0] dBTP, got %v", tp)
	}
	if lra < 1 || lra > 50 {
		return pipeline.Config{}, badParam("normalize", "loudness range must be in [1, 50] LU, got %v", lra)
	}
	desc := fmt.Sprintf("loudnorm=I=%s:TP=%s:LRA=%s", fnum(i), fnum(tp), fnum(lra))
	return audioConfig(inputURL, outputURL, desc), nil
}

// Mix sums the primary input with the secondary ones. Secondary inputs
// are decoded in full before the primary starts flowing, so memory use
// grows with their length; keep them to stingers and short beds.
type Mix struct {
	SecondaryInputURLs []string
}

var _ Recipe = Mix{}

func (r Mix) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if len(r.SecondaryInputURLs) == 0 {
		return pipeline.Config{}, badParam("mix", "at least one secondary input is required")
	}
	n := len(r.SecondaryInputURLs) + 1
	var pads string
	for i := 0; i < n; i++ {
		pads += fmt.Sprintf("[in%d]", i)
	}
	cfg := audioConfig(inputURL, outputURL,
		fmt.Sprintf("%samix=inputs=%d:duration=longest", pads, n))
	cfg.SecondaryInputURLs = r.SecondaryInputURLs
	return cfg, nil
}

// Resample converts the audio to another sample rate.
type Resample struct {
	SampleRate int
}

var _ Recipe = Resample{}

func (r Resample) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.SampleRate <= 0 {
		return pipeline.Config{}, badParam("resample", "sample rate must be positive, got %d", r.SampleRate)
	}
	cfg := audioConfig(inputURL, outputURL, fmt.Sprintf("aresample=%d", r.SampleRate))
	cfg.Encoder.SampleRate = r.SampleRate
	cfg.Kind = types.MediaKindAudio
	return cfg, nil
}
