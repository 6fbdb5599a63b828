package recipe

import (
	"fmt"
	"strings"
	"time"

	"github.com/xaionaro-go/avkitchen/pipeline"
)

// Chorus layers delayed, modulated copies of the signal. The four
// per-voice arrays must be of equal, nonzero length; a mismatch is
// refused up-front instead of surfacing later as an opaque filter
// failure.
type Chorus struct {
	InGain  float64
	OutGain float64
	Delays  []float64 // milliseconds
	Decays  []float64
	Speeds  []float64 // Hz
	Depths  []float64 // milliseconds
}

var _ Recipe = Chorus{}

func (r Chorus) Config(inputURL, outputURL string) (pipeline.Config, error) {
	n := len(r.Delays)
	if n == 0 {
		return pipeline.Config{}, badParam("chorus", "at least one voice is required")
	}
	if len(r.Decays) != n || len(r.Speeds) != n || len(r.Depths) != n {
		return pipeline.Config{}, badParam(
			"chorus",
			"per-voice arrays must be of equal length: %d delays, %d decays, %d speeds, %d depths",
			n, len(r.Decays), len(r.Speeds), len(r.Depths),
		)
	}
	if r.InGain <= 0 || r.InGain > 1 || r.OutGain <= 0 || r.OutGain > 1 {
		return pipeline.Config{}, badParam("chorus", "gains must be in (0, 1], got in=%v out=%v", r.InGain, r.OutGain)
	}
	desc := fmt.Sprintf("chorus=%s:%s:%s:%s:%s:%s",
		fnum(r.InGain), fnum(r.OutGain),
		joinFloats(r.Delays, "|"),
		joinFloats(r.Decays, "|"),
		joinFloats(r.Speeds, "|"),
		joinFloats(r.Depths, "|"),
	)
	return audioConfig(inputURL, outputURL, desc), nil
}

// Reverb approximates room reverberation with a chain of echoes.
type Reverb struct {
	InGain  float64
	OutGain float64
	Delays  []float64 // milliseconds
	Decays  []float64
}

var _ Recipe = Reverb{}

func (r Reverb) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if len(r.Delays) == 0 || len(r.Delays) != len(r.Decays) {
		return pipeline.Config{}, badParam("reverb", "delays and decays must be of equal, nonzero length")
	}
	for _, d := range r.Delays {
		if d <= 0 {
			return pipeline.Config{}, badParam("reverb", "delays must be positive, got %v", d)
		}
	}
	desc := fmt.Sprintf("aecho=%s:%s:%s:%s",
		fnum(r.InGain), fnum(r.OutGain),
		joinFloats(r.Delays, "|"),
		joinFloats(r.Decays, "|"),
	)
	return audioConfig(inputURL, outputURL, desc), nil
}

// Flanger sweeps a short modulated delay across the signal.
type Flanger struct {
	DelayMs float64 // base delay, 0..30 ms
	DepthMs float64 // sweep depth, 0..10 ms
	Regen   float64 // feedback, -95..95 %
	SpeedHz float64 // 0.1..10 Hz
}

var _ Recipe = Flanger{}

func (r Flanger) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.DelayMs < 0 || r.DelayMs > 30 {
		return pipeline.Config{}, badParam("flanger", "delay must be in [0, 30] ms, got %v", r.DelayMs)
	}
	if r.DepthMs < 0 || r.DepthMs > 10 {
		return pipeline.Config{}, badParam("flanger", "depth must be in [0, 10] ms, got %v", r.DepthMs)
	}
	if r.Regen < -95 || r.Regen > 95 {
		return pipeline.Config{}, badParam("flanger", "regen must be in [-95, 95], got %v", r.Regen)
	}
	if r.SpeedHz < 0.1 || r.SpeedHz > 10 {
		return pipeline.Config{}, badParam("flanger", "speed must be in [0.1, 10] Hz, got %v", r.SpeedHz)
	}
	desc := fmt.Sprintf("flanger=delay=%s:depth=%s:regen=%s:speed=%s",
		fnum(r.DelayMs), fnum(r.DepthMs), fnum(r.Regen), fnum(r.SpeedHz))
	return audioConfig(inputURL, outputURL, desc), nil
}

// Tremolo modulates the amplitude with a sine LFO.
type Tremolo struct {
	FrequencyHz float64
	Depth       float64 // 0..1
}

var _ Recipe = Tremolo{}

func (r Tremolo) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.FrequencyHz <= 0 {
		return pipeline.Config{}, badParam("tremolo", "frequency must be positive, got %v", r.FrequencyHz)
	}
	if r.Depth <= 0 || r.Depth > 1 {
		return pipeline.Config{}, badParam("tremolo", "depth must be in (0, 1], got %v", r.Depth)
	}
	desc := fmt.Sprintf("tremolo=f=%s:d=%s", fnum(r.FrequencyHz), fnum(r.Depth))
	return audioConfig(inputURL, outputURL, desc), nil
}

// Phaser sweeps notches through the spectrum.
type Phaser struct {
	InGain  float64
	OutGain float64
	DelayMs float64 // 0..5 ms
	Decay   float64 // 0..0.99
	SpeedHz float64
}

var _ Recipe = Phaser{}

func (r Phaser) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.DelayMs <= 0 || r.DelayMs > 5 {
		return pipeline.Config{}, badParam("phaser", "delay must be in (0, 5] ms, got %v", r.DelayMs)
	}
	if r.Decay <= 0 || r.Decay >= 1 {
		return pipeline.Config{}, badParam("phaser", "decay must be in (0, 1), got %v", r.Decay)
	}
	if r.SpeedHz <= 0 {
		return pipeline.Config{}, badParam("phaser", "speed must be positive, got %v", r.SpeedHz)
	}
	desc := fmt.Sprintf("aphaser=in_gain=%s:out_gain=%s:delay=%s:decay=%s:speed=%s",
		fnum(r.InGain), fnum(r.OutGain), fnum(r.DelayMs), fnum(r.Decay), fnum(r.SpeedHz))
	return audioConfig(inputURL, outputURL, desc), nil
}

// Distortion boosts the signal into a hard limiter, producing clipping
// harmonics. The drive is clamped to [0, 20] dB.
type Distortion struct {
	DriveDB float64
}

var _ Recipe = Distortion{}

func (r Distortion) Config(inputURL, outputURL string) (pipeline.Config, error) {
	drive := r.DriveDB
	if drive < 0 {
		drive = 0
	}
	if drive > 20 {
		drive = 20
	}
	desc := fmt.Sprintf("volume=%sdB,alimiter=limit=0.9:level=false", fnum(drive))
	return audioConfig(inputURL, outputURL, desc), nil
}

// Delay echoes each channel after a fixed interval.
type Delay struct {
	PerChannel []time.Duration
}

var _ Recipe = Delay{}

func (r Delay) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if len(r.PerChannel) == 0 {
		return pipeline.Config{}, badParam("delay", "at least one channel delay is required")
	}
	parts := make([]string, len(r.PerChannel))
	for i, d := range r.PerChannel {
		if d <= 0 {
			return pipeline.Config{}, badParam("delay", "delays must be positive, got %v", d)
		}
		parts[i] = fmt.Sprintf("%d", d.Milliseconds())
	}
	desc := fmt.Sprintf("adelay=%s:all=1", strings.Join(parts, "|"))
	return audioConfig(inputURL, outputURL, desc), nil
}

// Pitch shifts the pitch by a factor without changing the duration:
// asetrate moves both pitch and tempo, atempo compensates the tempo.
// The factor is clamped to [0.25, 4.0].
type Pitch struct {
	Factor     float64
	SampleRate int // input sample rate; 0 assumes 44100
}

var _ Recipe = Pitch{}

func (r Pitch) Config(inputURL, outputURL string) (pipeline.Config, error) {
	if r.Factor <= 0 {
		return pipeline.Config{}, badParam("pitch", "factor must be positive, got %v", r.Factor)
	}
	factor := r.Factor
	if factor < 0.25 {
		factor = 0.25
	}
	if factor > 4.0 {
		factor = 4.0
	}
	rate := r.SampleRate
	if rate == 0 {
		rate = 44100
	}
	desc := fmt.Sprintf("asetrate=%d,%s,aresample=%d",
		int(float64(rate)*factor), atempoChain(1/factor), rate)
	return audioConfig(inputURL, outputURL, desc), nil
}

// atempoChain expresses an arbitrary tempo factor in [0.25, 4.0] as a
// chain of atempo instances, each within the filter's [0.5, 2.0] range.
func atempoChain(tempo float64) string {
	var parts []string
	for tempo < 0.5 {
		parts = append(parts, "atempo=0.5")
		tempo /= 0.5
	}
	for tempo > 2.0 {
		parts = append(parts, "atempo=2")
		tempo /= 2.0
	}
	parts = append(parts, "atempo="+fnum(tempo))
	return strings.Join(parts, ",")
}
