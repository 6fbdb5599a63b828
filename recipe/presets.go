package recipe

import (
	"sort"
	"time"

	"github.com/xaionaro-go/avkitchen/averror"
)

func lookupPreset[T any](op string, table map[string]T, name string) (T, error) {
	r, ok := table[name]
	if !ok {
		var zero T
		return zero, averror.Errorf(averror.KindNotFound, op, "unknown preset '%s' (known: %v)", name, presetNames(table))
	}
	return r, nil
}

func presetNames[T any](table map[string]T) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var chorusPresets = map[string]Chorus{
	"subtle": {
		InGain: 0.6, OutGain: 0.9,
		Delays: []float64{50, 70},
		Decays: []float64{0.4, 0.5},
		Speeds: []float64{0.5, 0.6},
		Depths: []float64{2, 2.3},
	},
	"lush": {
		InGain: 0.5, OutGain: 0.9,
		Delays: []float64{40, 60, 80},
		Decays: []float64{0.4, 0.32, 0.3},
		Speeds: []float64{0.3, 0.4, 0.5},
		Depths: []float64{2, 2.3, 1.3},
	},
}

func ChorusPreset(name string) (Chorus, error) {
	return lookupPreset("chorus_preset", chorusPresets, name)
}

func ChorusPresetNames() []string { return presetNames(chorusPresets) }

var reverbPresets = map[string]Reverb{
	"room": {
		InGain: 0.8, OutGain: 0.9,
		Delays: []float64{40, 60},
		Decays: []float64{0.4, 0.3},
	},
	"hall": {
		InGain: 0.8, OutGain: 0.9,
		Delays: []float64{1000, 1800},
		Decays: []float64{0.3, 0.25},
	},
}

func ReverbPreset(name string) (Reverb, error) {
	return lookupPreset("reverb_preset", reverbPresets, name)
}

func ReverbPresetNames() []string { return presetNames(reverbPresets) }

var gifPresets = map[string]GIF{
	"small": {Width: 480, Height: 270, FPS: 10, MaxColors: 128},
	"hq":    {Width: 960, Height: 540, FPS: 15, MaxColors: 256},
}

func GIFPreset(name string) (GIF, error) {
	return lookupPreset("gif_preset", gifPresets, name)
}

func GIFPresetNames() []string { return presetNames(gifPresets) }

var normalizePresets = map[string]Normalize{
	"broadcast": {IntegratedLUFS: -23, TruePeakDB: -1, LoudnessRange: 7},
	"podcast":   {IntegratedLUFS: -16, TruePeakDB: -1.5, LoudnessRange: 11},
	"streaming": {IntegratedLUFS: -14, TruePeakDB: -1, LoudnessRange: 7},
}

func NormalizePreset(name string) (Normalize, error) {
	return lookupPreset("normalize_preset", normalizePresets, name)
}

func NormalizePresetNames() []string { return presetNames(normalizePresets) }

var limiterPresets = map[string]Limiter{
	"soft": {Limit: 0.9, Attack: 10 * time.Millisecond, Release: 100 * time.Millisecond},
	"hard": {Limit: 0.7, Attack: 3 * time.Millisecond, Release: 40 * time.Millisecond},
}

func LimiterPreset(name string) (Limiter, error) {
	return lookupPreset("limiter_preset", limiterPresets, name)
}

func LimiterPresetNames() []string { return presetNames(limiterPresets) }
