package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	preset := pflag.String("preset", "", "named parameter bundle; overrides the per-voice flags")
	inGain := pflag.Float64("in-gain", 0.6, "input gain, (0, 1]")
	outGain := pflag.Float64("out-gain", 0.9, "output gain, (0, 1]")
	delays := pflag.Float64Slice("delays", []float64{50, 70}, "per-voice delays, ms")
	decays := pflag.Float64Slice("decays", []float64{0.4, 0.5}, "per-voice decays")
	speeds := pflag.Float64Slice("speeds", []float64{0.5, 0.6}, "per-voice LFO speeds, Hz")
	depths := pflag.Float64Slice("depths", []float64{2, 2.3}, "per-voice depths, ms")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		var r recipe.Chorus
		if *preset != "" {
			var err error
			r, err = recipe.ChorusPreset(*preset)
			if err != nil {
				return err
			}
		} else {
			r = recipe.Chorus{
				InGain:  *inGain,
				OutGain: *outGain,
				Delays:  *delays,
				Decays:  *decays,
				Speeds:  *speeds,
				Depths:  *depths,
			}
		}
		cfg, err := r.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
