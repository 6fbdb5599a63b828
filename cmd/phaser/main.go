package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	inGain := pflag.Float64("in-gain", 0.4, "input gain")
	outGain := pflag.Float64("out-gain", 0.74, "output gain")
	delay := pflag.Float64("delay", 3, "base delay, (0, 5] ms")
	decay := pflag.Float64("decay", 0.4, "decay, (0, 1)")
	speed := pflag.Float64("speed", 0.5, "modulation speed, Hz")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Phaser{
			InGain:  *inGain,
			OutGain: *outGain,
			DelayMs: *delay,
			Decay:   *decay,
			SpeedHz: *speed,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
