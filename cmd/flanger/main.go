package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	delay := pflag.Float64("delay", 0, "base delay, [0, 30] ms")
	depth := pflag.Float64("depth", 2, "sweep depth, [0, 10] ms")
	regen := pflag.Float64("regen", 0, "feedback, [-95, 95] %")
	speed := pflag.Float64("speed", 0.5, "sweep rate, [0.1, 10] Hz")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Flanger{
			DelayMs: *delay,
			DepthMs: *depth,
			Regen:   *regen,
			SpeedHz: *speed,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
