package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	frequency := pflag.Float64("frequency", 5, "LFO frequency, Hz")
	depth := pflag.Float64("depth", 0.5, "modulation depth, (0, 1]")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Tremolo{
			FrequencyHz: *frequency,
			Depth:       *depth,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
