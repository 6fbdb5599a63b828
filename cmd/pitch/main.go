package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	factor := pflag.Float64("factor", 1.0, "pitch factor; clamped to [0.25, 4.0]")
	sampleRate := pflag.Int("sample-rate", 44100, "input sample rate")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Pitch{
			Factor:     *factor,
			SampleRate: *sampleRate,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
