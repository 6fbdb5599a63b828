package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	threshold := pflag.Float64("threshold", 0.125, "gate threshold, (0, 1]")
	ratio := pflag.Float64("ratio", 2, "reduction ratio, >= 1")
	attack := pflag.Duration("attack", 0, "attack time; 0 keeps the filter default")
	release := pflag.Duration("release", 0, "release time; 0 keeps the filter default")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Gate{
			Threshold: *threshold,
			Ratio:     *ratio,
			Attack:    *attack,
			Release:   *release,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
