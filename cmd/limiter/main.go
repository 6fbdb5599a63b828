package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	preset := pflag.String("preset", "", "named parameter bundle; overrides the scalar flags")
	limit := pflag.Float64("limit", 0.9, "ceiling, (0, 1]")
	attack := pflag.Duration("attack", 0, "attack time; 0 keeps the filter default")
	release := pflag.Duration("release", 0, "release time; 0 keeps the filter default")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		var r recipe.Limiter
		if *preset != "" {
			var err error
			r, err = recipe.LimiterPreset(*preset)
			if err != nil {
				return err
			}
		} else {
			r = recipe.Limiter{
				Limit:   *limit,
				Attack:  *attack,
				Release: *release,
			}
		}
		cfg, err := r.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
