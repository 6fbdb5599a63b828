package main

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	perChannel := pflag.DurationSlice("delays", []time.Duration{500 * time.Millisecond},
		"per-channel delays; a single value applies to every channel")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Delay{
			PerChannel: *perChannel,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
