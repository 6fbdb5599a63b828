package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	x := pflag.Int("x", 10, "horizontal offset of the overlay")
	y := pflag.Int("y", 10, "vertical offset of the overlay")

	climain.Run("<input> <overlay-image> <output>", 3, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Watermark{
			OverlayURL: args[1],
			X:          *x,
			Y:          *y,
		}.Config(args[0], args[2])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
