package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	x := pflag.Int("x", 10, "horizontal offset of the inset")
	y := pflag.Int("y", 10, "vertical offset of the inset")
	scaleDiv := pflag.Int("scale-divisor", 4, "the inset is scaled to 1/N of its size")

	climain.Run("<main-input> <inset-input> <output>", 3, func(ctx context.Context, args []string) error {
		cfg, err := recipe.PictureInPicture{
			SecondaryURL: args[1],
			X:            *x,
			Y:            *y,
			ScaleDivisor: *scaleDiv,
		}.Config(args[0], args[2])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
