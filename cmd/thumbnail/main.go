package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	width := pflag.Int("width", 320, "thumbnail width")
	height := pflag.Int("height", 180, "thumbnail height")

	climain.Run("<input> <output.jpg>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Thumbnail{
			Width:  *width,
			Height: *height,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
