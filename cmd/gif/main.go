package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	preset := pflag.String("preset", "", "named parameter bundle; overrides the scalar flags")
	width := pflag.Int("width", 480, "output width")
	height := pflag.Int("height", 270, "output height")
	fps := pflag.Int("fps", 10, "output frame rate")
	maxColors := pflag.Int("max-colors", 128, "palette size, [2, 256]")

	climain.Run("<input> <output.gif>", 2, func(ctx context.Context, args []string) error {
		var r recipe.GIF
		if *preset != "" {
			var err error
			r, err = recipe.GIFPreset(*preset)
			if err != nil {
				return err
			}
		} else {
			r = recipe.GIF{
				Width:     *width,
				Height:    *height,
				FPS:       *fps,
				MaxColors: *maxColors,
			}
		}
		cfg, err := r.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
