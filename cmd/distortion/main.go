package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	drive := pflag.Float64("drive", 10, "drive gain, clamped to [0, 20] dB")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Distortion{
			DriveDB: *drive,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
