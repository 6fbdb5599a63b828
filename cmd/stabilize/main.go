package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	shakiness := pflag.Int("shakiness", 5, "how shaky the footage is, [1, 10]")
	smoothing := pflag.Int("smoothing", 10, "number of frames used for camera-path smoothing")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		return recipe.Stabilize{
			Shakiness: *shakiness,
			Smoothing: *smoothing,
		}.Run(ctx, args[0], args[1])
	})
}
