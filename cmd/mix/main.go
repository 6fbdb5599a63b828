package main

import (
	"context"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	climain.Run("<input> <input2> [inputN...] <output>", -3, func(ctx context.Context, args []string) error {
		cfg, err := recipe.Mix{
			SecondaryInputURLs: args[1 : len(args)-1],
		}.Config(args[0], args[len(args)-1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
