package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	preset := pflag.String("preset", "room", "named parameter bundle")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		r, err := recipe.ReverbPreset(*preset)
		if err != nil {
			return err
		}
		cfg, err := r.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
