package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	preset := pflag.String("preset", "", "named parameter bundle; overrides the scalar flags")
	integrated := pflag.Float64("integrated", -24, "target integrated loudness, LUFS")
	truePeak := pflag.Float64("true-peak", -2, "true peak ceiling, dBTP")
	lra := pflag.Float64("lra", 7, "target loudness range, LU")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		var r recipe.Normalize
		if *preset != "" {
			var err error
			r, err = recipe.NormalizePreset(*preset)
			if err != nil {
				return err
			}
		} else {
			r = recipe.Normalize{
				IntegratedLUFS: *integrated,
				TruePeakDB:     *truePeak,
				LoudnessRange:  *lra,
			}
		}
		cfg, err := r.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
