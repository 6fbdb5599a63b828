package main

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
)

func main() {
	segmentDuration := pflag.Duration("segment-duration", 4*time.Second, "target segment duration")

	climain.Run("<input> <output.m3u8>", 2, func(ctx context.Context, args []string) error {
		cfg, err := recipe.HLS{
			SegmentDuration: *segmentDuration,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
