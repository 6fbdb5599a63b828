package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/recipe"
	"github.com/xaionaro-go/avkitchen/types"
)

func main() {
	kind := pflag.String("kind", "video", "media kind to process: video or audio")
	codec := pflag.String("codec", "", "encoder name (e.g. libx264, aac); empty inherits the container default")
	bitRate := pflag.Int64("bitrate", 0, "target bit rate in bits/s; 0 leaves it to the encoder")
	width := pflag.Int("width", 0, "target width; 0 keeps the source resolution")
	height := pflag.Int("height", 0, "target height; 0 keeps the source resolution")
	dropAudio := pflag.Bool("drop-audio", false, "do not carry the audio stream over when transcoding video")

	climain.Run("<input> <output>", 2, func(ctx context.Context, args []string) error {
		kindV, err := types.MediaKindFromString(*kind)
		if err != nil {
			return averror.E(averror.KindBadParameter, "parse_kind", err)
		}
		cfg, err := recipe.Transcode{
			Kind:      kindV,
			CodecName: *codec,
			BitRate:   *bitRate,
			Width:     *width,
			Height:    *height,
			DropAudio: *dropAudio,
		}.Config(args[0], args[1])
		if err != nil {
			return err
		}
		return climain.RunPipeline(ctx, cfg)
	})
}
