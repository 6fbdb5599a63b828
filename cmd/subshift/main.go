package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/subtitle"
)

func main() {
	delta := pflag.Duration("delta", 0, "how much to shift the cues; negative shifts backwards, clamped at 0")
	format := pflag.String("format", "srt", "output format: srt, vtt or ass")

	climain.Run("<input.srt> <output>", 2, func(ctx context.Context, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return averror.E(averror.KindNotFound, "open_subtitles", err)
		}
		defer in.Close()

		cues, err := subtitle.ParseSRT(in)
		if err != nil {
			return err
		}
		cues = subtitle.Shift(cues, *delta)

		out, err := os.Create(args[1])
		if err != nil {
			return averror.E(averror.KindIo, "create_output", err)
		}
		defer out.Close()

		switch *format {
		case "srt":
			err = subtitle.RenderSRT(out, cues)
		case "vtt":
			err = subtitle.RenderWebVTT(out, cues)
		case "ass":
			err = subtitle.RenderASS(out, cues)
		default:
			return averror.Errorf(averror.KindBadParameter, "render_subtitles", "unknown format '%s'", *format)
		}
		if err != nil {
			return err
		}
		return out.Close()
	})
}
