package main

import (
	"context"
	"fmt"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/cmd/internal/climain"
	"github.com/xaionaro-go/avkitchen/playback"
)

func main() {
	lagThreshold := pflag.Duration("lag-threshold", playback.DefaultLagThreshold, "report video frames later than this behind the audio clock")

	climain.Run("<input>", 1, func(ctx context.Context, args []string) error {
		var videoFrames, audioFrames, lags uint64
		start := time.Now()
		err := playback.Play(ctx, playback.Config{
			InputURL:     args[0],
			LagThreshold: *lagThreshold,
			OnVideoFrame: func(ctx context.Context, f *astiav.Frame) {
				videoFrames++
			},
			OnAudioFrame: func(ctx context.Context, f *astiav.Frame) {
				audioFrames++
			},
			OnLag: func(ctx context.Context, behind time.Duration) {
				lags++
				fmt.Printf("lag: video is %v behind\n", behind.Truncate(time.Millisecond))
			},
		})
		if err != nil {
			return err
		}
		fmt.Printf(
			"played %d video and %d audio frames in %v (%d lag events)\n",
			videoFrames, audioFrames, time.Since(start).Truncate(10*time.Millisecond), lags,
		)
		return nil
	})
}
