// Package climain carries the boilerplate shared by the recipe CLIs:
// flag parsing, logger setup, the libav log bridge and uniform error
// rendering.
package climain

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/facebookincubator/go-belt"
	beltlogger "github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/pipeline"
)

// Run parses flags (adding the common --log-level), checks the
// positional argument count against usage, sets up logging and the
// libav log bridge, and renders the body's error on stderr with exit
// code 1. A negative positionalCount means "at least that many".
func Run(usage string, positionalCount int, body func(ctx context.Context, args []string) error) {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s %s\n", os.Args[0], usage)
		pflag.PrintDefaults()
	}

	loggerLevel := beltlogger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	pflag.Parse()
	n := len(pflag.Args())
	if (positionalCount >= 0 && n != positionalCount) ||
		(positionalCount < 0 && n < -positionalCount) {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := beltlogger.CtxWithLogger(context.Background(), l)
	beltlogger.Default = func() beltlogger.Logger {
		return l
	}

	astiav.SetLogLevel(logger.LevelToAstiav(l.Level()))
	astiav.SetLogCallback(func(c astiav.Classer, level astiav.LogLevel, format, msg string) {
		var cs string
		if c != nil {
			if cl := c.Class(); cl != nil {
				cs = " - class: " + cl.String()
			}
		}
		l.Logf(logger.LevelFromAstiav(level), "%s%s", strings.TrimSpace(msg), cs)
	})

	err := body(ctx, pflag.Args())
	belt.Flush(ctx)
	if err != nil {
		if averror.IsFFmpeg(err) {
			fmt.Fprintf(os.Stderr, "FFmpeg error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// RunPipeline executes a pipeline with a default stdout progress
// printer attached.
func RunPipeline(ctx context.Context, cfg pipeline.Config) error {
	if cfg.OnProgress == nil {
		cfg.OnProgress = func(p pipeline.Progress) {
			fmt.Printf("progress: %d frames, %d packets, %v\n", p.Frames, p.Packets, p.Position.Truncate(10*time.Millisecond))
		}
	}
	return pipeline.Run(ctx, cfg)
}
