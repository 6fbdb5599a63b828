// Package scaler converts video frames between pixel formats and sizes.
// The pipeline driver places one between the decoder and the encoder when
// no filter graph is in use; inside a graph the `scale` node subsumes it.
package scaler

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/helpers/closuresignaler"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/resource"
	"github.com/xaionaro-go/avkitchen/types"
)

type Scaler struct {
	*astiav.SoftwareScaleContext
	*closuresignaler.ClosureSignaler

	Registry *resource.Registry
}

func New(
	ctx context.Context,
	src types.Resolution,
	srcPixFmt astiav.PixelFormat,
	dst types.Resolution,
	dstPixFmt astiav.PixelFormat,
	opts ...astiav.SoftwareScaleContextFlag,
) (*Scaler, error) {
	if len(opts) == 0 {
		opts = []astiav.SoftwareScaleContextFlag{astiav.SoftwareScaleContextFlagBilinear}
	}
	registry := resource.NewRegistry()
	swsCtx, err := registry.SoftwareScaleContext(
		ctx,
		int(src.Width), int(src.Height), srcPixFmt,
		int(dst.Width), int(dst.Height), dstPixFmt,
		astiav.NewSoftwareScaleContextFlags(opts...),
	)
	if err != nil {
		_ = registry.Close(ctx)
		return nil, err
	}
	return &Scaler{
		SoftwareScaleContext: swsCtx,
		ClosureSignaler:      closuresignaler.New(),
		Registry:             registry,
	}, nil
}

func (s *Scaler) String() string {
	return fmt.Sprintf(
		"Scaler(%dx%d:%s -> %dx%d:%s)",
		s.SoftwareScaleContext.SourceWidth(),
		s.SoftwareScaleContext.SourceHeight(),
		s.SoftwareScaleContext.SourcePixelFormat(),
		s.SoftwareScaleContext.DestinationWidth(),
		s.SoftwareScaleContext.DestinationHeight(),
		s.SoftwareScaleContext.DestinationPixelFormat(),
	)
}

func (s *Scaler) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	var err error
	if !s.IsClosed() {
		err = s.Registry.Close(ctx)
	}
	s.ClosureSignaler.Close(ctx)
	return err
}

// ScaleFrame converts src into dst, carrying the presentation timestamp
// over.
func (s *Scaler) ScaleFrame(
	ctx context.Context,
	src *astiav.Frame,
	dst *astiav.Frame,
) (_err error) {
	logger.Tracef(ctx, "ScaleFrame")
	defer logger.Tracef(ctx, "/ScaleFrame: %v", _err)
	if s.IsClosed() {
		return fmt.Errorf("scaler is closed")
	}
	if err := s.SoftwareScaleContext.ScaleFrame(src, dst); err != nil {
		return averror.E(averror.KindMalformed, "scale_frame", err)
	}
	dst.SetPts(src.Pts())
	return nil
}
