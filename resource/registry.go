// Package resource implements the scoped ownership of libav objects:
// everything allocated during a pipeline run is registered here and
// released in reverse order on all exit paths.
package resource

import (
	"context"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/logger"
)

type Registry struct {
	closer *astikit.Closer
}

func NewRegistry() *Registry {
	return &Registry{
		closer: astikit.NewCloser(),
	}
}

// Add registers an arbitrary release callback.
func (r *Registry) Add(fn func()) {
	r.closer.Add(fn)
}

// AddWithError registers a release callback whose error is collected by Close.
func (r *Registry) AddWithError(fn func() error) {
	r.closer.AddWithError(fn)
}

// Close releases every registered resource in reverse acquisition order.
// Safe to call more than once.
func (r *Registry) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close") }()
	return r.closer.Close()
}

func (r *Registry) Frame(ctx context.Context) (*astiav.Frame, error) {
	f := astiav.AllocFrame()
	if f == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_frame", nil)
	}
	r.closer.Add(f.Free)
	return f, nil
}

func (r *Registry) FormatContext(ctx context.Context) (*astiav.FormatContext, error) {
	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_format_context", nil)
	}
	r.closer.Add(fc.Free)
	return fc, nil
}

// TrackInputOpen registers the CloseInput of a successfully opened input
// container (CloseInput must not be called on a container that never opened).
func (r *Registry) TrackInputOpen(fc *astiav.FormatContext) {
	r.closer.Add(fc.CloseInput)
}

func (r *Registry) CodecContext(ctx context.Context, c *astiav.Codec) (*astiav.CodecContext, error) {
	cc := astiav.AllocCodecContext(c)
	if cc == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_codec_context", nil)
	}
	r.closer.Add(cc.Free)
	return cc, nil
}

func (r *Registry) FilterGraph(ctx context.Context) (*astiav.FilterGraph, error) {
	g := astiav.AllocFilterGraph()
	if g == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_filter_graph", nil)
	}
	r.closer.Add(g.Free)
	return g, nil
}

func (r *Registry) FilterInOut(ctx context.Context) (*astiav.FilterInOut, error) {
	io := astiav.AllocFilterInOut()
	if io == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_filter_inout", nil)
	}
	r.closer.Add(io.Free)
	return io, nil
}

func (r *Registry) SoftwareScaleContext(
	ctx context.Context,
	srcW, srcH int, srcFmt astiav.PixelFormat,
	dstW, dstH int, dstFmt astiav.PixelFormat,
	flags astiav.SoftwareScaleContextFlags,
) (*astiav.SoftwareScaleContext, error) {
	sws, err := astiav.CreateSoftwareScaleContext(srcW, srcH, srcFmt, dstW, dstH, dstFmt, flags)
	if err != nil {
		return nil, averror.E(averror.KindResourceExhausted, "create_software_scale_context", err)
	}
	r.closer.Add(sws.Free)
	return sws, nil
}

func (r *Registry) SoftwareResampleContext(ctx context.Context) (*astiav.SoftwareResampleContext, error) {
	swr := astiav.AllocSoftwareResampleContext()
	if swr == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_software_resample_context", nil)
	}
	r.closer.Add(swr.Free)
	return swr, nil
}

func (r *Registry) AudioFifo(
	ctx context.Context,
	sampleFormat astiav.SampleFormat,
	channels int,
	nbSamples int,
) (*astiav.AudioFifo, error) {
	fifo := astiav.AllocAudioFifo(sampleFormat, channels, nbSamples)
	if fifo == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_audio_fifo", nil)
	}
	r.closer.Add(fifo.Free)
	return fifo, nil
}

func (r *Registry) HardwareDeviceContext(
	ctx context.Context,
	deviceType astiav.HardwareDeviceType,
	deviceName string,
	options *astiav.Dictionary,
) (*astiav.HardwareDeviceContext, error) {
	hdc, err := astiav.CreateHardwareDeviceContext(deviceType, deviceName, options, 0)
	if err != nil {
		return nil, averror.E(averror.KindHardwareUnavailable, "create_hardware_device_context", err)
	}
	r.closer.Add(hdc.Free)
	return hdc, nil
}
