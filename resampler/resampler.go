// Package resampler converts audio frames between sample rates, formats
// and channel layouts. An AudioFifo between the convert and the read
// sides absorbs the difference between what one convert call produces
// (fewer samples than requested while the context is priming, more while
// it is catching up) and the fixed chunk size the consumer demands.
package resampler

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/resource"
)

type Resampler struct {
	Registry                *resource.Registry
	AudioFifo               *astiav.AudioFifo
	SoftwareResampleContext *astiav.SoftwareResampleContext
	FormatInput             *codec.PCMAudioFormat
	FormatOutput            codec.PCMAudioFormat
	ResampledFrame          *astiav.Frame

	flushed bool
}

func New(
	ctx context.Context,
	out codec.PCMAudioFormat,
) (_ret *Resampler, _err error) {
	logger.Tracef(ctx, "New: %+v", out)
	defer func() { logger.Tracef(ctx, "/New: %v %v", _ret, _err) }()

	registry := resource.NewRegistry()
	defer func() {
		if _err != nil {
			_ = registry.Close(ctx)
		}
	}()

	fifo, err := registry.AudioFifo(ctx, out.SampleFormat, out.ChannelLayout.Channels(), out.ChunkSize)
	if err != nil {
		return nil, err
	}
	swrCtx, err := registry.SoftwareResampleContext(ctx)
	if err != nil {
		return nil, err
	}

	resampledFrame, err := registry.Frame(ctx)
	if err != nil {
		return nil, err
	}
	resampledFrame.SetNbSamples(out.ChunkSize)
	resampledFrame.SetChannelLayout(out.ChannelLayout)
	resampledFrame.SetSampleFormat(out.SampleFormat)
	resampledFrame.SetSampleRate(out.SampleRate)
	if err := resampledFrame.AllocBuffer(0); err != nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_frame_buffer", err)
	}

	return &Resampler{
		Registry:                registry,
		AudioFifo:               fifo,
		SoftwareResampleContext: swrCtx,
		FormatOutput:            out,
		ResampledFrame:          resampledFrame,
	}, nil
}

func (r *Resampler) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()

	err := r.Registry.Close(ctx)
	r.AudioFifo = nil
	r.SoftwareResampleContext = nil
	r.ResampledFrame = nil
	return err
}

func (r *Resampler) String() string {
	return fmt.Sprintf("Resampler<%s>", r.FormatOutput)
}

// SendFrame converts one input frame and queues whatever the convert
// call actually produced; the produced sample count routinely differs
// from in.NbSamples() and must not be assumed.
func (r *Resampler) SendFrame(
	ctx context.Context,
	in *astiav.Frame,
) (_err error) {
	logger.Tracef(ctx, "SendFrame: %d", in.NbSamples())
	defer func() { logger.Tracef(ctx, "/SendFrame: %v", _err) }()

	inFormat := codec.PCMAudioFormatFromFrame(in)
	if r.FormatInput == nil {
		r.FormatInput = inFormat
	} else if !sameSource(*r.FormatInput, *inFormat) {
		return fmt.Errorf("input frame format changed from %s to %s: %w",
			r.FormatInput, inFormat, astiav.ErrInputChanged)
	}

	if err := r.SoftwareResampleContext.ConvertFrame(in, r.ResampledFrame); err != nil {
		return averror.E(averror.KindMalformed, "convert_frame", err)
	}

	if nbSamples := r.ResampledFrame.NbSamples(); nbSamples == 0 {
		return nil
	}

	if _, err := r.AudioFifo.Write(r.ResampledFrame); err != nil {
		return averror.E(averror.KindResourceExhausted, "audio_fifo_write", err)
	}
	return nil
}

// sameSource compares everything but the chunk size: varying per-frame
// sample counts are normal, a rate/format/layout change is not.
func sameSource(a, b codec.PCMAudioFormat) bool {
	return a.SampleFormat == b.SampleFormat &&
		a.SampleRate == b.SampleRate &&
		a.ChannelLayout.Equal(b.ChannelLayout)
}

func (r *Resampler) receiveFrame(
	ctx context.Context,
	outputFrame *astiav.Frame,
	minSize int,
) (_err error) {
	logger.Tracef(ctx, "receiveFrame: %d", minSize)
	defer func() { logger.Tracef(ctx, "/receiveFrame: %v", _err) }()

	if r.AudioFifo.Size() == 0 {
		return astiav.ErrEof
	}
	if r.AudioFifo.Size() < minSize {
		return astiav.ErrEagain
	}

	outputFrame.SetNbSamples(r.FormatOutput.ChunkSize)
	n, err := r.AudioFifo.Read(outputFrame)
	if err != nil {
		return averror.E(averror.KindIo, "audio_fifo_read", err)
	}
	outputFrame.SetNbSamples(n)
	return nil
}

// ReceiveFrame reads one full chunk; astiav.ErrEagain when fewer than a
// chunk is pending, astiav.ErrEof when the FIFO is empty.
func (r *Resampler) ReceiveFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	return r.receiveFrame(ctx, f, r.FormatOutput.ChunkSize)
}

// Flush first drains the samples held back inside the resample context (a
// rate conversion buffers up to its delay), then serves the pending tail
// regardless of the chunk size.
func (r *Resampler) Flush(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if !r.flushed {
		r.flushed = true
		if r.FormatInput != nil {
			if err := r.drainConverter(ctx); err != nil {
				return err
			}
		}
	}
	return r.receiveFrame(ctx, f, 0)
}

// drainConverter pulls the converter's internal delay buffer into the
// FIFO by converting with no input until nothing comes out.
func (r *Resampler) drainConverter(ctx context.Context) (_err error) {
	logger.Tracef(ctx, "drainConverter")
	defer func() { logger.Tracef(ctx, "/drainConverter: %v", _err) }()

	for {
		r.ResampledFrame.SetNbSamples(r.FormatOutput.ChunkSize)
		if err := r.SoftwareResampleContext.ConvertFrame(nil, r.ResampledFrame); err != nil {
			return averror.E(averror.KindMalformed, "convert_frame", err)
		}
		if r.ResampledFrame.NbSamples() == 0 {
			return nil
		}
		if _, err := r.AudioFifo.Write(r.ResampledFrame); err != nil {
			return averror.E(averror.KindResourceExhausted, "audio_fifo_write", err)
		}
	}
}
