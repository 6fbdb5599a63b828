package resampler

import (
	"context"
	"errors"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/frame"
)

func TestSameSource(t *testing.T) {
	t.Parallel()

	a := codec.PCMAudioFormat{
		SampleFormat:  astiav.SampleFormatS16,
		SampleRate:    44100,
		ChannelLayout: astiav.ChannelLayoutStereo,
		ChunkSize:     1024,
	}
	b := a
	b.ChunkSize = 512
	require.True(t, sameSource(a, b), "chunk size is not a source property")

	b = a
	b.SampleRate = 48000
	require.False(t, sameSource(a, b))

	b = a
	b.SampleFormat = astiav.SampleFormatFltp
	require.False(t, sameSource(a, b))

	b = a
	b.ChannelLayout = astiav.ChannelLayoutMono
	require.False(t, sameSource(a, b))
}

func TestReceiveFromEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, err := New(ctx, codec.PCMAudioFormat{
		SampleFormat:  astiav.SampleFormatS16,
		SampleRate:    44100,
		ChannelLayout: astiav.ChannelLayoutStereo,
		ChunkSize:     1024,
	})
	require.NoError(t, err)
	defer func() { _ = r.Close(ctx) }()

	f := frame.Pool.Get()
	defer frame.Pool.Put(f)

	require.True(t, errors.Is(r.ReceiveFrame(ctx, f), astiav.ErrEof))

	// flushing a resampler that never saw input reports end of stream
	// without touching the converter
	require.True(t, errors.Is(r.Flush(ctx, f), astiav.ErrEof))
	require.True(t, errors.Is(r.Flush(ctx, f), astiav.ErrEof))
}

func TestFlushDrainsConverter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, err := New(ctx, codec.PCMAudioFormat{
		SampleFormat:  astiav.SampleFormatS16,
		SampleRate:    16000,
		ChannelLayout: astiav.ChannelLayoutMono,
		ChunkSize:     512,
	})
	require.NoError(t, err)
	defer func() { _ = r.Close(ctx) }()

	in := frame.Pool.Get()
	defer frame.Pool.Put(in)
	in.SetNbSamples(1024)
	in.SetSampleRate(8000)
	in.SetSampleFormat(astiav.SampleFormatS16)
	in.SetChannelLayout(astiav.ChannelLayoutMono)
	require.NoError(t, in.AllocBuffer(0))

	require.NoError(t, r.SendFrame(ctx, in))

	// a 2x rate conversion of 1024 samples must yield 2048 in total, but
	// the converter holds a tail back until it is drained on flush
	out := frame.Pool.Get()
	defer frame.Pool.Put(out)
	total := 0
	for {
		err := r.ReceiveFrame(ctx, out)
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			break
		}
		require.NoError(t, err)
		total += out.NbSamples()
		out.Unref()
	}
	for {
		err := r.Flush(ctx, out)
		if errors.Is(err, astiav.ErrEof) {
			break
		}
		require.NoError(t, err)
		total += out.NbSamples()
		out.Unref()
	}
	require.InDelta(t, 2048, total, 32)
}
