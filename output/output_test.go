package output

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
)

func TestCreateEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Create(context.Background(), "", Config{})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.UnknownFormat))
}

func TestCreateUnknownExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.no-such-extension")
	_, err := Create(context.Background(), path, Config{})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.UnknownFormat))
}

func TestFinalizeWithoutHeaderIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.mp4")
	o, err := Create(ctx, path, Config{})
	require.NoError(t, err)

	// no header was written, so no trailer must be attempted
	require.NoError(t, o.Finalize(ctx))
	require.NoError(t, o.Finalize(ctx))
	require.NoError(t, o.Close(ctx))
}

func TestAddStreamAfterHeaderIsRefused(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.mp4")
	o, err := Create(ctx, path, Config{})
	require.NoError(t, err)
	defer func() { _ = o.Close(ctx) }()

	o.headerWritten = true
	_, err = o.AddStream(ctx, codec.EncoderParams{MediaType: astiav.MediaTypeAudio})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestCloseWritesNoTrailer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.mp4")
	o, err := Create(ctx, path, Config{})
	require.NoError(t, err)

	// an aborted run closes the output without draining; the trailer of
	// the partial file must not be written
	o.headerWritten = true
	require.NoError(t, o.Close(ctx))
	require.False(t, o.trailerWritten)
}

func TestDefaultCodecIDPerFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, tc := range []struct {
		path string
		mt   astiav.MediaType
		want astiav.CodecID
	}{
		{"out.jpg", astiav.MediaTypeVideo, astiav.CodecIDMjpeg},
		{"out.gif", astiav.MediaTypeVideo, astiav.CodecIDGif},
		{"out.wav", astiav.MediaTypeAudio, astiav.CodecIDPcmS16Le},
		{"out.mp4", astiav.MediaTypeVideo, astiav.CodecIDH264},
		{"out.mp4", astiav.MediaTypeAudio, astiav.CodecIDAac},
	} {
		o, err := Create(ctx, filepath.Join(t.TempDir(), tc.path), Config{})
		require.NoError(t, err, tc.path)
		require.Equal(t, tc.want, o.defaultCodecID(tc.mt), tc.path)
		require.NoError(t, o.Close(ctx))
	}
}

func TestEnforceMonotonicDTS(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := &Stream{}
	pkt := astiav.AllocPacket()
	defer pkt.Free()

	pkt.SetDts(10)
	pkt.SetPts(12)
	s.enforceMonotonicDTS(ctx, pkt)
	require.Equal(t, int64(10), pkt.Dts())
	require.Equal(t, int64(12), pkt.Pts())

	// a regression is bumped to the last DTS, PTS shifted by the same amount
	pkt.SetDts(5)
	pkt.SetPts(7)
	s.enforceMonotonicDTS(ctx, pkt)
	require.Equal(t, int64(10), pkt.Dts())
	require.Equal(t, int64(12), pkt.Pts())

	pkt.SetDts(11)
	pkt.SetPts(13)
	s.enforceMonotonicDTS(ctx, pkt)
	require.Equal(t, int64(11), pkt.Dts())
	require.Equal(t, int64(13), pkt.Pts())
}
