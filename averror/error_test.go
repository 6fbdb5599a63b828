package averror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByKind(t *testing.T) {
	t.Parallel()

	err := Errorf(KindNoSuchStream, "select_stream", "no audio stream")
	require.True(t, errors.Is(err, NoSuchStream))
	require.False(t, errors.Is(err, Malformed))
	require.Equal(t, KindNoSuchStream, KindOf(err))
}

func TestKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	inner := E(KindBadParameter, "chorus", errors.New("delays and decays differ in length"))
	outer := fmt.Errorf("building the recipe: %w", inner)
	require.True(t, errors.Is(outer, BadParameter))
	require.Equal(t, KindBadParameter, KindOf(outer))
}

func TestFromFFmpegKeepsSentinels(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, FromFFmpeg("receive_frame", astiav.ErrEof), astiav.ErrEof)
	require.ErrorIs(t, FromFFmpeg("receive_frame", astiav.ErrEagain), astiav.ErrEagain)
	require.NoError(t, FromFFmpeg("receive_frame", nil))
}

func TestFromFFmpegMapsKinds(t *testing.T) {
	t.Parallel()

	require.True(t, errors.Is(FromFFmpeg("open", astiav.ErrInvaliddata), Malformed))
	require.True(t, errors.Is(FromFFmpeg("open", astiav.ErrEio), Io))
	require.True(t, errors.Is(FromFFmpeg("find", astiav.ErrDecoderNotFound), CodecUnavailable))
	require.True(t, errors.Is(FromFFmpeg("alloc", astiav.ErrMuxerNotFound), UnknownFormat))
}

func TestRendering(t *testing.T) {
	t.Parallel()

	err := E(KindUnknownFormat, "create_output", errors.New("unrecognized extension '.xyz'"))
	require.Contains(t, err.Error(), "create_output")
	require.Contains(t, err.Error(), "unknown_format")
	require.Contains(t, err.Error(), ".xyz")
}
