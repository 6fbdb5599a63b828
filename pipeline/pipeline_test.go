package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/types"
)

func TestRescaleTS(t *testing.T) {
	t.Parallel()

	// 90kHz -> milliseconds
	require.Equal(t, int64(1000), rescaleTS(90000, astiav.NewRational(1, 90000), astiav.NewRational(1, 1000)))
	// identity
	require.Equal(t, int64(12345), rescaleTS(12345, astiav.NewRational(1, 1000), astiav.NewRational(1, 1000)))
	// rounding to nearest
	require.Equal(t, int64(1), rescaleTS(45000, astiav.NewRational(1, 90000), astiav.NewRational(1, 1)))
	// negative timestamps round symmetrically
	require.Equal(t, int64(-1000), rescaleTS(-90000, astiav.NewRational(1, 90000), astiav.NewRational(1, 1000)))
	// NoPtsValue passes through
	require.Equal(t, astiav.NoPtsValue, rescaleTS(astiav.NoPtsValue, astiav.NewRational(1, 90000), astiav.NewRational(1, 1000)))
	// a degenerate time base leaves the value untouched
	require.Equal(t, int64(42), rescaleTS(42, astiav.Rational{}, astiav.NewRational(1, 1000)))
}

func TestTsToDuration(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.Second, tsToDuration(90000, astiav.NewRational(1, 90000)))
	require.Equal(t, 500*time.Millisecond, tsToDuration(22050, astiav.NewRational(1, 44100)))
	require.Equal(t, time.Duration(0), tsToDuration(astiav.NoPtsValue, astiav.NewRational(1, 1000)))
}

func TestProgressIntervalDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint(30), Config{Kind: types.MediaKindVideo}.progressInterval())
	require.Equal(t, uint(100), Config{Kind: types.MediaKindAudio}.progressInterval())
	require.Equal(t, uint(7), Config{Kind: types.MediaKindVideo, ProgressEveryNFrames: 7}.progressInterval())
}

func TestNeedsFilterGraph(t *testing.T) {
	t.Parallel()

	require.False(t, Config{}.needsFilterGraph())
	require.True(t, Config{FilterDescription: "anull"}.needsFilterGraph())
	require.True(t, Config{SecondaryInputURLs: []string{"logo.png"}}.needsFilterGraph())
	require.True(t, Config{SinkPixelFormatName: "yuv420p"}.needsFilterGraph())
	require.True(t, Config{SinkSampleFormatName: "fltp"}.needsFilterGraph())
}

func TestCopyKindsCannotOverlapTranscodedKind(t *testing.T) {
	t.Parallel()

	// rejected before any input is opened, so a bogus URL never gets touched
	_, err := New(context.Background(), Config{
		InputURL:  "does-not-exist.mp4",
		OutputURL: "out.mp4",
		Kind:      types.MediaKindVideo,
		CopyKinds: []types.MediaKind{types.MediaKindVideo},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.BadParameter))
}
