package types

import (
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
)

func TestMediaKindRoundTrip(t *testing.T) {
	t.Parallel()

	for kind := MediaKindUndefined + 1; kind < EndOfMediaKind; kind++ {
		parsed, err := MediaKindFromString(kind.String())
		require.NoError(t, err, kind.String())
		require.Equal(t, kind, parsed)
	}

	_, err := MediaKindFromString("nope")
	require.Error(t, err)
}

func TestMediaKindMediaType(t *testing.T) {
	t.Parallel()

	require.Equal(t, astiav.MediaTypeVideo, MediaKindVideo.MediaType())
	require.Equal(t, astiav.MediaTypeAudio, MediaKindAudio.MediaType())
	require.Equal(t, astiav.MediaTypeSubtitle, MediaKindSubtitle.MediaType())
	require.Equal(t, MediaKindVideo, MediaKindFromMediaType(astiav.MediaTypeVideo))
	require.Equal(t, MediaKindAudio, MediaKindFromMediaType(astiav.MediaTypeAudio))
	require.Equal(t, MediaKindUndefined, MediaKindFromMediaType(astiav.MediaTypeData))
}
