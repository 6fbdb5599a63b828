package filtergraph

import (
	"errors"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/types"
)

func TestSourceName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "in", SourceName(0, 1))
	require.Equal(t, "in0", SourceName(0, 2))
	require.Equal(t, "in1", SourceName(1, 2))
	require.Equal(t, "in2", SourceName(2, 3))
}

func TestAssembleDescription(t *testing.T) {
	t.Parallel()

	video := []SourceParams{{Kind: types.MediaKindVideo}}
	audio := []SourceParams{{Kind: types.MediaKindAudio}}

	require.Equal(t, "null", assembleDescription(Spec{Sources: video}))
	require.Equal(t, "anull", assembleDescription(Spec{Sources: audio}))
	require.Equal(t,
		"scale=640:480",
		assembleDescription(Spec{Sources: video, Description: "scale=640:480"}),
	)
	require.Equal(t,
		"scale=640:480,format=pix_fmts=yuv420p",
		assembleDescription(Spec{
			Sources:             video,
			Description:         " scale=640:480 ",
			SinkPixelFormatName: "yuv420p",
		}),
	)
	require.Equal(t,
		"anull,aformat=sample_fmts=s16",
		assembleDescription(Spec{Sources: audio, SinkSampleFormatName: "s16"}),
	)
}

func TestCheckFrameFormat(t *testing.T) {
	t.Parallel()

	g := &Graph{Sources: []SourceParams{
		{
			Kind:        types.MediaKindVideo,
			Width:       640,
			Height:      360,
			PixelFormat: astiav.PixelFormatYuv420P,
		},
		{
			Kind:          types.MediaKindAudio,
			SampleRate:    44100,
			SampleFormat:  astiav.SampleFormatFltp,
			ChannelLayout: astiav.ChannelLayoutStereo,
		},
	}}

	v := astiav.AllocFrame()
	defer v.Free()
	v.SetWidth(640)
	v.SetHeight(360)
	v.SetPixelFormat(astiav.PixelFormatYuv420P)
	require.NoError(t, g.checkFrameFormat(0, v))

	v.SetWidth(1280)
	v.SetHeight(720)
	err := g.checkFrameFormat(0, v)
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.Malformed))

	a := astiav.AllocFrame()
	defer a.Free()
	a.SetSampleRate(44100)
	a.SetSampleFormat(astiav.SampleFormatFltp)
	a.SetChannelLayout(astiav.ChannelLayoutStereo)
	require.NoError(t, g.checkFrameFormat(1, a))

	a.SetSampleRate(48000)
	err = g.checkFrameFormat(1, a)
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.Malformed))
}
