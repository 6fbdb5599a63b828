package types

import (
	"github.com/asticode/go-astiav"
)

type Resolution struct {
	Width  uint32
	Height uint32
}

// StreamDescriptor is a snapshot of one input stream, taken at container
// open time. Immutable once read.
type StreamDescriptor struct {
	Index    int
	Kind     MediaKind
	CodecID  astiav.CodecID
	TimeBase astiav.Rational

	// video
	Resolution        Resolution
	PixelFormat       astiav.PixelFormat
	SampleAspectRatio astiav.Rational
	FrameRate         astiav.Rational

	// audio
	SampleRate    int
	ChannelLayout astiav.ChannelLayout
	SampleFormat  astiav.SampleFormat
}

func StreamDescriptorFromStream(st *astiav.Stream) StreamDescriptor {
	cp := st.CodecParameters()
	d := StreamDescriptor{
		Index:    st.Index(),
		Kind:     MediaKindFromMediaType(cp.MediaType()),
		CodecID:  cp.CodecID(),
		TimeBase: st.TimeBase(),
	}
	switch d.Kind {
	case MediaKindVideo:
		d.Resolution = Resolution{
			Width:  uint32(cp.Width()),
			Height: uint32(cp.Height()),
		}
		d.PixelFormat = cp.PixelFormat()
		d.SampleAspectRatio = cp.SampleAspectRatio()
		d.FrameRate = st.AvgFrameRate()
	case MediaKindAudio:
		d.SampleRate = cp.SampleRate()
		d.ChannelLayout = cp.ChannelLayout()
		d.SampleFormat = cp.SampleFormat()
	}
	return d
}
