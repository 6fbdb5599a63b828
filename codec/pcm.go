package codec

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// PCMAudioFormat describes an uncompressed audio stream shape; the
// resampler converts towards one of these.
type PCMAudioFormat struct {
	SampleFormat  astiav.SampleFormat
	SampleRate    int
	ChannelLayout astiav.ChannelLayout
	ChunkSize     int
}

func (f PCMAudioFormat) Equal(other PCMAudioFormat) bool {
	return f.SampleFormat == other.SampleFormat &&
		f.SampleRate == other.SampleRate &&
		f.ChannelLayout.Equal(other.ChannelLayout) &&
		f.ChunkSize == other.ChunkSize
}

func (f PCMAudioFormat) String() string {
	return fmt.Sprintf("%s %dHz %s chunk:%d", f.SampleFormat, f.SampleRate, f.ChannelLayout, f.ChunkSize)
}

func PCMAudioFormatFromFrame(f *astiav.Frame) *PCMAudioFormat {
	if f == nil {
		return nil
	}
	return &PCMAudioFormat{
		SampleFormat:  f.SampleFormat(),
		SampleRate:    f.SampleRate(),
		ChannelLayout: f.ChannelLayout(),
		ChunkSize:     f.NbSamples(),
	}
}
