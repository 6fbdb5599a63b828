package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type seekBuffer struct {
	data []byte
	pos  int
}

var _ io.WriteSeeker = (*seekBuffer)(nil)

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		b.data = append(b.data, make([]byte, need-len(b.data))...)
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		b.pos = int(offset)
	case io.SeekCurrent:
		b.pos += int(offset)
	case io.SeekEnd:
		b.pos = len(b.data) + int(offset)
	}
	return int64(b.pos), nil
}

func TestWriterHeader(t *testing.T) {
	t.Parallel()

	buf := &seekBuffer{}
	w, err := NewWriter(buf, 2, 44100)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples([]int16{0, 1, -1, 32767, -32768, 100}))
	require.NoError(t, w.Close())

	h := buf.data
	require.Len(t, h, 44+12)

	require.Equal(t, "RIFF", string(h[0:4]))
	require.Equal(t, uint32(44-8+12), binary.LittleEndian.Uint32(h[4:8]))
	require.Equal(t, "WAVE", string(h[8:12]))
	require.Equal(t, "fmt ", string(h[12:16]))
	require.Equal(t, uint32(16), binary.LittleEndian.Uint32(h[16:20]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(h[20:22]))
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16(h[22:24]))
	require.Equal(t, uint32(44100), binary.LittleEndian.Uint32(h[24:28]))
	require.Equal(t, uint32(44100*2*2), binary.LittleEndian.Uint32(h[28:32]))
	require.Equal(t, uint16(4), binary.LittleEndian.Uint16(h[32:34]))
	require.Equal(t, uint16(16), binary.LittleEndian.Uint16(h[34:36]))
	require.Equal(t, "data", string(h[36:40]))
	require.Equal(t, uint32(12), binary.LittleEndian.Uint32(h[40:44]))

	require.True(t, bytes.Equal(
		[]byte{0, 0, 1, 0, 0xff, 0xff, 0xff, 0x7f, 0x00, 0x80, 100, 0},
		h[44:],
	))
}

func TestWriterEmpty(t *testing.T) {
	t.Parallel()

	buf := &seekBuffer{}
	w, err := NewWriter(buf, 1, 8000)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Len(t, buf.data, 44)
	require.Equal(t, uint32(36), binary.LittleEndian.Uint32(buf.data[4:8]))
	require.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf.data[40:44]))
}

func TestWriterRejectsBadParams(t *testing.T) {
	t.Parallel()

	_, err := NewWriter(&seekBuffer{}, 0, 44100)
	require.Error(t, err)
	_, err = NewWriter(&seekBuffer{}, 2, 0)
	require.Error(t, err)
}

func TestWriteAfterClose(t *testing.T) {
	t.Parallel()

	buf := &seekBuffer{}
	w, err := NewWriter(buf, 1, 8000)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	_, err = w.Write([]byte{1, 2})
	require.Error(t, err)
	require.NoError(t, w.Close())
}
