// Package wav writes canonical RIFF/WAVE files with 16-bit little-endian
// PCM payloads. The 44-byte header is written up-front with placeholder
// sizes and patched on Close, so the destination must be seekable.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	headerSize     = 44
	pcmFormatTag   = 1
	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
)

type Writer struct {
	dst        io.WriteSeeker
	channels   uint16
	sampleRate uint32
	dataBytes  uint32
	closed     bool
}

// NewWriter writes the header immediately; sample data follows via Write.
func NewWriter(dst io.WriteSeeker, channels int, sampleRate int) (*Writer, error) {
	if channels <= 0 || channels > 0xffff {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	w := &Writer{
		dst:        dst,
		channels:   uint16(channels),
		sampleRate: uint32(sampleRate),
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader() error {
	var buf [headerSize]byte
	blockAlign := w.channels * bytesPerSample
	byteRate := w.sampleRate * uint32(blockAlign)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], headerSize-8+w.dataBytes)
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], pcmFormatTag)
	binary.LittleEndian.PutUint16(buf[22:24], w.channels)
	binary.LittleEndian.PutUint32(buf[24:28], w.sampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], byteRate)
	binary.LittleEndian.PutUint16(buf[32:34], blockAlign)
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], w.dataBytes)

	_, err := w.dst.Write(buf[:])
	return err
}

// Write appends raw interleaved 16-bit little-endian PCM bytes.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("the writer is closed")
	}
	n, err := w.dst.Write(p)
	w.dataBytes += uint32(n)
	return n, err
}

// WriteSamples appends interleaved samples.
func (w *Writer) WriteSamples(samples []int16) error {
	buf := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample:], uint16(s))
	}
	_, err := w.Write(buf)
	return err
}

// Close seeks back and patches the RIFF and data chunk sizes. It does
// not close the underlying destination.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	_, err := w.dst.Seek(int64(headerSize+w.dataBytes), io.SeekStart)
	return err
}
