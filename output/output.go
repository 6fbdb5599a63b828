// Package output implements the output stage: an output container, one
// encoder per target stream, and interleaved muxing with timestamp
// rescaling.
package output

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/resource"
	"github.com/xaionaro-go/xsync"
)

type Config struct {
	// FormatName overrides the format guessed from the path extension
	// (e.g. "hls").
	FormatName string
}

// Stream is one target stream: either encoder-backed or a copy stream
// (Encoder == nil) whose packets are remuxed as they are.
type Stream struct {
	*astiav.Stream
	Encoder *codec.Encoder

	srcTimeBase astiav.Rational
	lastDTS     int64
	lastDTSSet  bool
}

type Output struct {
	*astiav.FormatContext

	URL      string
	Registry *resource.Registry
	Streams  []*Stream

	locker          xsync.Mutex
	ioContext       *astiav.IOContext
	headerWritten   bool
	trailerWritten  bool
	ioContextClosed bool
}

// Create allocates an output container for the target path, guessing the
// muxer from the path extension unless cfg names one explicitly.
func Create(
	ctx context.Context,
	path string,
	cfg Config,
) (_ret *Output, _err error) {
	logger.Debugf(ctx, "Create('%s', %#+v)", path, cfg)
	defer func() { logger.Debugf(ctx, "/Create('%s'): %v", path, _err) }()
	if path == "" {
		return nil, averror.Errorf(averror.KindUnknownFormat, "create_output", "the provided path is empty")
	}

	registry := resource.NewRegistry()
	defer func() {
		if _err != nil {
			_ = registry.Close(ctx)
		}
	}()

	fc, err := astiav.AllocOutputFormatContext(nil, cfg.FormatName, path)
	if err != nil {
		return nil, averror.E(averror.KindUnknownFormat, "alloc_output_context", fmt.Errorf("unable to guess a format for '%s': %w", path, err))
	}
	if fc == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_output_context", nil)
	}
	registry.Add(fc.Free)

	o := &Output{
		FormatContext: fc,
		URL:           path,
		Registry:      registry,
	}

	if !fc.OutputFormat().Flags().Has(astiav.IOFormatFlagNofile) {
		ioContext, err := astiav.OpenIOContext(path, astiav.NewIOContextFlags(astiav.IOContextFlagWrite), nil, nil)
		if err != nil {
			return nil, averror.E(averror.KindIo, "open_io_context", fmt.Errorf("unable to open '%s' for writing: %w", path, err))
		}
		o.ioContext = ioContext
		registry.AddWithError(o.closeIOContext)
		fc.SetPb(ioContext)
	}
	return o, nil
}

func (o *Output) closeIOContext() error {
	if o.ioContext == nil || o.ioContextClosed {
		return nil
	}
	o.ioContextClosed = true
	return o.ioContext.Close()
}

func (o *Output) String() string {
	return fmt.Sprintf("Output(%s)", o.URL)
}

// AddStream allocates a new stream backed by an encoder built from the
// spec. Must be called before WriteHeader.
func (o *Output) AddStream(
	ctx context.Context,
	spec codec.EncoderParams,
) (_ret *Stream, _err error) {
	return xsync.DoA2R2(ctx, &o.locker, o.addStream, ctx, spec)
}

func (o *Output) addStream(
	ctx context.Context,
	spec codec.EncoderParams,
) (_ret *Stream, _err error) {
	logger.Debugf(ctx, "addStream(%v)", spec.MediaType)
	defer func() { logger.Debugf(ctx, "/addStream(%v): %v", spec.MediaType, _err) }()
	if o.headerWritten {
		return nil, averror.Errorf(averror.KindBadParameter, "add_stream", "the header is already written")
	}

	if spec.CodecID == astiav.CodecIDNone && spec.CodecName == "" {
		// inherit-from-format policy
		spec.CodecID = o.defaultCodecID(spec.MediaType)
		if spec.CodecID == astiav.CodecIDNone {
			return nil, averror.Errorf(
				averror.KindCodecUnavailable, "add_stream",
				"the '%s' format declares no default %v codec", o.FormatContext.OutputFormat().Name(), spec.MediaType,
			)
		}
	}
	spec.GlobalHeader = o.FormatContext.OutputFormat().Flags().Has(astiav.IOFormatFlagGlobalheader)

	enc, err := codec.NewEncoder(ctx, spec)
	if err != nil {
		return nil, err
	}
	o.Registry.AddWithError(func() error { return enc.Close(ctx) })

	st := o.FormatContext.NewStream(nil)
	if st == nil {
		return nil, averror.E(averror.KindResourceExhausted, "new_stream", nil)
	}
	if err := enc.ToCodecParameters(st.CodecParameters()); err != nil {
		return nil, err
	}
	st.SetTimeBase(enc.TimeBase())

	s := &Stream{
		Stream:      st,
		Encoder:     enc,
		srcTimeBase: enc.TimeBase(),
	}
	o.Streams = append(o.Streams, s)
	return s, nil
}

// AddCopyStream allocates a stream that remuxes the packets of the given
// input stream without re-encoding. Must be called before WriteHeader.
func (o *Output) AddCopyStream(
	ctx context.Context,
	src *astiav.Stream,
) (_ret *Stream, _err error) {
	return xsync.DoA2R2(ctx, &o.locker, o.addCopyStream, ctx, src)
}

func (o *Output) addCopyStream(
	ctx context.Context,
	src *astiav.Stream,
) (_ret *Stream, _err error) {
	logger.Debugf(ctx, "addCopyStream(#%d)", src.Index())
	defer func() { logger.Debugf(ctx, "/addCopyStream(#%d): %v", src.Index(), _err) }()
	if o.headerWritten {
		return nil, averror.Errorf(averror.KindBadParameter, "add_copy_stream", "the header is already written")
	}

	st := o.FormatContext.NewStream(nil)
	if st == nil {
		return nil, averror.E(averror.KindResourceExhausted, "new_stream", nil)
	}
	if err := src.CodecParameters().Copy(st.CodecParameters()); err != nil {
		return nil, averror.E(averror.KindMalformed, "copy_codec_parameters", err)
	}
	// the source container's codec tag may be invalid in the target one
	st.CodecParameters().SetCodecTag(0)
	st.SetTimeBase(src.TimeBase())

	s := &Stream{
		Stream:      st,
		srcTimeBase: src.TimeBase(),
	}
	o.Streams = append(o.Streams, s)
	return s, nil
}

func (o *Output) defaultCodecID(mt astiav.MediaType) astiav.CodecID {
	switch o.FormatContext.OutputFormat().Name() {
	case "wav":
		if mt == astiav.MediaTypeAudio {
			return astiav.CodecIDPcmS16Le
		}
	case "gif":
		if mt == astiav.MediaTypeVideo {
			return astiav.CodecIDGif
		}
	case "image2":
		if mt == astiav.MediaTypeVideo {
			return astiav.CodecIDMjpeg
		}
	}
	switch mt {
	case astiav.MediaTypeVideo:
		return astiav.CodecIDH264
	case astiav.MediaTypeAudio:
		return astiav.CodecIDAac
	default:
		return astiav.CodecIDNone
	}
}

// WriteHeader writes the container header; after it no new streams may
// be added, and Finalize will write the trailer.
func (o *Output) WriteHeader(
	ctx context.Context,
	options *astiav.Dictionary,
) error {
	return xsync.DoA2R1(ctx, &o.locker, o.writeHeader, ctx, options)
}

func (o *Output) writeHeader(
	ctx context.Context,
	options *astiav.Dictionary,
) (_err error) {
	logger.Debugf(ctx, "writeHeader")
	defer func() { logger.Debugf(ctx, "/writeHeader: %v", _err) }()
	if o.headerWritten {
		return averror.Errorf(averror.KindBadParameter, "write_header", "the header is already written")
	}
	if err := o.FormatContext.WriteHeader(options); err != nil {
		return averror.E(averror.KindIo, "write_header", err)
	}
	o.headerWritten = true
	return nil
}

// HeaderWritten reports whether the container header has been written.
func (o *Output) HeaderWritten(ctx context.Context) bool {
	return xsync.DoR1(ctx, &o.locker, func() bool {
		return o.headerWritten
	})
}

// WritePacket rescales the packet's timestamps from the submitter's time
// base (the encoder's, or the source stream's for a copy stream) into the
// muxer stream's time base, stamps the stream index and hands the packet
// to the interleaved muxer. Within one stream packets are submitted with
// non-decreasing DTS.
func (o *Output) WritePacket(
	ctx context.Context,
	s *Stream,
	pkt *astiav.Packet,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &o.locker, func() error {
		return o.writePacket(ctx, s, pkt)
	})
}

func (o *Output) writePacket(
	ctx context.Context,
	s *Stream,
	pkt *astiav.Packet,
) error {
	if !o.headerWritten {
		return averror.Errorf(averror.KindBadParameter, "write_packet", "the header is not written")
	}

	pkt.RescaleTs(s.srcTimeBase, s.Stream.TimeBase())
	pkt.SetStreamIndex(s.Stream.Index())
	s.enforceMonotonicDTS(ctx, pkt)

	if err := o.FormatContext.WriteInterleavedFrame(pkt); err != nil {
		return averror.E(averror.KindIo, "write_interleaved_frame", err)
	}
	return nil
}

// enforceMonotonicDTS bumps a packet whose DTS regressed relative to the
// last one submitted on the stream; the muxer refuses regressions.
func (s *Stream) enforceMonotonicDTS(ctx context.Context, pkt *astiav.Packet) {
	dts := pkt.Dts()
	if dts == astiav.NoPtsValue {
		return
	}
	if s.lastDTSSet && dts < s.lastDTS {
		logger.Warnf(ctx, "non-monotonic DTS %d < %d on stream #%d, bumping", dts, s.lastDTS, pkt.StreamIndex())
		diff := s.lastDTS - dts
		pkt.SetDts(s.lastDTS)
		if pts := pkt.Pts(); pts != astiav.NoPtsValue {
			pkt.SetPts(pts + diff)
		}
	}
	s.lastDTS = pkt.Dts()
	s.lastDTSSet = true
}

// Finalize writes the trailer iff the header was written, and always
// closes the byte-level output. Idempotent.
func (o *Output) Finalize(ctx context.Context) error {
	return xsync.DoA1R1(ctx, &o.locker, o.finalize, ctx)
}

func (o *Output) finalize(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "finalize")
	defer func() { logger.Debugf(ctx, "/finalize: %v", _err) }()

	var trailerErr error
	if o.headerWritten && !o.trailerWritten {
		o.trailerWritten = true
		if err := o.FormatContext.WriteTrailer(); err != nil {
			trailerErr = averror.E(averror.KindIo, "write_trailer", err)
		}
	}
	if err := o.closeIOContext(); err != nil && trailerErr == nil {
		trailerErr = averror.E(averror.KindIo, "close_io_context", err)
	}
	return trailerErr
}

// Close releases the container and every encoder without touching the
// trailer: Finalize is the only trailer writer, so an aborted run never
// finalizes a partial file.
func (o *Output) Close(ctx context.Context) error {
	return o.Registry.Close(ctx)
}
