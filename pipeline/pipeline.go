// Package pipeline drives a single-input single-output transcoding run:
// demux, decode, optionally filter/rescale/resample, encode and mux, with
// ordered drain phases at end-of-stream.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/davecgh/go-spew/spew"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/filtergraph"
	"github.com/xaionaro-go/avkitchen/frame"
	"github.com/xaionaro-go/avkitchen/input"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/output"
	"github.com/xaionaro-go/avkitchen/packet"
	"github.com/xaionaro-go/avkitchen/resampler"
	"github.com/xaionaro-go/avkitchen/resource"
	"github.com/xaionaro-go/avkitchen/scaler"
	"github.com/xaionaro-go/avkitchen/types"
)

type source struct {
	input   *input.Input
	stream  *astiav.Stream
	decoder *codec.Decoder
}

type Pipeline struct {
	cfg Config

	primary     source
	secondaries []source
	output      *output.Output

	graph       *filtergraph.Graph
	scaler      *scaler.Scaler
	resampler   *resampler.Resampler
	outStream   *output.Stream
	copyStreams map[int]*output.Stream
	pendingCopy []*astiav.Packet

	framesProcessed uint64
	packetsWritten  uint64
	frameCapReached bool
	syntheticIndex  int64
	audioSamplesOut int64
	lastPosition    int64
}

// Run executes the whole pipeline described by cfg and blocks until the
// input is exhausted, the context is cancelled or an unrecoverable error
// occurs.
func Run(ctx context.Context, cfg Config) (_err error) {
	logger.Debugf(ctx, "Run(%s -> %s)", cfg.InputURL, cfg.OutputURL)
	defer func() { logger.Debugf(ctx, "/Run(%s -> %s): %v", cfg.InputURL, cfg.OutputURL, _err) }()

	p, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Close(ctx); err != nil && _err == nil {
			_err = err
		}
	}()
	return p.run(ctx)
}

func New(
	ctx context.Context,
	cfg Config,
) (_ret *Pipeline, _err error) {
	logger.Tracef(ctx, "New")
	defer func() { logger.Tracef(ctx, "/New: %v", _err) }()
	if cfg.Kind != types.MediaKindVideo && cfg.Kind != types.MediaKindAudio {
		return nil, averror.Errorf(averror.KindBadParameter, "new_pipeline", "unsupported media kind %v", cfg.Kind)
	}
	for _, k := range cfg.CopyKinds {
		if k == cfg.Kind {
			return nil, averror.Errorf(averror.KindBadParameter, "new_pipeline", "cannot both transcode and copy %v streams", k)
		}
	}

	p := &Pipeline{cfg: cfg}
	defer func() {
		if _err != nil {
			_ = p.Close(ctx)
		}
	}()

	var err error
	p.primary, err = p.openSource(ctx, cfg.InputURL, cfg.InputFormatName, cfg.Kind, true)
	if err != nil {
		return nil, err
	}
	for _, url := range cfg.SecondaryInputURLs {
		src, err := p.openSource(ctx, url, "", cfg.Kind, false)
		if err != nil {
			return nil, err
		}
		p.secondaries = append(p.secondaries, src)
	}

	p.output, err = output.Create(ctx, cfg.OutputURL, output.Config{
		FormatName: cfg.OutputFormatName,
	})
	if err != nil {
		return nil, err
	}
	if err := p.addCopyStreams(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// addCopyStreams binds the remux-only kinds: their packets bypass the
// decoder entirely and are rewritten into the output container as they
// are.
func (p *Pipeline) addCopyStreams(ctx context.Context) error {
	if len(p.cfg.CopyKinds) == 0 {
		return nil
	}
	p.copyStreams = map[int]*output.Stream{}
	for _, kind := range p.cfg.CopyKinds {
		st, err := p.primary.input.SelectStream(ctx, kind, input.PreferFirst)
		if err != nil {
			if errors.Is(err, averror.NoSuchStream) {
				logger.Debugf(ctx, "'%s' has no %v stream to copy", p.cfg.InputURL, kind)
				continue
			}
			return err
		}
		outStream, err := p.output.AddCopyStream(ctx, st)
		if err != nil {
			return err
		}
		p.copyStreams[st.Index()] = outStream
	}
	return nil
}

func (p *Pipeline) openSource(
	ctx context.Context,
	url string,
	formatName string,
	kind types.MediaKind,
	hardwareAllowed bool,
) (source, error) {
	inputCfg := input.Config{FormatName: formatName}
	if hardwareAllowed {
		inputCfg.CustomOptions = p.cfg.InputOptions
	}
	in, err := input.Open(ctx, url, inputCfg)
	if err != nil {
		return source{}, err
	}
	st, err := in.SelectStream(ctx, kind, p.cfg.StreamPreference)
	if err != nil {
		_ = in.Close(ctx)
		return source{}, err
	}

	var dec *codec.Decoder
	if hardwareAllowed && p.cfg.HardwareDeviceType != astiav.HardwareDeviceTypeNone {
		dec, err = in.OpenDecoderHW(ctx, st, p.cfg.HardwareDeviceType, p.cfg.HardwareDeviceName)
	} else {
		dec, err = in.OpenDecoder(ctx, st)
	}
	if err != nil {
		_ = in.Close(ctx)
		return source{}, err
	}
	return source{input: in, stream: st, decoder: dec}, nil
}

func (p *Pipeline) Close(ctx context.Context) error {
	var result error
	for _, pkt := range p.pendingCopy {
		packet.Pool.Put(pkt)
	}
	p.pendingCopy = nil
	if p.graph != nil {
		result = errors.Join(result, p.graph.Close(ctx))
	}
	if p.scaler != nil {
		result = errors.Join(result, p.scaler.Close(ctx))
	}
	if p.resampler != nil {
		result = errors.Join(result, p.resampler.Close(ctx))
	}
	if p.output != nil {
		result = errors.Join(result, p.output.Close(ctx))
	}
	for _, sec := range p.secondaries {
		result = errors.Join(result, sec.input.Close(ctx))
	}
	if p.primary.input != nil {
		result = errors.Join(result, p.primary.input.Close(ctx))
	}
	return result
}

func (p *Pipeline) run(ctx context.Context) (_err error) {
	pkt := packet.Pool.Get()
	defer packet.Pool.Put(pkt)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := p.primary.input.ReadFrame(pkt)
		if errors.Is(err, astiav.ErrEof) {
			break
		}
		if err != nil {
			return averror.E(averror.KindIo, "read_frame", err)
		}
		err = resource.WithUnref(pkt, func() error {
			if cs, ok := p.copyStreams[pkt.StreamIndex()]; ok {
				return p.onCopyPacket(ctx, cs, pkt)
			}
			if pkt.StreamIndex() != p.primary.stream.Index() {
				return nil
			}
			return p.processPacket(ctx, pkt)
		})
		if err != nil {
			return err
		}
		if p.frameCapReached {
			break
		}
	}

	return p.drain(ctx)
}

// onCopyPacket remuxes one packet of a copy stream. The header awaits the
// first encoded frame, so packets arriving before it are parked aside and
// flushed right after WriteHeader.
func (p *Pipeline) onCopyPacket(
	ctx context.Context,
	s *output.Stream,
	pkt *astiav.Packet,
) error {
	if !p.output.HeaderWritten(ctx) {
		p.pendingCopy = append(p.pendingCopy, packet.CloneAsReferenced(pkt))
		return nil
	}
	if err := p.output.WritePacket(ctx, s, pkt); err != nil {
		return err
	}
	p.packetsWritten++
	return nil
}

func (p *Pipeline) flushPendingCopies(ctx context.Context) error {
	for len(p.pendingCopy) > 0 {
		pkt := p.pendingCopy[0]
		p.pendingCopy = p.pendingCopy[1:]
		err := p.output.WritePacket(ctx, p.copyStreams[pkt.StreamIndex()], pkt)
		packet.Pool.Put(pkt)
		if err != nil {
			return err
		}
		p.packetsWritten++
	}
	return nil
}

// processPacket decodes one packet and pushes the resulting frames down
// the chain. A failure to decode a single packet is logged and skipped;
// anything downstream aborts the run.
func (p *Pipeline) processPacket(
	ctx context.Context,
	pkt *astiav.Packet,
) error {
	pkt.RescaleTs(p.primary.stream.TimeBase(), p.primary.decoder.TimeBase())
	if err := p.primary.decoder.SendPacket(ctx, pkt); err != nil {
		logger.Warnf(ctx, "unable to decode a packet (dts=%d), skipping it: %v", pkt.Dts(), err)
		return nil
	}
	return p.receiveDecodedFrames(ctx, p.primary.decoder)
}

func (p *Pipeline) receiveDecodedFrames(
	ctx context.Context,
	dec *codec.Decoder,
) error {
	f := frame.Pool.Get()
	defer frame.Pool.Put(f)
	for {
		err := dec.ReceiveFrame(ctx, f)
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil
		}
		if err != nil {
			return averror.FromFFmpeg("receive_frame", err)
		}
		if err := resource.WithUnref(f, func() error {
			return p.onDecodedFrame(ctx, f)
		}); err != nil {
			return err
		}
	}
}

func (p *Pipeline) onDecodedFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if p.primary.decoder.FramesAreHardware() {
		sw := frame.Pool.Get()
		defer frame.Pool.Put(sw)
		if err := p.primary.decoder.TransferToRAM(ctx, f, sw); err != nil {
			return err
		}
		f = sw
	}
	p.stampTimestamps(f)

	if p.cfg.needsFilterGraph() && p.graph == nil {
		if err := p.buildFilterGraph(ctx, f); err != nil {
			return err
		}
		if err := p.feedSecondaries(ctx); err != nil {
			return err
		}
	}

	if p.graph == nil {
		return p.onOutputFrame(ctx, f)
	}
	if err := p.graph.Push(ctx, 0, f); err != nil {
		return err
	}
	return p.pullFilteredFrames(ctx)
}

// stampTimestamps fills in the frame's time base and, where the source
// provides none (or synthetic mode is on), a generated monotone PTS.
func (p *Pipeline) stampTimestamps(f *astiav.Frame) {
	if p.cfg.SyntheticTimestamps || f.Pts() == astiav.NoPtsValue {
		switch p.cfg.Kind {
		case types.MediaKindAudio:
			f.SetPts(p.audioSamplesSeen(f))
			f.SetTimeBase(astiav.NewRational(1, f.SampleRate()))
		default:
			f.SetPts(p.syntheticIndex)
			p.syntheticIndex++
			fr := p.primary.input.GuessFrameRate(p.primary.stream, nil)
			if fr.Num() == 0 {
				fr = astiav.NewRational(25, 1)
			}
			f.SetTimeBase(astiav.NewRational(fr.Den(), fr.Num()))
		}
		return
	}
	f.SetTimeBase(p.primary.decoder.TimeBase())
}

func (p *Pipeline) audioSamplesSeen(f *astiav.Frame) int64 {
	pts := p.syntheticIndex
	p.syntheticIndex += int64(f.NbSamples())
	return pts
}

func (p *Pipeline) buildFilterGraph(
	ctx context.Context,
	first *astiav.Frame,
) error {
	sources := []filtergraph.SourceParams{
		sourceParamsFromFrame(p.cfg.Kind, first),
	}
	for _, sec := range p.secondaries {
		d, ok := sec.input.Descriptor(sec.stream.Index())
		if !ok {
			return averror.Errorf(averror.KindNoSuchStream, "build_filter_graph", "no descriptor for stream #%d of '%s'", sec.stream.Index(), sec.input.URL)
		}
		sources = append(sources, filtergraph.SourceParamsFromDescriptor(d))
	}
	logger.Tracef(ctx, "buildFilterGraph: %s", spew.Sdump(sources))
	g, err := filtergraph.New(ctx, filtergraph.Spec{
		Description:          p.cfg.FilterDescription,
		Sources:              sources,
		SinkPixelFormatName:  p.cfg.SinkPixelFormatName,
		SinkSampleFormatName: p.cfg.SinkSampleFormatName,
	})
	if err != nil {
		return err
	}
	p.graph = g
	return nil
}

// sourceParamsFromFrame describes the primary source pad from an actual
// decoded frame: with hardware decoding the frames reaching the graph are
// in the transfer format, not the format the stream declares.
func sourceParamsFromFrame(kind types.MediaKind, f *astiav.Frame) filtergraph.SourceParams {
	return filtergraph.SourceParams{
		Kind:              kind,
		TimeBase:          f.TimeBase(),
		Width:             f.Width(),
		Height:            f.Height(),
		PixelFormat:       f.PixelFormat(),
		SampleAspectRatio: f.SampleAspectRatio(),
		SampleRate:        f.SampleRate(),
		SampleFormat:      f.SampleFormat(),
		ChannelLayout:     f.ChannelLayout(),
	}
}

// feedSecondaries decodes each secondary input to completion and pushes
// its frames into the corresponding graph pad, ending with EOS.
func (p *Pipeline) feedSecondaries(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "feedSecondaries: %d", len(p.secondaries))
	defer func() { logger.Debugf(ctx, "/feedSecondaries: %v", _err) }()

	pkt := packet.Pool.Get()
	defer packet.Pool.Put(pkt)

	for i, sec := range p.secondaries {
		pad := i + 1
		for {
			err := sec.input.ReadFrame(pkt)
			if errors.Is(err, astiav.ErrEof) {
				break
			}
			if err != nil {
				return averror.E(averror.KindIo, "read_frame", err)
			}
			if pkt.StreamIndex() != sec.stream.Index() {
				pkt.Unref()
				continue
			}
			pkt.RescaleTs(sec.stream.TimeBase(), sec.decoder.TimeBase())
			err = sec.decoder.SendPacket(ctx, pkt)
			pkt.Unref()
			if err != nil {
				logger.Warnf(ctx, "unable to decode a packet of '%s', skipping it: %v", sec.input.URL, err)
				continue
			}
			if err := p.pushSecondaryFrames(ctx, sec, pad); err != nil {
				return err
			}
		}
		if err := sec.decoder.SendPacket(ctx, nil); err != nil && !errors.Is(err, astiav.ErrEof) {
			return averror.FromFFmpeg("send_packet", err)
		}
		if err := p.pushSecondaryFrames(ctx, sec, pad); err != nil {
			return err
		}
		if err := p.graph.Push(ctx, pad, nil); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) pushSecondaryFrames(
	ctx context.Context,
	sec source,
	pad int,
) error {
	f := frame.Pool.Get()
	defer frame.Pool.Put(f)
	for {
		err := sec.decoder.ReceiveFrame(ctx, f)
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil
		}
		if err != nil {
			return averror.FromFFmpeg("receive_frame", err)
		}
		f.SetTimeBase(sec.decoder.TimeBase())
		err = p.graph.Push(ctx, pad, f)
		f.Unref()
		if err != nil {
			return err
		}
	}
}

func (p *Pipeline) pullFilteredFrames(ctx context.Context) error {
	f := frame.Pool.Get()
	defer frame.Pool.Put(f)
	for {
		err := p.graph.Pull(ctx, f)
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil
		}
		if err != nil {
			return err
		}
		err = p.onOutputFrame(ctx, f)
		f.Unref()
		if err != nil {
			return err
		}
	}
}

// onOutputFrame receives a fully transformed frame and routes it through
// the per-kind conditioning step into the encoder.
func (p *Pipeline) onOutputFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if p.frameCapReached {
		return nil
	}
	p.framesProcessed++
	if p.cfg.MaxOutputFrames > 0 && p.framesProcessed >= p.cfg.MaxOutputFrames {
		p.frameCapReached = true
	}
	defer p.maybeReportProgress()

	switch p.cfg.Kind {
	case types.MediaKindAudio:
		return p.encodeAudioFrame(ctx, f)
	default:
		return p.encodeVideoFrame(ctx, f)
	}
}

func (p *Pipeline) encodeVideoFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if err := p.ensureVideoSink(ctx, f); err != nil {
		return err
	}
	enc := p.outStream.Encoder
	if p.scaler != nil {
		scaled := frame.Pool.Get()
		defer frame.Pool.Put(scaled)
		if err := p.scaler.ScaleFrame(ctx, f, scaled); err != nil {
			return err
		}
		scaled.SetTimeBase(f.TimeBase())
		f = scaled
	}
	f.SetPts(rescaleTS(f.Pts(), f.TimeBase(), enc.TimeBase()))
	return p.encodeFrame(ctx, f)
}

func (p *Pipeline) encodeAudioFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if err := p.ensureAudioSink(ctx, f); err != nil {
		return err
	}
	if err := p.resampler.SendFrame(ctx, f); err != nil {
		return err
	}
	return p.encodeResampledFrames(ctx, false)
}

// encodeResampledFrames pumps full chunks (or, when flush is set, the
// final partial chunk too) out of the resampler into the encoder, giving
// each chunk a PTS continuing the output sample count.
func (p *Pipeline) encodeResampledFrames(
	ctx context.Context,
	flush bool,
) error {
	f := frame.Pool.Get()
	defer frame.Pool.Put(f)
	for {
		var err error
		if flush {
			err = p.resampler.Flush(ctx, f)
		} else {
			err = p.resampler.ReceiveFrame(ctx, f)
		}
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil
		}
		if err != nil {
			return err
		}
		f.SetPts(p.audioSamplesOut)
		p.audioSamplesOut += int64(f.NbSamples())
		err = p.encodeFrame(ctx, f)
		f.Unref()
		if err != nil {
			return err
		}
	}
}

func (p *Pipeline) ensureVideoSink(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if p.outStream != nil {
		return nil
	}
	spec := p.cfg.Encoder
	spec.MediaType = astiav.MediaTypeVideo
	if spec.Width == 0 {
		spec.Width = f.Width()
	}
	if spec.Height == 0 {
		spec.Height = f.Height()
	}
	if spec.SampleAspectRatio.Num() == 0 {
		spec.SampleAspectRatio = f.SampleAspectRatio()
	}
	if spec.FrameRate.Num() == 0 {
		spec.FrameRate = p.primary.input.GuessFrameRate(p.primary.stream, nil)
	}
	st, err := p.output.AddStream(ctx, spec)
	if err != nil {
		return err
	}
	p.outStream = st

	cc := st.Encoder.CodecContext()
	if f.Width() != cc.Width() || f.Height() != cc.Height() || f.PixelFormat() != cc.PixelFormat() {
		p.scaler, err = scaler.New(ctx,
			types.Resolution{Width: uint32(f.Width()), Height: uint32(f.Height())},
			f.PixelFormat(),
			types.Resolution{Width: uint32(cc.Width()), Height: uint32(cc.Height())},
			cc.PixelFormat(),
		)
		if err != nil {
			return err
		}
	}
	if err := p.output.WriteHeader(ctx, p.cfg.OutputOptions.Dictionary(ctx)); err != nil {
		return err
	}
	return p.flushPendingCopies(ctx)
}

func (p *Pipeline) ensureAudioSink(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if p.outStream != nil {
		return nil
	}
	spec := p.cfg.Encoder
	spec.MediaType = astiav.MediaTypeAudio
	if spec.SampleRate == 0 {
		spec.SampleRate = f.SampleRate()
	}
	if !spec.ChannelLayout.Valid() {
		spec.ChannelLayout = f.ChannelLayout()
	}
	if spec.SampleFormat == astiav.SampleFormatNone {
		spec.SampleFormat = f.SampleFormat()
	}
	st, err := p.output.AddStream(ctx, spec)
	if err != nil {
		return err
	}
	p.outStream = st

	cc := st.Encoder.CodecContext()
	chunkSize := st.Encoder.FrameSize()
	if chunkSize == 0 {
		chunkSize = 1024
	}
	p.resampler, err = resampler.New(ctx, codec.PCMAudioFormat{
		SampleFormat:  cc.SampleFormat(),
		SampleRate:    cc.SampleRate(),
		ChannelLayout: cc.ChannelLayout(),
		ChunkSize:     chunkSize,
	})
	if err != nil {
		return err
	}
	if err := p.output.WriteHeader(ctx, p.cfg.OutputOptions.Dictionary(ctx)); err != nil {
		return err
	}
	return p.flushPendingCopies(ctx)
}

func (p *Pipeline) encodeFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if err := p.outStream.Encoder.SendFrame(ctx, f); err != nil {
		return averror.FromFFmpeg("send_frame", err)
	}
	return p.writeEncodedPackets(ctx)
}

func (p *Pipeline) writeEncodedPackets(ctx context.Context) error {
	pkt := packet.Pool.Get()
	defer packet.Pool.Put(pkt)
	for {
		err := p.outStream.Encoder.ReceivePacket(ctx, pkt)
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil
		}
		if err != nil {
			return averror.FromFFmpeg("receive_packet", err)
		}
		if pts := pkt.Pts(); pts != astiav.NoPtsValue {
			p.lastPosition = pts
		}
		err = p.output.WritePacket(ctx, p.outStream, pkt)
		pkt.Unref()
		if err != nil {
			return err
		}
		p.packetsWritten++
	}
}

func (p *Pipeline) maybeReportProgress() {
	if p.cfg.OnProgress == nil {
		return
	}
	if p.framesProcessed%uint64(p.cfg.progressInterval()) != 0 {
		return
	}
	var position int64
	var tb astiav.Rational
	if p.outStream != nil {
		position = p.lastPosition
		tb = p.outStream.Encoder.TimeBase()
	}
	p.cfg.OnProgress(Progress{
		Frames:   p.framesProcessed,
		Packets:  p.packetsWritten,
		Position: tsToDuration(position, tb),
	})
}

// drain runs the three end-of-stream phases in their required order:
// decoder, then filter graph, then (resampler and) encoder, and finally
// finalizes the container.
func (p *Pipeline) drain(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "drain")
	defer func() { logger.Debugf(ctx, "/drain: %v", _err) }()

	if err := p.primary.decoder.SendPacket(ctx, nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return averror.FromFFmpeg("send_packet", err)
	}
	if err := p.receiveDecodedFrames(ctx, p.primary.decoder); err != nil {
		return err
	}

	if p.graph != nil {
		if err := p.graph.Push(ctx, 0, nil); err != nil {
			return err
		}
		if err := p.pullFilteredFrames(ctx); err != nil {
			return err
		}
	}

	if p.resampler != nil {
		if err := p.encodeResampledFrames(ctx, true); err != nil {
			return err
		}
	}

	if p.outStream == nil {
		logger.Warnf(ctx, "'%s' produced no %s frames, nothing was written", p.cfg.InputURL, p.cfg.Kind)
		return p.output.Finalize(ctx)
	}

	if err := p.outStream.Encoder.SendFrame(ctx, nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return averror.FromFFmpeg("send_frame", err)
	}
	if err := p.writeEncodedPackets(ctx); err != nil {
		return err
	}
	if err := p.output.Finalize(ctx); err != nil {
		return err
	}
	if p.cfg.OnProgress != nil {
		p.cfg.OnProgress(Progress{
			Frames:   p.framesProcessed,
			Packets:  p.packetsWritten,
			Position: tsToDuration(p.lastPosition, p.outStream.Encoder.TimeBase()),
		})
	}
	return nil
}

func (p *Pipeline) String() string {
	return fmt.Sprintf("Pipeline(%s -> %s)", p.cfg.InputURL, p.cfg.OutputURL)
}
