// Package input implements the input stage: open a container, probe its
// streams, select the stream of the requested media kind and construct a
// decoder for it.
package input

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/davecgh/go-spew/spew"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/resource"
	"github.com/xaionaro-go/avkitchen/types"
)

type Config struct {
	CustomOptions types.DictionaryItems
	FormatName    string
}

// StreamPreference selects the tie-break rule of SelectStream.
type StreamPreference int

const (
	// PreferFirst picks the first stream of the requested kind.
	PreferFirst StreamPreference = iota
	// PreferBest picks the "best" stream of the requested kind:
	// highest resolution (video) or sample rate (audio).
	PreferBest
)

type Input struct {
	*astiav.FormatContext

	URL         string
	Registry    *resource.Registry
	descriptors map[int]types.StreamDescriptor
}

func Open(
	ctx context.Context,
	path string,
	cfg Config,
) (_ret *Input, _err error) {
	logger.Debugf(ctx, "Open('%s')", path)
	defer func() { logger.Debugf(ctx, "/Open('%s'): %v", path, _err) }()
	if path == "" {
		return nil, averror.Errorf(averror.KindNotFound, "open_input", "the provided path is empty")
	}

	registry := resource.NewRegistry()
	defer func() {
		if _err != nil {
			_ = registry.Close(ctx)
		}
	}()

	var inputFormat *astiav.InputFormat
	if cfg.FormatName != "" {
		inputFormat = astiav.FindInputFormat(cfg.FormatName)
		if inputFormat == nil {
			return nil, averror.Errorf(averror.KindUnknownFormat, "open_input", "unable to find input format '%s'", cfg.FormatName)
		}
	}

	fc, err := registry.FormatContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := fc.OpenInput(path, inputFormat, cfg.CustomOptions.Dictionary(ctx)); err != nil {
		return nil, averror.E(averror.KindNotFound, "open_input", fmt.Errorf("unable to open '%s': %w", path, err))
	}
	registry.TrackInputOpen(fc)

	if err := fc.FindStreamInfo(nil); err != nil {
		return nil, averror.E(averror.KindMalformed, "find_stream_info", fmt.Errorf("unable to get stream info of '%s': %w", path, err))
	}

	i := &Input{
		FormatContext: fc,
		URL:           path,
		Registry:      registry,
		descriptors:   map[int]types.StreamDescriptor{},
	}
	for _, st := range fc.Streams() {
		d := types.StreamDescriptorFromStream(st)
		i.descriptors[st.Index()] = d
		logger.Tracef(ctx, "input stream #%d: %s", st.Index(), spew.Sdump(d))
	}
	return i, nil
}

func (i *Input) Close(ctx context.Context) error {
	return i.Registry.Close(ctx)
}

func (i *Input) String() string {
	return fmt.Sprintf("Input(%s)", i.URL)
}

// Descriptor returns the snapshot taken at open time.
func (i *Input) Descriptor(streamIndex int) (types.StreamDescriptor, bool) {
	d, ok := i.descriptors[streamIndex]
	return d, ok
}

func (i *Input) SelectStream(
	ctx context.Context,
	kind types.MediaKind,
	pref StreamPreference,
) (*astiav.Stream, error) {
	var best *astiav.Stream
	for _, st := range i.FormatContext.Streams() {
		if st.CodecParameters().MediaType() != kind.MediaType() {
			continue
		}
		if pref == PreferFirst {
			return st, nil
		}
		if best == nil || streamScore(st) > streamScore(best) {
			best = st
		}
	}
	if best == nil {
		return nil, averror.Errorf(
			averror.KindNoSuchStream, "select_stream",
			"'%s' has no %s stream", i.URL, kind,
		)
	}
	return best, nil
}

func streamScore(st *astiav.Stream) int64 {
	cp := st.CodecParameters()
	var score int64
	switch cp.MediaType() {
	case astiav.MediaTypeVideo:
		score += int64(cp.Width()) * int64(cp.Height())
	case astiav.MediaTypeAudio:
		score += int64(cp.SampleRate())
	}
	return score
}

// OpenDecoder constructs and opens a (software) decoder for the stream.
func (i *Input) OpenDecoder(
	ctx context.Context,
	st *astiav.Stream,
) (*codec.Decoder, error) {
	return i.openDecoder(ctx, st, astiav.HardwareDeviceTypeNone, "")
}

// OpenDecoderHW additionally negotiates a hardware pixel format and
// attaches a hardware device reference to the decoder state.
func (i *Input) OpenDecoderHW(
	ctx context.Context,
	st *astiav.Stream,
	deviceType astiav.HardwareDeviceType,
	deviceName string,
) (*codec.Decoder, error) {
	return i.openDecoder(ctx, st, deviceType, deviceName)
}

func (i *Input) openDecoder(
	ctx context.Context,
	st *astiav.Stream,
	deviceType astiav.HardwareDeviceType,
	deviceName string,
) (_ret *codec.Decoder, _err error) {
	logger.Debugf(ctx, "openDecoder(#%d)", st.Index())
	defer func() { logger.Debugf(ctx, "/openDecoder(#%d): %v %v", st.Index(), _ret, _err) }()

	params := codec.DecoderParams{
		CodecParameters:    st.CodecParameters(),
		TimeBase:           st.TimeBase(),
		HardwareDeviceType: deviceType,
		HardwareDeviceName: deviceName,
	}
	if st.CodecParameters().MediaType() == astiav.MediaTypeVideo {
		params.FrameRate = i.FormatContext.GuessFrameRate(st, nil)
	}

	d, err := codec.NewDecoder(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a decoder for stream #%d: %w", st.Index(), err)
	}
	i.Registry.AddWithError(func() error { return d.Close(ctx) })
	return d, nil
}
