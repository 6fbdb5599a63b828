package codec

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/resource"
	"github.com/xaionaro-go/xsync"
)

type Encoder struct {
	*Codec
}

// EncoderParams selects and parameterizes an encoder. CodecName wins over
// CodecID; a zero CodecID means "inherit from the container format's
// default for the media type" and is resolved by the output stage.
type EncoderParams struct {
	MediaType astiav.MediaType
	CodecID   astiav.CodecID
	CodecName string
	TimeBase  astiav.Rational
	BitRate   int64
	Options   *astiav.Dictionary

	// video
	Width             int
	Height            int
	PixelFormat       astiav.PixelFormat
	SampleAspectRatio astiav.Rational
	FrameRate         astiav.Rational
	GopSize           int

	// audio
	SampleRate    int
	ChannelLayout astiav.ChannelLayout
	SampleFormat  astiav.SampleFormat

	// set by the output stage when the container format demands it
	GlobalHeader bool
}

func NewEncoder(
	ctx context.Context,
	params EncoderParams,
) (_ret *Encoder, _err error) {
	logger.Tracef(ctx, "NewEncoder")
	defer func() { logger.Tracef(ctx, "/NewEncoder: %v %v", _ret, _err) }()

	var avCodec *astiav.Codec
	if params.CodecName != "" {
		avCodec = astiav.FindEncoderByName(params.CodecName)
	} else {
		avCodec = astiav.FindEncoder(params.CodecID)
	}
	if avCodec == nil {
		return nil, averror.Errorf(
			averror.KindCodecUnavailable, "find_encoder",
			"no encoder for codec '%s'/%v", params.CodecName, params.CodecID,
		)
	}

	c := &Codec{
		codecInternals: &codecInternals{
			isEncoder: true,
			codec:     avCodec,
			registry:  resource.NewRegistry(),
		},
	}
	defer func() {
		if _err != nil {
			_ = c.Close(ctx)
		}
	}()

	cc, err := c.registry.CodecContext(ctx, avCodec)
	if err != nil {
		return nil, err
	}
	c.codecContext = cc

	switch params.MediaType {
	case astiav.MediaTypeVideo:
		if params.Width <= 0 || params.Height <= 0 {
			return nil, averror.Errorf(
				averror.KindBadParameter, "new_encoder",
				"invalid resolution %dx%d", params.Width, params.Height,
			)
		}
		cc.SetWidth(params.Width)
		cc.SetHeight(params.Height)
		cc.SetPixelFormat(pickPixelFormat(avCodec, params.PixelFormat))
		cc.SetSampleAspectRatio(params.SampleAspectRatio)
		if params.FrameRate.Num() != 0 {
			cc.SetFramerate(params.FrameRate)
		}
		cc.SetTimeBase(videoTimeBase(params))
		if params.GopSize > 0 {
			cc.SetGopSize(params.GopSize)
		}
	case astiav.MediaTypeAudio:
		cc.SetSampleRate(params.SampleRate)
		cc.SetChannelLayout(pickChannelLayout(avCodec, params.ChannelLayout))
		cc.SetSampleFormat(pickSampleFormat(avCodec, params.SampleFormat))
		cc.SetTimeBase(astiav.NewRational(1, params.SampleRate))
	default:
		return nil, averror.Errorf(
			averror.KindBadParameter, "new_encoder",
			"unsupported media type %v", params.MediaType,
		)
	}
	if params.BitRate > 0 {
		cc.SetBitRate(params.BitRate)
	}
	if params.GlobalHeader {
		cc.SetFlags(cc.Flags().Add(astiav.CodecContextFlagGlobalHeader))
	}

	if err := cc.Open(avCodec, params.Options); err != nil {
		return nil, averror.E(averror.KindMalformed, "open_encoder", err)
	}

	return &Encoder{c}, nil
}

func videoTimeBase(params EncoderParams) astiav.Rational {
	if params.TimeBase.Num() != 0 {
		return params.TimeBase
	}
	// default: the inverse of the target frame rate
	if fr := params.FrameRate; fr.Num() != 0 {
		return astiav.NewRational(fr.Den(), fr.Num())
	}
	return astiav.NewRational(1, 25)
}

func pickPixelFormat(c *astiav.Codec, want astiav.PixelFormat) astiav.PixelFormat {
	supported := c.SupportedPixelFormats()
	if want != astiav.PixelFormatNone {
		for _, pf := range supported {
			if pf == want {
				return pf
			}
		}
	}
	if want == astiav.PixelFormatNone {
		want = astiav.PixelFormatYuv420P
	}
	for _, pf := range supported {
		if pf == want {
			return pf
		}
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return want
}

func pickSampleFormat(c *astiav.Codec, want astiav.SampleFormat) astiav.SampleFormat {
	supported := c.SupportedSampleFormats()
	if want != astiav.SampleFormatNone {
		for _, sf := range supported {
			if sf == want {
				return sf
			}
		}
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return want
}

func pickChannelLayout(c *astiav.Codec, want astiav.ChannelLayout) astiav.ChannelLayout {
	supported := c.SupportedChannelLayouts()
	for _, cl := range supported {
		if cl.Equal(want) {
			return cl
		}
	}
	if want.Valid() {
		return want
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return astiav.ChannelLayoutStereo
}

func (e *Encoder) String() string {
	return fmt.Sprintf("Encoder(%s)", e.codec.Name())
}

func (e *Encoder) SendFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &e.locker, func() error {
		return e.codecContext.SendFrame(f)
	})
}

func (e *Encoder) ReceivePacket(
	ctx context.Context,
	p *astiav.Packet,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &e.locker, func() error {
		return e.codecContext.ReceivePacket(p)
	})
}

// FrameSize returns the fixed per-frame sample count the encoder demands,
// or 0 when the codec accepts arbitrary frame sizes.
func (e *Encoder) FrameSize() int {
	return xsync.DoR1(context.TODO(), &e.locker, func() int {
		return e.codecContext.FrameSize()
	})
}
