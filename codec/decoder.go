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

type Decoder struct {
	*Codec
}

type DecoderParams struct {
	CodecParameters *astiav.CodecParameters
	TimeBase        astiav.Rational
	FrameRate       astiav.Rational
	Options         *astiav.Dictionary

	// hardware-accelerated variant
	HardwareDeviceType astiav.HardwareDeviceType
	HardwareDeviceName string
}

func NewDecoder(
	ctx context.Context,
	params DecoderParams,
) (_ret *Decoder, _err error) {
	logger.Tracef(ctx, "NewDecoder")
	defer func() { logger.Tracef(ctx, "/NewDecoder: %v %v", _ret, _err) }()

	codecID := params.CodecParameters.CodecID()
	avCodec := astiav.FindDecoder(codecID)
	if avCodec == nil {
		return nil, averror.Errorf(
			averror.KindCodecUnavailable, "find_decoder",
			"no decoder for codec %v", codecID,
		)
	}

	c := &Codec{
		codecInternals: &codecInternals{
			isEncoder: false,
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

	if err := params.CodecParameters.ToCodecContext(cc); err != nil {
		return nil, averror.E(averror.KindMalformed, "parameters_to_context", err)
	}
	if params.FrameRate.Num() != 0 {
		cc.SetFramerate(params.FrameRate)
	}

	if params.HardwareDeviceType != astiav.HardwareDeviceTypeNone {
		if params.CodecParameters.MediaType() != astiav.MediaTypeVideo {
			return nil, averror.Errorf(
				averror.KindHardwareUnavailable, "init_hardware",
				"hardware decoding is supported only for video streams",
			)
		}
		if err := c.codecInternals.initHardware(ctx, params.HardwareDeviceType, params.HardwareDeviceName); err != nil {
			return nil, err
		}
	}

	if err := cc.Open(avCodec, params.Options); err != nil {
		return nil, averror.E(averror.KindMalformed, "open_decoder", err)
	}
	cc.SetTimeBase(params.TimeBase)

	return &Decoder{c}, nil
}

func (d *Decoder) String() string {
	return fmt.Sprintf("Decoder(%s)", d.codec.Name())
}

func (d *Decoder) SendPacket(
	ctx context.Context,
	p *astiav.Packet,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &d.locker, func() error {
		return d.codecContext.SendPacket(p)
	})
}

func (d *Decoder) ReceiveFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &d.locker, func() error {
		return d.codecContext.ReceiveFrame(f)
	})
}

// FramesAreHardware reports whether decoded frames live in device memory
// and require TransferToRAM before any filter or CPU-side encoder may
// consume them.
func (d *Decoder) FramesAreHardware() bool {
	return d.HardwareDeviceContext() != nil
}

// TransferToRAM copies a device-memory frame into dst (system memory),
// preserving the presentation timestamp.
func (d *Decoder) TransferToRAM(
	ctx context.Context,
	src *astiav.Frame,
	dst *astiav.Frame,
) error {
	if !d.FramesAreHardware() {
		return averror.Errorf(averror.KindBadParameter, "transfer_to_ram", "not a hardware-backed decoder")
	}
	if src.PixelFormat() != d.HardwarePixelFormat() {
		// the get_format callback fell back to software; nothing to transfer
		dst.Ref(src)
		return nil
	}
	if err := src.TransferHardwareData(dst); err != nil {
		return averror.E(averror.KindIo, "transfer_hardware_data", err)
	}
	dst.SetPts(src.Pts())
	return nil
}
