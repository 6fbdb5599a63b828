// Package codec wraps libav decoder/encoder states behind scoped,
// lockable handles.
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

type codecInternals struct {
	isEncoder             bool
	codec                 *astiav.Codec
	codecContext          *astiav.CodecContext
	hardwareDeviceContext *astiav.HardwareDeviceContext
	hardwarePixelFormat   astiav.PixelFormat
	registry              *resource.Registry
}

type Codec struct {
	*codecInternals
	locker xsync.Mutex
}

func (c *Codec) Codec() *astiav.Codec {
	return xsync.DoR1(context.TODO(), &c.locker, func() *astiav.Codec {
		return c.codec
	})
}

func (c *Codec) CodecContext() *astiav.CodecContext {
	return xsync.DoR1(context.TODO(), &c.locker, func() *astiav.CodecContext {
		return c.codecContext
	})
}

func (c *Codec) MediaType() astiav.MediaType {
	return xsync.DoR1(context.TODO(), &c.locker, func() astiav.MediaType {
		if c.codecContext == nil {
			logger.Errorf(context.TODO(), "codecContext == nil")
			return astiav.MediaTypeUnknown
		}
		return c.codecContext.MediaType()
	})
}

func (c *Codec) TimeBase() astiav.Rational {
	return xsync.DoR1(context.TODO(), &c.locker, func() astiav.Rational {
		if c.codecContext == nil {
			logger.Errorf(context.TODO(), "codecContext == nil")
			return astiav.Rational{}
		}
		return c.codecContext.TimeBase()
	})
}

func (c *Codec) HardwareDeviceContext() *astiav.HardwareDeviceContext {
	return xsync.DoR1(context.TODO(), &c.locker, func() *astiav.HardwareDeviceContext {
		return c.hardwareDeviceContext
	})
}

func (c *Codec) HardwarePixelFormat() astiav.PixelFormat {
	return xsync.DoR1(context.TODO(), &c.locker, func() astiav.PixelFormat {
		return c.hardwarePixelFormat
	})
}

func (c *Codec) ToCodecParameters(cp *astiav.CodecParameters) error {
	return xsync.DoA1R1(context.TODO(), &c.locker, c.toCodecParameters, cp)
}

func (c *codecInternals) toCodecParameters(cp *astiav.CodecParameters) error {
	return averror.FromFFmpeg("parameters_from_context", cp.FromCodecContext(c.codecContext))
}

func (c *Codec) Close(ctx context.Context) error {
	return xsync.DoA1R1(ctx, &c.locker, c.closeLocked, ctx)
}

func (c *codecInternals) closeLocked(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "closeLocked")
	defer func() { logger.Debugf(ctx, "/closeLocked: %v", _err) }()
	defer func() {
		c.codec = nil
		c.codecContext = nil
		c.hardwareDeviceContext = nil
		c.registry = nil
	}()
	if c.registry == nil {
		return nil
	}
	return c.registry.Close(ctx)
}

func (c *codecInternals) initHardware(
	ctx context.Context,
	deviceType astiav.HardwareDeviceType,
	deviceName string,
) (_err error) {
	logger.Tracef(ctx, "initHardware(%v, '%s')", deviceType, deviceName)
	defer func() { logger.Tracef(ctx, "/initHardware(%v, '%s'): %v", deviceType, deviceName, _err) }()

	c.hardwarePixelFormat = astiav.PixelFormatNone
	for _, hwCfg := range c.codec.HardwareConfigs() {
		if hwCfg.HardwareDeviceType() != deviceType {
			continue
		}
		if !hwCfg.MethodFlags().Has(astiav.CodecHardwareConfigMethodFlagHwDeviceCtx) {
			continue
		}
		c.hardwarePixelFormat = hwCfg.PixelFormat()
		break
	}
	if c.hardwarePixelFormat == astiav.PixelFormatNone {
		return averror.Errorf(
			averror.KindHardwareUnavailable, "init_hardware",
			"codec '%s' has no config for device type %v", c.codec.Name(), deviceType,
		)
	}

	// get_format policy: of the formats libav offers, pick the one equal to
	// the negotiated hardware format; none matching means the decoder falls
	// back to software.
	c.codecContext.SetPixelFormatCallback(func(pfs []astiav.PixelFormat) astiav.PixelFormat {
		for _, pf := range pfs {
			if pf == c.hardwarePixelFormat {
				return pf
			}
		}
		logger.Warnf(ctx, "hardware pixel format %v is not offered, falling back to software", c.hardwarePixelFormat)
		return astiav.PixelFormatNone
	})

	hdc, err := c.registry.HardwareDeviceContext(ctx, deviceType, deviceName, nil)
	if err != nil {
		return fmt.Errorf("device type %v ('%s'): %w", deviceType, deviceName, err)
	}
	c.hardwareDeviceContext = hdc
	c.codecContext.SetHardwareDeviceContext(hdc)
	return nil
}
