// Package averror defines the tagged error taxonomy of the avkitchen
// project. Every libav call is checked at the point of return and the
// failure is converted to one of these kinds; end-of-stream sentinels
// (astiav.ErrEof, astiav.ErrEagain) are control flow and are never
// wrapped here.
package averror

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/asticode/go-astiav"
)

// The pinned astiav fork does not export ErrEinval; AVERROR(EINVAL) is the
// negated errno, so reconstruct the same sentinel value here.
var errEinval = astiav.Error(-int(syscall.EINVAL))

type Kind int

const (
	KindUndefined Kind = iota
	KindNotFound
	KindMalformed
	KindCodecUnavailable
	KindUnknownFormat
	KindNoSuchStream
	KindBadFilter
	KindBadParameter
	KindHardwareUnavailable
	KindResourceExhausted
	KindIo
	EndOfKind
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed"
	case KindCodecUnavailable:
		return "codec_unavailable"
	case KindUnknownFormat:
		return "unknown_format"
	case KindNoSuchStream:
		return "no_such_stream"
	case KindBadFilter:
		return "bad_filter"
	case KindBadParameter:
		return "bad_parameter"
	case KindHardwareUnavailable:
		return "hardware_unavailable"
	case KindResourceExhausted:
		return "resource_exhausted"
	case KindIo:
		return "io"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Error is the tagged error returned at every facade boundary.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, averror.E(kind, "", nil)) match by kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind carried by err, or KindUndefined.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUndefined
}

// sentinel values for errors.Is checks by kind
var (
	NotFound            = &Error{Kind: KindNotFound}
	Malformed           = &Error{Kind: KindMalformed}
	CodecUnavailable    = &Error{Kind: KindCodecUnavailable}
	UnknownFormat       = &Error{Kind: KindUnknownFormat}
	NoSuchStream        = &Error{Kind: KindNoSuchStream}
	BadFilter           = &Error{Kind: KindBadFilter}
	BadParameter        = &Error{Kind: KindBadParameter}
	HardwareUnavailable = &Error{Kind: KindHardwareUnavailable}
	ResourceExhausted   = &Error{Kind: KindResourceExhausted}
	Io                  = &Error{Kind: KindIo}
)

// FromFFmpeg converts an error returned by a libav call into a tagged
// error, guessing the kind from the libav error code. The EOF/EAGAIN
// sentinels are returned unchanged so that the drain state machines can
// keep matching them with errors.Is.
func FromFFmpeg(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, astiav.ErrEof) || errors.Is(err, astiav.ErrEagain) {
		return err
	}
	return E(kindFromFFmpeg(err), op, err)
}

func kindFromFFmpeg(err error) Kind {
	switch {
	case errors.Is(err, astiav.ErrDecoderNotFound),
		errors.Is(err, astiav.ErrEncoderNotFound):
		return KindCodecUnavailable
	case errors.Is(err, astiav.ErrDemuxerNotFound),
		errors.Is(err, astiav.ErrMuxerNotFound):
		return KindUnknownFormat
	case errors.Is(err, astiav.ErrStreamNotFound):
		return KindNoSuchStream
	case errors.Is(err, astiav.ErrFilterNotFound):
		return KindBadFilter
	case errors.Is(err, astiav.ErrInvaliddata):
		return KindMalformed
	case errors.Is(err, astiav.ErrEio):
		return KindIo
	case errors.Is(err, errEinval):
		return KindMalformed
	default:
		return KindIo
	}
}

// IsFFmpeg reports whether the unwrap chain of err carries a libav error
// (used by the CLIs to render "FFmpeg error: ..." instead of "Error: ...").
func IsFFmpeg(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Err != nil && isAstiavError(e.Err)
}

func isAstiavError(err error) bool {
	for _, known := range []error{
		astiav.ErrEof, astiav.ErrEagain, astiav.ErrEio, errEinval,
		astiav.ErrInvaliddata, astiav.ErrDecoderNotFound, astiav.ErrEncoderNotFound,
		astiav.ErrDemuxerNotFound, astiav.ErrMuxerNotFound, astiav.ErrStreamNotFound,
		astiav.ErrFilterNotFound,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
