package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/avkitchen/logger"
)

// SetFinalizerFree is a backstop: every libav object is supposed to be
// released through a resource.Registry, but if a handle escapes the
// registry we still free it when the GC collects the wrapper.
func SetFinalizerFree[T interface{ Free() }](
	ctx context.Context,
	freer T,
) {
	runtime.SetFinalizer(freer, func(freer T) {
		logger.Debugf(ctx, "freeing %T", freer)
		freer.Free()
	})
}

func SetFinalizer[T any](
	ctx context.Context,
	obj T,
	callback func(in T),
) {
	runtime.SetFinalizer(obj, callback)
}
