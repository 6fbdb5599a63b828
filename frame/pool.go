// Package frame provides pooling and small helpers for astiav.Frame objects.
package frame

import (
	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/resource"
)

var Pool = resource.NewPool(
	astiav.AllocFrame,
	func(f *astiav.Frame) { f.Unref() },
	func(f *astiav.Frame) { f.Free() },
)
