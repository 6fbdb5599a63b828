// Package packet provides pooling and small helpers for astiav.Packet objects.
package packet

import (
	"runtime"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/resource"
)

var Pool = resource.NewPool(
	astiav.AllocPacket,
	func(p *astiav.Packet) { p.Unref() },
	func(p *astiav.Packet) { p.Free() },
)

func CopyReferenced(dst, src *astiav.Packet) {
	dst.Ref(src)
	runtime.KeepAlive(src)
}

func CloneAsReferenced(src *astiav.Packet) *astiav.Packet {
	dst := Pool.Get()
	CopyReferenced(dst, src)
	return dst
}
