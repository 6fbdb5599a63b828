package playback

import (
	"sync"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/packet"
)

// PacketQueue is a bounded FIFO between the demuxer goroutine and one
// decoder goroutine. Push blocks while the queue is at capacity, which
// is what throttles the demuxer to playback speed.
type PacketQueue struct {
	locker   sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    []*astiav.Packet
	capacity int
	closed   bool
}

func NewPacketQueue(capacity int) *PacketQueue {
	q := &PacketQueue{
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.locker)
	q.notFull = sync.NewCond(&q.locker)
	return q
}

// Push enqueues its own reference to the packet; the caller keeps
// ownership of pkt. Returns false if the queue was closed.
func (q *PacketQueue) Push(pkt *astiav.Packet) bool {
	q.locker.Lock()
	defer q.locker.Unlock()
	for len(q.items) >= q.capacity && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return false
	}
	q.items = append(q.items, packet.CloneAsReferenced(pkt))
	q.notEmpty.Signal()
	return true
}

// Pop blocks until a packet is available or the queue is closed and
// empty. The caller owns the returned packet and must return it to the
// pool.
func (q *PacketQueue) Pop() (*astiav.Packet, bool) {
	q.locker.Lock()
	defer q.locker.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	pkt := q.items[0]
	q.items = q.items[1:]
	q.notFull.Signal()
	return pkt, true
}

func (q *PacketQueue) Len() int {
	q.locker.Lock()
	defer q.locker.Unlock()
	return len(q.items)
}

// Close wakes all waiters; pending packets remain poppable, further
// pushes are refused.
func (q *PacketQueue) Close() {
	q.locker.Lock()
	defer q.locker.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Drain empties the queue, returning the leftovers to the pool.
func (q *PacketQueue) Drain() {
	q.locker.Lock()
	items := q.items
	q.items = nil
	q.notFull.Broadcast()
	q.locker.Unlock()
	for _, pkt := range items {
		packet.Pool.Put(pkt)
	}
}
