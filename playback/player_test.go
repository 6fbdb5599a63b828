package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/packet"
)

func TestFailUnblocksProducers(t *testing.T) {
	t.Parallel()

	p := &Player{
		audio:  &track{queue: NewPacketQueue(1)},
		video:  &track{queue: NewPacketQueue(1)},
		cancel: func() {},
	}

	pkt := astiav.AllocPacket()
	defer pkt.Free()
	require.True(t, p.video.queue.Push(pkt))

	// a producer parked in Push on the full queue
	pushed := make(chan bool, 1)
	go func() {
		pushed <- p.video.queue.Push(pkt)
	}()

	p.fail(errors.New("decode failed"))

	select {
	case ok := <-pushed:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("Push did not return after fail")
	}

	// both queues are closed; pending packets stay poppable, then false
	_, ok := p.audio.queue.Pop()
	require.False(t, ok)
	pending, ok := p.video.queue.Pop()
	require.True(t, ok)
	packet.Pool.Put(pending)
	_, ok = p.video.queue.Pop()
	require.False(t, ok)
	require.Error(t, p.err)

	p.video.queue.Drain()
	p.audio.queue.Drain()
}
