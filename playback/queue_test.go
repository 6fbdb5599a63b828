package playback

import (
	"testing"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/packet"
)

func TestPacketQueueOrder(t *testing.T) {
	t.Parallel()

	q := NewPacketQueue(4)
	for i := 1; i <= 3; i++ {
		pkt := astiav.AllocPacket()
		pkt.SetPts(int64(i))
		require.True(t, q.Push(pkt))
		pkt.Free()
	}
	require.Equal(t, 3, q.Len())

	for i := 1; i <= 3; i++ {
		pkt, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, int64(i), pkt.Pts())
		packet.Pool.Put(pkt)
	}
}

func TestPacketQueueCloseUnblocksPop(t *testing.T) {
	t.Parallel()

	q := NewPacketQueue(1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, ok := q.Pop()
		require.False(t, ok)
	}()
	time.Sleep(10 * time.Millisecond)
	q.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Pop did not unblock on Close")
	}
}

func TestPacketQueuePushBlocksAtCapacity(t *testing.T) {
	t.Parallel()

	q := NewPacketQueue(1)
	pkt := astiav.AllocPacket()
	defer pkt.Free()
	require.True(t, q.Push(pkt))

	pushed := make(chan bool, 1)
	go func() {
		pushed <- q.Push(pkt)
	}()
	select {
	case <-pushed:
		t.Fatal("Push did not block at capacity")
	case <-time.After(20 * time.Millisecond):
	}

	got, ok := q.Pop()
	require.True(t, ok)
	packet.Pool.Put(got)

	select {
	case ok := <-pushed:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Push did not unblock after Pop")
	}
	q.Close()
	q.Drain()
}

func TestPacketQueuePushAfterClose(t *testing.T) {
	t.Parallel()

	q := NewPacketQueue(1)
	q.Close()
	pkt := astiav.AllocPacket()
	defer pkt.Free()
	require.False(t, q.Push(pkt))
}

func TestClock(t *testing.T) {
	t.Parallel()

	c := NewClock()
	_, ok := c.Now()
	require.False(t, ok)

	c.Set(1500 * time.Millisecond)
	now, ok := c.Now()
	require.True(t, ok)
	require.Equal(t, 1500*time.Millisecond, now)
}
