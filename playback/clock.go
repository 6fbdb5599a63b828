package playback

import (
	"time"

	"go.uber.org/atomic"
)

// Clock is the master playback clock. The audio goroutine publishes the
// position of the last presented sample; the video goroutine reads it to
// decide whether to sleep or to report a lag.
type Clock struct {
	position atomic.Duration
	started  atomic.Bool
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Set(position time.Duration) {
	c.position.Store(position)
	c.started.Store(true)
}

// Now returns the current playback position; ok is false until the
// first Set.
func (c *Clock) Now() (time.Duration, bool) {
	return c.position.Load(), c.started.Load()
}
