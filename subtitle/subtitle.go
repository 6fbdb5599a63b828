// Package subtitle holds a minimal cue model with SRT, WebVTT and ASS
// rendering, SRT parsing, and time-shifting.
package subtitle

import (
	"time"
)

// Cue is one subtitle event.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Shift moves every cue by delta (negative deltas shift backwards),
// clamping at zero so no cue starts before the beginning of the media.
func Shift(cues []Cue, delta time.Duration) []Cue {
	out := make([]Cue, 0, len(cues))
	for _, c := range cues {
		c.Start += delta
		c.End += delta
		if c.End <= 0 {
			continue
		}
		if c.Start < 0 {
			c.Start = 0
		}
		out = append(out, c)
	}
	return out
}
