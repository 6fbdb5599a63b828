package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// RenderWebVTT writes the cues as WebVTT: a `WEBVTT` magic line and
// dot-separated milliseconds in the time lines.
func RenderWebVTT(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "WEBVTT\n\n")
	for _, c := range cues {
		fmt.Fprintf(bw, "%s --> %s\n%s\n\n",
			formatWebVTTTime(c.Start), formatWebVTTTime(c.End), c.Text)
	}
	return bw.Flush()
}

func formatWebVTTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	ms := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
