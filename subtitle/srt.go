package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xaionaro-go/avkitchen/averror"
)

// RenderSRT writes the cues as SubRip: 1-based counters and
// `HH:MM:SS,mmm --> HH:MM:SS,mmm` time lines.
func RenderSRT(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, c := range cues {
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1, formatSRTTime(c.Start), formatSRTTime(c.End), c.Text)
	}
	return bw.Flush()
}

func formatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	ms := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ParseSRT reads SubRip cues, tolerating CRLF line endings and blank
// lines between blocks. Malformed time lines yield a Malformed error.
func ParseSRT(r io.Reader) ([]Cue, error) {
	var cues []Cue
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cue     *Cue
		inBlock bool
		text    []string
	)
	flush := func() {
		if cue != nil {
			cue.Text = strings.Join(text, "\n")
			cues = append(cues, *cue)
		}
		cue = nil
		inBlock = false
		text = nil
	}
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case !inBlock:
			// the counter line; its value is ignored, renumbering happens
			// on render
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err != nil {
				return nil, averror.Errorf(averror.KindMalformed, "parse_srt", "expected a cue counter, got %q", line)
			}
			inBlock = true
		case cue == nil:
			start, end, err := parseSRTTimeLine(line)
			if err != nil {
				return nil, err
			}
			cue = &Cue{Start: start, End: end}
		default:
			text = append(text, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, averror.E(averror.KindIo, "parse_srt", err)
	}
	flush()
	return cues, nil
}

func parseSRTTimeLine(line string) (time.Duration, time.Duration, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, averror.Errorf(averror.KindMalformed, "parse_srt", "invalid time line %q", line)
	}
	start, err := parseSRTTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := parseSRTTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseSRTTime(s string) (time.Duration, error) {
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(s, "%d:%d:%d,%d", &h, &m, &sec, &ms); err != nil {
		return 0, averror.Errorf(averror.KindMalformed, "parse_srt", "invalid timestamp %q", s)
	}
	if m > 59 || sec > 59 || ms > 999 || h < 0 || m < 0 || sec < 0 || ms < 0 {
		return 0, averror.Errorf(averror.KindMalformed, "parse_srt", "out-of-range timestamp %q", s)
	}
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
