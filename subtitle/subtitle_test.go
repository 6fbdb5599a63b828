package subtitle

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/averror"
)

var sampleCues = []Cue{
	{Start: 1*time.Second + 200*time.Millisecond, End: 3 * time.Second, Text: "hello"},
	{Start: 4 * time.Second, End: 6*time.Second + 50*time.Millisecond, Text: "two\nlines"},
}

func TestRenderSRT(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderSRT(&buf, sampleCues))
	require.Equal(t,
		"1\n00:00:01,200 --> 00:00:03,000\nhello\n\n"+
			"2\n00:00:04,000 --> 00:00:06,050\ntwo\nlines\n\n",
		buf.String(),
	)
}

func TestParseSRTRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderSRT(&buf, sampleCues))
	cues, err := ParseSRT(&buf)
	require.NoError(t, err)
	require.Equal(t, sampleCues, cues)
}

func TestParseSRTCRLFAndOddNumbering(t *testing.T) {
	t.Parallel()

	src := "7\r\n01:02:03,004 --> 01:02:04,000\r\nst\r\n\r\n"
	cues, err := ParseSRT(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cues, 1)
	require.Equal(t, time.Hour+2*time.Minute+3*time.Second+4*time.Millisecond, cues[0].Start)
	require.Equal(t, "st", cues[0].Text)
}

func TestParseSRTMalformed(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"1\nnot a time line\ntext\n\n",
		"1\n00:00:01,000 -> 00:00:02,000\ntext\n\n",
		"1\n00:99:01,000 --> 00:00:02,000\ntext\n\n",
		"nope\n00:00:01,000 --> 00:00:02,000\ntext\n\n",
	} {
		_, err := ParseSRT(strings.NewReader(src))
		require.Error(t, err, src)
		require.True(t, errors.Is(err, averror.Malformed), src)
	}
}

func TestRenderWebVTT(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderWebVTT(&buf, sampleCues[:1]))
	require.Equal(t,
		"WEBVTT\n\n00:00:01.200 --> 00:00:03.000\nhello\n\n",
		buf.String(),
	)
}

func TestRenderASS(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderASS(&buf, sampleCues))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "[Script Info]"))
	require.Contains(t, out, "Dialogue: 0,0:00:01.20,0:00:03.00,Default,,0,0,0,,hello\n")
	require.Contains(t, out, `Dialogue: 0,0:00:04.00,0:00:06.05,Default,,0,0,0,,two\Nlines`+"\n")
}

func TestShift(t *testing.T) {
	t.Parallel()

	shifted := Shift(sampleCues, time.Second)
	require.Equal(t, 2*time.Second+200*time.Millisecond, shifted[0].Start)
	require.Equal(t, 4*time.Second, shifted[0].End)

	// shifting backwards clamps at zero
	back := Shift(sampleCues, -2*time.Second)
	require.Equal(t, time.Duration(0), back[0].Start)
	require.Equal(t, time.Second, back[0].End)

	// cues shifted entirely before zero are dropped
	gone := Shift(sampleCues, -4*time.Second)
	require.Len(t, gone, 1)
	require.Equal(t, "two\nlines", gone[0].Text)

	// the input is not mutated
	require.Equal(t, 1*time.Second+200*time.Millisecond, sampleCues[0].Start)
}
