package recipe

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/types"
)

func TestChorusConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Chorus{
		InGain: 0.6, OutGain: 0.9,
		Delays: []float64{50, 70},
		Decays: []float64{0.4, 0.5},
		Speeds: []float64{0.5, 0.6},
		Depths: []float64{2, 2.3},
	}.Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "chorus=0.6:0.9:50|70:0.4|0.5:0.5|0.6:2|2.3", cfg.FilterDescription)
	require.Equal(t, types.MediaKindAudio, cfg.Kind)
}

func TestChorusRejectsMismatchedVoices(t *testing.T) {
	t.Parallel()

	_, err := Chorus{
		InGain: 0.6, OutGain: 0.9,
		Delays: []float64{50, 70},
		Decays: []float64{0.4},
		Speeds: []float64{0.5, 0.6},
		Depths: []float64{2, 2.3},
	}.Config("in.wav", "out.wav")
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.BadParameter))

	_, err = Chorus{InGain: 0.6, OutGain: 0.9}.Config("in.wav", "out.wav")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestDistortionClampsDrive(t *testing.T) {
	t.Parallel()

	cfg, err := Distortion{DriveDB: 35}.Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "volume=20dB,alimiter=limit=0.9:level=false", cfg.FilterDescription)

	cfg, err = Distortion{DriveDB: -3}.Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "volume=0dB,alimiter=limit=0.9:level=false", cfg.FilterDescription)
}

func TestPitchClampsFactorAndChainsAtempo(t *testing.T) {
	t.Parallel()

	cfg, err := Pitch{Factor: 2, SampleRate: 48000}.Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "asetrate=96000,atempo=0.5,aresample=48000", cfg.FilterDescription)

	// factor 8 clamps to 4.0; tempo 0.25 needs a chained atempo
	cfg, err = Pitch{Factor: 8, SampleRate: 44100}.Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "asetrate=176400,atempo=0.5,atempo=0.5,aresample=44100", cfg.FilterDescription)

	_, err = Pitch{Factor: 0}.Config("in.wav", "out.wav")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestAtempoChain(t *testing.T) {
	t.Parallel()

	require.Equal(t, "atempo=1", atempoChain(1))
	require.Equal(t, "atempo=0.5", atempoChain(0.5))
	require.Equal(t, "atempo=2,atempo=2", atempoChain(4))
	require.Equal(t, "atempo=0.5,atempo=0.8", atempoChain(0.4))
}

func TestGIFConfig(t *testing.T) {
	t.Parallel()

	cfg, err := GIF{Width: 480, Height: 270, FPS: 10, MaxColors: 128}.Config("in.mp4", "out.gif")
	require.NoError(t, err)
	require.Equal(t, "gif", cfg.OutputFormatName)
	require.Equal(t,
		"fps=10,scale=480:270:flags=lanczos,split[s0][s1];[s0]palettegen=max_colors=128[p];[s1][p]paletteuse",
		cfg.FilterDescription,
	)

	_, err = GIF{Width: 480, Height: 270, FPS: 0, MaxColors: 128}.Config("in.mp4", "out.gif")
	require.True(t, errors.Is(err, averror.BadParameter))
	_, err = GIF{Width: 480, Height: 270, FPS: 10, MaxColors: 300}.Config("in.mp4", "out.gif")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestHLSConfig(t *testing.T) {
	t.Parallel()

	cfg, err := HLS{}.Config("in.mp4", "stream.m3u8")
	require.NoError(t, err)
	require.Equal(t, "hls", cfg.OutputFormatName)
	require.Equal(t, types.DictionaryItems{
		{Key: "hls_time", Value: "4"},
		{Key: "hls_list_size", Value: "0"},
		{Key: "hls_segment_filename", Value: "stream_%03d.ts"},
	}, cfg.OutputOptions)

	_, err = HLS{SegmentDuration: 100 * time.Millisecond}.Config("in.mp4", "stream.m3u8")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestWatermarkAndPiP(t *testing.T) {
	t.Parallel()

	cfg, err := Watermark{OverlayURL: "logo.png", X: 10, Y: 20}.Config("in.mp4", "out.mp4")
	require.NoError(t, err)
	require.Equal(t, []string{"logo.png"}, cfg.SecondaryInputURLs)
	require.Equal(t, "[in0][in1]overlay=10:20", cfg.FilterDescription)

	_, err = Watermark{}.Config("in.mp4", "out.mp4")
	require.True(t, errors.Is(err, averror.BadParameter))

	cfg, err = PictureInPicture{SecondaryURL: "cam.mp4", X: 5, Y: 5}.Config("in.mp4", "out.mp4")
	require.NoError(t, err)
	require.Equal(t, "[in1]scale=iw/4:ih/4[pip];[in0][pip]overlay=5:5", cfg.FilterDescription)
}

func TestMixConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Mix{SecondaryInputURLs: []string{"b.wav", "c.wav"}}.Config("a.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "[in0][in1][in2]amix=inputs=3:duration=longest", cfg.FilterDescription)
	require.Equal(t, []string{"b.wav", "c.wav"}, cfg.SecondaryInputURLs)

	_, err = Mix{}.Config("a.wav", "out.wav")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestNormalizeDefaultsAndBounds(t *testing.T) {
	t.Parallel()

	cfg, err := Normalize{}.Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "loudnorm=I=-24:TP=-2:LRA=7", cfg.FilterDescription)

	_, err = Normalize{IntegratedLUFS: -80}.Config("in.wav", "out.wav")
	require.True(t, errors.Is(err, averror.BadParameter))
	_, err = Normalize{TruePeakDB: 3}.Config("in.wav", "out.wav")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestLimiterHonestKnobs(t *testing.T) {
	t.Parallel()

	cfg, err := Limiter{Limit: 0.8, Attack: 5 * time.Millisecond, Release: 50 * time.Millisecond}.
		Config("in.wav", "out.wav")
	require.NoError(t, err)
	require.Equal(t, "alimiter=limit=0.8:attack=5:release=50", cfg.FilterDescription)

	_, err = Limiter{Limit: 1.5}.Config("in.wav", "out.wav")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestPresets(t *testing.T) {
	t.Parallel()

	ch, err := ChorusPreset("subtle")
	require.NoError(t, err)
	_, err = ch.Config("in.wav", "out.wav")
	require.NoError(t, err)

	_, err = ChorusPreset("nope")
	require.True(t, errors.Is(err, averror.NotFound))

	for _, name := range GIFPresetNames() {
		g, err := GIFPreset(name)
		require.NoError(t, err)
		_, err = g.Config("in.mp4", "out.gif")
		require.NoError(t, err)
	}
	for _, name := range NormalizePresetNames() {
		n, err := NormalizePreset(name)
		require.NoError(t, err)
		_, err = n.Config("in.wav", "out.wav")
		require.NoError(t, err)
	}
	for _, name := range ReverbPresetNames() {
		r, err := ReverbPreset(name)
		require.NoError(t, err)
		_, err = r.Config("in.wav", "out.wav")
		require.NoError(t, err)
	}
	for _, name := range LimiterPresetNames() {
		l, err := LimiterPreset(name)
		require.NoError(t, err)
		_, err = l.Config("in.wav", "out.wav")
		require.NoError(t, err)
	}
}

func TestThumbnailConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Thumbnail{Width: 320, Height: 180}.Config("in.mp4", "out.jpg")
	require.NoError(t, err)
	require.Equal(t, "image2", cfg.OutputFormatName)
	require.Equal(t, uint64(1), cfg.MaxOutputFrames)
	require.Equal(t, "thumbnail,scale=320:180", cfg.FilterDescription)

	_, err = Thumbnail{}.Config("in.mp4", "out.jpg")
	require.True(t, errors.Is(err, averror.BadParameter))
}

func TestTranscodeValidation(t *testing.T) {
	t.Parallel()

	_, err := Transcode{Kind: types.MediaKindVideo, Width: 100}.Config("in.mp4", "out.mp4")
	require.True(t, errors.Is(err, averror.BadParameter))
	_, err = Transcode{}.Config("in.mp4", "out.mp4")
	require.True(t, errors.Is(err, averror.BadParameter))

	cfg, err := Transcode{Kind: types.MediaKindVideo, CodecName: "libx264", BitRate: 2_000_000}.
		Config("in.mp4", "out.mp4")
	require.NoError(t, err)
	require.Equal(t, "libx264", cfg.Encoder.CodecName)
}

func TestTranscodeCarriesAudioOver(t *testing.T) {
	t.Parallel()

	cfg, err := Transcode{Kind: types.MediaKindVideo, CodecName: "libx264"}.Config("in.mp4", "out.mp4")
	require.NoError(t, err)
	require.Equal(t, []types.MediaKind{types.MediaKindAudio}, cfg.CopyKinds)

	cfg, err = Transcode{Kind: types.MediaKindVideo, CodecName: "libx264", DropAudio: true}.
		Config("in.mp4", "out.mp4")
	require.NoError(t, err)
	require.Empty(t, cfg.CopyKinds)

	// an audio transcode rewrites the only stream it touches
	cfg, err = Transcode{Kind: types.MediaKindAudio, CodecName: "aac"}.Config("in.m4a", "out.m4a")
	require.NoError(t, err)
	require.Empty(t, cfg.CopyKinds)
}
