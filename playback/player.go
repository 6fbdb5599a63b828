// Package playback implements paced playback of a local media file:
// a demuxer goroutine feeding bounded per-kind packet queues, an audio
// goroutine that owns the master clock, and a video goroutine that
// presents frames against that clock.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/observability"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/codec"
	"github.com/xaionaro-go/avkitchen/frame"
	"github.com/xaionaro-go/avkitchen/input"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/packet"
	"github.com/xaionaro-go/avkitchen/types"
)

const (
	DefaultVideoQueueSize = 10
	DefaultAudioQueueSize = 20
	DefaultLagThreshold   = 100 * time.Millisecond
)

type Config struct {
	InputURL        string
	InputFormatName string

	VideoQueueSize int
	AudioQueueSize int
	LagThreshold   time.Duration

	// Presentation callbacks; a nil callback discards the frames of that
	// kind (the pacing still happens).
	OnVideoFrame func(ctx context.Context, f *astiav.Frame)
	OnAudioFrame func(ctx context.Context, f *astiav.Frame)

	// OnLag is invoked when a video frame is presented later than
	// LagThreshold behind the audio clock.
	OnLag func(ctx context.Context, behind time.Duration)
}

type track struct {
	stream  *astiav.Stream
	decoder *codec.Decoder
	queue   *PacketQueue
}

type Player struct {
	cfg   Config
	in    *input.Input
	audio *track
	video *track
	clock *Clock

	errOnce sync.Once
	err     error
	cancel  context.CancelFunc
}

// Play opens the file and blocks until playback finishes, the context is
// cancelled or an error occurs.
func Play(ctx context.Context, cfg Config) (_err error) {
	logger.Debugf(ctx, "Play('%s')", cfg.InputURL)
	defer func() { logger.Debugf(ctx, "/Play('%s'): %v", cfg.InputURL, _err) }()

	if cfg.VideoQueueSize <= 0 {
		cfg.VideoQueueSize = DefaultVideoQueueSize
	}
	if cfg.AudioQueueSize <= 0 {
		cfg.AudioQueueSize = DefaultAudioQueueSize
	}
	if cfg.LagThreshold <= 0 {
		cfg.LagThreshold = DefaultLagThreshold
	}

	in, err := input.Open(ctx, cfg.InputURL, input.Config{FormatName: cfg.InputFormatName})
	if err != nil {
		return err
	}
	defer func() { _ = in.Close(ctx) }()

	p := &Player{
		cfg:   cfg,
		in:    in,
		clock: NewClock(),
	}
	p.video, err = p.openTrack(ctx, types.MediaKindVideo, cfg.VideoQueueSize)
	if err != nil {
		return err
	}
	p.audio, err = p.openTrack(ctx, types.MediaKindAudio, cfg.AudioQueueSize)
	if err != nil {
		return err
	}
	if p.video == nil && p.audio == nil {
		return averror.Errorf(averror.KindNoSuchStream, "play", "'%s' has neither a video nor an audio stream", cfg.InputURL)
	}

	return p.run(ctx)
}

// openTrack returns nil (not an error) when the file simply has no
// stream of that kind.
func (p *Player) openTrack(
	ctx context.Context,
	kind types.MediaKind,
	queueSize int,
) (*track, error) {
	st, err := p.in.SelectStream(ctx, kind, input.PreferFirst)
	if err != nil {
		if errors.Is(err, averror.NoSuchStream) {
			return nil, nil
		}
		return nil, err
	}
	dec, err := p.in.OpenDecoder(ctx, st)
	if err != nil {
		return nil, err
	}
	return &track{
		stream:  st,
		decoder: dec,
		queue:   NewPacketQueue(queueSize),
	}, nil
}

// fail records the first error and unblocks everyone: the demuxer may be
// parked in a queue Push, so cancelling the context alone is not enough.
func (p *Player) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
	p.closeQueues()
}

func (p *Player) closeQueues() {
	if p.audio != nil {
		p.audio.queue.Close()
	}
	if p.video != nil {
		p.video.queue.Close()
	}
}

func (p *Player) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.cancel = cancel

	// cancellation (ours or the caller's) must close the queues, or a
	// producer blocked in Push would keep the wait below from returning
	observability.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		p.closeQueues()
	})

	var wg sync.WaitGroup

	wg.Add(1)
	observability.Go(ctx, func(ctx context.Context) {
		defer wg.Done()
		p.demuxLoop(ctx)
	})
	if p.audio != nil {
		wg.Add(1)
		observability.Go(ctx, func(ctx context.Context) {
			defer wg.Done()
			p.audioLoop(ctx)
		})
	}
	if p.video != nil {
		wg.Add(1)
		observability.Go(ctx, func(ctx context.Context) {
			defer wg.Done()
			p.videoLoop(ctx)
		})
	}

	wg.Wait()
	for _, tr := range []*track{p.audio, p.video} {
		if tr != nil {
			tr.queue.Close()
			tr.queue.Drain()
		}
	}
	if p.err != nil {
		return p.err
	}
	if err := context.Cause(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (p *Player) demuxLoop(ctx context.Context) {
	defer func() {
		if p.audio != nil {
			p.audio.queue.Close()
		}
		if p.video != nil {
			p.video.queue.Close()
		}
	}()

	pkt := packet.Pool.Get()
	defer packet.Pool.Put(pkt)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		err := p.in.ReadFrame(pkt)
		if errors.Is(err, astiav.ErrEof) {
			return
		}
		if err != nil {
			p.fail(averror.E(averror.KindIo, "read_frame", err))
			return
		}
		switch {
		case p.video != nil && pkt.StreamIndex() == p.video.stream.Index():
			p.video.queue.Push(pkt)
		case p.audio != nil && pkt.StreamIndex() == p.audio.stream.Index():
			p.audio.queue.Push(pkt)
		}
		pkt.Unref()
	}
}

// audioLoop presents audio frames at their natural rate and publishes
// the master clock after each one.
func (p *Player) audioLoop(ctx context.Context) {
	tr := p.audio
	f := frame.Pool.Get()
	defer frame.Pool.Put(f)

	err := p.consumeQueue(ctx, tr, f, func(ctx context.Context, f *astiav.Frame) error {
		if p.cfg.OnAudioFrame != nil {
			p.cfg.OnAudioFrame(ctx, f)
		}
		d := frameDuration(f)
		if !sleepCtx(ctx, d) {
			return ctx.Err()
		}
		p.clock.Set(ptsToDuration(f.Pts(), tr.stream.TimeBase()) + d)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		p.fail(err)
	}
}

// videoLoop presents video frames against the audio clock (or the wall
// clock when the file has no audio), reporting frames that fall behind
// by more than the threshold.
func (p *Player) videoLoop(ctx context.Context) {
	tr := p.video
	f := frame.Pool.Get()
	defer frame.Pool.Put(f)

	start := time.Now()
	err := p.consumeQueue(ctx, tr, f, func(ctx context.Context, f *astiav.Frame) error {
		pts := ptsToDuration(f.Pts(), tr.stream.TimeBase())
		now, ok := p.clock.Now()
		if !ok && p.audio == nil {
			now = time.Since(start)
			ok = true
		}
		if ok {
			switch diff := pts - now; {
			case diff > 0:
				if !sleepCtx(ctx, diff) {
					return ctx.Err()
				}
			case -diff > p.cfg.LagThreshold:
				logger.Warnf(ctx, "video is %v behind the clock", -diff)
				if p.cfg.OnLag != nil {
					p.cfg.OnLag(ctx, -diff)
				}
			}
		}
		if p.cfg.OnVideoFrame != nil {
			p.cfg.OnVideoFrame(ctx, f)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		p.fail(err)
	}
}

// consumeQueue pops packets, decodes them and hands each frame to
// present, finishing with a decoder drain once the queue closes.
func (p *Player) consumeQueue(
	ctx context.Context,
	tr *track,
	f *astiav.Frame,
	present func(ctx context.Context, f *astiav.Frame) error,
) error {
	receive := func() error {
		for {
			err := tr.decoder.ReceiveFrame(ctx, f)
			if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
				return nil
			}
			if err != nil {
				return averror.FromFFmpeg("receive_frame", err)
			}
			err = present(ctx, f)
			f.Unref()
			if err != nil {
				return err
			}
		}
	}

	for {
		pkt, ok := tr.queue.Pop()
		if !ok {
			break
		}
		pkt.RescaleTs(tr.stream.TimeBase(), tr.decoder.TimeBase())
		err := tr.decoder.SendPacket(ctx, pkt)
		packet.Pool.Put(pkt)
		if err != nil {
			logger.Warnf(ctx, "unable to decode a packet, skipping it: %v", err)
			continue
		}
		if err := receive(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	if err := tr.decoder.SendPacket(ctx, nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return averror.FromFFmpeg("send_packet", err)
	}
	return receive()
}

func frameDuration(f *astiav.Frame) time.Duration {
	if f.SampleRate() == 0 {
		return 0
	}
	return time.Duration(f.NbSamples()) * time.Second / time.Duration(f.SampleRate())
}

func ptsToDuration(pts int64, tb astiav.Rational) time.Duration {
	if pts == astiav.NoPtsValue || tb.Den() == 0 {
		return 0
	}
	return time.Duration(float64(pts) * tb.Float64() * float64(time.Second))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(%s)", p.cfg.InputURL)
}
