// Package filtergraph implements the filter stage: a libav filter graph
// built from a DSL description, with one buffersink and one buffersrc per
// input (named `in` for a single source, `in0`..`inN` otherwise).
package filtergraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/averror"
	"github.com/xaionaro-go/avkitchen/helpers/closuresignaler"
	"github.com/xaionaro-go/avkitchen/logger"
	"github.com/xaionaro-go/avkitchen/resource"
	"github.com/xaionaro-go/avkitchen/types"
)

// SourceParams declares the format of the frames a source pad will be fed
// with. The graph refuses frames that differ from the declaration.
type SourceParams struct {
	Kind     types.MediaKind
	TimeBase astiav.Rational

	// video
	Width             int
	Height            int
	PixelFormat       astiav.PixelFormat
	SampleAspectRatio astiav.Rational

	// audio
	SampleRate    int
	SampleFormat  astiav.SampleFormat
	ChannelLayout astiav.ChannelLayout
}

func SourceParamsFromDescriptor(d types.StreamDescriptor) SourceParams {
	return SourceParams{
		Kind:              d.Kind,
		TimeBase:          d.TimeBase,
		Width:             int(d.Resolution.Width),
		Height:            int(d.Resolution.Height),
		PixelFormat:       d.PixelFormat,
		SampleAspectRatio: d.SampleAspectRatio,
		SampleRate:        d.SampleRate,
		SampleFormat:      d.SampleFormat,
		ChannelLayout:     d.ChannelLayout,
	}
}

// Spec is the recipe-supplied graph description.
type Spec struct {
	Description string
	Sources     []SourceParams

	// optional sink constraints, attached as trailing format filters;
	// FFmpeg format names, empty means unconstrained
	SinkPixelFormatName  string
	SinkSampleFormatName string
}

type Graph struct {
	*closuresignaler.ClosureSignaler

	Registry    *resource.Registry
	FilterGraph *astiav.FilterGraph
	SrcContexts []*astiav.BuffersrcFilterContext
	SinkContext *astiav.BuffersinkFilterContext
	Sources     []SourceParams
}

// SourceName returns the pad identifier the DSL binds to: `in` when the
// graph has a single source, `in0`..`inN` otherwise.
func SourceName(i, total int) string {
	if total == 1 {
		return "in"
	}
	return fmt.Sprintf("in%d", i)
}

func New(
	ctx context.Context,
	spec Spec,
) (_ret *Graph, _err error) {
	logger.Debugf(ctx, "New(%q)", spec.Description)
	defer func() { logger.Debugf(ctx, "/New(%q): %v", spec.Description, _err) }()
	if len(spec.Sources) == 0 {
		return nil, averror.Errorf(averror.KindBadFilter, "new_filter_graph", "no sources declared")
	}

	registry := resource.NewRegistry()
	defer func() {
		if _err != nil {
			_ = registry.Close(ctx)
		}
	}()

	fg, err := registry.FilterGraph(ctx)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		ClosureSignaler: closuresignaler.New(),
		Registry:        registry,
		FilterGraph:     fg,
		Sources:         spec.Sources,
	}

	// outputs: one entry per source pad, chained
	var outputs *astiav.FilterInOut
	for i := len(spec.Sources) - 1; i >= 0; i-- {
		srcParams := spec.Sources[i]
		srcCtx, err := g.newSource(ctx, fg, SourceName(i, len(spec.Sources)), srcParams)
		if err != nil {
			return nil, err
		}
		g.SrcContexts = append([]*astiav.BuffersrcFilterContext{srcCtx}, g.SrcContexts...)

		o, err := registry.FilterInOut(ctx)
		if err != nil {
			return nil, err
		}
		o.SetName(SourceName(i, len(spec.Sources)))
		o.SetFilterContext(srcCtx.FilterContext())
		o.SetPadIdx(0)
		o.SetNext(outputs)
		outputs = o
	}

	sinkName := "buffersink"
	if spec.Sources[0].Kind == types.MediaKindAudio {
		sinkName = "abuffersink"
	}
	sinkFilter := astiav.FindFilterByName(sinkName)
	if sinkFilter == nil {
		return nil, averror.Errorf(averror.KindBadFilter, "new_filter_graph", "unable to find the '%s' filter", sinkName)
	}
	sinkCtx, err := fg.NewBuffersinkFilterContext(sinkFilter, "out")
	if err != nil {
		return nil, averror.E(averror.KindBadFilter, "new_buffersink", err)
	}
	g.SinkContext = sinkCtx

	inputs, err := registry.FilterInOut(ctx)
	if err != nil {
		return nil, err
	}
	inputs.SetName("out")
	inputs.SetFilterContext(sinkCtx.FilterContext())
	inputs.SetPadIdx(0)
	inputs.SetNext(nil)

	description := assembleDescription(spec)
	if err := fg.Parse(description, inputs, outputs); err != nil {
		return nil, averror.E(averror.KindBadFilter, "parse_filter_graph", fmt.Errorf("unable to parse %q: %w", description, err))
	}
	if err := fg.Configure(); err != nil {
		return nil, averror.E(averror.KindBadFilter, "configure_filter_graph", fmt.Errorf("unable to configure %q: %w", description, err))
	}

	return g, nil
}

// assembleDescription appends the sink format constraints to the
// recipe-supplied DSL as trailing format/aformat nodes.
func assembleDescription(spec Spec) string {
	description := strings.TrimSpace(spec.Description)
	if description == "" {
		if spec.Sources[0].Kind == types.MediaKindAudio {
			description = "anull"
		} else {
			description = "null"
		}
	}
	if spec.SinkPixelFormatName != "" {
		description += fmt.Sprintf(",format=pix_fmts=%s", spec.SinkPixelFormatName)
	}
	if spec.SinkSampleFormatName != "" {
		description += fmt.Sprintf(",aformat=sample_fmts=%s", spec.SinkSampleFormatName)
	}
	return description
}

func (g *Graph) newSource(
	ctx context.Context,
	fg *astiav.FilterGraph,
	name string,
	params SourceParams,
) (*astiav.BuffersrcFilterContext, error) {
	srcName := "buffer"
	if params.Kind == types.MediaKindAudio {
		srcName = "abuffer"
	}
	srcFilter := astiav.FindFilterByName(srcName)
	if srcFilter == nil {
		return nil, averror.Errorf(averror.KindBadFilter, "new_filter_graph", "unable to find the '%s' filter", srcName)
	}

	srcCtx, err := fg.NewBuffersrcFilterContext(srcFilter, name)
	if err != nil {
		return nil, averror.E(averror.KindBadFilter, "new_buffersrc", err)
	}

	p := astiav.AllocBuffersrcFilterContextParameters()
	if p == nil {
		return nil, averror.E(averror.KindResourceExhausted, "alloc_buffersrc_parameters", nil)
	}
	defer p.Free()
	switch params.Kind {
	case types.MediaKindAudio:
		p.SetChannelLayout(params.ChannelLayout)
		p.SetSampleFormat(params.SampleFormat)
		p.SetSampleRate(params.SampleRate)
		p.SetTimeBase(params.TimeBase)
	default:
		p.SetWidth(params.Width)
		p.SetHeight(params.Height)
		p.SetPixelFormat(params.PixelFormat)
		p.SetSampleAspectRatio(params.SampleAspectRatio)
		p.SetTimeBase(params.TimeBase)
	}
	if err := srcCtx.SetParameters(p); err != nil {
		return nil, averror.E(averror.KindBadFilter, "set_buffersrc_parameters", err)
	}
	if err := srcCtx.Initialize(nil); err != nil {
		return nil, averror.E(averror.KindBadFilter, "initialize_buffersrc", err)
	}
	return srcCtx, nil
}

// Push hands a frame to source pad i. The graph retains its own
// reference; the caller may release its reference immediately. A nil
// frame signals end-of-stream for that source and begins the
// filter-side drain.
//
// Not thread-safe: the driver serializes Push and Pull.
func (g *Graph) Push(
	ctx context.Context,
	i int,
	f *astiav.Frame,
) error {
	if i < 0 || i >= len(g.SrcContexts) {
		return averror.Errorf(averror.KindBadParameter, "filter_push", "no source pad #%d", i)
	}
	if f != nil {
		if err := g.checkFrameFormat(i, f); err != nil {
			return err
		}
	}
	if err := g.SrcContexts[i].AddFrame(f, astiav.NewBuffersrcFlags(astiav.BuffersrcFlagKeepRef)); err != nil {
		return averror.E(averror.KindBadFilter, "filter_push", err)
	}
	return nil
}

// checkFrameFormat enforces invariant: a configured graph demands frames
// whose format exactly matches the parameters declared at configuration.
func (g *Graph) checkFrameFormat(i int, f *astiav.Frame) error {
	params := g.Sources[i]
	switch params.Kind {
	case types.MediaKindAudio:
		if f.SampleRate() != params.SampleRate ||
			f.SampleFormat() != params.SampleFormat ||
			!f.ChannelLayout().Equal(params.ChannelLayout) {
			return averror.Errorf(
				averror.KindMalformed, "filter_push",
				"frame format %s/%d/%s differs from the declared source parameters %s/%d/%s",
				f.SampleFormat(), f.SampleRate(), f.ChannelLayout(),
				params.SampleFormat, params.SampleRate, params.ChannelLayout,
			)
		}
	default:
		if f.Width() != params.Width ||
			f.Height() != params.Height ||
			f.PixelFormat() != params.PixelFormat {
			return averror.Errorf(
				averror.KindMalformed, "filter_push",
				"frame format %dx%d/%s differs from the declared source parameters %dx%d/%s",
				f.Width(), f.Height(), f.PixelFormat(),
				params.Width, params.Height, params.PixelFormat,
			)
		}
	}
	return nil
}

// Pull attempts to receive one transformed frame from the sink.
// astiav.ErrEagain means the graph needs more input; astiav.ErrEof means
// the drain has completed.
func (g *Graph) Pull(
	ctx context.Context,
	f *astiav.Frame,
) error {
	err := g.SinkContext.GetFrame(f, astiav.NewBuffersinkFlags())
	return averror.FromFFmpeg("filter_pull", err)
}

func (g *Graph) Close(ctx context.Context) error {
	g.ClosureSignaler.Close(ctx)
	return g.Registry.Close(ctx)
}

func (g *Graph) String() string {
	return fmt.Sprintf("FilterGraph(%d sources)", len(g.SrcContexts))
}
