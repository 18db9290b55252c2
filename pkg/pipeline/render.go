package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/observability"
	"github.com/matzehuels/treechart/pkg/render/nodelink"
	"github.com/matzehuels/treechart/pkg/render/sink"
	"github.com/matzehuels/treechart/pkg/render/styles"
)

// Render generates every format in opts.Render.Formats from a computed layout.
func (r *Runner) Render(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Render.Formats)
	start := time.Now()

	artifacts, err := renderAll(ctx, res, opts)
	hooks.OnRenderComplete(ctx, opts.Render.Formats, time.Since(start), err)
	return artifacts, err
}

func renderAll(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, error) {
	theme, err := opts.Theme()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Render.Formats))
	for _, format := range opts.Render.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := renderFormat(ctx, res, theme, format, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, res layout.Result, theme styles.Theme, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(res, svgOptions(theme, opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(res,
			sink.WithPNGSVGOptions(svgOptions(theme, opts)...),
			sink.WithScale(opts.Render.PNGScale))
	case FormatJSON:
		return sink.RenderJSON(res,
			sink.WithJSONTheme(theme.Name),
			sink.WithJSONTitle(opts.Render.Title))
	case FormatDOT:
		return []byte(nodelink.ToDOT(res, nodelink.Options{Detailed: true, Theme: &theme})), nil
	case FormatNodelinkSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(res, nodelink.Options{Theme: &theme}))
	case FormatNodelinkPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(res, nodelink.Options{Theme: &theme}))
	default:
		return nil, ValidateFormat(format)
	}
}

func svgOptions(theme styles.Theme, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithTheme(theme),
		sink.WithTitle(opts.Render.Title),
		sink.WithMargin(opts.Render.Margin),
	}
	if opts.Render.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	return svgOpts
}
