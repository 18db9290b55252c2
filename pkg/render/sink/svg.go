package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/render/styles"
	"github.com/matzehuels/treechart/pkg/textmetric"
)

const (
	defaultMargin = 32.0
	titleHeight   = 56.0
	legendHeight  = 56.0
	legendSwatch  = 20
	legendSpacing = 150
	rootFontScale = 0.9
	percentFontPx = 40.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme  styles.Theme
	title  string
	margin float64
	legend bool
	text   bool
}

// WithTheme sets the colour theme (default [styles.Dark]).
func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithTitle draws a centered title above the chart.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithMargin sets the blank border around the chart.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = max(m, 0) } }

// WithLegend draws the status legend below the chart.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithoutText omits all text elements, leaving only shapes.
func WithoutText() SVGOption { return func(r *svgRenderer) { r.text = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: styles.Dark(), margin: defaultMargin, text: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// canvas maps layout coordinates to integer SVG coordinates.
type canvas struct {
	*svg.SVG
	dx, dy float64
}

func (c canvas) x(v float64) int { return int(math.Round(v + c.dx)) }
func (c canvas) y(v float64) int { return int(math.Round(v + c.dy)) }

// RenderSVG draws res as a standalone SVG document.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	bounds := res.Bounds()
	top := r.margin
	if r.title != "" {
		top += titleHeight
	}
	width := int(math.Ceil(bounds.Width + 2*r.margin))
	height := bounds.Height + top + r.margin
	if r.legend {
		height += legendHeight
	}

	var buf bytes.Buffer
	c := canvas{SVG: svg.New(&buf), dx: r.margin - bounds.X, dy: top - bounds.Y}
	h := int(math.Ceil(height))
	c.Startview(width, h, 0, 0, width, h)
	c.Rect(0, 0, width, h, "fill:"+r.theme.Background)

	if r.title != "" && r.text {
		c.Text(width/2, int(r.margin+titleHeight/2), r.title,
			fmt.Sprintf("fill:%s;font-size:24px;font-weight:bold;text-anchor:middle;dominant-baseline:middle;font-family:%s",
				r.theme.Text, r.theme.FontFamily))
	}

	r.connectors(c, res)
	r.root(c, res)
	for _, cat := range res.Categories {
		r.category(c, res, cat)
		for _, leaf := range cat.Leaves {
			r.leaf(c, res, leaf)
		}
	}
	if r.legend {
		r.legendPanel(c, res.Visibility, bounds.Height+top+r.margin/2)
	}

	c.End()
	return buf.Bytes()
}

func (r svgRenderer) connectors(c canvas, res layout.Result) {
	style := fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-opacity:%g;fill:none",
		r.theme.Connector, r.theme.ConnectorWidth, r.theme.ConnectorOpacity)
	c.Gid("connectors")
	for _, conn := range res.Connectors {
		c.Line(c.x(conn.From.X), c.y(conn.From.Y), c.x(conn.To.X), c.y(conn.To.Y),
			fmt.Sprintf(`class="connector %s"`, conn.Kind),
			fmt.Sprintf(`data-from="%s"`, conn.FromID),
			fmt.Sprintf(`data-to="%s"`, conn.ToID),
			style)
	}
	c.Gend()
}

func (r svgRenderer) root(c canvas, res layout.Result) {
	root := res.Root
	color := r.theme.RootColor(root.Color)
	center := root.Center()
	cx, cy := c.x(center.X), c.y(center.Y)

	c.Circle(cx, cy, int(math.Round(root.Radius())),
		fmt.Sprintf(`id="node-%s"`, root.ID), `class="root"`,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:4", r.theme.Surface, color))
	if !r.text {
		return
	}
	labelPx := rootFontScale * textmetric.DefaultBaseCharPx
	c.Text(cx, cy-int(percentFontPx/2), root.Label,
		fmt.Sprintf("fill:%s;font-size:%gpx;text-anchor:middle;dominant-baseline:middle;font-family:%s",
			r.theme.TextSecondary, labelPx, r.theme.FontFamily))
	c.Text(cx, cy+int(labelPx), root.Percent,
		fmt.Sprintf("fill:%s;font-size:%gpx;font-weight:bold;text-anchor:middle;dominant-baseline:middle;font-family:%s",
			color, percentFontPx, r.theme.FontFamily))
}

func (r svgRenderer) category(c canvas, res layout.Result, cat layout.CategoryNode) {
	c.Roundrect(c.x(cat.X), c.y(cat.Y), int(math.Round(cat.Width)), int(math.Round(cat.Height)), 8, 8,
		fmt.Sprintf(`id="node-%s"`, cat.ID), `class="category"`,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", r.theme.Surface, r.theme.Border))
	if r.text {
		r.wrapped(c, res, cat.Name, cat.Box, res.Options.CategoryFontScale, r.theme.Text)
	}
}

func (r svgRenderer) leaf(c canvas, res layout.Result, leaf layout.LeafNode) {
	c.Roundrect(c.x(leaf.X), c.y(leaf.Y), int(math.Round(leaf.Width)), int(math.Round(leaf.Height)), 6, 6,
		fmt.Sprintf(`id="node-%s"`, leaf.ID), fmt.Sprintf(`class="leaf %s"`, leaf.Status),
		"fill:"+r.theme.StatusColor(leaf.Status))
	if r.text {
		r.wrapped(c, res, leaf.Text, leaf.Box, res.Options.LeafFontScale, r.theme.StatusText)
	}
}

// wrapper is implemented by estimators that can split text into lines.
type wrapper interface {
	Wrap(text string, boxWidth, fontScale, padding float64) []string
}

// wrapped draws text left-aligned inside box, vertically centered, split into
// the lines the layout estimator assumed.
func (r svgRenderer) wrapped(c canvas, res layout.Result, text string, box layout.Box, fontScale float64, fill string) {
	opts := res.Options
	w, ok := opts.Estimator.(wrapper)
	if !ok {
		w = textmetric.Default()
	}
	if !(fontScale > 0) || math.IsInf(fontScale, 0) {
		fontScale = 1
	}
	base := textmetric.DefaultBaseCharPx
	spacing := textmetric.DefaultLineSpacing
	if e, ok := opts.Estimator.(textmetric.Estimator); ok {
		if e.BaseCharPx > 0 {
			base = e.BaseCharPx
		}
		if e.LineSpacing > 0 {
			spacing = e.LineSpacing
		}
	}

	lines := w.Wrap(text, box.Width, fontScale, opts.Padding)
	fontPx := fontScale * base
	lineHeight := fontPx * spacing
	first := box.CenterY() - float64(len(lines))*lineHeight/2 + lineHeight/2
	x := c.x(box.X + max(opts.Padding, 0)/2)
	style := fmt.Sprintf("fill:%s;font-size:%gpx;dominant-baseline:middle;font-family:%s", fill, fontPx, r.theme.FontFamily)
	for i, line := range lines {
		c.Text(x, c.y(first+float64(i)*lineHeight), line, style)
	}
}

func (r svgRenderer) legendPanel(c canvas, vis diagram.Visibility, y float64) {
	c.Gid("legend")
	top := int(math.Round(y + (legendHeight-legendSwatch)/2))
	x := int(math.Round(r.margin))
	for i, s := range diagram.Statuses {
		sx := x + i*legendSpacing
		opacity := 1.0
		if !vis.Has(s) {
			opacity = 0.4
		}
		c.Roundrect(sx, top, legendSwatch, legendSwatch, 4, 4,
			fmt.Sprintf(`class="legend-swatch %s"`, s),
			fmt.Sprintf("fill:%s;fill-opacity:%g", r.theme.StatusColor(s), opacity))
		if !vis.Has(s) {
			c.Line(sx-2, top+legendSwatch, sx+legendSwatch+2, top, fmt.Sprintf("stroke:%s;stroke-width:2", r.theme.Text))
		}
		if r.text {
			c.Text(sx+legendSwatch+8, top+legendSwatch/2, styles.StatusLabel(s),
				fmt.Sprintf("fill:%s;fill-opacity:%g;font-size:14px;dominant-baseline:middle;font-family:%s",
					r.theme.Text, opacity, r.theme.FontFamily))
		}
	}
	c.Gend()
}
