package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"slices"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/treechart/pkg/layout"
)

// maxPNGPixels bounds the raster size so a huge scale cannot exhaust memory.
const maxPNGPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the layout. The rasterizer draws shapes only, so the
// image carries boxes, connectors and the legend but no text.
func RenderPNG(res layout.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("invalid PNG scale %v", r.scale)
	}

	doc := RenderSVG(res, append(slices.Clip(r.svgOpts), WithoutText())...)
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	w := int(math.Ceil(icon.ViewBox.W * r.scale))
	h := int(math.Ceil(icon.ViewBox.H * r.scale))
	if w <= 0 || h <= 0 || w*h > maxPNGPixels {
		return nil, fmt.Errorf("PNG size %dx%d out of range", w, h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
