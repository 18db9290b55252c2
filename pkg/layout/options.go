package layout

import (
	"math"

	"github.com/matzehuels/treechart/pkg/textmetric"
)

// HeightEstimator estimates the height of a fixed-width box holding text.
// [textmetric.Estimator] is the standard implementation.
type HeightEstimator interface {
	BoxHeight(text string, boxWidth, fontScale, padding float64) float64
}

// Default column geometry and spacing.
const (
	DefaultRootX             = 0.0
	DefaultRootDiameter      = 150.0
	DefaultCategoryX         = 200.0
	DefaultCategoryWidth     = 280.0
	DefaultLeafX             = 530.0
	DefaultLeafWidth         = 350.0
	DefaultCategoryGap       = 50.0
	DefaultLeafGap           = 20.0
	DefaultCategoryFontScale = 0.9
	DefaultLeafFontScale     = 0.85
	DefaultPadding           = 32.0
)

// Options holds the column offsets, box widths and spacing of a chart.
type Options struct {
	RootX        float64
	RootDiameter float64

	CategoryX     float64
	CategoryWidth float64
	LeafX         float64
	LeafWidth     float64

	CategoryGap float64 // vertical space between category slots
	LeafGap     float64 // vertical space between leaves of one category

	CategoryFontScale float64
	LeafFontScale     float64
	Padding           float64 // reserved inside each box, horizontally and vertically

	Estimator HeightEstimator
}

// DefaultOptions returns the standard chart geometry.
func DefaultOptions() Options {
	return Options{
		RootX:             DefaultRootX,
		RootDiameter:      DefaultRootDiameter,
		CategoryX:         DefaultCategoryX,
		CategoryWidth:     DefaultCategoryWidth,
		LeafX:             DefaultLeafX,
		LeafWidth:         DefaultLeafWidth,
		CategoryGap:       DefaultCategoryGap,
		LeafGap:           DefaultLeafGap,
		CategoryFontScale: DefaultCategoryFontScale,
		LeafFontScale:     DefaultLeafFontScale,
		Padding:           DefaultPadding,
		Estimator:         textmetric.Default(),
	}
}

// Option configures a layout pass.
type Option func(*Options)

// WithOptions replaces every option with o.
func WithOptions(o Options) Option {
	return func(opts *Options) { *opts = o }
}

// WithRoot sets the root column offset and circle diameter.
func WithRoot(x, diameter float64) Option {
	return func(o *Options) { o.RootX, o.RootDiameter = x, diameter }
}

// WithCategoryColumn sets the category column offset and box width.
func WithCategoryColumn(x, width float64) Option {
	return func(o *Options) { o.CategoryX, o.CategoryWidth = x, width }
}

// WithLeafColumn sets the leaf column offset and box width.
func WithLeafColumn(x, width float64) Option {
	return func(o *Options) { o.LeafX, o.LeafWidth = x, width }
}

// WithGaps sets the spacing between category slots and between leaves.
func WithGaps(category, leaf float64) Option {
	return func(o *Options) { o.CategoryGap, o.LeafGap = category, leaf }
}

// WithFontScales sets the font scale of category and leaf text.
func WithFontScales(category, leaf float64) Option {
	return func(o *Options) { o.CategoryFontScale, o.LeafFontScale = category, leaf }
}

// WithPadding sets the padding reserved inside every box.
func WithPadding(p float64) Option {
	return func(o *Options) { o.Padding = p }
}

// WithEstimator sets the box height estimator.
func WithEstimator(e HeightEstimator) Option {
	return func(o *Options) { o.Estimator = e }
}

// sanitized clamps o so that no coordinate derived from it is NaN.
// Offsets fall back to 0; widths, gaps and the diameter must be finite and
// non-negative.
func (o Options) sanitized() Options {
	o.RootX = finite(o.RootX)
	o.CategoryX = finite(o.CategoryX)
	o.LeafX = finite(o.LeafX)
	o.RootDiameter = nonNegative(o.RootDiameter)
	o.CategoryWidth = nonNegative(o.CategoryWidth)
	o.LeafWidth = nonNegative(o.LeafWidth)
	o.CategoryGap = nonNegative(o.CategoryGap)
	o.LeafGap = nonNegative(o.LeafGap)
	if o.Estimator == nil {
		o.Estimator = textmetric.Default()
	}
	return o
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func nonNegative(v float64) float64 {
	return max(finite(v), 0)
}

// height calls the estimator and guards against misbehaving implementations.
func (o Options) height(text string, width, fontScale float64) float64 {
	return nonNegative(o.Estimator.BoxHeight(text, width, fontScale, o.Padding))
}
