// Package pipeline provides the load → layout → render pipeline of treechart.
//
// This package ties the library packages together so the CLI and any other
// entry point share one set of defaults and one validation path.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a dataset file or a bundled sample
//  2. Layout: compute chart geometry for the current visibility set
//  3. Render: generate output in various formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	opts.Dataset = "bronze.yaml"
//	opts.Render.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Options can also be loaded from a TOML file with [LoadConfig].
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/errors"
	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/render/styles"
	"github.com/matzehuels/treechart/pkg/textmetric"
)

// =============================================================================
// Default Values - Single Source of Truth for every entry point
// =============================================================================

const (
	// DefaultTheme is the default colour theme.
	DefaultTheme = "dark"

	// DefaultPNGScale renders PNGs at 2x for high-DPI displays.
	DefaultPNGScale = 2.0

	// DefaultMargin is the blank border around rendered charts.
	DefaultMargin = 32.0

	// MaxPNGScale bounds the PNG scale factor.
	MaxPNGScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG         = "svg"
	FormatPNG         = "png"
	FormatJSON        = "json"
	FormatDOT         = "dot"
	FormatNodelinkSVG = "nodelink.svg"
	FormatNodelinkPNG = "nodelink.png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:         true,
	FormatPNG:         true,
	FormatJSON:        true,
	FormatDOT:         true,
	FormatNodelinkSVG: true,
	FormatNodelinkPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline. The layout, text
// and render sections map to the [layout], [text] and [render] tables of the
// TOML config file.
type Options struct {
	// Dataset is a dataset file path, or "sample:<name>" for a bundled sample.
	Dataset string `toml:"-" json:"dataset,omitempty"`

	Layout LayoutOptions `toml:"layout" json:"layout"`
	Text   TextOptions   `toml:"text" json:"text"`
	Render RenderOptions `toml:"render" json:"render"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`
}

// LayoutOptions holds chart geometry. Zero column offsets, widths, diameter
// and font scales mean "use the default"; zero root offset, gaps and padding
// are taken literally.
type LayoutOptions struct {
	RootX             float64 `toml:"root_x" json:"root_x"`
	RootDiameter      float64 `toml:"root_diameter" json:"root_diameter"`
	CategoryX         float64 `toml:"category_x" json:"category_x"`
	CategoryWidth     float64 `toml:"category_width" json:"category_width"`
	LeafX             float64 `toml:"leaf_x" json:"leaf_x"`
	LeafWidth         float64 `toml:"leaf_width" json:"leaf_width"`
	CategoryGap       float64 `toml:"category_gap" json:"category_gap"`
	LeafGap           float64 `toml:"leaf_gap" json:"leaf_gap"`
	CategoryFontScale float64 `toml:"category_font_scale" json:"category_font_scale"`
	LeafFontScale     float64 `toml:"leaf_font_scale" json:"leaf_font_scale"`
	Padding           float64 `toml:"padding" json:"padding"`
}

// TextOptions holds the text metric constants. Zero values mean default.
type TextOptions struct {
	BaseCharPx  float64 `toml:"base_char_px" json:"base_char_px"`
	LineSpacing float64 `toml:"line_spacing" json:"line_spacing"`
	MinHeight   float64 `toml:"min_height" json:"min_height"`
	Mode        string  `toml:"mode" json:"mode"` // "runes" or "cells"
}

// RenderOptions controls output generation.
type RenderOptions struct {
	Formats  []string `toml:"formats" json:"formats"`
	Theme    string   `toml:"theme" json:"theme"`
	Title    string   `toml:"title" json:"title,omitempty"`
	Show     string   `toml:"show" json:"show"` // comma-separated visible statuses
	Legend   bool     `toml:"legend" json:"legend"`
	PNGScale float64  `toml:"png_scale" json:"png_scale"`
	Margin   float64  `toml:"margin" json:"margin"`
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	d := layout.DefaultOptions()
	return Options{
		Layout: LayoutOptions{
			RootX:             d.RootX,
			RootDiameter:      d.RootDiameter,
			CategoryX:         d.CategoryX,
			CategoryWidth:     d.CategoryWidth,
			LeafX:             d.LeafX,
			LeafWidth:         d.LeafWidth,
			CategoryGap:       d.CategoryGap,
			LeafGap:           d.LeafGap,
			CategoryFontScale: d.CategoryFontScale,
			LeafFontScale:     d.LeafFontScale,
			Padding:           d.Padding,
		},
		Text: TextOptions{
			BaseCharPx:  textmetric.DefaultBaseCharPx,
			LineSpacing: textmetric.DefaultLineSpacing,
			MinHeight:   textmetric.DefaultMinHeight,
			Mode:        textmetric.ModeRunes.String(),
		},
		Render: RenderOptions{
			Formats:  []string{FormatSVG},
			Theme:    DefaultTheme,
			Show:     "all",
			Legend:   true,
			PNGScale: DefaultPNGScale,
			Margin:   DefaultMargin,
		},
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the loaded dataset.
	Diagram *diagram.Diagram

	// Layout is the computed chart geometry.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Categories    int
	Leaves        int
	VisibleLeaves int
	Connectors    int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(name string) error {
	_, err := styles.ByName(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Dataset == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// SetLayoutDefaults fills zero-valued layout and text fields.
func (o *Options) SetLayoutDefaults() {
	d := layout.DefaultOptions()
	l := &o.Layout
	if l.RootDiameter == 0 {
		l.RootDiameter = d.RootDiameter
	}
	if l.CategoryX == 0 {
		l.CategoryX = d.CategoryX
	}
	if l.LeafX == 0 {
		l.LeafX = d.LeafX
	}
	if l.CategoryWidth == 0 {
		l.CategoryWidth = d.CategoryWidth
	}
	if l.LeafWidth == 0 {
		l.LeafWidth = d.LeafWidth
	}
	if l.CategoryFontScale == 0 {
		l.CategoryFontScale = d.CategoryFontScale
	}
	if l.LeafFontScale == 0 {
		l.LeafFontScale = d.LeafFontScale
	}
	if o.Text.Mode == "" {
		o.Text.Mode = textmetric.ModeRunes.String()
	}
	if o.Render.Show == "" {
		o.Render.Show = "all"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and checks every dimension.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()

	l := o.Layout
	dims := []struct {
		name string
		v    float64
	}{
		{"layout.root_diameter", l.RootDiameter},
		{"layout.category_width", l.CategoryWidth},
		{"layout.leaf_width", l.LeafWidth},
		{"layout.category_gap", l.CategoryGap},
		{"layout.leaf_gap", l.LeafGap},
		{"layout.category_font_scale", l.CategoryFontScale},
		{"layout.leaf_font_scale", l.LeafFontScale},
		{"layout.padding", l.Padding},
		{"text.base_char_px", o.Text.BaseCharPx},
		{"text.line_spacing", o.Text.LineSpacing},
		{"text.min_height", o.Text.MinHeight},
	}
	for _, d := range dims {
		if err := errors.ValidateDimension(d.name, d.v); err != nil {
			return err
		}
	}
	for name, v := range map[string]float64{"layout.root_x": l.RootX, "layout.category_x": l.CategoryX, "layout.leaf_x": l.LeafX} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite number", name)
		}
	}
	if l.CategoryX < l.RootX+l.RootDiameter || l.LeafX < l.CategoryX+l.CategoryWidth {
		return errors.New(errors.ErrCodeInvalidConfig,
			"layout columns overlap: root ends at %g, categories span %g-%g, leaves start at %g",
			l.RootX+l.RootDiameter, l.CategoryX, l.CategoryX+l.CategoryWidth, l.LeafX)
	}
	if _, err := textmetric.ParseMode(o.Text.Mode); err != nil {
		return err
	}
	_, err := diagram.ParseVisibility(o.Render.Show)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Render.Formats) == 0 {
		o.Render.Formats = []string{FormatSVG}
	}
	if o.Render.Theme == "" {
		o.Render.Theme = DefaultTheme
	}
	if o.Render.PNGScale == 0 {
		o.Render.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Render.Formats); err != nil {
		return err
	}
	if err := ValidateTheme(o.Render.Theme); err != nil {
		return err
	}
	if err := errors.ValidateDimension("render.margin", o.Render.Margin); err != nil {
		return err
	}
	if !(o.Render.PNGScale > 0 && o.Render.PNGScale <= MaxPNGScale) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"render.png_scale must be in (0, %g], got %g", MaxPNGScale, o.Render.PNGScale)
	}
	return nil
}

// Visibility returns the parsed visibility set of Render.Show.
func (o *Options) Visibility() (diagram.Visibility, error) {
	return diagram.ParseVisibility(o.Render.Show)
}

// Estimator returns the text estimator described by the text options.
// An unknown mode falls back to runes; ValidateForLayout reports it.
func (o *Options) Estimator() textmetric.Estimator {
	mode, _ := textmetric.ParseMode(o.Text.Mode)
	return textmetric.Estimator{
		BaseCharPx:  o.Text.BaseCharPx,
		LineSpacing: o.Text.LineSpacing,
		MinHeight:   o.Text.MinHeight,
		Mode:        mode,
	}
}

// LayoutOptions converts the options into a layout configuration.
func (o *Options) LayoutOptions() layout.Options {
	l := o.Layout
	return layout.Options{
		RootX:             l.RootX,
		RootDiameter:      l.RootDiameter,
		CategoryX:         l.CategoryX,
		CategoryWidth:     l.CategoryWidth,
		LeafX:             l.LeafX,
		LeafWidth:         l.LeafWidth,
		CategoryGap:       l.CategoryGap,
		LeafGap:           l.LeafGap,
		CategoryFontScale: l.CategoryFontScale,
		LeafFontScale:     l.LeafFontScale,
		Padding:           l.Padding,
		Estimator:         o.Estimator(),
	}
}

// Theme returns the configured theme.
func (o *Options) Theme() (styles.Theme, error) {
	return styles.ByName(o.Render.Theme)
}

func (o Options) String() string {
	return fmt.Sprintf("dataset=%s show=%s theme=%s formats=%v", o.Dataset, o.Render.Show, o.Render.Theme, o.Render.Formats)
}
