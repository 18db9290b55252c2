package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/errors"
	"github.com/matzehuels/treechart/pkg/io"
	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/observability"
	"github.com/matzehuels/treechart/pkg/samples"
)

// SamplePrefix selects a bundled sample instead of a file, as in "sample:bronze".
const SamplePrefix = "sample:"

// Runner executes pipeline stages and reports them to the logger and the
// registered observability hooks.
//
// The Runner holds no pipeline state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Diagram = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Leaves = d.LeafCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	res, err := r.Layout(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	stats := res.Stats()
	result.Stats.Categories = stats.Categories
	result.Stats.VisibleLeaves = stats.VisibleLeaves
	result.Stats.Connectors = stats.Connectors

	r.Logger.Info("computed layout",
		"categories", stats.Categories,
		"visible", stats.VisibleLeaves,
		"connectors", stats.Connectors,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Render.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads a dataset file, or a bundled sample when source carries the
// "sample:" prefix.
func (r *Runner) Load(ctx context.Context, source string) (*diagram.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	d, err := load(source)
	leaves := 0
	if d != nil {
		leaves = d.LeafCount()
	}
	hooks.OnLoadComplete(ctx, source, leaves, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("loaded dataset",
		"source", source,
		"categories", len(d.Categories),
		"leaves", leaves,
		"duration", time.Since(start))
	return d, nil
}

func load(source string) (*diagram.Diagram, error) {
	if name, ok := strings.CutPrefix(source, SamplePrefix); ok {
		return samples.Load(name)
	}
	if source == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	return io.Import(source)
}

// Layout computes the chart for the visibility set in opts.Render.Show.
func (r *Runner) Layout(ctx context.Context, d *diagram.Diagram, opts Options) (layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, err
	}
	r.applyLogger(&opts)

	vis, err := opts.Visibility()
	if err != nil {
		return layout.Result{}, err
	}
	return r.LayoutVisible(ctx, d, vis, opts), nil
}

// LayoutVisible computes the chart for an explicit visibility set. The
// options must already be validated.
func (r *Runner) LayoutVisible(ctx context.Context, d *diagram.Diagram, vis diagram.Visibility, opts Options) layout.Result {
	nodes := 0
	if d != nil {
		nodes = 1 + len(d.Categories) + d.LeafCount()
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, vis.String(), nodes)
	start := time.Now()

	res := layout.Compute(d, vis, layout.WithOptions(opts.LayoutOptions()))

	dur := time.Since(start)
	hooks.OnLayoutComplete(ctx, vis.String(), len(res.Connectors), dur)

	stats := res.Stats()
	r.Logger.Debug("computed layout",
		"visible", vis,
		"categories", stats.Categories,
		"leaves", stats.VisibleLeaves,
		"hidden", stats.HiddenLeaves,
		"height", res.TotalHeight,
		"duration", dur)
	return res
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
