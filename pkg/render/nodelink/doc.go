// Package nodelink renders a chart as a Graphviz node-link diagram.
//
// # Overview
//
// The treechart sinks place every box at coordinates computed by
// [layout.Compute]. This package instead hands the same tree to Graphviz and
// lets it route the diagram, which is useful for checking a dataset's
// structure or for importing the chart into tools that speak DOT.
//
// # Usage
//
// Convert a layout result to DOT, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// Only visible leaves appear, so the DOT output follows the same visibility
// set as the layout it came from.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels also carry the leaf status and node ID
//   - Theme: colours for the root, category and leaf nodes
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly, so no external binaries are needed.
package nodelink
