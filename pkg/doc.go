// Package pkg provides the libraries behind treechart, a layout engine for
// three-tier completion charts.
//
// # Overview
//
// A chart has one root circle showing an overall completion ratio, a column
// of category boxes, and a column of leaf boxes coloured by status
// (completed, priority, incomplete). Any subset of statuses can be hidden;
// the layout is recomputed for every visibility set so the remaining boxes
// stay centred on their category.
//
// # Architecture
//
// The typical data flow through treechart:
//
//	Dataset file (JSON / YAML / TOML) or bundled sample
//	         ↓
//	    [io] / [samples] packages (decode + validate into a [diagram.Diagram])
//	         ↓
//	    [layout] package (box heights via [textmetric], positions, connectors)
//	         ↓
//	    [render/sink] and [render/nodelink] packages
//	         ↓
//	    SVG / PNG / JSON / DOT output
//
// [pipeline] ties the stages together with shared defaults, TOML config
// loading, and observability hooks from [observability].
//
// # Quick Start
//
//	d, _ := samples.Load(samples.Bronze)
//	res := layout.Compute(d, diagram.All())
//	svg := sink.RenderSVG(res, sink.WithLegend())
//
// # Packages
//
//   - [diagram]: dataset types, statuses and visibility sets
//   - [textmetric]: wrapped-text height estimation
//   - [layout]: the layout solver
//   - [io]: dataset import and export
//   - [samples]: embedded sample datasets
//   - [render/styles]: colour themes
//   - [render/sink]: SVG, PNG and JSON output
//   - [render/nodelink]: Graphviz DOT output
//   - [pipeline]: load → layout → render orchestration
//   - [observability]: pipeline and explore hooks
//   - [errors]: coded errors and input validation
//   - [buildinfo]: version information
package pkg
