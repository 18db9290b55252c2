// Package render groups the chart output packages.
//
// Every renderer consumes a [layout.Result] and never recomputes geometry:
//
//   - [styles]: dark and light colour themes, status colours and labels
//   - [sink]: the chart itself as SVG (via svgo), PNG (via oksvg/rasterx)
//     and JSON
//   - [nodelink]: the same tree as a Graphviz DOT graph, optionally drawn by
//     the embedded Graphviz engine
//
// A typical call renders one layout in several formats:
//
//	res := layout.Compute(d, vis)
//	svg := sink.RenderSVG(res, sink.WithTheme(styles.Light()), sink.WithLegend())
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//	dot := nodelink.ToDOT(res, nodelink.Options{})
package render
