// Package sink writes a computed layout to output formats.
//
// Every sink consumes a [layout.Result] and nothing else; geometry is never
// recomputed here. Supported outputs:
//
//   - SVG ([RenderSVG]): boxes, root circle, connectors, wrapped text, an
//     optional title and a legend showing which statuses are visible
//   - PNG ([RenderPNG]): the SVG shapes rasterized in-process
//   - JSON ([RenderJSON]): the layout result with bounds and statistics, for
//     external renderers
//
// Text in SVG output is wrapped with the same estimator that sized the boxes,
// so every box holds exactly the number of lines its height was computed for.
package sink
