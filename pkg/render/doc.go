// Package render turns resolved layouts into output artifacts.
//
// # Overview
//
// The resolver produces geometry ([layout.Result]); this package serializes
// that geometry for consumption:
//
//   - [RenderSVG]: scalable vector output of the resolved systems
//   - [RenderJSON]: the raw resolved geometry for downstream engravers
//   - [ToDOT]: the constraint graph of a document system, for inspection
//   - [ToPDF] and [ToPNG]: generic SVG conversion via rsvg-convert
//
// # SVG
//
// RenderSVG stacks the systems vertically and paints each system's layers
// back to front (background, midground, foreground). Debug geometry emitted
// by the resolver arrives on the background layer and renders like any other
// primitive.
//
//	svg := render.RenderSVG(results, render.WithScale(12))
//	pdf, err := render.ToPDF(svg)
//
// # Constraint graphs
//
// ToDOT works on the wire-format document rather than the resolved output,
// because the constraint topology is erased during solving. The resulting DOT
// string renders with [RenderDOTSVG] (embedded Graphviz) or any external
// Graphviz install.
package render
