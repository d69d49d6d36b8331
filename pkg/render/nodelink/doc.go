// Package nodelink renders package graphs as node-link diagrams.
//
// # Usage
//
// Convert a DAG to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, pass the SVG to [render.ToPDF] or [render.ToPNG].
//
// # Styling
//
// Nodes are colored by their "class" metadata: internal packages are white
// boxes, third-party packages blue and stdlib packages grey. Edges inherit
// the class of their target so that a diagram with every class enabled still
// reads as "what crosses the module boundary". Set [Options.Detailed] to add
// the class and import counts to each label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
//
// [render.ToPDF]: github.com/matzehuels/depmap/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/depmap/pkg/render.ToPNG
package nodelink
