// Package render draws graphs with a highlighted clique or a vertex
// coloring.
//
// # Overview
//
// [ToDOT] emits Graphviz DOT for an undirected graph. Clique members are
// filled and the edges between them drawn bold, so the clique stands out
// against the rest of the graph. When a coloring is supplied, vertices are
// filled by color class instead.
//
//	dot := render.ToDOT(g, render.Options{Clique: res.Clique, OneBased: true})
//	svg, err := render.RenderSVG(ctx, dot, render.LayoutCirco)
//
// [RenderSVG] and [RenderPNG] run the embedded Graphviz library, so no
// external binaries are needed.
//
// Dense benchmark instances have tens of thousands of edges and produce
// unreadable drawings. [Options.CliqueOnly] restricts the output to the
// clique and its immediate neighbourhood.
package render
