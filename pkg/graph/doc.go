// Package graph provides the immutable undirected graph model used by the
// clique search engine.
//
// # Overview
//
// A [Graph] has n vertices indexed 0..n-1. For every vertex it stores the
// sorted neighbour list, the sorted complement (non-neighbour) list and one
// row of a packed adjacency bit matrix. The neighbour lists drive orderings
// and coloring, the complement lists drive incremental clique updates (every
// insert or remove only walks the non-neighbours of the affected vertex), and
// the bit matrix answers [Graph.Adjacent] in O(1).
//
// Graphs are built once, either from an edge list with [New] or edge by edge
// with a [Builder], and never mutated afterwards:
//
//	b, _ := graph.NewBuilder(5)
//	_ = b.AddEdge(0, 1)
//	_ = b.AddEdge(1, 2)
//	g := b.Build()
//
// Duplicate edges are idempotent. Out-of-range vertex ids and self-loops are
// construction-time errors ([ErrVertexOutOfRange], [ErrSelfLoop]). Vertex
// counts above [MaxVertices] fail with [ErrVertexCountTooLarge] before any
// storage is allocated.
//
// # DIMACS
//
// [ReadDIMACS] and [ReadDIMACSFile] parse the DIMACS edge format used by
// the standard clique and coloring benchmark instances:
//
//	c comment lines are ignored
//	p edge 5 6
//	e 1 2
//	e 2 3
//
// Vertex ids in the file are 1-indexed and converted to 0-indexed on load.
// Malformed lines are reported as [ErrMalformedDIMACS] wrapped with the line
// number. [ReadDIMACSLimit] applies a tighter vertex cap, checked on the
// problem line. [WriteDIMACS] produces the same format.
//
// # Concurrency
//
// A built Graph is read-only and safe for concurrent use. A Builder is not.
package graph
