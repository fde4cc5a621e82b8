package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/maxclique/pkg/graph"
)

// Options configures DOT output.
type Options struct {
	// Clique is highlighted when non-empty.
	Clique []int

	// Colors, when set, is a vertex-indexed coloring (1-based colors, 0 for
	// uncolored). Vertices are filled by color class.
	Colors []int

	// OneBased labels vertices with DIMACS ids.
	OneBased bool

	// CliqueOnly keeps only clique members and vertices adjacent to at
	// least one member.
	CliqueOnly bool
}

// palette fills color classes; classes beyond its length wrap around.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

const (
	cliqueFill = "#e41a1c"
	cliqueEdge = "#b2182b"
	plainEdge  = "#bdbdbd"
)

// ToDOT converts g to Graphviz DOT. Vertices are emitted in id order and
// edges in (U, V) order, so equal inputs give equal output.
func ToDOT(g *graph.Graph, opts Options) string {
	n := g.VertexCount()
	inClique := make([]bool, n)
	for _, v := range opts.Clique {
		if v >= 0 && v < n {
			inClique[v] = true
		}
	}

	keep := make([]bool, n)
	for v := range keep {
		keep[v] = !opts.CliqueOnly
	}
	if opts.CliqueOnly {
		for _, v := range opts.Clique {
			if v < 0 || v >= n {
				continue
			}
			keep[v] = true
			for _, u := range g.Neighbours(v) {
				keep[u] = true
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3, fixedsize=false];\n")
	fmt.Fprintf(&buf, "  edge [color=%q];\n", plainEdge)
	buf.WriteString("\n")

	for v := 0; v < n; v++ {
		if !keep[v] {
			continue
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(v), nodeAttrs(v, inClique[v], opts))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if !keep[e.U] || !keep[e.V] {
			continue
		}
		if inClique[e.U] && inClique[e.V] {
			fmt.Fprintf(&buf, "  %s -- %s [color=%q, penwidth=2.5];\n", nodeID(e.U), nodeID(e.V), cliqueEdge)
			continue
		}
		fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(e.U), nodeID(e.V))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(v int) string {
	return "v" + strconv.Itoa(v)
}

func nodeAttrs(v int, inClique bool, opts Options) string {
	label := v
	if opts.OneBased {
		label++
	}
	attrs := fmt.Sprintf("label=%q", strconv.Itoa(label))

	switch {
	case inClique:
		attrs += fmt.Sprintf(", fillcolor=%q, fontcolor=white, penwidth=2", cliqueFill)
	case v < len(opts.Colors) && opts.Colors[v] > 0:
		attrs += fmt.Sprintf(", fillcolor=%q", palette[(opts.Colors[v]-1)%len(palette)])
	}
	return attrs
}
