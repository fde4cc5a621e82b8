package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedDIMACS is returned for DIMACS input that cannot be parsed:
// a bad problem line, an edge before the problem line, a non-numeric vertex
// id or an unknown line type. Out-of-range ids wrap [ErrVertexOutOfRange]
// instead.
var ErrMalformedDIMACS = errors.New("malformed DIMACS input")

// Problem describes the "p" line of a DIMACS file.
type Problem struct {
	Format   string // usually "edge" or "col"
	Vertices int
	Edges    int // declared edge count; duplicates in the body may differ
}

// ReadDIMACSFile opens path and decodes it with [ReadDIMACS].
func ReadDIMACSFile(path string) (*Graph, Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Problem{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDIMACS(f)
}

// ReadDIMACS decodes a DIMACS edge-format graph. Edge endpoints are 1-indexed
// in the input and 0-indexed in the returned graph. Vertex counts above
// [MaxVertices] are rejected.
func ReadDIMACS(r io.Reader) (*Graph, Problem, error) {
	return ReadDIMACSLimit(r, MaxVertices)
}

// ReadDIMACSLimit is [ReadDIMACS] with a lower vertex cap. The problem line
// is checked before anything is allocated, so a tiny input cannot declare
// a huge graph. It fails with [ErrVertexCountTooLarge] past maxVertices.
func ReadDIMACSLimit(r io.Reader, maxVertices int) (*Graph, Problem, error) {
	var (
		b    *Builder
		prob Problem
		line int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "c":
			continue
		case "p":
			if b != nil {
				return nil, Problem{}, fmt.Errorf("line %d: %w: duplicate problem line", line, ErrMalformedDIMACS)
			}
			p, err := parseProblem(fields)
			if err != nil {
				return nil, Problem{}, fmt.Errorf("line %d: %w", line, err)
			}
			if p.Vertices > maxVertices {
				return nil, Problem{}, fmt.Errorf("line %d: %w: %d (max %d)", line, ErrVertexCountTooLarge, p.Vertices, maxVertices)
			}
			if b, err = NewBuilder(p.Vertices); err != nil {
				return nil, Problem{}, fmt.Errorf("line %d: %w", line, err)
			}
			prob = p
		case "e":
			if b == nil {
				return nil, Problem{}, fmt.Errorf("line %d: %w: edge before problem line", line, ErrMalformedDIMACS)
			}
			u, v, err := parseEdge(fields)
			if err != nil {
				return nil, Problem{}, fmt.Errorf("line %d: %w", line, err)
			}
			if err := b.AddEdge(u-1, v-1); err != nil {
				return nil, Problem{}, fmt.Errorf("line %d: %w", line, err)
			}
		default:
			return nil, Problem{}, fmt.Errorf("line %d: %w: unknown line type %q", line, ErrMalformedDIMACS, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, Problem{}, fmt.Errorf("read: %w", err)
	}
	if b == nil {
		return nil, Problem{}, fmt.Errorf("%w: missing problem line", ErrMalformedDIMACS)
	}
	return b.Build(), prob, nil
}

// WriteDIMACS encodes g in DIMACS edge format with 1-indexed vertex ids.
// Edges are written in (U, V) order, so equal graphs produce equal output.
func WriteDIMACS(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p edge %d %d\n", g.VertexCount(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "e %d %d\n", e.U+1, e.V+1)
	}
	return bw.Flush()
}

func parseProblem(fields []string) (Problem, error) {
	if len(fields) < 4 {
		return Problem{}, fmt.Errorf("%w: problem line needs format, vertex and edge counts", ErrMalformedDIMACS)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return Problem{}, fmt.Errorf("%w: vertex count %q", ErrMalformedDIMACS, fields[2])
	}
	m, err := strconv.Atoi(fields[3])
	if err != nil {
		return Problem{}, fmt.Errorf("%w: edge count %q", ErrMalformedDIMACS, fields[3])
	}
	return Problem{Format: fields[1], Vertices: n, Edges: m}, nil
}

func parseEdge(fields []string) (int, int, error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("%w: edge line needs two endpoints", ErrMalformedDIMACS)
	}
	u, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: endpoint %q", ErrMalformedDIMACS, fields[1])
	}
	v, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: endpoint %q", ErrMalformedDIMACS, fields[2])
	}
	return u, v, nil
}
