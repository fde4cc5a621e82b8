package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Layout names a Graphviz layout engine.
type Layout string

// Layouts that work well for undirected graphs.
const (
	LayoutNeato Layout = "neato"
	LayoutCirco Layout = "circo"
	LayoutFDP   Layout = "fdp"
	LayoutSFDP  Layout = "sfdp"
)

// ValidLayouts is the set of supported layout engines.
var ValidLayouts = map[Layout]graphviz.Layout{
	LayoutNeato: graphviz.NEATO,
	LayoutCirco: graphviz.CIRCO,
	LayoutFDP:   graphviz.FDP,
	LayoutSFDP:  graphviz.SFDP,
}

// Format is an output image format.
type Format string

// Supported output formats.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", s)
}

// ParseLayout validates a layout engine name.
func ParseLayout(s string) (Layout, error) {
	if _, ok := ValidLayouts[Layout(s)]; !ok {
		return "", fmt.Errorf("invalid layout: %q (must be one of: neato, circo, fdp, sfdp)", s)
	}
	return Layout(s), nil
}

// Render lays out dot with the given engine and encodes it as format.
// FormatDOT returns dot unchanged.
func Render(ctx context.Context, dot string, layout Layout, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}

	engine, ok := ValidLayouts[layout]
	if !ok {
		return nil, fmt.Errorf("invalid layout: %q", layout)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders dot to SVG.
func RenderSVG(ctx context.Context, dot string, layout Layout) ([]byte, error) {
	return Render(ctx, dot, layout, FormatSVG)
}

// RenderPNG renders dot to PNG.
func RenderPNG(ctx context.Context, dot string, layout Layout) ([]byte, error) {
	return Render(ctx, dot, layout, FormatPNG)
}
