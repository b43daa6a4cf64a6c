package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/molfig/pkg/chemfig"
)

// Options configures bond tree diagrams.
type Options struct {
	// Detailed adds hydrogens, charge and the placement quadrant to atom
	// labels, and the drawing angle to bond labels.
	Detailed bool
}

// ToDOT converts the bond tree of m to Graphviz DOT.
//
// Atoms become nodes; tree bonds become edges from the atom drawn first to
// the atom drawn next. Trunk bonds are bold, ring closures pointing at a
// phantom are dashed, and invisible link bonds are dotted. Aromatic ring
// circles appear as small circle nodes hanging off the bond that anchors
// them.
func ToDOT(m *chemfig.Molecule, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18, width=0.6, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, a := range m.Atoms() {
		attrs := []string{fmt.Sprintf("label=%q", atomLabel(a, opts.Detailed))}
		if a == m.Entry() || a == m.Exit() {
			attrs = append(attrs, "penwidth=3")
		}
		if opts.Detailed {
			attrs = append(attrs, "fixedsize=false")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", atomID(a), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	rings := 0
	m.Walk(func(b *chemfig.Bond, _ int) bool {
		switch b.Variant {
		case chemfig.VariantRoot:
		case chemfig.VariantRingCircle:
			rings++
			id := "ring" + strconv.Itoa(rings)
			fmt.Fprintf(&buf, "  %s [label=\"o\", shape=doublecircle, width=0.3, fontsize=10];\n", id)
			if b.Parent != nil && b.Parent.End != nil {
				fmt.Fprintf(&buf, "  %s -> %s [style=dashed, arrowhead=none];\n", atomID(b.Parent.End), id)
			}
		default:
			fmt.Fprintf(&buf, "  %s -> %s [%s];\n", atomID(b.Start), atomID(b.End), strings.Join(bondAttrs(b, opts.Detailed), ", "))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func atomID(a *chemfig.Atom) string {
	return "a" + strconv.Itoa(a.Number())
}

func atomLabel(a *chemfig.Atom, detailed bool) string {
	label := a.Element + strconv.Itoa(a.Number())
	if !detailed {
		return label
	}
	var parts []string
	if a.Hydrogens > 0 {
		parts = append(parts, "H"+strconv.Itoa(a.Hydrogens))
	}
	if a.Charge != 0 {
		parts = append(parts, fmt.Sprintf("%+d", a.Charge))
	}
	if a.FirstQuadrant != "" {
		parts = append(parts, string(a.FirstQuadrant))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, " ")
}

func bondAttrs(b *chemfig.Bond, detailed bool) []string {
	var attrs []string
	label := ""
	if b.Kind != chemfig.KindSingle {
		label = string(b.Kind)
	}
	if detailed {
		label = strings.TrimSpace(label + " " + strconv.FormatFloat(b.Angle, 'f', -1, 64) + "°")
	}
	if label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}

	var styles []string
	switch {
	case b.Kind == chemfig.KindLink:
		styles = append(styles, "dotted")
	case b.ToPhantom:
		styles = append(styles, "dashed")
	}
	if b.IsTrunk {
		styles = append(styles, "bold")
		attrs = append(attrs, "penwidth=3")
	}
	if len(styles) > 0 {
		attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(styles, ",")))
	}
	if b.ToPhantom {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(dot string, format graphviz.Format, w io.Writer) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's <svg> tag with one whose viewBox
// starts at the origin and whose size matches it, so the diagram scales
// cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
