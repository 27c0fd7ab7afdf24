package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/scorewell/engrave/pkg/document"
)

// ToDOT converts one document system to Graphviz DOT format, showing grid
// lines, blocks, and every constraint between them. The constraint graph only
// exists in the wire format, so this works on the document rather than the
// resolved output.
//
// Grid lines cluster by axis; spacing blocks render dashed and grey like
// the resolver treats them (invisible filler).
func ToDOT(sys document.System) string {
	var buf bytes.Buffer
	buf.WriteString("digraph constraints {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	buf.WriteString("  subgraph cluster_horizontal {\n    label=\"horizontal lines\";\n")
	for i, line := range sys.HorizontalLines {
		fmt.Fprintf(&buf, "    %s [label=%q];\n", hNode(i), lineLabel("h", i, line.Kind, i == sys.TopEdge))
	}
	buf.WriteString("  }\n")

	buf.WriteString("  subgraph cluster_vertical {\n    label=\"vertical lines\";\n")
	for i, line := range sys.VerticalLines {
		fmt.Fprintf(&buf, "    %s [label=%q];\n", vNode(i), lineLabel("v", i, line.Kind, i == sys.LeadingEdge))
	}
	buf.WriteString("  }\n\n")

	for i, b := range sys.Blocks {
		attrs := fmt.Sprintf("label=%q", blockLabel(i, b))
		if b.Spacing {
			attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey`
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", bNode(i), attrs)
	}
	buf.WriteString("\n")

	for i, line := range sys.HorizontalLines {
		for _, c := range line.Constraints {
			writeLineEdges(&buf, hNode(i), hNode, c)
		}
	}
	for i, line := range sys.VerticalLines {
		for _, c := range line.Constraints {
			writeLineEdges(&buf, vNode(i), vNode, c)
		}
	}
	for i, b := range sys.Blocks {
		for _, c := range b.Constraints {
			writeBlockEdges(&buf, i, c)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func hNode(i int) string { return fmt.Sprintf("h%d", i) }
func vNode(i int) string { return fmt.Sprintf("v%d", i) }
func bNode(i int) string { return fmt.Sprintf("b%d", i) }

func lineLabel(axis string, i int, kind string, origin bool) string {
	if kind == "" {
		kind = "default"
	}
	label := fmt.Sprintf("%s%d\n%s", axis, i, kind)
	if origin {
		label += "\n(origin)"
	}
	return label
}

func blockLabel(i int, b document.Block) string {
	label := fmt.Sprintf("b%d %sx%s", i, dim(b.Width), dim(b.Height))
	if b.Source != nil && b.Source.ItemID != "" {
		label += "\n" + b.Source.ItemID
	}
	if b.Spacing {
		label += "\nspacing"
	}
	return label
}

func dim(v *float64) string {
	if v == nil {
		return "auto"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func edgeLabel(kind string, distance float64) string {
	if distance == 0 {
		return kind
	}
	return fmt.Sprintf("%s %g", kind, distance)
}

func writeLineEdges(buf *bytes.Buffer, from string, node func(int) string, c document.LineConstraint) {
	fmt.Fprintf(buf, "  %s -> %s [label=%q];\n", from, node(c.Line), edgeLabel(c.Kind, c.Distance))
	if c.Kind == document.CenterBetween {
		fmt.Fprintf(buf, "  %s -> %s [label=%q];\n", from, node(c.SecondLine), edgeLabel(c.Kind, c.Distance))
	}
}

func writeBlockEdges(buf *bytes.Buffer, i int, c document.BlockConstraint) {
	lines, blocks, horizontal, ok := document.BlockConstraintTargets(c)
	if !ok {
		return
	}
	label := edgeLabel(c.Kind, c.Distance)
	node := vNode
	if horizontal {
		node = hNode
	}
	for _, l := range lines {
		fmt.Fprintf(buf, "  %s -> %s [label=%q];\n", bNode(i), node(l), label)
	}
	for _, b := range blocks {
		fmt.Fprintf(buf, "  %s -> %s [label=%q];\n", bNode(i), bNode(b), label)
	}
}

// RenderDOTSVG renders a DOT graph to SVG using the embedded Graphviz.
// The output can be converted further with [ToPDF] or [ToPNG].
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg tag so the viewBox starts at the
// origin and the pixel size matches it.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
