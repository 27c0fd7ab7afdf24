package render

import (
	"bytes"
	"fmt"

	"github.com/scorewell/engrave/pkg/layout"
)

// SVGOption adjusts SVG output.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64 // pixels per layout unit
	margin     float64 // layout units around the content
	gap        float64 // layout units between stacked systems
	blockColor string
	background string // page fill, empty for transparent
}

// WithScale sets how many pixels one layout unit spans. Default 10.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithMargin sets the whitespace around the content, in layout units.
func WithMargin(m float64) SVGOption {
	return func(r *svgRenderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

// WithGap sets the vertical distance between systems, in layout units.
func WithGap(g float64) SVGOption {
	return func(r *svgRenderer) {
		if g >= 0 {
			r.gap = g
		}
	}
}

// WithBlockColor sets the fill color for block boxes. Default black.
func WithBlockColor(c string) SVGOption {
	return func(r *svgRenderer) { r.blockColor = c }
}

// WithBackground sets a page background fill. Default transparent.
func WithBackground(c string) SVGOption {
	return func(r *svgRenderer) { r.background = c }
}

// RenderSVG renders resolved systems as a single SVG, stacked vertically in
// input order. Coordinates inside the SVG stay in layout units; the scale
// only widens the viewport.
func RenderSVG(results []*layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 10, margin: 2, gap: 4, blockColor: "#000000"}
	for _, opt := range opts {
		opt(&r)
	}

	var width, height float64
	for i, res := range results {
		if res.Width > width {
			width = res.Width
		}
		height += res.Height
		if i > 0 {
			height += r.gap
		}
	}
	width += 2 * r.margin
	height += 2 * r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
		width, height, width*r.scale, height*r.scale)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.3f" height="%.3f" fill="%s"/>`+"\n",
			width, height, r.background)
	}

	y := r.margin
	for _, res := range results {
		fmt.Fprintf(&buf, `  <g id="system-%d" transform="translate(%.3f,%.3f)">`+"\n",
			res.Index, r.margin, y)
		for _, prims := range [][]layout.Primitive{res.Background, res.Midground, res.Foreground} {
			for _, p := range prims {
				r.writePrimitive(&buf, p)
			}
		}
		buf.WriteString("  </g>\n")
		y += res.Height + r.gap
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) writePrimitive(buf *bytes.Buffer, p layout.Primitive) {
	switch p.Kind {
	case layout.LinePrimitive:
		fmt.Fprintf(buf, `    <line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="%.3f"%s/>`+"\n",
			p.X1, p.Y1, p.X2, p.Y2, strokeColor(p), p.StrokeWidth, dashAttr(p))

	case layout.BoxPrimitive:
		if p.StrokeWidth > 0 {
			// Debug outline: stroked, unfilled.
			fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="none" stroke="%s" stroke-width="%.3f"%s/>`+"\n",
				p.X1, p.Y1, p.X2-p.X1, p.Y2-p.Y1, strokeColor(p), p.StrokeWidth, dashAttr(p))
			return
		}
		fill := p.Color
		if fill == "" {
			fill = r.blockColor
		}
		attrs := ""
		if p.Source.ItemID != "" {
			attrs = fmt.Sprintf(` data-item="%s"`, xmlEscape(p.Source.ItemID))
		}
		fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"%s/>`+"\n",
			p.X1, p.Y1, p.X2-p.X1, p.Y2-p.Y1, fill, attrs)
	}
}

func strokeColor(p layout.Primitive) string {
	if p.Color == "" {
		return "#000000"
	}
	return p.Color
}

func dashAttr(p layout.Primitive) string {
	if !p.Dashed {
		return ""
	}
	return ` stroke-dasharray="0.4 0.3"`
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
