package layout

import (
	"github.com/charmbracelet/log"
)

// Debug geometry colors, keyed loosely by what the geometry marks.
const (
	colorEdge    = "#ff0000"
	colorGrid    = "#0000ff"
	colorColumn  = "#b22222"
	colorSpacing = "#008000"
	colorOutline = "#9400d3"
)

const debugStrokeWidth = 0.1

// PrimitiveKind distinguishes output geometry.
type PrimitiveKind uint8

const (
	// BoxPrimitive is a filled rectangle: a resolved block, or a debug
	// outline.
	BoxPrimitive PrimitiveKind = iota
	// LinePrimitive is a stroked segment from (X1,Y1) to (X2,Y2), used for
	// debug grid lines.
	LinePrimitive
)

// Primitive is one piece of resolved output geometry.
type Primitive struct {
	Kind PrimitiveKind

	// Block is the index of the originating block, or -1 for debug
	// geometry.
	Block  int
	Source Source

	// For boxes, (X1,Y1) is the top-left corner and (X2,Y2) the
	// bottom-right. For lines, they are the segment endpoints.
	X1, Y1 float64
	X2, Y2 float64

	StrokeWidth float64
	Color       string
	Dashed      bool
}

// Result is the resolved form of a System: final coordinates for every grid
// line and block, grouped into painting layers.
type Result struct {
	Index     int
	StartTick int64
	EndTick   int64

	// HorizontalLines and VerticalLines hold one solved coordinate per
	// input grid line, in input order.
	HorizontalLines []float64
	VerticalLines   []float64

	// Width and Height are the maximal solved block end and bottom.
	Width  float64
	Height float64

	Foreground []Primitive
	Midground  []Primitive
	Background []Primitive

	// UnresolvedCollisions lists block pairs that collided but could not be
	// separated.
	UnresolvedCollisions [][2]int
}

// BlockBounds returns the solved rectangle of block i across all layers, or
// false if no primitive for that block exists.
func (r *Result) BlockBounds(i int) (Primitive, bool) {
	for _, layer := range [][]Primitive{r.Foreground, r.Midground, r.Background} {
		for _, p := range layer {
			if p.Kind == BoxPrimitive && p.Block == i {
				return p, true
			}
		}
	}
	return Primitive{}, false
}

func assembleResult(sys *System, tr *translator, unresolved [][2]int) *Result {
	res := &Result{
		Index:                sys.Index,
		StartTick:            sys.StartTick,
		EndTick:              sys.EndTick,
		HorizontalLines:      make([]float64, len(sys.HorizontalLines)),
		VerticalLines:        make([]float64, len(sys.VerticalLines)),
		UnresolvedCollisions: unresolved,
	}

	for i := range sys.HorizontalLines {
		res.HorizontalLines[i] = tr.slv.Value(tr.hVars[i])
	}
	for i := range sys.VerticalLines {
		res.VerticalLines[i] = tr.slv.Value(tr.vVars[i])
	}

	for i := range sys.Blocks {
		if end := tr.endOf(i); end > res.Width {
			res.Width = end
		}
		if bottom := tr.bottomOf(i); bottom > res.Height {
			res.Height = bottom
		}
	}

	res.Foreground = blockPrimitives(sys, tr, Foreground)
	res.Midground = blockPrimitives(sys, tr, Midground)
	res.Background = blockPrimitives(sys, tr, Background)

	appendDebugGeometry(sys, tr, res)

	return res
}

// blockPrimitives builds the output boxes for one layer. Invisible blocks
// are dropped, and spacing blocks are dropped unless spacing debug is on.
//
// A primitive covers the block's content box. The solved end and bottom
// variables of a fixed-size block fold the paddings in, so for fixed axes
// the content extent is the leading edge plus the fixed size; variable axes
// run out to the solved trailing edge.
func blockPrimitives(sys *System, tr *translator, layer Layer) []Primitive {
	var prims []Primitive
	for i := range sys.Blocks {
		b := sys.Blocks[i]
		if b.Layer != layer || !b.Visible {
			continue
		}
		if b.Spacing && !sys.Debug.ShowSpacing {
			continue
		}
		x2 := tr.endOf(i)
		if b.Width.Fixed {
			x2 = tr.startOf(i) + b.Width.Value
		}
		y2 := tr.bottomOf(i)
		if b.Height.Fixed {
			y2 = tr.topOf(i) + b.Height.Value
		}
		prims = append(prims, Primitive{
			Kind:   BoxPrimitive,
			Block:  i,
			Source: b.Source,
			X1:     tr.startOf(i),
			Y1:     tr.topOf(i),
			X2:     x2,
			Y2:     y2,
		})
	}
	return prims
}

// appendDebugGeometry adds visual guides to the background layer. It only
// ever appends; solved positions and the regular layers stay untouched.
func appendDebugGeometry(sys *System, tr *translator, res *Result) {
	if sys.Debug.DrawHorizontalLines {
		for i, line := range sys.HorizontalLines {
			y := res.HorizontalLines[i]
			res.Background = append(res.Background, Primitive{
				Kind:        LinePrimitive,
				Block:       -1,
				X1:          0,
				Y1:          y,
				X2:          res.Width,
				Y2:          y,
				StrokeWidth: debugStrokeWidth,
				Color:       horizontalLineColor(line.Kind),
				Dashed:      true,
			})
		}
	}

	if sys.Debug.DrawVerticalLines {
		for i, line := range sys.VerticalLines {
			x := res.VerticalLines[i]
			res.Background = append(res.Background, Primitive{
				Kind:        LinePrimitive,
				Block:       -1,
				X1:          x,
				Y1:          0,
				X2:          x,
				Y2:          res.Height,
				StrokeWidth: debugStrokeWidth,
				Color:       verticalLineColor(line.Kind),
				Dashed:      true,
			})
		}
	}

	if sys.Debug.DrawBlockOutlines {
		for i, b := range sys.Blocks {
			res.Background = append(res.Background, Primitive{
				Kind:        BoxPrimitive,
				Block:       -1,
				Source:      b.Source,
				X1:          tr.startOf(i),
				Y1:          tr.topOf(i),
				X2:          tr.endOf(i),
				Y2:          tr.bottomOf(i),
				StrokeWidth: debugStrokeWidth,
				Color:       colorOutline,
			})
		}
	}
}

func horizontalLineColor(kind HorizontalLineKind) string {
	switch kind {
	case HorizontalSystemTop, HorizontalSystemBottom:
		return colorEdge
	default:
		return colorGrid
	}
}

func verticalLineColor(kind VerticalLineKind) string {
	switch kind {
	case VerticalSystemStart, VerticalSystemEnd:
		return colorEdge
	case VerticalColumnStart, VerticalColumnEnd:
		return colorColumn
	case VerticalSpacingStart, VerticalSpacingEnd:
		return colorSpacing
	default:
		return colorGrid
	}
}

func logDebugPositions(sys *System, res *Result, logger *log.Logger) {
	if sys.Debug.DrawHorizontalLines {
		for i, line := range sys.HorizontalLines {
			logger.Debug("horizontal grid line", "kind", line.Kind.String(), "index", i, "y", res.HorizontalLines[i])
		}
	}
	if sys.Debug.DrawVerticalLines {
		for i, line := range sys.VerticalLines {
			logger.Debug("vertical grid line", "kind", line.Kind.String(), "index", i, "x", res.VerticalLines[i])
		}
	}
}
