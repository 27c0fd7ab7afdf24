package layout

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func blockBounds(t *testing.T, res *Result, i int) Primitive {
	t.Helper()
	p, ok := res.BlockBounds(i)
	if !ok {
		t.Fatalf("no primitive for block %d", i)
	}
	return p
}

// rowLineBlock is a full-width hairline pinned to one horizontal line.
func rowLineBlock(row, startLine, endLine int) *Block {
	b := NewBlock()
	b.Height = FixedSize(0)
	return b.LockStartToLine(startLine).LockEndToLine(endLine).LockVerticalCenterToLine(row)
}

// markerBlock is a 1x1 fixed-size block centered on a row and floated inside
// a column.
func markerBlock(row, colStart, colEnd int) *Block {
	b := NewBlock()
	b.Width = FixedSize(1)
	b.Height = FixedSize(1)
	b.Descent = 0.5
	return b.LockVerticalCenterToLine(row).FloatHorizontallyBetweenLines(colStart, colEnd)
}

// dividerBlock is a zero-width vertical rule spanning two horizontal lines,
// start-aligned inside its column.
func dividerBlock(top, bottom, colStart, colEnd int) *Block {
	b := NewBlock()
	b.Width = FixedSize(0)
	return b.LockTopToLine(top).LockBottomToLine(bottom).LockStartBetweenLines(colStart, colEnd)
}

// connectorBlock is a zero-width vertical rule centered on one vertical
// line.
func connectorBlock(top, bottom, center int) *Block {
	b := NewBlock()
	b.Width = FixedSize(0)
	return b.LockTopToLine(top).LockBottomToLine(bottom).LockHorizontalCenterToLine(center)
}

// labelBlock is a fixed-size text box between two horizontal lines, centered
// on a vertical line but kept inside its column. Width simulates 0.5 per
// character.
func labelBlock(top, bottom, colStart, center, colEnd int, text string) *Block {
	b := NewBlock()
	b.Width = FixedSize(float64(len(text)) * 0.5)
	b.Height = FixedSize(1)
	b.LockTopToLine(top).LockBottomToLine(bottom)
	b.FloatHorizontallyBetweenLines(colStart, colEnd)
	return b.LockHorizontalCenterToLine(center)
}

// buildTwoRowSystem lays out two rows of markers across two bar-like
// regions, with a label band between the rows. It mirrors a realistic
// system: row hairlines, column grid lines separated by gaps, fixed-size
// markers floated into columns, zero-width dividers, and labels centered
// under markers.
func buildTwoRowSystem() *System {
	const (
		columnGap = 0.25
		rowGap    = 3.0
		trailPad  = 1.5
	)

	sys := &System{TargetWidth: 100}

	// Horizontal lines 0..13.
	sys.AddHorizontalLine(HorizontalSystemTop)            // 0
	h1, _ := sys.AddHorizontalLine(HorizontalSystemBottom) // 1
	for range 5 {                                          // 2..6 row 1
		sys.AddHorizontalLine(HorizontalRowCenter)
	}
	for range 5 { // 7..11 row 2
		sys.AddHorizontalLine(HorizontalRowCenter)
	}
	h12, _ := sys.AddHorizontalLine(HorizontalRowTop)    // 12 label band top
	h13, _ := sys.AddHorizontalLine(HorizontalRowBottom) // 13 label band bottom

	h1.LockToLine(11)
	sys.HorizontalLines[2].LockToLine(0)
	for i := 3; i <= 6; i++ {
		sys.HorizontalLines[i].LockBelowLine(i-1, 1)
	}
	h12.LockBelowLine(6, rowGap)
	h13.FloatBelowLine(12, 1)
	sys.HorizontalLines[7].LockBelowLine(13, rowGap)
	for i := 8; i <= 11; i++ {
		sys.HorizontalLines[i].LockBelowLine(i-1, 1)
	}

	// Vertical lines 0..22.
	sys.AddVerticalLine(VerticalSystemStart)          // 0
	v1, _ := sys.AddVerticalLine(VerticalDefault)     // 1 connector line
	v2, _ := sys.AddVerticalLine(VerticalSystemEnd)   // 2
	v3, _ := sys.AddVerticalLine(VerticalColumnStart) // 3
	v4, _ := sys.AddVerticalLine(VerticalColumnEnd)   // 4
	v5, _ := sys.AddVerticalLine(VerticalColumnStart) // 5
	v6, _ := sys.AddVerticalLine(VerticalColumnEnd)   // 6
	v1.LockToLine(0)
	v3.FloatAfterLine(1, columnGap)
	v4.FloatAfterLine(3, 0)
	v5.FloatAfterLine(4, columnGap)
	v6.FloatAfterLine(5, 0)
	// Columns 7..18: marker and divider columns for both regions.
	for i := 7; i <= 18; i++ {
		kind := VerticalColumnStart
		if i%2 == 0 {
			kind = VerticalColumnEnd
		}
		line, _ := sys.AddVerticalLine(kind)
		if i%2 == 1 {
			line.FloatAfterLine(i-1, columnGap)
		} else {
			line.FloatAfterLine(i-1, 0)
		}
	}
	for range 4 { // 19..22 marker center lines
		sys.AddVerticalLine(VerticalDefault)
	}
	v2.FloatAfterLine(18, 0)

	// Blocks 0..28.
	for i := 2; i <= 6; i++ { // 0..4 row 1 hairlines
		sys.AddBlock(rowLineBlock(i, 1, 2))
	}
	for i := 7; i <= 11; i++ { // 5..9 row 2 hairlines
		sys.AddBlock(rowLineBlock(i, 1, 2))
	}
	sys.AddBlock(connectorBlock(0, 1, 1)) // 10

	sys.AddBlock(markerBlock(5, 3, 4)) // 11
	sys.AddBlock(markerBlock(8, 3, 4)) // 12

	sys.AddBlock(markerBlock(3, 5, 6))  // 13
	sys.AddBlock(markerBlock(5, 5, 6))  // 14
	sys.AddBlock(markerBlock(8, 5, 6))  // 15
	sys.AddBlock(markerBlock(10, 5, 6)) // 16

	m17, _ := sys.AddBlock(markerBlock(5, 7, 8)) // 17
	m17.PadEnd = trailPad
	m17.LockHorizontalCenterToLine(19)
	m18, _ := sys.AddBlock(markerBlock(4, 9, 10)) // 18
	m18.PadEnd = trailPad
	m18.LockHorizontalCenterToLine(20)
	sys.AddBlock(markerBlock(8, 7, 8))      // 19
	sys.AddBlock(dividerBlock(0, 1, 11, 12)) // 20

	m21, _ := sys.AddBlock(markerBlock(5, 13, 14)) // 21
	m21.PadEnd = trailPad
	m21.LockHorizontalCenterToLine(21)
	m22, _ := sys.AddBlock(markerBlock(6, 15, 16)) // 22
	m22.PadEnd = trailPad
	m22.LockHorizontalCenterToLine(22)
	sys.AddBlock(markerBlock(9, 13, 14))     // 23
	sys.AddBlock(dividerBlock(0, 1, 17, 18)) // 24

	sys.AddBlock(labelBlock(12, 13, 7, 19, 8, "A"))                             // 25
	sys.AddBlock(labelBlock(12, 13, 9, 20, 10, "ve"))                           // 26
	sys.AddBlock(labelBlock(12, 13, 13, 21, 14, "A label of very silly length")) // 27
	sys.AddBlock(labelBlock(12, 13, 15, 22, 16, "Short"))                       // 28

	return sys
}

func TestResolveTwoRowSystem(t *testing.T) {
	sys := buildTwoRowSystem()

	res, err := sys.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(res.HorizontalLines) != len(sys.HorizontalLines) {
		t.Fatalf("horizontal line count = %d, want %d", len(res.HorizontalLines), len(sys.HorizontalLines))
	}
	if len(res.VerticalLines) != len(sys.VerticalLines) {
		t.Fatalf("vertical line count = %d, want %d", len(res.VerticalLines), len(sys.VerticalLines))
	}

	h := res.HorizontalLines
	v := res.VerticalLines

	// Row line spacing.
	if h[0] != 0 {
		t.Errorf("system top = %v, want 0", h[0])
	}
	if !approx(h[1], h[11]) {
		t.Errorf("system bottom = %v, want last row line %v", h[1], h[11])
	}
	if !approx(h[2], h[0]) {
		t.Errorf("first row line = %v, want system top", h[2])
	}
	for i := 3; i <= 6; i++ {
		if !approx(h[i], h[i-1]+1) {
			t.Errorf("h[%d] = %v, want %v", i, h[i], h[i-1]+1)
		}
	}
	if !approx(h[12], h[6]+3) {
		t.Errorf("label band top = %v, want %v", h[12], h[6]+3)
	}
	if !approx(h[13], h[12]+1) {
		t.Errorf("label band bottom = %v, want %v", h[13], h[12]+1)
	}
	if !approx(h[7], h[13]+3) {
		t.Errorf("second row start = %v, want %v", h[7], h[13]+3)
	}
	for i := 8; i <= 11; i++ {
		if !approx(h[i], h[i-1]+1) {
			t.Errorf("h[%d] = %v, want %v", i, h[i], h[i-1]+1)
		}
	}

	// Hairline blocks sit on their lines and span the system.
	for block, line := 0, 2; block <= 9; block, line = block+1, line+1 {
		p := blockBounds(t, res, block)
		if !approx(p.Y1, h[line]) || !approx(p.Y2, h[line]) {
			t.Errorf("hairline %d: y = [%v, %v], want %v", block, p.Y1, p.Y2, h[line])
		}
		if !approx(p.X1, v[1]) || !approx(p.X2, v[2]) {
			t.Errorf("hairline %d: x = [%v, %v], want [%v, %v]", block, p.X1, p.X2, v[1], v[2])
		}
	}

	// The connector covers the full vertical range at x=0.
	conn := blockBounds(t, res, 10)
	if !approx(conn.X1, 0) || !approx(conn.X2, 0) {
		t.Errorf("connector x = [%v, %v], want 0", conn.X1, conn.X2)
	}
	if !approx(conn.Y1, h[0]) || !approx(conn.Y2, h[1]) {
		t.Errorf("connector y = [%v, %v], want [%v, %v]", conn.Y1, conn.Y2, h[0], h[1])
	}

	// Vertical lines appear in reading order, so no columns overlap.
	order := []int{0, 1, 3, 4, 5, 6, 7, 19, 8, 9, 20, 10, 11, 12, 13, 21, 14, 15, 22, 16, 17, 18, 2}
	for i := 1; i < len(order); i++ {
		if v[order[i]]+1e-9 < v[order[i-1]] {
			t.Errorf("vertical line %d at %v precedes line %d at %v", order[i], v[order[i]], order[i-1], v[order[i-1]])
		}
	}

	// Every block stays inside its designated column.
	columns := [][3]int{
		{11, 3, 4}, {12, 3, 4},
		{13, 5, 6}, {14, 5, 6}, {15, 5, 6}, {16, 5, 6},
		{17, 7, 8}, {18, 9, 10}, {19, 7, 8}, {20, 11, 12},
		{21, 13, 14}, {22, 15, 16}, {23, 13, 14}, {24, 17, 18},
		{25, 7, 8}, {26, 9, 10}, {27, 13, 14}, {28, 15, 16},
	}
	for _, c := range columns {
		p := blockBounds(t, res, c[0])
		if p.X1+1e-9 < v[c[1]] {
			t.Errorf("block %d starts at %v before column line %d at %v", c[0], p.X1, c[1], v[c[1]])
		}
		if p.X2 > v[c[2]]+1e-9 {
			t.Errorf("block %d ends at %v after column line %d at %v", c[0], p.X2, c[2], v[c[2]])
		}
	}

	// Column gaps and trailing pads hold between each block and the next
	// column line.
	separations := []struct {
		block int
		line  int
		gap   float64
	}{
		{11, 5, 0.25}, {12, 5, 0.25}, {13, 7, 0.25}, {14, 7, 0.25},
		{15, 7, 0.25}, {16, 7, 0.25}, {17, 9, 1.5}, {18, 11, 1.5},
		{19, 9, 0.25}, {20, 13, 0.25}, {21, 15, 1.5}, {22, 17, 1.5},
		{23, 15, 0.25}, {25, 9, 0.25}, {26, 11, 0.25}, {27, 15, 0.25},
		{28, 17, 0.25},
	}
	for _, s := range separations {
		p := blockBounds(t, res, s.block)
		if p.X2+s.gap > v[s.line]+1e-9 {
			t.Errorf("block %d end %v + gap %v crosses line %d at %v", s.block, p.X2, s.gap, s.line, v[s.line])
		}
	}

	// Labels center under their markers.
	centered := [][3]int{{25, 17, 19}, {26, 18, 20}, {27, 21, 21}, {28, 22, 22}}
	for _, c := range centered {
		label := blockBounds(t, res, c[0])
		marker := blockBounds(t, res, c[1])
		center := v[c[2]]
		if got := (label.X1 + label.X2) / 2; !approx(got, center) {
			t.Errorf("label %d center = %v, want %v", c[0], got, center)
		}
		if got := (marker.X1 + marker.X2) / 2; !approx(got, center) {
			t.Errorf("marker %d center = %v, want %v", c[1], got, center)
		}
	}
}

// buildJustifiedRow lays out three 1-wide markers, each followed by a
// 4-wide spacing block, for a natural width of 15 against a target of 30.
func buildJustifiedRow(j Justification) *System {
	sys := &System{Justification: j, TargetWidth: 30}

	sys.AddHorizontalLine(HorizontalRowCenter) // 0

	sys.AddVerticalLine(VerticalSystemStart)        // 0
	v1, _ := sys.AddVerticalLine(VerticalSystemEnd) // 1

	baseline := NewBlock()
	baseline.Height = FixedSize(0)
	baseline.Layer = Background
	baseline.LockVerticalCenterToLine(0).LockStartToLine(0).LockEndToLine(1)
	sys.AddBlock(baseline)

	prev := 0 // index of the line the next column locks onto
	for i := 0; i < 3; i++ {
		mStart, mStartIdx := sys.AddVerticalLine(VerticalColumnStart)
		mStart.LockToLine(prev)
		_, mEndIdx := sys.AddVerticalLine(VerticalColumnEnd)

		marker := NewBlock()
		marker.Width = FixedSize(1)
		marker.Height = FixedSize(1)
		marker.FloatHorizontallyBetweenLines(mStartIdx, mEndIdx)
		sys.AddBlock(marker)

		sStart, sStartIdx := sys.AddVerticalLine(VerticalSpacingStart)
		sStart.LockToLine(mEndIdx)
		_, sEndIdx := sys.AddVerticalLine(VerticalSpacingEnd)

		spacer := NewSpacingBlock(4)
		spacer.FloatHorizontallyBetweenLines(sStartIdx, sEndIdx)
		sys.AddBlock(spacer)

		prev = sEndIdx
	}
	v1.LockToLine(prev)

	return sys
}

func TestResolveJustification(t *testing.T) {
	tests := []struct {
		name          string
		justification Justification
		wantLeading   float64
		wantTrailing  float64
	}{
		{"start", JustifyStart, 0, 15},
		{"end", JustifyEnd, 15, 30},
		{"centered", JustifyCentered, 7.5, 22.5},
		{"justified", Justified, 0, 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := buildJustifiedRow(tc.justification).Resolve()
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got := res.VerticalLines[0]; !approx(got, tc.wantLeading) {
				t.Errorf("leading edge = %v, want %v", got, tc.wantLeading)
			}
			if got := res.VerticalLines[1]; !approx(got, tc.wantTrailing) {
				t.Errorf("trailing edge = %v, want %v", got, tc.wantTrailing)
			}
		})
	}
}

func TestResolveJustifiedSpreadsSpacing(t *testing.T) {
	// Stretching 15 natural into 30 target across 12 total spacing means a
	// ratio of 2.25: marker origins move from 0/5/10 to 0/10/20.
	res, err := buildJustifiedRow(Justified).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(res.Foreground) != 3 {
		t.Fatalf("foreground primitives = %d, want 3 markers", len(res.Foreground))
	}
	want := []float64{0, 10, 20}
	for i, p := range res.Foreground {
		if !approx(p.X1, want[i]) {
			t.Errorf("marker %d x = %v, want %v", i, p.X1, want[i])
		}
	}
}

func TestSpacingBlocksHiddenUnlessDebug(t *testing.T) {
	sys := buildJustifiedRow(JustifyStart)
	res, err := sys.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Background holds only the baseline; spacing blocks are filtered.
	if len(res.Background) != 1 {
		t.Fatalf("background primitives = %d, want 1", len(res.Background))
	}

	sys.Debug.ShowSpacing = true
	res, err = sys.Resolve()
	if err != nil {
		t.Fatalf("Resolve with spacing debug: %v", err)
	}
	if len(res.Background) != 4 {
		t.Fatalf("background primitives = %d, want baseline plus 3 spacers", len(res.Background))
	}
}

func TestResolveIdempotent(t *testing.T) {
	sys := buildTwoRowSystem()

	first, err := sys.Resolve()
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := sys.Resolve()
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated Resolve produced different results")
	}
}

func TestResolveOrderingChain(t *testing.T) {
	sys := &System{}
	sys.AddHorizontalLine(HorizontalSystemTop)
	sys.AddVerticalLine(VerticalSystemStart)

	anchor := NewBlock()
	anchor.Width = FixedSize(2)
	anchor.LockStartToLine(0)
	sys.AddBlock(anchor)
	for i := 1; i < 6; i++ {
		b := NewBlock()
		b.Width = FixedSize(2)
		b.FloatAfterBlock(i-1, 1)
		sys.AddBlock(b)
	}

	res, err := sys.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	prevEnd := math.Inf(-1)
	for i := 0; i < 6; i++ {
		p := blockBounds(t, res, i)
		if i > 0 && p.X1+1e-9 < prevEnd+1 {
			t.Errorf("block %d starts at %v, want at least %v", i, p.X1, prevEnd+1)
		}
		prevEnd = p.X2
	}
}

func collisionTestSystem(itemA, itemB string) *System {
	sys := &System{}
	sys.AddHorizontalLine(HorizontalSystemTop)
	sys.AddVerticalLine(VerticalSystemStart)
	v1, _ := sys.AddVerticalLine(VerticalDefault)
	v1.LockAfterLine(0, 1)

	a := NewBlock()
	a.Width = FixedSize(2)
	a.Height = FixedSize(2)
	a.Source.ItemID = itemA
	a.LockTopToLine(0).LockStartToLine(0)
	sys.AddBlock(a)

	b := NewBlock()
	b.Width = FixedSize(2)
	b.Height = FixedSize(2)
	b.Source.ItemID = itemB
	b.LockTopToLine(0).FloatStartAfterLine(1)
	sys.AddBlock(b)

	return sys
}

func TestCollisionResolvedHorizontally(t *testing.T) {
	res, err := collisionTestSystem("item-a", "item-b").Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	a := blockBounds(t, res, 0)
	b := blockBounds(t, res, 1)
	if b.X1+1e-9 < a.X2+collisionGap {
		t.Errorf("block b starts at %v, want at least %v", b.X1, a.X2+collisionGap)
	}
	if len(res.UnresolvedCollisions) != 0 {
		t.Errorf("unresolved collisions = %v, want none", res.UnresolvedCollisions)
	}
}

func TestCollisionExemptSharedSource(t *testing.T) {
	// Both blocks come from the same item, so their overlap is deliberate.
	res, err := collisionTestSystem("item-a", "item-a").Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	b := blockBounds(t, res, 1)
	if !approx(b.X1, 1) {
		t.Errorf("block b x = %v, want 1 (left overlapping)", b.X1)
	}
}

func TestCollisionVerticalLeftUnresolved(t *testing.T) {
	sys := collisionTestSystem("item-a", "item-b")
	sys.Blocks[1].CanMoveUp = true

	res, err := sys.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.UnresolvedCollisions) == 0 {
		t.Fatal("expected unresolved vertical collisions")
	}
	b := blockBounds(t, res, 1)
	if !approx(b.X1, 1) {
		t.Errorf("block b x = %v, want 1 (geometry unchanged)", b.X1)
	}
}

func TestFixedSizeIncludesPadding(t *testing.T) {
	// The solved trailing edges of a fixed-size block carry the paddings;
	// debug outlines expose the raw edges.
	sys := &System{Debug: Debug{DrawBlockOutlines: true}}
	sys.AddHorizontalLine(HorizontalSystemTop)
	sys.AddVerticalLine(VerticalSystemStart)

	b := NewBlock()
	b.Width = FixedSize(3)
	b.Height = FixedSize(2)
	b.PadStart, b.PadEnd = 0.5, 1.5
	b.PadTop, b.PadBottom = 0.25, 0.75
	b.LockTopToLine(0).LockStartToLine(0)
	sys.AddBlock(b)

	res, err := sys.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var outline *Primitive
	for i := range res.Background {
		if res.Background[i].Block == -1 && res.Background[i].Kind == BoxPrimitive {
			outline = &res.Background[i]
		}
	}
	if outline == nil {
		t.Fatal("no debug outline emitted")
	}
	if got, want := outline.X2-outline.X1, 0.5+3+1.5; !approx(got, want) {
		t.Errorf("outline width = %v, want %v", got, want)
	}
	if got, want := outline.Y2-outline.Y1, 0.25+2+0.75; !approx(got, want) {
		t.Errorf("outline height = %v, want %v", got, want)
	}

	content := blockBounds(t, res, 0)
	if got := content.X2 - content.X1; !approx(got, 3) {
		t.Errorf("content width = %v, want 3", got)
	}
	if got := content.Y2 - content.Y1; !approx(got, 2) {
		t.Errorf("content height = %v, want 2", got)
	}
}

func TestDebugGeometryIsAdditive(t *testing.T) {
	plain := buildTwoRowSystem()
	res, err := plain.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	debugged := buildTwoRowSystem()
	debugged.Debug = Debug{DrawHorizontalLines: true, DrawVerticalLines: true, DrawBlockOutlines: true}
	resDebug, err := debugged.Resolve()
	if err != nil {
		t.Fatalf("Resolve with debug: %v", err)
	}

	if !reflect.DeepEqual(res.HorizontalLines, resDebug.HorizontalLines) {
		t.Error("debug flags changed horizontal line positions")
	}
	if !reflect.DeepEqual(res.VerticalLines, resDebug.VerticalLines) {
		t.Error("debug flags changed vertical line positions")
	}
	if !reflect.DeepEqual(res.Foreground, resDebug.Foreground) {
		t.Error("debug flags changed foreground primitives")
	}
	wantExtra := len(plain.HorizontalLines) + len(plain.VerticalLines) + len(plain.Blocks)
	if got := len(resDebug.Background) - len(res.Background); got != wantExtra {
		t.Errorf("debug geometry added %d primitives, want %d", got, wantExtra)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Run("bad origin", func(t *testing.T) {
		sys := &System{TopEdge: 5}
		sys.AddHorizontalLine(HorizontalSystemTop)
		sys.AddVerticalLine(VerticalSystemStart)
		if _, err := sys.Resolve(); !errors.Is(err, ErrBadOrigin) {
			t.Errorf("err = %v, want ErrBadOrigin", err)
		}
	})

	t.Run("unknown vertical line", func(t *testing.T) {
		sys := &System{}
		sys.AddHorizontalLine(HorizontalSystemTop)
		sys.AddVerticalLine(VerticalSystemStart)
		b := NewBlock()
		b.LockStartToLine(9)
		sys.AddBlock(b)
		if _, err := sys.Resolve(); !errors.Is(err, ErrUnknownVerticalLine) {
			t.Errorf("err = %v, want ErrUnknownVerticalLine", err)
		}
	})

	t.Run("unknown block", func(t *testing.T) {
		sys := &System{}
		sys.AddHorizontalLine(HorizontalSystemTop)
		sys.AddVerticalLine(VerticalSystemStart)
		b := NewBlock()
		b.FloatAfterBlock(7, 1)
		sys.AddBlock(b)
		if _, err := sys.Resolve(); !errors.Is(err, ErrUnknownBlock) {
			t.Errorf("err = %v, want ErrUnknownBlock", err)
		}
	})
}
