// Package layout resolves two-dimensional block layouts described as linear
// constraints over grid lines.
//
// A system is a flat grid of horizontal and vertical lines. Grid lines have
// no extent of their own; each one stands for a single undetermined
// coordinate on its axis. Blocks are rectangles positioned by constraining
// their edges against grid lines, against other blocks, or against both.
// Resolving a system translates every constraint into a linear constraint
// solver, reads back the solved coordinates, repairs block collisions, and
// justifies the result to a target width.
//
// The coordinate system has its origin at the system's top-left: y grows
// downward, so lines below other lines have larger values, and x grows in
// reading direction, so lines after other lines have larger values.
package layout

// HorizontalLineKind tags what a horizontal grid line stands for. The kind
// has no effect on solving; it only selects debug-geometry colors and shows
// up in debug logs.
type HorizontalLineKind uint8

const (
	HorizontalDefault HorizontalLineKind = iota
	HorizontalSystemTop
	HorizontalSystemBottom
	HorizontalRowCenter
	HorizontalRowTop
	HorizontalRowBottom
)

func (k HorizontalLineKind) String() string {
	switch k {
	case HorizontalSystemTop:
		return "system-top"
	case HorizontalSystemBottom:
		return "system-bottom"
	case HorizontalRowCenter:
		return "row-center"
	case HorizontalRowTop:
		return "row-top"
	case HorizontalRowBottom:
		return "row-bottom"
	}
	return "default"
}

// VerticalLineKind tags what a vertical grid line stands for. Like its
// horizontal counterpart it is purely informational.
type VerticalLineKind uint8

const (
	VerticalDefault VerticalLineKind = iota
	VerticalSystemStart
	VerticalSystemEnd
	VerticalColumnStart
	VerticalColumnEnd
	VerticalSpacingStart
	VerticalSpacingEnd
)

func (k VerticalLineKind) String() string {
	switch k {
	case VerticalSystemStart:
		return "system-start"
	case VerticalSystemEnd:
		return "system-end"
	case VerticalColumnStart:
		return "column-start"
	case VerticalColumnEnd:
		return "column-end"
	case VerticalSpacingStart:
		return "spacing-start"
	case VerticalSpacingEnd:
		return "spacing-end"
	}
	return "default"
}

// HorizontalConstraintKind enumerates the relations a horizontal grid line
// can declare against other horizontal lines.
type HorizontalConstraintKind uint8

const (
	// HLockAbove pins the line exactly Distance above line A.
	HLockAbove HorizontalConstraintKind = iota
	// HFloatAbove keeps the line at least Distance above line A, as a weak
	// preference.
	HFloatAbove
	// HLockBelow pins the line exactly Distance below line A.
	HLockBelow
	// HFloatBelow keeps the line at least Distance below line A, as a weak
	// preference.
	HFloatBelow
	// HCenterBetween pins the line halfway between lines A and B.
	HCenterBetween
)

// HorizontalConstraint relates a horizontal grid line to one or two other
// horizontal lines, identified by index into the system's line list.
type HorizontalConstraint struct {
	Kind     HorizontalConstraintKind
	A        int
	B        int
	Distance float64
}

// HorizontalLine is one horizontal grid line: a y coordinate to be solved,
// plus the constraints that determine it.
type HorizontalLine struct {
	Kind        HorizontalLineKind
	Constraints []HorizontalConstraint
}

// LockToLine pins this line to the same position as line a.
func (l *HorizontalLine) LockToLine(a int) *HorizontalLine {
	return l.LockBelowLine(a, 0)
}

// LockAboveLine pins this line exactly distance above line a.
func (l *HorizontalLine) LockAboveLine(a int, distance float64) *HorizontalLine {
	l.Constraints = append(l.Constraints, HorizontalConstraint{Kind: HLockAbove, A: a, Distance: distance})
	return l
}

// FloatAboveLine keeps this line at least distance above line a.
func (l *HorizontalLine) FloatAboveLine(a int, distance float64) *HorizontalLine {
	l.Constraints = append(l.Constraints, HorizontalConstraint{Kind: HFloatAbove, A: a, Distance: distance})
	return l
}

// LockBelowLine pins this line exactly distance below line a.
func (l *HorizontalLine) LockBelowLine(a int, distance float64) *HorizontalLine {
	l.Constraints = append(l.Constraints, HorizontalConstraint{Kind: HLockBelow, A: a, Distance: distance})
	return l
}

// FloatBelowLine keeps this line at least distance below line a.
func (l *HorizontalLine) FloatBelowLine(a int, distance float64) *HorizontalLine {
	l.Constraints = append(l.Constraints, HorizontalConstraint{Kind: HFloatBelow, A: a, Distance: distance})
	return l
}

// CenterBetweenLines pins this line halfway between lines a and b.
func (l *HorizontalLine) CenterBetweenLines(a, b int) *HorizontalLine {
	l.Constraints = append(l.Constraints, HorizontalConstraint{Kind: HCenterBetween, A: a, B: b})
	return l
}

// VerticalConstraintKind enumerates the relations a vertical grid line can
// declare against other vertical lines.
type VerticalConstraintKind uint8

const (
	// VLockBefore pins the line exactly Distance before line A.
	VLockBefore VerticalConstraintKind = iota
	// VFloatBefore keeps the line at most at line A minus Distance, as a
	// weak preference.
	VFloatBefore
	// VLockAfter pins the line exactly Distance after line A.
	VLockAfter
	// VFloatAfter keeps the line at least Distance after line A, as a weak
	// preference.
	VFloatAfter
)

// VerticalConstraint relates a vertical grid line to another vertical line,
// identified by index into the system's line list.
type VerticalConstraint struct {
	Kind     VerticalConstraintKind
	A        int
	Distance float64
}

// VerticalLine is one vertical grid line: an x coordinate to be solved, plus
// the constraints that determine it.
type VerticalLine struct {
	Kind        VerticalLineKind
	Constraints []VerticalConstraint
}

// LockToLine pins this line to the same position as line a.
func (l *VerticalLine) LockToLine(a int) *VerticalLine {
	return l.LockAfterLine(a, 0)
}

// LockBeforeLine pins this line exactly distance before line a.
func (l *VerticalLine) LockBeforeLine(a int, distance float64) *VerticalLine {
	l.Constraints = append(l.Constraints, VerticalConstraint{Kind: VLockBefore, A: a, Distance: distance})
	return l
}

// FloatBeforeLine keeps this line at least distance before line a.
func (l *VerticalLine) FloatBeforeLine(a int, distance float64) *VerticalLine {
	l.Constraints = append(l.Constraints, VerticalConstraint{Kind: VFloatBefore, A: a, Distance: distance})
	return l
}

// LockAfterLine pins this line exactly distance after line a.
func (l *VerticalLine) LockAfterLine(a int, distance float64) *VerticalLine {
	l.Constraints = append(l.Constraints, VerticalConstraint{Kind: VLockAfter, A: a, Distance: distance})
	return l
}

// FloatAfterLine keeps this line at least distance after line a.
func (l *VerticalLine) FloatAfterLine(a int, distance float64) *VerticalLine {
	l.Constraints = append(l.Constraints, VerticalConstraint{Kind: VFloatAfter, A: a, Distance: distance})
	return l
}
