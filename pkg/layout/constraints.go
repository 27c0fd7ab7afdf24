package layout

import (
	"fmt"

	"github.com/scorewell/engrave/pkg/solver"
)

// translator owns the constraint solver for one resolution pass. Each grid
// line gets one solver variable (its axis coordinate); each block gets four
// (top, bottom, start, end). The aligned start is the single edit variable:
// justification shifts the whole system by re-suggesting its value.
type translator struct {
	sys *System
	slv *solver.Solver

	hVars []solver.Variable
	vVars []solver.Variable

	top    []solver.Variable
	bottom []solver.Variable
	start  []solver.Variable
	end    []solver.Variable

	alignedStart solver.Variable

	spacingBlocks []int
	totalSpacing  float64
}

func newTranslator(sys *System) (*translator, error) {
	tr := &translator{
		sys:    sys,
		slv:    solver.New(),
		hVars:  newVariables(len(sys.HorizontalLines)),
		vVars:  newVariables(len(sys.VerticalLines)),
		top:    newVariables(len(sys.Blocks)),
		bottom: newVariables(len(sys.Blocks)),
		start:  newVariables(len(sys.Blocks)),
		end:    newVariables(len(sys.Blocks)),
	}

	// Pin the origin. The top edge sits at y=0; the leading edge tracks the
	// aligned start, an edit variable so justification can move it later.
	if err := tr.add(solver.Var(tr.hVars[sys.TopEdge]), solver.Constant(0), solver.EQ, solver.Required); err != nil {
		return nil, fmt.Errorf("horizontal grid line %d: %w", sys.TopEdge, err)
	}

	tr.alignedStart = solver.NewVariable()
	if err := tr.slv.AddEditVariable(tr.alignedStart, solver.Strong); err != nil {
		return nil, fmt.Errorf("aligned start: %w", err)
	}
	if err := tr.slv.SuggestValue(tr.alignedStart, 0); err != nil {
		return nil, fmt.Errorf("aligned start: %w", err)
	}
	if err := tr.add(solver.Var(tr.vVars[sys.LeadingEdge]), solver.Var(tr.alignedStart), solver.EQ, solver.Required); err != nil {
		return nil, fmt.Errorf("vertical grid line %d: %w", sys.LeadingEdge, err)
	}

	return tr, nil
}

func newVariables(n int) []solver.Variable {
	vars := make([]solver.Variable, n)
	for i := range vars {
		vars[i] = solver.NewVariable()
	}
	return vars
}

func (tr *translator) add(lhs, rhs solver.Expression, op solver.Relation, st solver.Strength) error {
	return tr.slv.AddConstraint(solver.NewConstraint(lhs.Minus(rhs), op, st))
}

func (tr *translator) hLine(i int) (solver.Expression, error) {
	if i < 0 || i >= len(tr.hVars) {
		return solver.Expression{}, fmt.Errorf("horizontal grid line %d: %w", i, ErrUnknownHorizontalLine)
	}
	return solver.Var(tr.hVars[i]), nil
}

func (tr *translator) vLine(i int) (solver.Expression, error) {
	if i < 0 || i >= len(tr.vVars) {
		return solver.Expression{}, fmt.Errorf("vertical grid line %d: %w", i, ErrUnknownVerticalLine)
	}
	return solver.Var(tr.vVars[i]), nil
}

func (tr *translator) blockEdges(i int) (top, bottom, start, end solver.Expression, err error) {
	if i < 0 || i >= len(tr.sys.Blocks) {
		err = fmt.Errorf("block %d: %w", i, ErrUnknownBlock)
		return
	}
	return solver.Var(tr.top[i]), solver.Var(tr.bottom[i]), solver.Var(tr.start[i]), solver.Var(tr.end[i]), nil
}

// applyGridConstraints translates every grid line constraint. Lock
// constraints are strong equalities; float constraints are weak
// inequalities, so locks always win over floats.
func (tr *translator) applyGridConstraints() error {
	for i := range tr.sys.HorizontalLines {
		self := solver.Var(tr.hVars[i])
		for _, c := range tr.sys.HorizontalLines[i].Constraints {
			if err := tr.addHorizontalConstraint(self, c); err != nil {
				return fmt.Errorf("horizontal grid line %d: %w", i, err)
			}
		}
	}
	for i := range tr.sys.VerticalLines {
		self := solver.Var(tr.vVars[i])
		for _, c := range tr.sys.VerticalLines[i].Constraints {
			if err := tr.addVerticalConstraint(self, c); err != nil {
				return fmt.Errorf("vertical grid line %d: %w", i, err)
			}
		}
	}
	return nil
}

func (tr *translator) addHorizontalConstraint(self solver.Expression, c HorizontalConstraint) error {
	a, err := tr.hLine(c.A)
	if err != nil {
		return err
	}
	switch c.Kind {
	case HLockAbove:
		return tr.add(self, a.MinusConstant(c.Distance), solver.EQ, solver.Strong)
	case HFloatAbove:
		return tr.add(self, a.MinusConstant(c.Distance), solver.LE, solver.Weak)
	case HLockBelow:
		return tr.add(self, a.PlusConstant(c.Distance), solver.EQ, solver.Strong)
	case HFloatBelow:
		return tr.add(self, a.PlusConstant(c.Distance), solver.GE, solver.Weak)
	case HCenterBetween:
		b, err := tr.hLine(c.B)
		if err != nil {
			return err
		}
		return tr.add(self, a.Plus(b).Div(2), solver.EQ, solver.Strong)
	}
	return fmt.Errorf("unknown horizontal constraint kind %d", c.Kind)
}

func (tr *translator) addVerticalConstraint(self solver.Expression, c VerticalConstraint) error {
	a, err := tr.vLine(c.A)
	if err != nil {
		return err
	}
	switch c.Kind {
	case VLockBefore:
		return tr.add(self, a.MinusConstant(c.Distance), solver.EQ, solver.Strong)
	case VFloatBefore:
		return tr.add(self, a.MinusConstant(c.Distance), solver.LE, solver.Weak)
	case VLockAfter:
		return tr.add(self, a.PlusConstant(c.Distance), solver.EQ, solver.Strong)
	case VFloatAfter:
		return tr.add(self, a.PlusConstant(c.Distance), solver.GE, solver.Weak)
	}
	return fmt.Errorf("unknown vertical constraint kind %d", c.Kind)
}

// applyBlockConstraints adds the fixed-size relations and every declared
// block constraint, and records spacing blocks for justification.
func (tr *translator) applyBlockConstraints() error {
	for i := range tr.sys.Blocks {
		b := tr.sys.Blocks[i]

		if b.Spacing {
			tr.spacingBlocks = append(tr.spacingBlocks, i)
			tr.totalSpacing += b.Width.Value
		}

		top, bottom, start, end, err := tr.blockEdges(i)
		if err != nil {
			return err
		}

		if b.Width.Fixed {
			rhs := start.PlusConstant(b.PadStart + b.Width.Value + b.PadEnd)
			if err := tr.add(end, rhs, solver.EQ, solver.Strong); err != nil {
				return fmt.Errorf("block %d width: %w", i, err)
			}
		}
		if b.Height.Fixed {
			rhs := top.PlusConstant(b.PadTop + b.Height.Value + b.PadBottom)
			if err := tr.add(bottom, rhs, solver.EQ, solver.Strong); err != nil {
				return fmt.Errorf("block %d height: %w", i, err)
			}
		}

		for _, c := range b.Constraints {
			if err := tr.addBlockConstraint(i, b, c); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
		}
	}
	return nil
}

// addBlockConstraint translates one block constraint. Two rules run through
// every case: paddings fold into the related edge, and constraints on the
// trailing edge of a fixed-size block redirect to the leading edge, since
// with a fixed size the leading edge is what must move.
//
// Spacing blocks are exempt from horizontal redirection. Their trailing-edge
// constraints must reference the end variable so that a justified stretch of
// the spacing width propagates to the grid lines after them.
func (tr *translator) addBlockConstraint(i int, b *Block, c BlockConstraint) error {
	top, bottom, start, end, err := tr.blockEdges(i)
	if err != nil {
		return err
	}

	redirectWidth := b.Width.Fixed && !b.Spacing

	switch c.Kind {
	case LockTopToLine:
		line, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, line.PlusConstant(b.PadTop), solver.EQ, solver.Strong)

	case FloatTopBelowLine:
		line, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, line.PlusConstant(b.PadTop), solver.GE, solver.Weak)

	case FloatBottomAboveLine:
		line, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		if b.Height.Fixed {
			return tr.add(top, line.MinusConstant(b.Height.Value+b.PadBottom), solver.LE, solver.Weak)
		}
		return tr.add(bottom, line.MinusConstant(b.PadBottom), solver.LE, solver.Weak)

	case LockBottomToLine:
		line, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		if b.Height.Fixed {
			return tr.add(top, line.MinusConstant(b.Height.Value+b.PadBottom), solver.EQ, solver.Strong)
		}
		return tr.add(bottom, line.MinusConstant(b.PadBottom), solver.EQ, solver.Strong)

	case LockStartToLine:
		line, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(start, line.PlusConstant(b.PadStart), solver.EQ, solver.Strong)

	case FloatStartAfterLine:
		line, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(start, line.PlusConstant(b.PadStart), solver.GE, solver.Weak)

	case FloatEndBeforeLine:
		line, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		if redirectWidth {
			return tr.add(start, line.MinusConstant(b.Width.Value+b.PadEnd), solver.LE, solver.Weak)
		}
		return tr.add(end, line.MinusConstant(b.PadEnd), solver.LE, solver.Weak)

	case LockEndToLine:
		line, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		if redirectWidth {
			return tr.add(start, line.MinusConstant(b.Width.Value+b.PadEnd), solver.EQ, solver.Strong)
		}
		return tr.add(end, line.MinusConstant(b.PadEnd), solver.EQ, solver.Strong)

	case LockVerticalCenterBetweenLines:
		a, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		bl, err := tr.hLine(c.B)
		if err != nil {
			return err
		}
		return tr.add(top, a.Plus(bl).Div(2).MinusConstant(b.Descent), solver.EQ, solver.Strong)

	case LockVerticalCenterToLine:
		line, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, line.MinusConstant(b.Descent), solver.EQ, solver.Strong)

	case LockHorizontalCenterBetweenLines:
		a, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		bl, err := tr.vLine(c.B)
		if err != nil {
			return err
		}
		return tr.add(start, a.Plus(bl).MinusConstant(b.Width.Value).Div(2), solver.GE, solver.Strong)

	case LockHorizontalCenterToLine:
		line, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(start, line.MinusConstant(b.Width.Value/2), solver.EQ, solver.Strong)

	case PushLineDownToFitHeight:
		line, err := tr.hLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(line, top.PlusConstant(b.Height.Value+b.PadBottom), solver.GE, solver.Strong)

	case PushLineSidewaysToFitWidth:
		line, err := tr.vLine(c.A)
		if err != nil {
			return err
		}
		return tr.add(line, start.PlusConstant(b.Width.Value+b.PadEnd), solver.GE, solver.Strong)

	case FloatAfterBlock:
		_, _, _, oEnd, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(start, oEnd.PlusConstant(c.Distance), solver.GE, solver.Weak)

	case FloatBeforeBlock:
		_, _, oStart, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(oStart, end.PlusConstant(c.Distance), solver.GE, solver.Weak)

	case FloatAboveBlock:
		oTop, _, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(oTop, bottom.PlusConstant(c.Distance), solver.GE, solver.Weak)

	case FloatBeneathBlock:
		_, oBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, oBottom.PlusConstant(c.Distance), solver.GE, solver.Weak)

	case LockStartToBlockStart:
		_, _, oStart, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(start, oStart.PlusConstant(b.PadStart), solver.EQ, solver.Strong)

	case LockEndToBlockEnd:
		_, _, _, oEnd, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(end, oEnd.MinusConstant(b.PadEnd), solver.EQ, solver.Strong)

	case LockTopToBlockTop:
		oTop, _, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, oTop.PlusConstant(b.PadTop), solver.EQ, solver.Strong)

	case LockBottomToBlockBottom:
		_, oBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(bottom, oBottom.MinusConstant(b.PadBottom), solver.EQ, solver.Strong)

	case LockHorizontalCenterBetweenBlocks:
		_, _, _, beforeEnd, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		_, _, afterStart, _, err := tr.blockEdges(c.B)
		if err != nil {
			return err
		}
		rhs := beforeEnd.Plus(afterStart).MinusConstant(b.Width.Value).Div(2)
		return tr.add(start, rhs, solver.EQ, solver.Strong)

	case LockVerticalCenterBetweenBlocks:
		_, aboveBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		beneathTop, _, _, _, err := tr.blockEdges(c.B)
		if err != nil {
			return err
		}
		rhs := aboveBottom.Plus(beneathTop).MinusConstant(b.Height.Value).Div(2)
		return tr.add(top, rhs, solver.EQ, solver.Strong)

	case LockHorizontalCenterToBlockCenter, FloatHorizontalCenterToBlockCenter:
		_, _, oStart, oEnd, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		st := solver.Strong
		if c.Kind == FloatHorizontalCenterToBlockCenter {
			st = solver.Weak
		}
		return tr.add(start.Plus(end).Div(2), oStart.Plus(oEnd).Div(2), solver.EQ, st)

	case LockVerticalCenterToBlockCenter:
		oTop, oBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(top.Plus(bottom).Div(2), oTop.Plus(oBottom).Div(2), solver.EQ, solver.Strong)

	case LockAfterBlock:
		_, _, _, oEnd, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(start, oEnd.PlusConstant(c.Distance), solver.EQ, solver.Strong)

	case LockBeforeBlock:
		_, _, oStart, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(end, oStart.MinusConstant(c.Distance), solver.EQ, solver.Strong)

	case LockAboveBlock:
		oTop, _, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(bottom, oTop.MinusConstant(c.Distance), solver.EQ, solver.Strong)

	case LockBeneathBlock:
		_, oBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, oBottom.PlusConstant(c.Distance), solver.EQ, solver.Strong)

	case LockTopToBlockCenter:
		oTop, oBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(top, oTop.Plus(oBottom).Div(2), solver.EQ, solver.Strong)

	case LockBottomToBlockCenter:
		oTop, oBottom, _, _, err := tr.blockEdges(c.A)
		if err != nil {
			return err
		}
		return tr.add(bottom, oTop.Plus(oBottom).Div(2), solver.EQ, solver.Strong)
	}

	return fmt.Errorf("unknown block constraint kind %d", c.Kind)
}

// Solved edge readers used by collision detection and output assembly.

func (tr *translator) topOf(i int) float64    { return tr.slv.Value(tr.top[i]) }
func (tr *translator) bottomOf(i int) float64 { return tr.slv.Value(tr.bottom[i]) }
func (tr *translator) startOf(i int) float64  { return tr.slv.Value(tr.start[i]) }
func (tr *translator) endOf(i int) float64    { return tr.slv.Value(tr.end[i]) }
