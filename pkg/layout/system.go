package layout

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Justification selects how a resolved system is aligned to its target
// width.
type Justification uint8

const (
	// JustifyStart leaves the system at the origin.
	JustifyStart Justification = iota
	// JustifyEnd shifts the whole system so it ends at the target width.
	JustifyEnd
	// JustifyCentered centers the whole system within the target width.
	JustifyCentered
	// Justified stretches spacing blocks so the system fills the target
	// width exactly.
	Justified
)

func (j Justification) String() string {
	switch j {
	case JustifyEnd:
		return "end"
	case JustifyCentered:
		return "centered"
	case Justified:
		return "justified"
	}
	return "start"
}

// Debug switches extra resolver output on. All debug geometry is additive:
// it is appended to the background layer and never alters solved positions.
type Debug struct {
	DrawHorizontalLines bool
	DrawVerticalLines   bool
	ShowSpacing         bool
	DrawBlockOutlines   bool
}

// System is a complete layout description: grid lines, blocks, the origin
// edges, and the justification target. Build one up (directly or via a
// document), then call Resolve.
type System struct {
	// Index, StartTick, and EndTick are caller bookkeeping carried through
	// to the Result untouched.
	Index     int
	StartTick int64
	EndTick   int64

	Justification Justification
	TargetWidth   float64

	HorizontalLines []*HorizontalLine
	VerticalLines   []*VerticalLine

	// TopEdge and LeadingEdge name the grid lines pinned to the origin. All
	// other positions resolve relative to these two lines.
	TopEdge     int
	LeadingEdge int

	Blocks []*Block

	Debug Debug
}

// AddHorizontalLine appends a horizontal grid line and returns it with its
// index, for chaining constraint builders.
func (s *System) AddHorizontalLine(kind HorizontalLineKind) (*HorizontalLine, int) {
	line := &HorizontalLine{Kind: kind}
	s.HorizontalLines = append(s.HorizontalLines, line)
	return line, len(s.HorizontalLines) - 1
}

// AddVerticalLine appends a vertical grid line and returns it with its
// index, for chaining constraint builders.
func (s *System) AddVerticalLine(kind VerticalLineKind) (*VerticalLine, int) {
	line := &VerticalLine{Kind: kind}
	s.VerticalLines = append(s.VerticalLines, line)
	return line, len(s.VerticalLines) - 1
}

// AddBlock appends b and returns it together with its index.
func (s *System) AddBlock(b *Block) (*Block, int) {
	s.Blocks = append(s.Blocks, b)
	return b, len(s.Blocks) - 1
}

type resolveOptions struct {
	logger *log.Logger
}

// ResolveOption adjusts how Resolve runs.
type ResolveOption func(*resolveOptions)

// WithLogger routes the resolver's collision warnings and debug dumps to the
// given logger instead of log.Default().
func WithLogger(logger *log.Logger) ResolveOption {
	return func(o *resolveOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Resolve solves the system's constraints and returns the final positions of
// every grid line and block. It never mutates the System, and resolving the
// same System twice yields bit-identical results.
//
// Resolution proceeds in phases: translate all constraints into the linear
// solver, detect and repair block collisions, justify to the target width,
// then assemble the output layers.
func (s *System) Resolve(opts ...ResolveOption) (*Result, error) {
	o := resolveOptions{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if s.TopEdge < 0 || s.TopEdge >= len(s.HorizontalLines) {
		return nil, fmt.Errorf("top edge %d: %w", s.TopEdge, ErrBadOrigin)
	}
	if s.LeadingEdge < 0 || s.LeadingEdge >= len(s.VerticalLines) {
		return nil, fmt.Errorf("leading edge %d: %w", s.LeadingEdge, ErrBadOrigin)
	}

	tr, err := newTranslator(s)
	if err != nil {
		return nil, err
	}
	if err := tr.applyGridConstraints(); err != nil {
		return nil, err
	}
	if err := tr.applyBlockConstraints(); err != nil {
		return nil, err
	}

	collisions := detectCollisions(s, tr)
	unresolved, err := resolveCollisions(s, tr, collisions, o.logger)
	if err != nil {
		return nil, err
	}

	if err := applyJustification(s, tr); err != nil {
		return nil, err
	}

	res := assembleResult(s, tr, unresolved)
	logDebugPositions(s, res, o.logger)
	return res, nil
}
