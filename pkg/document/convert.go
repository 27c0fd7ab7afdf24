package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/scorewell/engrave/pkg/errors"
	"github.com/scorewell/engrave/pkg/layout"
)

// =============================================================================
// Kind Tables
// =============================================================================

var horizontalLineKinds = map[string]layout.HorizontalLineKind{
	LineDefault:      layout.HorizontalDefault,
	LineSystemTop:    layout.HorizontalSystemTop,
	LineSystemBottom: layout.HorizontalSystemBottom,
	LineRowCenter:    layout.HorizontalRowCenter,
	LineRowTop:       layout.HorizontalRowTop,
	LineRowBottom:    layout.HorizontalRowBottom,
}

var verticalLineKinds = map[string]layout.VerticalLineKind{
	LineDefault:      layout.VerticalDefault,
	LineSystemStart:  layout.VerticalSystemStart,
	LineSystemEnd:    layout.VerticalSystemEnd,
	LineColumnStart:  layout.VerticalColumnStart,
	LineColumnEnd:    layout.VerticalColumnEnd,
	LineSpacingStart: layout.VerticalSpacingStart,
	LineSpacingEnd:   layout.VerticalSpacingEnd,
}

var horizontalConstraintKinds = map[string]layout.HorizontalConstraintKind{
	LockAbove:     layout.HLockAbove,
	FloatAbove:    layout.HFloatAbove,
	LockBelow:     layout.HLockBelow,
	FloatBelow:    layout.HFloatBelow,
	CenterBetween: layout.HCenterBetween,
}

var verticalConstraintKinds = map[string]layout.VerticalConstraintKind{
	LockBefore:  layout.VLockBefore,
	FloatBefore: layout.VFloatBefore,
	LockAfter:   layout.VLockAfter,
	FloatAfter:  layout.VFloatAfter,
}

var justifications = map[string]layout.Justification{
	"":              layout.JustifyStart,
	JustifyStart:    layout.JustifyStart,
	JustifyEnd:      layout.JustifyEnd,
	JustifyCentered: layout.JustifyCentered,
	Justified:       layout.Justified,
}

var layers = map[string]layout.Layer{
	LayerBackground: layout.Background,
	LayerMidground:  layout.Midground,
	LayerForeground: layout.Foreground,
}

// refClass says what a block constraint kind references, which decides both
// which wire fields are read and which index bounds apply.
type refClass uint8

const (
	refHLine refClass = iota
	refHLinePair
	refVLine
	refVLinePair
	refBlock
	refBlockPair
)

type blockKindInfo struct {
	kind layout.BlockConstraintKind
	ref  refClass
}

var blockConstraintKinds = map[string]blockKindInfo{
	"lock-top-to-line":                        {layout.LockTopToLine, refHLine},
	"float-top-below-line":                    {layout.FloatTopBelowLine, refHLine},
	"float-bottom-above-line":                 {layout.FloatBottomAboveLine, refHLine},
	"lock-bottom-to-line":                     {layout.LockBottomToLine, refHLine},
	"lock-start-to-line":                      {layout.LockStartToLine, refVLine},
	"float-start-after-line":                  {layout.FloatStartAfterLine, refVLine},
	"float-end-before-line":                   {layout.FloatEndBeforeLine, refVLine},
	"lock-end-to-line":                        {layout.LockEndToLine, refVLine},
	"lock-vertical-center-between-lines":      {layout.LockVerticalCenterBetweenLines, refHLinePair},
	"lock-vertical-center-to-line":            {layout.LockVerticalCenterToLine, refHLine},
	"lock-horizontal-center-between-lines":    {layout.LockHorizontalCenterBetweenLines, refVLinePair},
	"lock-horizontal-center-to-line":          {layout.LockHorizontalCenterToLine, refVLine},
	"push-line-down-to-fit-height":            {layout.PushLineDownToFitHeight, refHLine},
	"push-line-sideways-to-fit-width":         {layout.PushLineSidewaysToFitWidth, refVLine},
	"float-after-block":                       {layout.FloatAfterBlock, refBlock},
	"float-before-block":                      {layout.FloatBeforeBlock, refBlock},
	"float-above-block":                       {layout.FloatAboveBlock, refBlock},
	"float-beneath-block":                     {layout.FloatBeneathBlock, refBlock},
	"lock-start-to-block-start":               {layout.LockStartToBlockStart, refBlock},
	"lock-end-to-block-end":                   {layout.LockEndToBlockEnd, refBlock},
	"lock-top-to-block-top":                   {layout.LockTopToBlockTop, refBlock},
	"lock-bottom-to-block-bottom":             {layout.LockBottomToBlockBottom, refBlock},
	"lock-horizontal-center-between-blocks":   {layout.LockHorizontalCenterBetweenBlocks, refBlockPair},
	"lock-vertical-center-between-blocks":     {layout.LockVerticalCenterBetweenBlocks, refBlockPair},
	"lock-horizontal-center-to-block-center":  {layout.LockHorizontalCenterToBlockCenter, refBlock},
	"float-horizontal-center-to-block-center": {layout.FloatHorizontalCenterToBlockCenter, refBlock},
	"lock-vertical-center-to-block-center":    {layout.LockVerticalCenterToBlockCenter, refBlock},
	"lock-after-block":                        {layout.LockAfterBlock, refBlock},
	"lock-before-block":                       {layout.LockBeforeBlock, refBlock},
	"lock-above-block":                        {layout.LockAboveBlock, refBlock},
	"lock-beneath-block":                      {layout.LockBeneathBlock, refBlock},
	"lock-top-to-block-center":                {layout.LockTopToBlockCenter, refBlock},
	"lock-bottom-to-block-center":             {layout.LockBottomToBlockCenter, refBlock},
}

// Inverse tables for export, derived from the forward tables.
var (
	blockConstraintNames        = make(map[layout.BlockConstraintKind]string, len(blockConstraintKinds))
	blockConstraintRefs         = make(map[layout.BlockConstraintKind]refClass, len(blockConstraintKinds))
	horizontalConstraintNames   = make(map[layout.HorizontalConstraintKind]string, len(horizontalConstraintKinds))
	verticalConstraintNames     = make(map[layout.VerticalConstraintKind]string, len(verticalConstraintKinds))
)

func init() {
	for name, info := range blockConstraintKinds {
		blockConstraintNames[info.kind] = name
		blockConstraintRefs[info.kind] = info.ref
	}
	for name, kind := range horizontalConstraintKinds {
		horizontalConstraintNames[kind] = name
	}
	for name, kind := range verticalConstraintKinds {
		verticalConstraintNames[kind] = name
	}
}

// =============================================================================
// Document → layout.System Conversion
// =============================================================================

// ToSystems converts and validates every system in the document.
// Returns a coded INVALID_DOCUMENT error naming the first offending system.
func ToSystems(d Document) ([]*layout.System, error) {
	if d.Version > CurrentVersion {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unsupported document version %d (this build reads up to %d)", d.Version, CurrentVersion)
	}
	if len(d.Systems) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no systems")
	}

	out := make([]*layout.System, len(d.Systems))
	for i := range d.Systems {
		sys, err := ToSystem(d.Systems[i])
		if err != nil {
			return nil, fmt.Errorf("system %d: %w", i, err)
		}
		out[i] = sys
	}
	return out, nil
}

// Validate checks the document without keeping the conversion result.
func Validate(d Document) error {
	_, err := ToSystems(d)
	return err
}

// ToSystem converts one system description into a resolvable layout system.
// Blocks whose source declares no item ID receive a fresh UUID so unrelated
// anonymous blocks are not exempt from colliding with each other.
func ToSystem(s System) (*layout.System, error) {
	just, ok := justifications[s.Justification]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown justification %q", s.Justification)
	}
	if len(s.HorizontalLines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no horizontal grid lines")
	}
	if len(s.VerticalLines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no vertical grid lines")
	}
	if s.TopEdge < 0 || s.TopEdge >= len(s.HorizontalLines) {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "top_edge %d out of range [0, %d)", s.TopEdge, len(s.HorizontalLines))
	}
	if s.LeadingEdge < 0 || s.LeadingEdge >= len(s.VerticalLines) {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "leading_edge %d out of range [0, %d)", s.LeadingEdge, len(s.VerticalLines))
	}
	if s.TargetWidth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "negative target_width %v", s.TargetWidth)
	}

	sys := &layout.System{
		Index:         s.Index,
		StartTick:     s.StartTick,
		EndTick:       s.EndTick,
		Justification: just,
		TargetWidth:   s.TargetWidth,
		TopEdge:       s.TopEdge,
		LeadingEdge:   s.LeadingEdge,
	}

	hCount, vCount, bCount := len(s.HorizontalLines), len(s.VerticalLines), len(s.Blocks)

	for i, gl := range s.HorizontalLines {
		kind, ok := horizontalLineKinds[orDefault(gl.Kind)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "horizontal line %d: unknown kind %q", i, gl.Kind)
		}
		line, _ := sys.AddHorizontalLine(kind)
		for _, c := range gl.Constraints {
			hc, err := toHorizontalConstraint(c, hCount)
			if err != nil {
				return nil, fmt.Errorf("horizontal line %d: %w", i, err)
			}
			line.Constraints = append(line.Constraints, hc)
		}
	}

	for i, gl := range s.VerticalLines {
		kind, ok := verticalLineKinds[orDefault(gl.Kind)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "vertical line %d: unknown kind %q", i, gl.Kind)
		}
		line, _ := sys.AddVerticalLine(kind)
		for _, c := range gl.Constraints {
			vc, err := toVerticalConstraint(c, vCount)
			if err != nil {
				return nil, fmt.Errorf("vertical line %d: %w", i, err)
			}
			line.Constraints = append(line.Constraints, vc)
		}
	}

	for i := range s.Blocks {
		blk, err := toBlock(s.Blocks[i], hCount, vCount, bCount)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		sys.AddBlock(blk)
	}

	if s.Debug != nil {
		sys.Debug = layout.Debug{
			DrawHorizontalLines: s.Debug.DrawHorizontalLines,
			DrawVerticalLines:   s.Debug.DrawVerticalLines,
			ShowSpacing:         s.Debug.ShowSpacing,
			DrawBlockOutlines:   s.Debug.DrawBlockOutlines,
		}
	}

	return sys, nil
}

func orDefault(kind string) string {
	if kind == "" {
		return LineDefault
	}
	return kind
}

func toHorizontalConstraint(c LineConstraint, lines int) (layout.HorizontalConstraint, error) {
	kind, ok := horizontalConstraintKinds[c.Kind]
	if !ok {
		return layout.HorizontalConstraint{}, errors.New(errors.ErrCodeInvalidDocument, "unknown horizontal constraint kind %q", c.Kind)
	}
	if c.Line < 0 || c.Line >= lines {
		return layout.HorizontalConstraint{}, errors.New(errors.ErrCodeInvalidDocument, "line %d out of range [0, %d)", c.Line, lines)
	}
	out := layout.HorizontalConstraint{Kind: kind, A: c.Line, Distance: c.Distance}
	if kind == layout.HCenterBetween {
		if c.SecondLine < 0 || c.SecondLine >= lines {
			return layout.HorizontalConstraint{}, errors.New(errors.ErrCodeInvalidDocument, "second_line %d out of range [0, %d)", c.SecondLine, lines)
		}
		out.B = c.SecondLine
	}
	return out, nil
}

func toVerticalConstraint(c LineConstraint, lines int) (layout.VerticalConstraint, error) {
	kind, ok := verticalConstraintKinds[c.Kind]
	if !ok {
		return layout.VerticalConstraint{}, errors.New(errors.ErrCodeInvalidDocument, "unknown vertical constraint kind %q", c.Kind)
	}
	if c.Line < 0 || c.Line >= lines {
		return layout.VerticalConstraint{}, errors.New(errors.ErrCodeInvalidDocument, "line %d out of range [0, %d)", c.Line, lines)
	}
	return layout.VerticalConstraint{Kind: kind, A: c.Line, Distance: c.Distance}, nil
}

func toBlock(b Block, hLines, vLines, blocks int) (*layout.Block, error) {
	var out *layout.Block
	if b.Spacing {
		if b.Width == nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "spacing block requires a fixed width")
		}
		out = layout.NewSpacingBlock(*b.Width)
	} else {
		out = layout.NewBlock()
		if b.Width != nil {
			out.Width = layout.FixedSize(*b.Width)
		}
	}
	if b.Width != nil && *b.Width < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "negative width %v", *b.Width)
	}
	if b.Height != nil {
		if *b.Height < 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "negative height %v", *b.Height)
		}
		out.Height = layout.FixedSize(*b.Height)
	}

	out.PadTop, out.PadBottom = b.PadTop, b.PadBottom
	out.PadStart, out.PadEnd = b.PadStart, b.PadEnd
	out.Descent = b.Descent
	out.CanMoveUp, out.CanMoveDown = b.CanMoveUp, b.CanMoveDown

	if b.Layer != "" {
		layer, ok := layers[b.Layer]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown layer %q", b.Layer)
		}
		out.Layer = layer
	}
	if b.Visible != nil {
		out.Visible = *b.Visible
	}
	if b.Collidable != nil {
		out.Collidable = *b.Collidable
	}

	if b.Source != nil {
		if err := errors.ValidateItemID(b.Source.ItemID); err != nil {
			return nil, err
		}
		out.Source = layout.Source{
			ItemID: b.Source.ItemID,
			Part:   b.Source.Part,
			Voice:  b.Source.Voice,
			Onset:  b.Source.Onset,
		}
	}
	if out.Source.ItemID == "" {
		out.Source.ItemID = uuid.NewString()
	}

	for _, c := range b.Constraints {
		lc, err := toBlockConstraint(c, hLines, vLines, blocks)
		if err != nil {
			return nil, err
		}
		out.Constraints = append(out.Constraints, lc)
	}

	return out, nil
}

func toBlockConstraint(c BlockConstraint, hLines, vLines, blocks int) (layout.BlockConstraint, error) {
	info, ok := blockConstraintKinds[c.Kind]
	if !ok {
		return layout.BlockConstraint{}, errors.New(errors.ErrCodeInvalidDocument, "unknown block constraint kind %q", c.Kind)
	}

	out := layout.BlockConstraint{Kind: info.kind, Distance: c.Distance}

	checkLine := func(index, lines int, field string) error {
		if index < 0 || index >= lines {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: %s %d out of range [0, %d)", c.Kind, field, index, lines)
		}
		return nil
	}

	switch info.ref {
	case refHLine:
		if err := checkLine(c.Line, hLines, "line"); err != nil {
			return layout.BlockConstraint{}, err
		}
		out.A = c.Line
	case refHLinePair:
		if err := checkLine(c.Line, hLines, "line"); err != nil {
			return layout.BlockConstraint{}, err
		}
		if err := checkLine(c.SecondLine, hLines, "second_line"); err != nil {
			return layout.BlockConstraint{}, err
		}
		out.A, out.B = c.Line, c.SecondLine
	case refVLine:
		if err := checkLine(c.Line, vLines, "line"); err != nil {
			return layout.BlockConstraint{}, err
		}
		out.A = c.Line
	case refVLinePair:
		if err := checkLine(c.Line, vLines, "line"); err != nil {
			return layout.BlockConstraint{}, err
		}
		if err := checkLine(c.SecondLine, vLines, "second_line"); err != nil {
			return layout.BlockConstraint{}, err
		}
		out.A, out.B = c.Line, c.SecondLine
	case refBlock:
		if err := checkLine(c.Block, blocks, "block"); err != nil {
			return layout.BlockConstraint{}, err
		}
		out.A = c.Block
	case refBlockPair:
		if err := checkLine(c.Block, blocks, "block"); err != nil {
			return layout.BlockConstraint{}, err
		}
		if err := checkLine(c.SecondBlock, blocks, "second_block"); err != nil {
			return layout.BlockConstraint{}, err
		}
		out.A, out.B = c.Block, c.SecondBlock
	}

	return out, nil
}

// =============================================================================
// layout.System → Document Conversion
// =============================================================================

// FromSystems exports resolvable systems back into document form.
// Round-trip is lossless up to the defaults: fields holding their default
// value are omitted on export.
func FromSystems(systems []*layout.System) Document {
	d := Document{Version: CurrentVersion, Systems: make([]System, len(systems))}
	for i, sys := range systems {
		d.Systems[i] = FromSystem(sys)
	}
	return d
}

// FromSystem exports one layout system into document form.
func FromSystem(sys *layout.System) System {
	s := System{
		Index:           sys.Index,
		StartTick:       sys.StartTick,
		EndTick:         sys.EndTick,
		TargetWidth:     sys.TargetWidth,
		TopEdge:         sys.TopEdge,
		LeadingEdge:     sys.LeadingEdge,
		HorizontalLines: make([]GridLine, len(sys.HorizontalLines)),
		VerticalLines:   make([]GridLine, len(sys.VerticalLines)),
		Blocks:          make([]Block, len(sys.Blocks)),
	}
	if sys.Justification != layout.JustifyStart {
		s.Justification = sys.Justification.String()
	}

	for i, line := range sys.HorizontalLines {
		gl := GridLine{}
		if line.Kind != layout.HorizontalDefault {
			gl.Kind = line.Kind.String()
		}
		for _, c := range line.Constraints {
			lc := LineConstraint{Kind: horizontalConstraintNames[c.Kind], Line: c.A, Distance: c.Distance}
			if c.Kind == layout.HCenterBetween {
				lc.SecondLine = c.B
			}
			gl.Constraints = append(gl.Constraints, lc)
		}
		s.HorizontalLines[i] = gl
	}

	for i, line := range sys.VerticalLines {
		gl := GridLine{}
		if line.Kind != layout.VerticalDefault {
			gl.Kind = line.Kind.String()
		}
		for _, c := range line.Constraints {
			gl.Constraints = append(gl.Constraints, LineConstraint{
				Kind:     verticalConstraintNames[c.Kind],
				Line:     c.A,
				Distance: c.Distance,
			})
		}
		s.VerticalLines[i] = gl
	}

	for i, b := range sys.Blocks {
		s.Blocks[i] = fromBlock(b)
	}

	if sys.Debug != (layout.Debug{}) {
		s.Debug = &Debug{
			DrawHorizontalLines: sys.Debug.DrawHorizontalLines,
			DrawVerticalLines:   sys.Debug.DrawVerticalLines,
			ShowSpacing:         sys.Debug.ShowSpacing,
			DrawBlockOutlines:   sys.Debug.DrawBlockOutlines,
		}
	}

	return s
}

func fromBlock(b *layout.Block) Block {
	out := Block{
		PadTop:      b.PadTop,
		PadBottom:   b.PadBottom,
		PadStart:    b.PadStart,
		PadEnd:      b.PadEnd,
		Descent:     b.Descent,
		Spacing:     b.Spacing,
		CanMoveUp:   b.CanMoveUp,
		CanMoveDown: b.CanMoveDown,
	}
	if b.Width.Fixed {
		w := b.Width.Value
		out.Width = &w
	}
	if b.Height.Fixed {
		h := b.Height.Value
		out.Height = &h
	}

	defaultLayer := layout.Foreground
	defaultCollidable := true
	if b.Spacing {
		defaultLayer = layout.Background
		defaultCollidable = false
	}
	if b.Layer != defaultLayer {
		out.Layer = b.Layer.String()
	}
	if !b.Visible {
		v := false
		out.Visible = &v
	}
	if b.Collidable != defaultCollidable {
		c := b.Collidable
		out.Collidable = &c
	}

	if b.Source != (layout.Source{}) {
		out.Source = &Source{
			ItemID: b.Source.ItemID,
			Part:   b.Source.Part,
			Voice:  b.Source.Voice,
			Onset:  b.Source.Onset,
		}
	}

	for _, c := range b.Constraints {
		bc := BlockConstraint{Kind: blockConstraintNames[c.Kind], Distance: c.Distance}
		switch blockConstraintRefs[c.Kind] {
		case refHLine, refVLine:
			bc.Line = c.A
		case refHLinePair, refVLinePair:
			bc.Line, bc.SecondLine = c.A, c.B
		case refBlock:
			bc.Block = c.A
		case refBlockPair:
			bc.Block, bc.SecondBlock = c.A, c.B
		}
		out.Constraints = append(out.Constraints, bc)
	}

	return out
}

// BlockConstraintTargets reports which grid lines and blocks a wire
// constraint references, for tooling that walks the constraint graph.
// Horizontal reports whether line references are on the horizontal axis; it
// is meaningless when no lines are referenced. Ok is false for unknown kinds.
func BlockConstraintTargets(c BlockConstraint) (lines, blocks []int, horizontal, ok bool) {
	info, found := blockConstraintKinds[c.Kind]
	if !found {
		return nil, nil, false, false
	}
	switch info.ref {
	case refHLine:
		return []int{c.Line}, nil, true, true
	case refHLinePair:
		return []int{c.Line, c.SecondLine}, nil, true, true
	case refVLine:
		return []int{c.Line}, nil, false, true
	case refVLinePair:
		return []int{c.Line, c.SecondLine}, nil, false, true
	case refBlock:
		return nil, []int{c.Block}, false, true
	case refBlockPair:
		return nil, []int{c.Block, c.SecondBlock}, false, true
	}
	return nil, nil, false, false
}
