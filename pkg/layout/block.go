package layout

// Layer assigns a block to one of three painting layers. Layers only affect
// how resolved primitives are grouped in the output; they play no part in
// solving.
type Layer uint8

const (
	Background Layer = iota
	Midground
	Foreground
)

func (l Layer) String() string {
	switch l {
	case Midground:
		return "midground"
	case Foreground:
		return "foreground"
	}
	return "background"
}

// Dimension is a block extent along one axis: either fixed at Value or free
// for the solver to stretch.
type Dimension struct {
	Fixed bool
	Value float64
}

// FixedSize returns a dimension pinned at v.
func FixedSize(v float64) Dimension {
	return Dimension{Fixed: true, Value: v}
}

// Source records where a block came from in the caller's domain. The
// resolver treats it as opaque except for one rule: two blocks carrying the
// same ItemID never collide with each other, since overlap between parts of
// one logical item is assumed deliberate. Part, Voice, and Onset pass
// through to output primitives untouched.
type Source struct {
	ItemID string
	Part   int
	Voice  int
	Onset  int64
}

// BlockConstraintKind enumerates the relations a block can declare against
// grid lines and other blocks.
type BlockConstraintKind uint8

const (
	// LockTopToLine pins the block top to horizontal line A plus top padding.
	LockTopToLine BlockConstraintKind = iota
	// FloatTopBelowLine keeps the block top at or below horizontal line A
	// plus top padding, weakly.
	FloatTopBelowLine
	// FloatBottomAboveLine keeps the block bottom at or above horizontal
	// line A minus bottom padding, weakly.
	FloatBottomAboveLine
	// LockBottomToLine pins the block bottom to horizontal line A minus
	// bottom padding.
	LockBottomToLine
	// LockStartToLine pins the block start to vertical line A plus start
	// padding.
	LockStartToLine
	// FloatStartAfterLine keeps the block start at or after vertical line A
	// plus start padding, weakly.
	FloatStartAfterLine
	// FloatEndBeforeLine keeps the block end at or before vertical line A
	// minus end padding, weakly.
	FloatEndBeforeLine
	// LockEndToLine pins the block end to vertical line A minus end padding.
	LockEndToLine
	// LockVerticalCenterBetweenLines pins the block's vertical center,
	// shifted by its descent, halfway between horizontal lines A and B.
	LockVerticalCenterBetweenLines
	// LockVerticalCenterToLine pins the block's vertical center, shifted by
	// its descent, to horizontal line A.
	LockVerticalCenterToLine
	// LockHorizontalCenterBetweenLines keeps the block's horizontal center
	// at or after the midpoint of vertical lines A and B.
	LockHorizontalCenterBetweenLines
	// LockHorizontalCenterToLine pins the block's horizontal center to
	// vertical line A.
	LockHorizontalCenterToLine
	// PushLineDownToFitHeight forces horizontal line A down far enough to
	// clear the block's fixed height plus bottom padding.
	PushLineDownToFitHeight
	// PushLineSidewaysToFitWidth forces vertical line A out far enough to
	// clear the block's fixed width plus end padding.
	PushLineSidewaysToFitWidth
	// FloatAfterBlock keeps the block start at least Distance after block
	// A's end, weakly.
	FloatAfterBlock
	// FloatBeforeBlock keeps block A's start at least Distance after this
	// block's end, weakly.
	FloatBeforeBlock
	// FloatAboveBlock keeps block A's top at least Distance below this
	// block's bottom, weakly.
	FloatAboveBlock
	// FloatBeneathBlock keeps the block top at least Distance below block
	// A's bottom, weakly.
	FloatBeneathBlock
	// LockStartToBlockStart pins the block start to block A's start plus
	// start padding.
	LockStartToBlockStart
	// LockEndToBlockEnd pins the block end to block A's end minus end
	// padding.
	LockEndToBlockEnd
	// LockTopToBlockTop pins the block top to block A's top plus top
	// padding.
	LockTopToBlockTop
	// LockBottomToBlockBottom pins the block bottom to block A's bottom
	// minus bottom padding.
	LockBottomToBlockBottom
	// LockHorizontalCenterBetweenBlocks pins the block start so its fixed
	// width centers between block A's end and block B's start.
	LockHorizontalCenterBetweenBlocks
	// LockVerticalCenterBetweenBlocks pins the block top so its fixed
	// height centers between block A's bottom and block B's top.
	LockVerticalCenterBetweenBlocks
	// LockHorizontalCenterToBlockCenter pins the block's horizontal center
	// to block A's horizontal center.
	LockHorizontalCenterToBlockCenter
	// FloatHorizontalCenterToBlockCenter prefers the block's horizontal
	// center at block A's horizontal center, weakly.
	FloatHorizontalCenterToBlockCenter
	// LockVerticalCenterToBlockCenter pins the block's vertical center to
	// block A's vertical center.
	LockVerticalCenterToBlockCenter
	// LockAfterBlock pins the block start exactly Distance after block A's
	// end.
	LockAfterBlock
	// LockBeforeBlock pins the block end exactly Distance before block A's
	// start.
	LockBeforeBlock
	// LockAboveBlock pins the block bottom exactly Distance above block A's
	// top.
	LockAboveBlock
	// LockBeneathBlock pins the block top exactly Distance below block A's
	// bottom.
	LockBeneathBlock
	// LockTopToBlockCenter pins the block top to block A's vertical center.
	LockTopToBlockCenter
	// LockBottomToBlockCenter pins the block bottom to block A's vertical
	// center.
	LockBottomToBlockCenter
)

// BlockConstraint relates a block to a grid line or another block. A and B
// index into the system's line list or block list depending on Kind.
type BlockConstraint struct {
	Kind     BlockConstraintKind
	A        int
	B        int
	Distance float64
}

// Block is a rectangle positioned on the grid. Its four edges (top, bottom,
// start, end) are solved from its constraints, its optional fixed sizes, and
// the paddings folded into every edge relation.
type Block struct {
	Width  Dimension
	Height Dimension

	// Paddings reserve empty space between the block's content and whatever
	// each edge is constrained against.
	PadTop    float64
	PadBottom float64
	PadStart  float64
	PadEnd    float64

	// Descent shifts vertical centering: it is the distance from the
	// block's visual center down to its top edge reference.
	Descent float64

	Layer      Layer
	Visible    bool
	Collidable bool
	Spacing    bool

	// CanMoveUp and CanMoveDown mark blocks that should escape collisions
	// vertically rather than horizontally.
	CanMoveUp   bool
	CanMoveDown bool

	Source Source

	Constraints []BlockConstraint
}

// NewBlock returns a visible, collidable block with variable width and
// height.
func NewBlock() *Block {
	return &Block{Visible: true, Collidable: true, Layer: Foreground}
}

// NewSpacingBlock returns a spacing block of the given fixed width. Spacing
// blocks reserve horizontal room, stretch under justification, never
// collide, and are omitted from output unless spacing debug is on.
func NewSpacingBlock(width float64) *Block {
	return &Block{
		Width:   FixedSize(width),
		Visible: true,
		Spacing: true,
		Layer:   Background,
	}
}

func (b *Block) constrain(c BlockConstraint) *Block {
	b.Constraints = append(b.Constraints, c)
	return b
}

// LockTopToLine pins the block top to horizontal line a.
func (b *Block) LockTopToLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: LockTopToLine, A: a})
}

// LockBottomToLine pins the block bottom to horizontal line a.
func (b *Block) LockBottomToLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: LockBottomToLine, A: a})
}

// LockStartToLine pins the block start to vertical line a.
func (b *Block) LockStartToLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: LockStartToLine, A: a})
}

// LockEndToLine pins the block end to vertical line a.
func (b *Block) LockEndToLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: LockEndToLine, A: a})
}

// FloatStartAfterLine keeps the block start at or after vertical line a.
func (b *Block) FloatStartAfterLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: FloatStartAfterLine, A: a})
}

// FloatEndBeforeLine keeps the block end at or before vertical line a.
func (b *Block) FloatEndBeforeLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: FloatEndBeforeLine, A: a})
}

// FloatTopBelowLine keeps the block top at or below horizontal line a.
func (b *Block) FloatTopBelowLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: FloatTopBelowLine, A: a})
}

// FloatBottomAboveLine keeps the block bottom at or above horizontal line a.
func (b *Block) FloatBottomAboveLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: FloatBottomAboveLine, A: a})
}

// LockVerticalCenterToLine pins the block's descent-shifted vertical center
// to horizontal line a.
func (b *Block) LockVerticalCenterToLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: LockVerticalCenterToLine, A: a})
}

// LockVerticalCenterBetweenLines pins the block's descent-shifted vertical
// center halfway between horizontal lines a and b.
func (b *Block) LockVerticalCenterBetweenLines(a, bLine int) *Block {
	return b.constrain(BlockConstraint{Kind: LockVerticalCenterBetweenLines, A: a, B: bLine})
}

// LockHorizontalCenterToLine pins the block's horizontal center to vertical
// line a.
func (b *Block) LockHorizontalCenterToLine(a int) *Block {
	return b.constrain(BlockConstraint{Kind: LockHorizontalCenterToLine, A: a})
}

// FloatHorizontallyBetweenLines lets the block drift anywhere between
// vertical lines a and b.
func (b *Block) FloatHorizontallyBetweenLines(a, bLine int) *Block {
	b.constrain(BlockConstraint{Kind: FloatStartAfterLine, A: a})
	return b.constrain(BlockConstraint{Kind: FloatEndBeforeLine, A: bLine})
}

// LockStartBetweenLines centers the block's fixed width between vertical
// lines a and b, pushing line b outward when the gap is too narrow.
func (b *Block) LockStartBetweenLines(a, bLine int) *Block {
	b.constrain(BlockConstraint{Kind: LockHorizontalCenterBetweenLines, A: a, B: bLine})
	return b.constrain(BlockConstraint{Kind: PushLineSidewaysToFitWidth, A: bLine})
}

// PushLineDownToFitHeight forces horizontal line a below the block's fixed
// height.
func (b *Block) PushLineDownToFitHeight(a int) *Block {
	return b.constrain(BlockConstraint{Kind: PushLineDownToFitHeight, A: a})
}

// PushLineSidewaysToFitWidth forces vertical line a past the block's fixed
// width.
func (b *Block) PushLineSidewaysToFitWidth(a int) *Block {
	return b.constrain(BlockConstraint{Kind: PushLineSidewaysToFitWidth, A: a})
}

// LockAfterBlock pins the block start exactly distance after block a's end.
func (b *Block) LockAfterBlock(a int, distance float64) *Block {
	return b.constrain(BlockConstraint{Kind: LockAfterBlock, A: a, Distance: distance})
}

// FloatAfterBlock keeps the block start at least distance after block a's
// end.
func (b *Block) FloatAfterBlock(a int, distance float64) *Block {
	return b.constrain(BlockConstraint{Kind: FloatAfterBlock, A: a, Distance: distance})
}

// FloatBeneathBlock keeps the block top at least distance below block a's
// bottom.
func (b *Block) FloatBeneathBlock(a int, distance float64) *Block {
	return b.constrain(BlockConstraint{Kind: FloatBeneathBlock, A: a, Distance: distance})
}
