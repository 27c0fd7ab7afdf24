// Package document defines the serializable description of layout systems.
//
// A document is the wire format external builders produce: grid lines,
// blocks, and constraints described by name and index, in JSON or TOML. The
// package parses, validates, and converts documents into layout systems; it
// never constructs descriptions from domain data itself.
//
// The format is human-readable and designed for round-trip fidelity:
// import → validate → export → re-import produces identical results.
package document

// CurrentVersion is the newest document format version this build reads.
// Version 0 in a document is treated as version 1.
const CurrentVersion = 1

// =============================================================================
// Enumerations - Single Source of Truth
// =============================================================================

// Justification modes.
const (
	JustifyStart    = "start"
	JustifyEnd      = "end"
	JustifyCentered = "centered"
	Justified       = "justified"
)

// Painting layers.
const (
	LayerBackground = "background"
	LayerMidground  = "midground"
	LayerForeground = "foreground"
)

// Horizontal grid line kinds.
const (
	LineDefault      = "default"
	LineSystemTop    = "system-top"
	LineSystemBottom = "system-bottom"
	LineRowCenter    = "row-center"
	LineRowTop       = "row-top"
	LineRowBottom    = "row-bottom"
)

// Vertical grid line kinds.
const (
	LineSystemStart  = "system-start"
	LineSystemEnd    = "system-end"
	LineColumnStart  = "column-start"
	LineColumnEnd    = "column-end"
	LineSpacingStart = "spacing-start"
	LineSpacingEnd   = "spacing-end"
)

// Horizontal line constraint kinds.
const (
	LockAbove     = "lock-above"
	FloatAbove    = "float-above"
	LockBelow     = "lock-below"
	FloatBelow    = "float-below"
	CenterBetween = "center-between"
)

// Vertical line constraint kinds.
const (
	LockBefore  = "lock-before"
	FloatBefore = "float-before"
	LockAfter   = "lock-after"
	FloatAfter  = "float-after"
)

// =============================================================================
// Document - Top-Level Container
// =============================================================================

// Document is one or more layout systems awaiting resolution.
// Used for API requests, storage, caching, and cross-tool compatibility.
type Document struct {
	Version int      `json:"version,omitempty" toml:"version,omitempty"`
	Systems []System `json:"systems" toml:"systems"`
}

// System describes one layout system: its grid, its blocks, and how the
// resolved result should be justified.
type System struct {
	// Index, StartTick, and EndTick are caller bookkeeping passed through to
	// the resolved result untouched.
	Index     int   `json:"index,omitempty" toml:"index,omitempty"`
	StartTick int64 `json:"start_tick,omitempty" toml:"start_tick,omitempty"`
	EndTick   int64 `json:"end_tick,omitempty" toml:"end_tick,omitempty"`

	// Justification defaults to "start" when empty.
	Justification string  `json:"justification,omitempty" toml:"justification,omitempty"`
	TargetWidth   float64 `json:"target_width" toml:"target_width"`

	// TopEdge and LeadingEdge index the grid lines pinned to the origin.
	TopEdge     int `json:"top_edge" toml:"top_edge"`
	LeadingEdge int `json:"leading_edge" toml:"leading_edge"`

	HorizontalLines []GridLine `json:"horizontal_lines" toml:"horizontal_lines"`
	VerticalLines   []GridLine `json:"vertical_lines" toml:"vertical_lines"`
	Blocks          []Block    `json:"blocks,omitempty" toml:"blocks,omitempty"`

	Debug *Debug `json:"debug,omitempty" toml:"debug,omitempty"`
}

// Debug mirrors the resolver's debug switches.
type Debug struct {
	DrawHorizontalLines bool `json:"draw_horizontal_lines,omitempty" toml:"draw_horizontal_lines,omitempty"`
	DrawVerticalLines   bool `json:"draw_vertical_lines,omitempty" toml:"draw_vertical_lines,omitempty"`
	ShowSpacing         bool `json:"show_spacing,omitempty" toml:"show_spacing,omitempty"`
	DrawBlockOutlines   bool `json:"draw_block_outlines,omitempty" toml:"draw_block_outlines,omitempty"`
}

// =============================================================================
// Grid Lines
// =============================================================================

// GridLine is one grid line on either axis. Kind defaults to "default"; the
// constraint kinds decide which axis vocabulary applies.
type GridLine struct {
	Kind        string           `json:"kind,omitempty" toml:"kind,omitempty"`
	Constraints []LineConstraint `json:"constraints,omitempty" toml:"constraints,omitempty"`
}

// LineConstraint relates a grid line to one or two other lines on the same
// axis, identified by index. SecondLine is only read by "center-between".
type LineConstraint struct {
	Kind       string  `json:"kind" toml:"kind"`
	Line       int     `json:"line" toml:"line"`
	SecondLine int     `json:"second_line,omitempty" toml:"second_line,omitempty"`
	Distance   float64 `json:"distance,omitempty" toml:"distance,omitempty"`
}

// =============================================================================
// Blocks
// =============================================================================

// Block describes one rectangle to be positioned. Nil Width/Height means the
// solver may stretch that axis. Visible and Collidable default to true.
type Block struct {
	Width  *float64 `json:"width,omitempty" toml:"width,omitempty"`
	Height *float64 `json:"height,omitempty" toml:"height,omitempty"`

	PadTop    float64 `json:"pad_top,omitempty" toml:"pad_top,omitempty"`
	PadBottom float64 `json:"pad_bottom,omitempty" toml:"pad_bottom,omitempty"`
	PadStart  float64 `json:"pad_start,omitempty" toml:"pad_start,omitempty"`
	PadEnd    float64 `json:"pad_end,omitempty" toml:"pad_end,omitempty"`

	Descent float64 `json:"descent,omitempty" toml:"descent,omitempty"`

	// Layer defaults to "foreground", or "background" for spacing blocks.
	Layer      string `json:"layer,omitempty" toml:"layer,omitempty"`
	Visible    *bool  `json:"visible,omitempty" toml:"visible,omitempty"`
	Collidable *bool  `json:"collidable,omitempty" toml:"collidable,omitempty"`
	Spacing    bool   `json:"spacing,omitempty" toml:"spacing,omitempty"`

	CanMoveUp   bool `json:"can_move_up,omitempty" toml:"can_move_up,omitempty"`
	CanMoveDown bool `json:"can_move_down,omitempty" toml:"can_move_down,omitempty"`

	Source *Source `json:"source,omitempty" toml:"source,omitempty"`

	Constraints []BlockConstraint `json:"constraints,omitempty" toml:"constraints,omitempty"`
}

// Source is the block's provenance in the builder's domain. Blocks sharing
// an item ID are exempt from colliding with each other; blocks that declare
// no item ID are assigned a fresh UUID during conversion so that unrelated
// anonymous blocks still collide.
type Source struct {
	ItemID string `json:"item_id,omitempty" toml:"item_id,omitempty"`
	Part   int    `json:"part,omitempty" toml:"part,omitempty"`
	Voice  int    `json:"voice,omitempty" toml:"voice,omitempty"`
	Onset  int64  `json:"onset,omitempty" toml:"onset,omitempty"`
}

// BlockConstraint relates a block to grid lines or other blocks, identified
// by index. Which reference fields are read depends on Kind: line kinds read
// Line (and SecondLine for the between variants), block kinds read Block
// (and SecondBlock).
type BlockConstraint struct {
	Kind        string  `json:"kind" toml:"kind"`
	Line        int     `json:"line,omitempty" toml:"line,omitempty"`
	SecondLine  int     `json:"second_line,omitempty" toml:"second_line,omitempty"`
	Block       int     `json:"block,omitempty" toml:"block,omitempty"`
	SecondBlock int     `json:"second_block,omitempty" toml:"second_block,omitempty"`
	Distance    float64 `json:"distance,omitempty" toml:"distance,omitempty"`
}
