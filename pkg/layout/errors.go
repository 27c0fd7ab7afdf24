package layout

import "errors"

var (
	// ErrUnknownHorizontalLine is returned when a constraint references a
	// horizontal grid line index outside the system's line list.
	ErrUnknownHorizontalLine = errors.New("unknown horizontal grid line")

	// ErrUnknownVerticalLine is returned when a constraint references a
	// vertical grid line index outside the system's line list.
	ErrUnknownVerticalLine = errors.New("unknown vertical grid line")

	// ErrUnknownBlock is returned when a constraint references a block index
	// outside the system's block list.
	ErrUnknownBlock = errors.New("unknown block")

	// ErrBadOrigin is returned when the system's top edge or leading edge
	// index does not name an existing grid line.
	ErrBadOrigin = errors.New("origin edge does not name a grid line")
)
