package solver

import "errors"

// Sentinel errors for solver operations.
var (
	// ErrDuplicateConstraint is returned by [Solver.AddConstraint] when the
	// same constraint handle has already been added to the solver.
	ErrDuplicateConstraint = errors.New("duplicate constraint")

	// ErrUnsatisfiableConstraint is returned by [Solver.AddConstraint] when a
	// required-strength constraint conflicts with the constraints already in
	// the system.
	ErrUnsatisfiableConstraint = errors.New("unsatisfiable constraint")

	// ErrDuplicateEditVariable is returned by [Solver.AddEditVariable] when
	// the variable is already registered for editing.
	ErrDuplicateEditVariable = errors.New("duplicate edit variable")

	// ErrBadRequiredStrength is returned by [Solver.AddEditVariable] when the
	// requested strength is Required. Edit variables must be suggestible, so
	// they cannot be pinned at required strength.
	ErrBadRequiredStrength = errors.New("edit variable strength must be below required")

	// ErrUnknownEditVariable is returned by [Solver.SuggestValue] when the
	// variable was never registered with AddEditVariable.
	ErrUnknownEditVariable = errors.New("unknown edit variable")

	// ErrInternalSolver indicates the tableau reached a state that should be
	// unreachable (an unbounded objective or a failed dual pivot). It points
	// at a bug in the solver, not at the caller's constraint system.
	ErrInternalSolver = errors.New("internal solver error")
)
