// Package solver implements an incremental linear constraint solver based on
// the Cassowary algorithm.
//
// Cassowary solves systems of linear equalities and inequalities over real
// unknowns, where each constraint carries a strength. Required constraints
// must hold exactly; weaker constraints are violated as little as possible,
// with stronger constraints always winning over weaker ones. The solver keeps
// its simplex tableau in solved form as constraints are added, so constraints
// can be fed in one at a time and variable values read back at any point.
//
// Edit variables extend the system with post-hoc adjustment: a variable
// registered with [Solver.AddEditVariable] can have new values suggested via
// [Solver.SuggestValue] without rebuilding any constraints; the solver
// re-optimizes incrementally with a dual simplex pass.
//
// Pivot selection is deterministic (lowest internal symbol id wins every
// tie), so solving the same constraint system twice produces bit-identical
// values.
//
// Solver is not safe for concurrent use. If multiple goroutines access a
// Solver, they must be synchronized with external locking.
package solver

import (
	"math"
	"slices"
)

const epsilon = 1.0e-8

func nearZero(v float64) bool {
	return math.Abs(v) < epsilon
}

// =============================================================================
// Symbols and Rows
// =============================================================================

type symbolKind uint8

const (
	invalidSymbol symbolKind = iota
	externalSymbol
	slackSymbol
	errorSymbol
	dummySymbol
)

// symbol is an internal tableau variable. External symbols correspond to
// caller Variables; slack, error, and dummy symbols are introduced while
// translating constraints into rows.
type symbol struct {
	id   uint64
	kind symbolKind
}

func (s symbol) isPivotable() bool {
	return s.kind == slackSymbol || s.kind == errorSymbol
}

// row is one tableau row: constant + sum(coefficient * symbol).
type row struct {
	constant float64
	cells    map[symbol]float64
}

func newRow(constant float64) *row {
	return &row{constant: constant, cells: make(map[symbol]float64)}
}

func (r *row) copy() *row {
	c := &row{constant: r.constant, cells: make(map[symbol]float64, len(r.cells))}
	for s, v := range r.cells {
		c.cells[s] = v
	}
	return c
}

// add shifts the row constant by delta and returns the new constant.
func (r *row) add(delta float64) float64 {
	r.constant += delta
	return r.constant
}

func (r *row) insertSymbol(s symbol, coefficient float64) {
	coefficient += r.cells[s]
	if nearZero(coefficient) {
		delete(r.cells, s)
	} else {
		r.cells[s] = coefficient
	}
}

// insertRow merges coefficient*other into this row.
func (r *row) insertRow(other *row, coefficient float64) {
	r.constant += other.constant * coefficient
	for s, v := range other.cells {
		r.insertSymbol(s, v*coefficient)
	}
}

func (r *row) remove(s symbol) {
	delete(r.cells, s)
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, v := range r.cells {
		r.cells[s] = -v
	}
}

// solveFor rewrites the row so that s becomes its basic variable:
// given c + a*s + ... = 0, produce s = -c/a - .../a.
func (r *row) solveFor(s symbol) {
	coefficient := -1.0 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coefficient
	for sym, v := range r.cells {
		r.cells[sym] = v * coefficient
	}
}

// solveForPair moves lhs from basic to parametric and makes rhs basic.
func (r *row) solveForPair(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1.0)
	r.solveFor(rhs)
}

func (r *row) coefficientFor(s symbol) float64 {
	return r.cells[s]
}

// substitute replaces every occurrence of s with the given row.
func (r *row) substitute(s symbol, other *row) {
	if coefficient, ok := r.cells[s]; ok {
		delete(r.cells, s)
		r.insertRow(other, coefficient)
	}
}

// sortedSymbols returns the row's symbols in increasing id order. All pivot
// selection walks symbols in this order so that solves are reproducible.
func (r *row) sortedSymbols() []symbol {
	syms := make([]symbol, 0, len(r.cells))
	for s := range r.cells {
		syms = append(syms, s)
	}
	slices.SortFunc(syms, func(a, b symbol) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return syms
}

// =============================================================================
// Solver
// =============================================================================

// tag records the symbols introduced for a constraint, so edits can locate
// the constraint's marker in the tableau.
type tag struct {
	marker symbol
	other  symbol
}

type editInfo struct {
	tag      tag
	constant float64
}

// Solver is an incremental Cassowary solver.
//
// The zero value is not usable; use New to create instances.
type Solver struct {
	constraints  map[*Constraint]tag
	rows         map[symbol]*row
	vars         map[Variable]symbol
	edits        map[Variable]*editInfo
	infeasible   []symbol
	objective    *row
	artificial   *row
	lastSymbolID uint64
}

// New creates an empty solver.
func New() *Solver {
	return &Solver{
		constraints: make(map[*Constraint]tag),
		rows:        make(map[symbol]*row),
		vars:        make(map[Variable]symbol),
		edits:       make(map[Variable]*editInfo),
		objective:   newRow(0),
	}
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.lastSymbolID++
	return symbol{id: s.lastSymbolID, kind: kind}
}

func (s *Solver) symbolFor(v Variable) symbol {
	if sym, ok := s.vars[v]; ok {
		return sym
	}
	sym := s.newSymbol(externalSymbol)
	s.vars[v] = sym
	return sym
}

// AddConstraint adds c to the system and re-optimizes.
//
// It returns ErrDuplicateConstraint if the same constraint handle was added
// before, ErrUnsatisfiableConstraint if c conflicts with the existing
// required constraints, and ErrInternalSolver on tableau corruption.
func (s *Solver) AddConstraint(c *Constraint) error {
	if _, ok := s.constraints[c]; ok {
		return ErrDuplicateConstraint
	}

	r, t := s.createRow(c)
	subject := s.chooseSubject(r, t)

	// If no subject was found, the row may still be trivially satisfiable:
	// a row of dummy symbols with a zero constant is a redundant constraint.
	if subject.kind == invalidSymbol && allDummies(r) {
		if !nearZero(r.constant) {
			return ErrUnsatisfiableConstraint
		}
		subject = t.marker
	}

	if subject.kind == invalidSymbol {
		ok, err := s.addWithArtificialVariable(r)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnsatisfiableConstraint
		}
	} else {
		r.solveFor(subject)
		s.substituteOut(subject, r)
		s.rows[subject] = r
	}

	s.constraints[c] = t

	return s.optimize(s.objective)
}

// AddEditVariable registers v so that values can later be suggested for it
// with SuggestValue. The strength must be below Required.
func (s *Solver) AddEditVariable(v Variable, strength Strength) error {
	if _, ok := s.edits[v]; ok {
		return ErrDuplicateEditVariable
	}
	if strength >= Required {
		return ErrBadRequiredStrength
	}

	c := NewConstraint(Var(v), EQ, strength)
	if err := s.AddConstraint(c); err != nil {
		// The edit constraint v == 0 is always satisfiable on its own.
		return ErrInternalSolver
	}

	s.edits[v] = &editInfo{tag: s.constraints[c]}
	return nil
}

// SuggestValue suggests a new value for an edit variable and re-optimizes.
// The suggestion is honored exactly unless stronger constraints oppose it.
func (s *Solver) SuggestValue(v Variable, value float64) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}

	delta := value - info.constant
	info.constant = value

	// Check first if the positive or negative error variable for the edit
	// constraint is basic; in that case the delta is absorbed locally.
	if r, ok := s.rows[info.tag.marker]; ok {
		if r.add(-delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.marker)
		}
		return s.dualOptimize()
	}
	if r, ok := s.rows[info.tag.other]; ok {
		if r.add(delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.other)
		}
		return s.dualOptimize()
	}

	// Otherwise update every row containing the marker symbol.
	for _, basic := range s.sortedBasicSymbols() {
		r := s.rows[basic]
		coefficient := r.coefficientFor(info.tag.marker)
		if coefficient != 0 && r.add(delta*coefficient) < 0 && basic.kind != externalSymbol {
			s.infeasible = append(s.infeasible, basic)
		}
	}
	return s.dualOptimize()
}

// Value returns the resolved value of v. Variables that never appeared in a
// constraint resolve to 0.
func (s *Solver) Value(v Variable) float64 {
	sym, ok := s.vars[v]
	if !ok {
		return 0
	}
	if r, ok := s.rows[sym]; ok {
		return r.constant
	}
	return 0
}

// =============================================================================
// Tableau internals
// =============================================================================

// createRow translates a constraint into a tableau row, substituting any
// symbols that are already basic and introducing slack/error/dummy symbols
// according to the constraint's operator and strength.
func (s *Solver) createRow(c *Constraint) (*row, tag) {
	r := newRow(c.Expression.Constant)

	for _, term := range c.Expression.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.symbolFor(term.Variable)
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	var t tag
	switch c.Op {
	case LE, GE:
		coefficient := 1.0
		if c.Op == GE {
			coefficient = -1.0
		}
		slack := s.newSymbol(slackSymbol)
		t.marker = slack
		r.insertSymbol(slack, coefficient)
		if c.Strength < Required {
			errSym := s.newSymbol(errorSymbol)
			t.other = errSym
			r.insertSymbol(errSym, -coefficient)
			s.objective.insertSymbol(errSym, float64(c.Strength))
		}
	case EQ:
		if c.Strength < Required {
			errPlus := s.newSymbol(errorSymbol)
			errMinus := s.newSymbol(errorSymbol)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1.0)
			r.insertSymbol(errMinus, 1.0)
			s.objective.insertSymbol(errPlus, float64(c.Strength))
			s.objective.insertSymbol(errMinus, float64(c.Strength))
		} else {
			dummy := s.newSymbol(dummySymbol)
			t.marker = dummy
			r.insertSymbol(dummy, 1.0)
		}
	}

	// The tableau requires non-negative row constants.
	if r.constant < 0 {
		r.reverseSign()
	}

	return r, t
}

// chooseSubject picks the symbol the new row will be solved for: the first
// external symbol if any, otherwise a pivotable marker with a negative
// coefficient.
func (s *Solver) chooseSubject(r *row, t tag) symbol {
	for _, sym := range r.sortedSymbols() {
		if sym.kind == externalSymbol {
			return sym
		}
	}
	if t.marker.isPivotable() && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if t.other.isPivotable() && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return symbol{}
}

func allDummies(r *row) bool {
	for sym := range r.cells {
		if sym.kind != dummySymbol {
			return false
		}
	}
	return true
}

// addWithArtificialVariable adds the row using a phase-one artificial
// variable, reporting whether a feasible solution including the row exists.
func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	art := s.newSymbol(slackSymbol)
	s.rows[art] = r.copy()
	s.artificial = r.copy()

	if err := s.optimize(s.artificial); err != nil {
		s.artificial = nil
		return false, err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if artRow, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(artRow.cells) == 0 {
			return success, nil
		}
		entering := anyPivotableSymbol(artRow)
		if entering.kind == invalidSymbol {
			return false, nil
		}
		artRow.solveForPair(art, entering)
		s.substituteOut(entering, artRow)
		s.rows[entering] = artRow
	}

	for _, basic := range s.sortedBasicSymbols() {
		s.rows[basic].remove(art)
	}
	s.objective.remove(art)

	return success, nil
}

func anyPivotableSymbol(r *row) symbol {
	for _, sym := range r.sortedSymbols() {
		if sym.isPivotable() {
			return sym
		}
	}
	return symbol{}
}

// substituteOut replaces sym in every row and objective with the given row,
// tracking rows that become infeasible for the next dual pass.
func (s *Solver) substituteOut(sym symbol, r *row) {
	for basic, candidate := range s.rows {
		candidate.substitute(sym, r)
		if basic.kind != externalSymbol && candidate.constant < 0 {
			s.infeasible = append(s.infeasible, basic)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// optimize runs the primal simplex until the objective is minimal.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := enteringSymbol(objective)
		if entering.kind == invalidSymbol {
			return nil
		}
		leaving, ok := s.leavingRow(entering)
		if !ok {
			// The objective is unbounded below, which cannot happen in a
			// well-formed tableau.
			return ErrInternalSolver
		}
		r := s.rows[leaving]
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substituteOut(entering, r)
		s.rows[entering] = r
	}
}

// enteringSymbol picks the lowest-id non-dummy symbol with a negative
// objective coefficient.
func enteringSymbol(objective *row) symbol {
	for _, sym := range objective.sortedSymbols() {
		if sym.kind != dummySymbol && objective.cells[sym] < 0 {
			return sym
		}
	}
	return symbol{}
}

// leavingRow finds the basic symbol with the minimum exit ratio for the
// entering symbol. Ties break on the lowest basic symbol id.
func (s *Solver) leavingRow(entering symbol) (symbol, bool) {
	ratio := math.MaxFloat64
	var found symbol
	for _, basic := range s.sortedBasicSymbols() {
		if basic.kind == externalSymbol {
			continue
		}
		r := s.rows[basic]
		coefficient := r.coefficientFor(entering)
		if coefficient >= 0 {
			continue
		}
		if candidate := -r.constant / coefficient; candidate < ratio {
			ratio = candidate
			found = basic
		}
	}
	return found, found.kind != invalidSymbol
}

// dualOptimize restores feasibility after suggested-value changes.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		leaving := s.infeasible[len(s.infeasible)-1]
		s.infeasible = s.infeasible[:len(s.infeasible)-1]

		r, ok := s.rows[leaving]
		if !ok || r.constant >= 0 {
			continue
		}
		entering := s.dualEnteringSymbol(r)
		if entering.kind == invalidSymbol {
			return ErrInternalSolver
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substituteOut(entering, r)
		s.rows[entering] = r
	}
	return nil
}

func (s *Solver) dualEnteringSymbol(r *row) symbol {
	ratio := math.MaxFloat64
	var found symbol
	for _, sym := range r.sortedSymbols() {
		if sym.kind == dummySymbol {
			continue
		}
		coefficient := r.cells[sym]
		if coefficient <= 0 {
			continue
		}
		if candidate := s.objective.coefficientFor(sym) / coefficient; candidate < ratio {
			ratio = candidate
			found = sym
		}
	}
	return found
}

// sortedBasicSymbols returns the basic symbols of all rows in increasing id
// order, for deterministic iteration over the tableau.
func (s *Solver) sortedBasicSymbols() []symbol {
	syms := make([]symbol, 0, len(s.rows))
	for sym := range s.rows {
		syms = append(syms, sym)
	}
	slices.SortFunc(syms, func(a, b symbol) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return syms
}
