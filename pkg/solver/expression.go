package solver

import "sync/atomic"

// Variable identifies a scalar unknown managed by a [Solver].
//
// Variables are cheap value types: create one per unknown with NewVariable,
// reference it from any number of constraint expressions, and read its
// resolved value back with [Solver.Value] once constraints have been added.
type Variable struct {
	id uint64
}

var lastVariableID atomic.Uint64

// NewVariable creates a fresh variable, distinct from all others in the
// process. A variable has no value until it participates in a solver.
func NewVariable() Variable {
	return Variable{id: lastVariableID.Add(1)}
}

// Valid reports whether the variable was created with NewVariable,
// as opposed to being a zero value.
func (v Variable) Valid() bool { return v.id != 0 }

// Term is a variable scaled by a coefficient.
type Term struct {
	Variable    Variable
	Coefficient float64
}

// Expression is a linear combination of terms plus a constant.
// Expressions are immutable; each method returns a new expression.
type Expression struct {
	Terms    []Term
	Constant float64
}

// Var returns an expression consisting of the single variable v.
func Var(v Variable) Expression {
	return Expression{Terms: []Term{{Variable: v, Coefficient: 1}}}
}

// Constant returns a constant expression.
func Constant(c float64) Expression {
	return Expression{Constant: c}
}

// Plus returns e + o.
func (e Expression) Plus(o Expression) Expression {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return Expression{Terms: terms, Constant: e.Constant + o.Constant}
}

// Minus returns e - o.
func (e Expression) Minus(o Expression) Expression {
	return e.Plus(o.Negate())
}

// PlusConstant returns e + c.
func (e Expression) PlusConstant(c float64) Expression {
	return Expression{Terms: e.Terms, Constant: e.Constant + c}
}

// MinusConstant returns e - c.
func (e Expression) MinusConstant(c float64) Expression {
	return e.PlusConstant(-c)
}

// Div returns e scaled by 1/c.
func (e Expression) Div(c float64) Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Variable: t.Variable, Coefficient: t.Coefficient / c}
	}
	return Expression{Terms: terms, Constant: e.Constant / c}
}

// Negate returns -e.
func (e Expression) Negate() Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Variable: t.Variable, Coefficient: -t.Coefficient}
	}
	return Expression{Terms: terms, Constant: -e.Constant}
}

// Relation is the comparison operator of a constraint.
type Relation int

const (
	// EQ constrains an expression to equal zero.
	EQ Relation = iota
	// LE constrains an expression to be at most zero.
	LE
	// GE constrains an expression to be at least zero.
	GE
)

func (r Relation) String() string {
	switch r {
	case EQ:
		return "=="
	case LE:
		return "<="
	case GE:
		return ">="
	}
	return "?"
}

// Strength orders constraints by how strongly the solver should honor them.
// Required constraints must hold; weaker constraints are satisfied as nearly
// as possible, with stronger ones winning over weaker ones.
type Strength float64

const (
	// Required constraints cannot be violated; adding an unsatisfiable
	// required constraint fails with ErrUnsatisfiableConstraint.
	Required Strength = 1_001_001_000
	// Strong constraints override medium and weak demands.
	Strong Strength = 1_000_000
	// Medium constraints override weak demands.
	Medium Strength = 1_000
	// Weak constraints yield to any stronger opposing demand.
	Weak Strength = 1
)

// Constraint relates a linear expression to zero at a given strength.
// Constraints are identified by pointer: adding the same *Constraint to a
// solver twice fails with ErrDuplicateConstraint, while two structurally
// identical constraints created separately are distinct.
type Constraint struct {
	Expression Expression
	Op         Relation
	Strength   Strength
}

// NewConstraint builds the constraint "e op 0" at the given strength.
func NewConstraint(e Expression, op Relation, strength Strength) *Constraint {
	return &Constraint{Expression: e, Op: op, Strength: strength}
}
