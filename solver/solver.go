// Package solver defines the capability contract that tsngen requires
// from an external real-arithmetic constraint solver. The schedule
// generator never solves anything itself. It builds symbolic expressions
// through a Context, asserts constraints into a Session, and reads
// concrete values back from the Model that a satisfiable check produces.
//
// Implementations are expected to be thin adapters over an SMT-style
// backend. The solvertest sub-package provides an in-memory
// implementation for tests and offline schedule verification.
package solver

// Expr is an opaque handle to a solver-side expression. Expressions are
// immutable once created and are only meaningful within the Context that
// created them.
type Expr interface {
	// String returns a human-readable rendering of the expression.
	// It is intended for logging and debugging only.
	String() string
}

// Context creates symbolic expressions. All expressions passed to the
// builder methods must originate from the same Context.
type Context interface {
	// RealVar creates a named real-valued unknown. Names must be unique
	// within one solving session; a collision is a configuration error
	// and implementations are free to panic on it.
	RealVar(name string) Expr

	// RealLit creates a real-valued literal constant.
	RealLit(value float64) Expr

	// Add builds a + b.
	Add(a, b Expr) Expr

	// Mul builds a * b.
	Mul(a, b Expr) Expr

	// Ge builds the boolean comparison a >= b.
	Ge(a, b Expr) Expr

	// Eq builds the boolean equality a == b.
	Eq(a, b Expr) Expr

	// ITE builds a conditional expression that evaluates to onTrue when
	// cond holds and to onFalse otherwise.
	ITE(cond, onTrue, onFalse Expr) Expr
}

// Session accumulates asserted constraints and checks satisfiability.
type Session interface {
	// Assert adds a boolean constraint to the session.
	Assert(constraint Expr)

	// Check determines whether the asserted constraints are satisfiable.
	// The returned Model is non-nil only when the outcome is Sat.
	Check() (Outcome, Model)
}

// Model is a concrete assignment of values to unknowns, produced by a
// satisfiable check.
type Model interface {
	// Value extracts the concrete value of an expression. The second
	// return value is false when the model does not determine the
	// expression.
	Value(e Expr) (float64, bool)
}

// Outcome is the result of a satisfiability check.
type Outcome int

const (
	// Sat means the asserted constraints are satisfiable.
	Sat Outcome = iota

	// Unsat means the asserted constraints are contradictory.
	Unsat

	// Unknown means the solver could not decide.
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	}

	return "invalid"
}
