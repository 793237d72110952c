// Package solvertest provides an in-memory implementation of the solver
// contract. It records asserted constraints, propagates equalities to a
// fixed point, and echoes concrete values back through a model. It is
// sufficient for unit tests and for verifying previously recorded
// schedules, but it is not a general arithmetic solver: constraints that
// cannot be settled by equality propagation produce an Unknown outcome.
package solvertest

import (
	"log"
	"math"
	"strconv"

	"github.com/schedlab/tsngen/solver"
)

const tolerance = 1e-9

// Solver implements both solver.Context and solver.Session over an
// in-memory constraint store. The zero value is not usable; create
// instances with New.
type Solver struct {
	vars       map[string]*variable
	assertions []solver.Expr
}

// New creates an empty in-memory solver.
func New() *Solver {
	return &Solver{
		vars: make(map[string]*variable),
	}
}

// RealVar creates a named unknown. Creating the same name twice panics,
// as duplicate names within one session are a configuration error.
func (s *Solver) RealVar(name string) solver.Expr {
	if _, ok := s.vars[name]; ok {
		log.Panicf("symbolic name %s is already bound in this context", name)
	}

	v := &variable{name: name}
	s.vars[name] = v

	return v
}

// RealLit creates a literal constant.
func (s *Solver) RealLit(value float64) solver.Expr {
	return literal{value: value}
}

// Add builds a + b.
func (s *Solver) Add(a, b solver.Expr) solver.Expr {
	return binary{op: "+", a: a, b: b}
}

// Mul builds a * b.
func (s *Solver) Mul(a, b solver.Expr) solver.Expr {
	return binary{op: "*", a: a, b: b}
}

// Ge builds a >= b.
func (s *Solver) Ge(a, b solver.Expr) solver.Expr {
	return binary{op: ">=", a: a, b: b}
}

// Eq builds a == b.
func (s *Solver) Eq(a, b solver.Expr) solver.Expr {
	return binary{op: "=", a: a, b: b}
}

// ITE builds a conditional expression.
func (s *Solver) ITE(cond, onTrue, onFalse solver.Expr) solver.Expr {
	return ite{cond: cond, onTrue: onTrue, onFalse: onFalse}
}

// Assert records a boolean constraint. Non-boolean expressions panic.
func (s *Solver) Assert(constraint solver.Expr) {
	b, ok := constraint.(binary)
	if !ok || (b.op != "=" && b.op != ">=") {
		log.Panicf("asserted expression %s is not boolean", constraint)
	}

	s.assertions = append(s.assertions, constraint)
}

// Assertions returns the constraints asserted so far, in order.
func (s *Solver) Assertions() []solver.Expr {
	return s.assertions
}

// Check propagates asserted equalities to a fixed point. It returns Unsat
// on a contradiction, Sat with a model when every assertion is determined
// and holds, and Unknown otherwise.
func (s *Solver) Check() (solver.Outcome, solver.Model) {
	values := make(map[string]float64)

	for changed := true; changed; {
		changed = false

		for _, a := range s.assertions {
			c := a.(binary)
			if c.op != "=" {
				continue
			}

			outcome, didBind := propagateEquality(c, values)
			if outcome == solver.Unsat {
				return solver.Unsat, nil
			}

			changed = changed || didBind
		}
	}

	for _, a := range s.assertions {
		holds, ok := evalBool(a, values)
		if !ok {
			return solver.Unknown, nil
		}

		if !holds {
			return solver.Unsat, nil
		}
	}

	return solver.Sat, model{values: values}
}

// propagateEquality binds an unknown on one side of an equality when the
// other side already evaluates. It reports Unsat when both sides evaluate
// to different values.
func propagateEquality(
	c binary,
	values map[string]float64,
) (solver.Outcome, bool) {
	av, aok := eval(c.a, values)
	bv, bok := eval(c.b, values)

	switch {
	case aok && bok:
		if math.Abs(av-bv) > tolerance {
			return solver.Unsat, false
		}
	case aok:
		if v, isVar := c.b.(*variable); isVar {
			values[v.name] = av
			return solver.Sat, true
		}
	case bok:
		if v, isVar := c.a.(*variable); isVar {
			values[v.name] = bv
			return solver.Sat, true
		}
	}

	return solver.Sat, false
}

func eval(e solver.Expr, values map[string]float64) (float64, bool) {
	switch x := e.(type) {
	case literal:
		return x.value, true
	case *variable:
		v, ok := values[x.name]
		return v, ok
	case binary:
		a, aok := eval(x.a, values)
		b, bok := eval(x.b, values)
		if !aok || !bok {
			return 0, false
		}

		switch x.op {
		case "+":
			return a + b, true
		case "*":
			return a * b, true
		}

		return 0, false
	case ite:
		cond, ok := evalBool(x.cond, values)
		if !ok {
			return 0, false
		}

		if cond {
			return eval(x.onTrue, values)
		}

		return eval(x.onFalse, values)
	}

	return 0, false
}

func evalBool(e solver.Expr, values map[string]float64) (bool, bool) {
	c, ok := e.(binary)
	if !ok {
		return false, false
	}

	a, aok := eval(c.a, values)
	b, bok := eval(c.b, values)
	if !aok || !bok {
		return false, false
	}

	switch c.op {
	case "=":
		return math.Abs(a-b) <= tolerance, true
	case ">=":
		return a >= b-tolerance, true
	}

	return false, false
}

type model struct {
	values map[string]float64
}

func (m model) Value(e solver.Expr) (float64, bool) {
	return eval(e, m.values)
}

type variable struct {
	name string
}

func (v *variable) String() string {
	return v.name
}

type literal struct {
	value float64
}

func (l literal) String() string {
	return strconv.FormatFloat(l.value, 'g', -1, 64)
}

type binary struct {
	op   string
	a, b solver.Expr
}

func (b binary) String() string {
	return "(" + b.a.String() + " " + b.op + " " + b.b.String() + ")"
}

type ite struct {
	cond    solver.Expr
	onTrue  solver.Expr
	onFalse solver.Expr
}

func (i ite) String() string {
	return "(ite " + i.cond.String() +
		" " + i.onTrue.String() +
		" " + i.onFalse.String() + ")"
}

var _ solver.Context = (*Solver)(nil)
var _ solver.Session = (*Solver)(nil)
var _ solver.Model = model{}
