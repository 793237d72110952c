package cycle

import (
	"log"
	"strconv"

	"github.com/schedlab/tsngen/solver"
)

// A Binding exposes one cycle's timing structure as symbolic unknowns in
// one solver context. It holds the cycle-level duration and first-start
// unknowns, a literal for the maximum slot duration, and a start and
// duration unknown for every (priority, slot index) coordinate of the
// cycle's slot rectangle.
//
// A binding is created once per solver context and never mutated. Its
// unknowns are owned by the cycle that created them and must not be
// shared across solving sessions; reusing names in a second session is a
// configuration error.
type Binding struct {
	cycle *Cycle
	ctx   solver.Context

	duration        solver.Expr
	firstStart      solver.Expr
	maxSlotDuration solver.Expr

	slotStart    [][]solver.Expr
	slotDuration [][]solver.Expr
}

// Bind creates the symbolic unknowns for a cycle in the given context.
// Names derive from the cycle's display name and instance number, so
// cycles drawing from one id.Source bind without collisions. Binding the
// same cycle into the same context twice is undefined.
func Bind(ctx solver.Context, c *Cycle) *Binding {
	if ctx == nil {
		log.Panic("cannot bind into a nil solver context")
	}

	if c == nil {
		log.Panic("cannot bind a nil cycle")
	}

	instance := strconv.Itoa(c.Instance())

	b := &Binding{
		cycle:           c,
		ctx:             ctx,
		duration:        ctx.RealVar("cycle" + instance + "Duration"),
		firstStart:      ctx.RealVar("cycle" + instance + "Start"),
		maxSlotDuration: ctx.RealLit(c.MaximumSlotDuration()),
	}

	b.slotStart = make([][]solver.Expr, c.PriorityLevels())
	b.slotDuration = make([][]solver.Expr, c.PriorityLevels())

	for i := 0; i < c.PriorityLevels(); i++ {
		b.slotStart[i] = make([]solver.Expr, c.SlotBudget())
		b.slotDuration[i] = make([]solver.Expr, c.SlotBudget())

		for j := 0; j < c.SlotBudget(); j++ {
			coord := "prt" + strconv.Itoa(i+1) + "slot" + strconv.Itoa(j+1)
			b.slotStart[i][j] = ctx.RealVar(c.Name() + coord + "start")
			b.slotDuration[i][j] = ctx.RealVar(c.Name() + coord + "duration")
		}
	}

	return b
}

// Cycle returns the cycle this binding belongs to.
func (b *Binding) Cycle() *Cycle {
	return b.cycle
}

// CycleDuration returns the cycle duration unknown.
func (b *Binding) CycleDuration() solver.Expr {
	return b.duration
}

// FirstCycleStart returns the first-start unknown.
func (b *Binding) FirstCycleStart() solver.Expr {
	return b.firstStart
}

// MaximumSlotDuration returns the literal for the per-slot upper bound.
func (b *Binding) MaximumSlotDuration() solver.Expr {
	return b.maxSlotDuration
}

// NthCycleStart returns an expression for the start of the index-th
// repetition of the cycle. Repetition 0 is the anchor; any index below 1
// yields the first cycle start, and later repetitions are offset by
// whole multiples of the cycle duration.
func (b *Binding) NthCycleStart(index int) solver.Expr {
	return b.NthCycleStartExpr(b.ctx.RealLit(float64(index)))
}

// NthCycleStartExpr is NthCycleStart for a still-symbolic repetition
// index. Both forms build the same conditional shape, so either may
// appear in constraints.
func (b *Binding) NthCycleStartExpr(index solver.Expr) solver.Expr {
	return b.ctx.ITE(
		b.ctx.Ge(index, b.ctx.RealLit(1)),
		b.ctx.Add(b.firstStart, b.ctx.Mul(b.duration, index)),
		b.firstStart,
	)
}

// SlotStart returns the start unknown for a (priority, slot index)
// coordinate. Coordinates outside the bound rectangle panic; an
// out-of-range request is a caller bug, not a runtime condition.
func (b *Binding) SlotStart(priority, slotIndex int) solver.Expr {
	b.coordinateMustBeBound(priority, slotIndex)
	return b.slotStart[priority][slotIndex]
}

// SlotDuration returns the duration unknown for a (priority, slot index)
// coordinate. Coordinates outside the bound rectangle panic.
func (b *Binding) SlotDuration(priority, slotIndex int) solver.Expr {
	b.coordinateMustBeBound(priority, slotIndex)
	return b.slotDuration[priority][slotIndex]
}

func (b *Binding) coordinateMustBeBound(priority, slotIndex int) {
	if priority < 0 || priority >= len(b.slotStart) ||
		slotIndex < 0 || slotIndex >= len(b.slotStart[priority]) {
		log.Panicf("slot coordinate (%d, %d) outside the bound %dx%d rectangle",
			priority, slotIndex, len(b.slotStart), b.cycle.SlotBudget())
	}
}
