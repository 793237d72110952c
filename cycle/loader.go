package cycle

import (
	"log"

	"github.com/schedlab/tsngen/solver"
)

// Reload re-asserts a previously solved cycle into a fresh solving
// session. The bound cycle-duration and first-start unknowns are pinned
// to their stored concrete values, and so is every slot-start unknown of
// every priority recorded in the store, for slot indices up to that
// priority's allocated count.
//
// Slot durations are NOT re-asserted: starts are pinned while durations
// stay free for the new solve to re-derive. Callers that need duration
// pinning must assert it themselves.
//
// Reloading requires that Bind has already been called on the same
// solver context; a nil binding is a fatal ordering error.
func Reload(sess solver.Session, b *Binding, store *SolutionStore) {
	if b == nil {
		log.Panic("reload requires a bound cycle; call Bind first")
	}

	if store == nil {
		log.Panic("reload requires a solution store")
	}

	ctx := b.ctx
	c := b.cycle

	sess.Assert(ctx.Eq(b.duration, ctx.RealLit(c.CycleDuration())))
	sess.Assert(ctx.Eq(b.firstStart, ctx.RealLit(c.FirstCycleStart())))

	for _, priority := range store.Recorded() {
		for slotIndex := 0; slotIndex < c.SlotsFor(priority); slotIndex++ {
			sess.Assert(ctx.Eq(
				b.SlotStart(priority, slotIndex),
				ctx.RealLit(store.SlotStart(priority, slotIndex)),
			))
		}
	}
}
