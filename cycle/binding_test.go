package cycle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/schedlab/tsngen/id"
	"github.com/schedlab/tsngen/solver"
	"github.com/schedlab/tsngen/solver/solvertest"
)

var _ = Describe("Binding", func() {
	var (
		s *solvertest.Solver
		c *Cycle
	)

	BeforeEach(func() {
		s = solvertest.New()
		c = MakeBuilder().
			WithIDSource(id.NewSource()).
			WithBounds(3000, 1200).
			WithMaximumSlotDuration(150).
			WithPriorityLevels(2).
			WithSlotBudget(2).
			Build()
	})

	It("should name the cycle-level unknowns from the instance", func() {
		b := Bind(s, c)

		Expect(b.CycleDuration().String()).To(Equal("cycle1Duration"))
		Expect(b.FirstCycleStart().String()).To(Equal("cycle1Start"))
	})

	It("should name slot unknowns from cycle, priority, and slot", func() {
		b := Bind(s, c)

		Expect(b.SlotStart(0, 0).String()).To(Equal("cycle1prt1slot1start"))
		Expect(b.SlotDuration(1, 1).String()).To(
			Equal("cycle1prt2slot2duration"))
	})

	It("should bind distinct names for cycles sharing an id source", func() {
		ids := id.NewSource()
		first := MakeBuilder().
			WithIDSource(ids).
			WithMaximumSlotDuration(150).
			Build()
		second := MakeBuilder().
			WithIDSource(ids).
			WithMaximumSlotDuration(150).
			Build()

		Bind(s, first)

		Expect(func() { Bind(s, second) }).NotTo(Panic())
	})

	It("should collide when two cycles share an instance number", func() {
		first := MakeBuilder().
			WithIDSource(id.NewSource()).
			WithMaximumSlotDuration(150).
			Build()
		second := MakeBuilder().
			WithIDSource(id.NewSource()).
			WithMaximumSlotDuration(150).
			Build()

		Bind(s, first)

		Expect(func() { Bind(s, second) }).To(Panic())
	})

	It("should panic on coordinates outside the bound rectangle", func() {
		b := Bind(s, c)

		Expect(func() { b.SlotStart(2, 0) }).To(Panic())
		Expect(func() { b.SlotStart(0, 2) }).To(Panic())
		Expect(func() { b.SlotDuration(-1, 0) }).To(Panic())
	})

	Describe("NthCycleStart", func() {
		var b *Binding

		solved := func(e solver.Expr) float64 {
			outcome, m := s.Check()
			Expect(outcome).To(Equal(solver.Sat))
			v, ok := m.Value(e)
			Expect(ok).To(BeTrue())
			return v
		}

		BeforeEach(func() {
			b = Bind(s, c)
			s.Assert(s.Eq(b.CycleDuration(), s.RealLit(50)))
			s.Assert(s.Eq(b.FirstCycleStart(), s.RealLit(10)))
		})

		It("should anchor repetition zero at the first cycle start", func() {
			Expect(solved(b.NthCycleStart(0))).To(
				BeNumerically("~", 10, 1e-9))
		})

		It("should anchor negative repetitions defensively", func() {
			Expect(solved(b.NthCycleStart(-1))).To(
				BeNumerically("~", 10, 1e-9))
		})

		It("should offset later repetitions by whole durations", func() {
			Expect(solved(b.NthCycleStart(3))).To(
				BeNumerically("~", 10+50*3, 1e-9))
		})

		It("should accept a still-symbolic index", func() {
			k := s.RealVar("k")
			s.Assert(s.Eq(k, s.RealLit(4)))

			Expect(solved(b.NthCycleStartExpr(k))).To(
				BeNumerically("~", 10+50*4, 1e-9))
		})
	})
})
