package cycle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/schedlab/tsngen/id"
	"github.com/schedlab/tsngen/solver"
	"github.com/schedlab/tsngen/solver/solvertest"
)

var _ = Describe("Reload", func() {
	var (
		s *solvertest.Solver
		c *Cycle
		b *Binding
	)

	BeforeEach(func() {
		s = solvertest.New()
		c = MakeBuilder().
			WithIDSource(id.NewSource()).
			WithBounds(3000, 1200).
			WithMaximumSlotDuration(150).
			WithPriorityLevels(4).
			WithSlotBudget(4).
			WithArrangement(AggressiveDescent).
			Build()
		b = Bind(s, c)

		c.SetCycleDuration(2000)
		c.SetFirstCycleStart(0)
	})

	It("should reproduce stored starts in a fresh solve", func() {
		// Descent allocation for budget 4 over 4 levels: [4, 2, 1, 1].
		c.Solution().RecordSlot(1, []float64{100, 900}, []float64{50, 50})
		c.Solution().RecordSlot(3, []float64{1500}, []float64{25})

		Reload(s, b, c.Solution())
		outcome, m := s.Check()

		Expect(outcome).To(Equal(solver.Sat))
		for _, priority := range c.Solution().Recorded() {
			for j := 0; j < c.SlotsFor(priority); j++ {
				v, ok := m.Value(b.SlotStart(priority, j))
				Expect(ok).To(BeTrue())
				Expect(v).To(BeNumerically(
					"~", c.Solution().SlotStart(priority, j), 1e-9))
			}
		}

		v, ok := m.Value(b.CycleDuration())
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("~", 2000, 1e-9))
	})

	It("should leave slot durations free", func() {
		c.Solution().RecordSlot(3, []float64{1500}, []float64{25})

		Reload(s, b, c.Solution())

		// Only cycle duration, first start, and one slot start are pinned.
		Expect(s.Assertions()).To(HaveLen(3))
		for _, a := range s.Assertions() {
			Expect(a.String()).NotTo(ContainSubstring("duration25"))
			Expect(a.String()).NotTo(ContainSubstring("slot1duration"))
		}
	})

	It("should assert one equality per pinned value", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()
		sess := NewMockSession(mockCtrl)

		c.Solution().RecordSlot(0, []float64{0, 500, 1000, 1500},
			[]float64{100, 100, 100, 100})
		c.Solution().RecordSlot(2, []float64{250}, []float64{100})

		// 2 cycle-level pins + 4 slots at priority 0 + 1 at priority 2.
		sess.EXPECT().Assert(gomock.Any()).Times(7)

		Reload(sess, b, c.Solution())
	})

	It("should panic when reloading before binding", func() {
		Expect(func() { Reload(s, nil, c.Solution()) }).To(Panic())
	})

	It("should panic without a solution store", func() {
		Expect(func() { Reload(s, b, nil) }).To(Panic())
	})
})
