package cycle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/schedlab/tsngen/id"
)

var _ = Describe("Builder", func() {
	var ids *id.Source

	BeforeEach(func() {
		ids = id.NewSource()
	})

	It("should build a cycle with the given bounds", func() {
		c := MakeBuilder().
			WithIDSource(ids).
			WithBounds(3000, 1200).
			WithFirstCycleStart(50).
			WithMaximumSlotDuration(150).
			WithPortName("switchAport1").
			Build()

		Expect(c.UpperBoundCycleTime()).To(Equal(3000.0))
		Expect(c.LowerBoundCycleTime()).To(Equal(1200.0))
		Expect(c.LowerBoundCycleTime()).To(
			BeNumerically("<=", c.UpperBoundCycleTime()))
		Expect(c.FirstCycleStart()).To(Equal(50.0))
		Expect(c.MaximumSlotDuration()).To(Equal(150.0))
		Expect(c.PortName()).To(Equal("switchAport1"))
	})

	It("should apply the capacity defaults", func() {
		c := MakeBuilder().
			WithIDSource(ids).
			WithMaximumSlotDuration(150).
			Build()

		Expect(c.PriorityLevels()).To(Equal(8))
		Expect(c.SlotBudget()).To(Equal(1))
		Expect(c.Arrangement()).To(Equal(AggressiveDescent))
		Expect(c.CycleStart()).To(Equal(-1.0))
		Expect(c.WrapTransmission()).To(BeFalse())
	})

	It("should number instances from the caller-owned source", func() {
		first := MakeBuilder().
			WithIDSource(ids).
			WithMaximumSlotDuration(150).
			Build()
		second := MakeBuilder().
			WithIDSource(ids).
			WithMaximumSlotDuration(150).
			Build()

		Expect(first.Instance()).To(Equal(1))
		Expect(first.Name()).To(Equal("cycle1"))
		Expect(second.Instance()).To(Equal(2))
		Expect(second.Name()).To(Equal("cycle2"))
	})

	It("should reject reversed bounds", func() {
		build := func() {
			MakeBuilder().
				WithIDSource(ids).
				WithBounds(1200, 3000).
				WithMaximumSlotDuration(150).
				Build()
		}

		Expect(build).To(Panic())
	})

	It("should reject a non-positive maximum slot duration", func() {
		build := func() {
			MakeBuilder().
				WithIDSource(ids).
				WithBounds(3000, 1200).
				Build()
		}

		Expect(build).To(Panic())
	})

	It("should require an id source", func() {
		build := func() {
			MakeBuilder().
				WithMaximumSlotDuration(150).
				Build()
		}

		Expect(build).To(Panic())
	})
})

var _ = Describe("Cycle", func() {
	var c *Cycle

	BeforeEach(func() {
		c = MakeBuilder().
			WithIDSource(id.NewSource()).
			WithBounds(3000, 1200).
			WithMaximumSlotDuration(150).
			Build()
	})

	It("should record solved values", func() {
		c.SetCycleDuration(2000)
		c.SetCycleStart(100)

		Expect(c.CycleDuration()).To(Equal(2000.0))
		Expect(c.CycleStart()).To(Equal(100.0))
	})

	It("should flip transmission wrapping one way", func() {
		c.UseTransmissionWrapping()

		Expect(c.WrapTransmission()).To(BeTrue())
	})

	It("should reapply the arrangement on a new slot budget", func() {
		c.SetArrangement(MaxCapacity)
		c.SetSlotBudget(4)

		Expect(c.SlotsPerPriority()).To(Equal(
			[]int{4, 4, 4, 4, 4, 4, 4, 4}))
		Expect(c.SlotsFor(5)).To(Equal(4))
	})

	It("should panic on an out-of-range priority", func() {
		Expect(func() { c.SlotsFor(8) }).To(Panic())
		Expect(func() { c.SlotsFor(-1) }).To(Panic())
	})

	It("should rename itself when the instance is restored", func() {
		c.SetInstance(17)

		Expect(c.Instance()).To(Equal(17))
		Expect(c.Name()).To(Equal("cycle17"))
	})
})
