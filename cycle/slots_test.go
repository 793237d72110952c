package cycle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AllocateSlots", func() {
	It("should taper geometrically under aggressive descent", func() {
		counts := AllocateSlots(16, 4, AggressiveDescent)

		Expect(counts).To(Equal([]int{16, 8, 4, 2}))
	})

	It("should floor aggressive descent at one slot", func() {
		counts := AllocateSlots(0, 4, AggressiveDescent)

		Expect(counts).To(Equal([]int{1, 1, 1, 1}))
	})

	It("should drop the remainder under equal distribution", func() {
		counts := AllocateSlots(10, 4, EqualDistribution)

		Expect(counts).To(Equal([]int{2, 2, 2, 2}))
	})

	It("should propagate a zero budget under equal distribution", func() {
		counts := AllocateSlots(0, 4, EqualDistribution)

		Expect(counts).To(Equal([]int{0, 0, 0, 0}))
	})

	It("should grant every priority the whole budget under max capacity", func() {
		counts := AllocateSlots(5, 3, MaxCapacity)

		Expect(counts).To(Equal([]int{5, 5, 5}))
	})

	It("should propagate a zero budget under max capacity", func() {
		counts := AllocateSlots(0, 3, MaxCapacity)

		Expect(counts).To(Equal([]int{0, 0, 0}))
	})

	It("should panic without priority levels", func() {
		Expect(func() { AllocateSlots(4, 0, MaxCapacity) }).To(Panic())
	})
})

var _ = Describe("ArrangementMode", func() {
	It("should round-trip through its string form", func() {
		for _, mode := range []ArrangementMode{
			AggressiveDescent, EqualDistribution, MaxCapacity,
		} {
			parsed, ok := ParseArrangementMode(mode.String())

			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(mode))
		}
	})

	It("should reject unknown strings", func() {
		_, ok := ParseArrangementMode("round-robin")

		Expect(ok).To(BeFalse())
	})
})
