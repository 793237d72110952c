package cycle

import "log"

// SolutionStore holds the concrete slot assignments materialized from a
// solved model. Priorities are stored behind an ordered
// priority-to-position indirection: the position a priority was first
// recorded at, not its raw number, indexes the start and duration
// sequences. Unused priorities therefore never occupy placeholder
// entries.
//
// The zero value is an empty store.
type SolutionStore struct {
	order     []int
	positions map[int]int
	starts    [][]float64
	durations [][]float64
}

// RecordSlot records the solved (start, duration) sequences for one
// priority. The first write wins: recording an already-recorded priority
// is a no-op, since several constraint-assembly passes may report the
// same priority and only the first is authoritative.
func (s *SolutionStore) RecordSlot(priority int, starts, durations []float64) {
	if _, ok := s.positions[priority]; ok {
		return
	}

	if s.positions == nil {
		s.positions = make(map[int]int)
	}

	s.positions[priority] = len(s.order)
	s.order = append(s.order, priority)
	s.starts = append(s.starts, starts)
	s.durations = append(s.durations, durations)
}

// Recorded returns the recorded priorities in record order.
func (s *SolutionStore) Recorded() []int {
	return s.order
}

// Has reports whether the priority has recorded slots.
func (s *SolutionStore) Has(priority int) bool {
	_, ok := s.positions[priority]
	return ok
}

// SlotStarts returns the recorded start sequence for a priority.
// Requesting an unrecorded priority panics.
func (s *SolutionStore) SlotStarts(priority int) []float64 {
	return s.starts[s.position(priority)]
}

// SlotDurations returns the recorded duration sequence for a priority.
// Requesting an unrecorded priority panics.
func (s *SolutionStore) SlotDurations(priority int) []float64 {
	return s.durations[s.position(priority)]
}

// SlotStart returns one recorded slot start.
func (s *SolutionStore) SlotStart(priority, slotIndex int) float64 {
	return s.starts[s.position(priority)][slotIndex]
}

// SlotDuration returns one recorded slot duration.
func (s *SolutionStore) SlotDuration(priority, slotIndex int) float64 {
	return s.durations[s.position(priority)][slotIndex]
}

func (s *SolutionStore) position(priority int) int {
	pos, ok := s.positions[priority]
	if !ok {
		log.Panicf("priority %d has no recorded slots", priority)
	}

	return pos
}
