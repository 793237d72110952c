package cycle

import "log"

// ArrangementMode selects how a cycle's total slot budget is divided
// among its priority levels.
type ArrangementMode int

const (
	// AggressiveDescent grants the whole budget to priority 0 and halves
	// the count for each lower priority, never dropping below one slot.
	// Higher-priority traffic gets proportionally more scheduling
	// flexibility, tapering geometrically.
	AggressiveDescent ArrangementMode = iota

	// EqualDistribution grants every priority budget/levels slots. The
	// division remainder is dropped, not redistributed.
	EqualDistribution

	// MaxCapacity grants every priority the whole budget. Used when the
	// slot budget is not a shared scarce resource across priorities.
	MaxCapacity
)

func (m ArrangementMode) String() string {
	switch m {
	case AggressiveDescent:
		return "aggressive-descent"
	case EqualDistribution:
		return "equal-distribution"
	case MaxCapacity:
		return "max-capacity"
	}

	return "invalid"
}

// ParseArrangementMode converts the string form back into a mode.
func ParseArrangementMode(s string) (ArrangementMode, bool) {
	switch s {
	case "aggressive-descent":
		return AggressiveDescent, true
	case "equal-distribution":
		return EqualDistribution, true
	case "max-capacity":
		return MaxCapacity, true
	}

	return AggressiveDescent, false
}

// AllocateSlots divides a total slot budget among numPriorities priority
// levels according to the arrangement mode. Priority 0 is the highest.
//
// A zero budget yields all-ones under AggressiveDescent because of its
// explicit floor, while EqualDistribution and MaxCapacity propagate
// zeros, which the caller must treat as "priority unused". The asymmetry
// is inherited from the descent rationale and is intentional, as is
// EqualDistribution's truncating division.
func AllocateSlots(
	totalSlots, numPriorities int,
	mode ArrangementMode,
) []int {
	if numPriorities <= 0 {
		log.Panicf("priority level count must be positive, got %d",
			numPriorities)
	}

	counts := make([]int, numPriorities)

	switch mode {
	case AggressiveDescent:
		current := totalSlots
		for i := range counts {
			if current < 1 {
				current = 1
			}

			counts[i] = current
			current /= 2
		}
	case EqualDistribution:
		for i := range counts {
			counts[i] = totalSlots / numPriorities
		}
	case MaxCapacity:
		for i := range counts {
			counts[i] = totalSlots
		}
	default:
		log.Panicf("unknown arrangement mode %d", mode)
	}

	return counts
}
