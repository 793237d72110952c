// Package cycle models the timing structure of one repeating TSN
// transmission cycle: its duration bounds, the partition of its slot
// budget across traffic priorities, the symbolic unknowns that expose
// slot placement to an external constraint solver, and the concrete slot
// assignments materialized from a solved model.
//
// A cycle never references its time slots directly. Constraint-assembly
// code addresses a slot through a (priority, slot index) coordinate, and
// solved results are stored behind a priority-to-position indirection so
// that priorities with no allocated slots never introduce placeholder
// entries. Placeholders would otherwise leak into guard-band and capacity
// constraints downstream.
package cycle

import (
	"log"
	"strconv"

	"github.com/schedlab/tsngen/id"
)

// A Cycle is one repeating transmission window on a physical port. Its
// bounds and capacity parameters are fixed at construction; the solved
// duration and start are filled in after a successful solve.
type Cycle struct {
	instance int
	name     string
	portName string

	upperBoundCycleTime float64
	lowerBoundCycleTime float64
	firstCycleStart     float64
	maximumSlotDuration float64

	cycleDuration float64
	cycleStart    float64

	wrapTransmission bool

	numPriorities    int
	slotBudget       int
	arrangement      ArrangementMode
	slotsPerPriority []int

	solution SolutionStore
}

// Instance returns the cycle's instance number.
func (c *Cycle) Instance() int {
	return c.instance
}

// SetInstance overrides the instance number. It exists to restore a
// persisted cycle; the caller must keep instance numbers unique within a
// solving session.
func (c *Cycle) SetInstance(instance int) {
	c.instance = instance
	c.name = "cycle" + strconv.Itoa(instance)
}

// Name returns the display name used to derive symbolic variable names.
func (c *Cycle) Name() string {
	return c.name
}

// PortName returns the name of the port this cycle belongs to.
func (c *Cycle) PortName() string {
	return c.portName
}

func (c *Cycle) SetPortName(portName string) {
	c.portName = portName
}

// UpperBoundCycleTime returns the maximum allowed cycle duration.
func (c *Cycle) UpperBoundCycleTime() float64 {
	return c.upperBoundCycleTime
}

func (c *Cycle) SetUpperBoundCycleTime(t float64) {
	c.upperBoundCycleTime = t
}

// LowerBoundCycleTime returns the minimum allowed cycle duration.
func (c *Cycle) LowerBoundCycleTime() float64 {
	return c.lowerBoundCycleTime
}

func (c *Cycle) SetLowerBoundCycleTime(t float64) {
	c.lowerBoundCycleTime = t
}

// FirstCycleStart returns the offset of repetition zero.
func (c *Cycle) FirstCycleStart() float64 {
	return c.firstCycleStart
}

func (c *Cycle) SetFirstCycleStart(t float64) {
	c.firstCycleStart = t
}

// MaximumSlotDuration returns the per-slot duration upper bound.
func (c *Cycle) MaximumSlotDuration() float64 {
	return c.maximumSlotDuration
}

func (c *Cycle) SetMaximumSlotDuration(d float64) {
	c.maximumSlotDuration = d
}

// CycleDuration returns the solver-chosen duration. Reading it before a
// solve is undefined; the core does not gate access.
func (c *Cycle) CycleDuration() float64 {
	return c.cycleDuration
}

// SetCycleDuration records the duration chosen by the solver.
func (c *Cycle) SetCycleDuration(d float64) {
	c.cycleDuration = d
}

// CycleStart returns the solver-chosen start. It is -1 until set.
func (c *Cycle) CycleStart() float64 {
	return c.cycleStart
}

// SetCycleStart records the start chosen by the solver.
func (c *Cycle) SetCycleStart(t float64) {
	c.cycleStart = t
}

// WrapTransmission reports whether a transmission on this cycle may wrap
// across the cycle boundary into the next repetition.
func (c *Cycle) WrapTransmission() bool {
	return c.wrapTransmission
}

func (c *Cycle) SetWrapTransmission(wrap bool) {
	c.wrapTransmission = wrap
}

// UseTransmissionWrapping enables transmission wrapping. The flip is
// one-way; constraint-assembly code reads the flag, nothing else happens
// here.
func (c *Cycle) UseTransmissionWrapping() {
	c.wrapTransmission = true
}

// PriorityLevels returns the number of distinct traffic priorities.
func (c *Cycle) PriorityLevels() int {
	return c.numPriorities
}

// SlotBudget returns the total slot budget before allocation.
func (c *Cycle) SlotBudget() int {
	return c.slotBudget
}

// SetSlotBudget stores the total slot budget and reapplies the
// arrangement policy to produce the per-priority slot counts.
func (c *Cycle) SetSlotBudget(totalSlots int) {
	c.slotBudget = totalSlots
	c.slotsPerPriority = AllocateSlots(
		totalSlots, c.numPriorities, c.arrangement)
}

// Arrangement returns the slot arrangement policy.
func (c *Cycle) Arrangement() ArrangementMode {
	return c.arrangement
}

// SetArrangement changes the arrangement policy. The new policy takes
// effect on the next SetSlotBudget call.
func (c *Cycle) SetArrangement(mode ArrangementMode) {
	c.arrangement = mode
}

// SlotsPerPriority returns the allocated slot count for every priority.
func (c *Cycle) SlotsPerPriority() []int {
	return c.slotsPerPriority
}

// SlotsFor returns the allocated slot count for one priority. Priorities
// outside [0, PriorityLevels) panic.
func (c *Cycle) SlotsFor(priority int) int {
	if priority < 0 || priority >= len(c.slotsPerPriority) {
		log.Panicf("priority %d outside the %d allocated priority levels",
			priority, len(c.slotsPerPriority))
	}

	return c.slotsPerPriority[priority]
}

// Solution returns the cycle's solved slot assignments.
func (c *Cycle) Solution() *SolutionStore {
	return &c.solution
}

// Builder builds cycles.
type Builder struct {
	ids *id.Source

	upperBound    float64
	lowerBound    float64
	firstStart    float64
	maxSlot       float64
	portName      string
	numPriorities int
	slotBudget    int
	arrangement   ArrangementMode
}

// MakeBuilder creates a Builder with the default capacity parameters:
// 8 priority levels, a slot budget of 1, and AggressiveDescent
// arrangement.
func MakeBuilder() Builder {
	return Builder{
		numPriorities: 8,
		slotBudget:    1,
		arrangement:   AggressiveDescent,
	}
}

// WithIDSource sets the source of instance numbers. All cycles bound into
// one solving session must share a source.
func (b Builder) WithIDSource(s *id.Source) Builder {
	b.ids = s
	return b
}

// WithBounds sets the inclusive range the solved duration must satisfy.
func (b Builder) WithBounds(upper, lower float64) Builder {
	b.upperBound = upper
	b.lowerBound = lower
	return b
}

// WithFirstCycleStart sets the offset of repetition zero.
func (b Builder) WithFirstCycleStart(t float64) Builder {
	b.firstStart = t
	return b
}

// WithMaximumSlotDuration sets the per-slot duration upper bound.
func (b Builder) WithMaximumSlotDuration(d float64) Builder {
	b.maxSlot = d
	return b
}

// WithPortName sets the name of the port the cycle belongs to.
func (b Builder) WithPortName(name string) Builder {
	b.portName = name
	return b
}

// WithPriorityLevels sets the number of distinct traffic priorities.
func (b Builder) WithPriorityLevels(n int) Builder {
	b.numPriorities = n
	return b
}

// WithSlotBudget sets the total slot budget.
func (b Builder) WithSlotBudget(n int) Builder {
	b.slotBudget = n
	return b
}

// WithArrangement sets the slot arrangement policy.
func (b Builder) WithArrangement(mode ArrangementMode) Builder {
	b.arrangement = mode
	return b
}

// Build creates the cycle. Leaving the bounds at zero builds an
// under-constrained cycle; the caller must supply bounds before solving.
func (b Builder) Build() *Cycle {
	if b.ids == nil {
		log.Panic("an id source is required to build a cycle")
	}

	if b.lowerBound > b.upperBound {
		log.Panicf("lower bound %f exceeds upper bound %f",
			b.lowerBound, b.upperBound)
	}

	if b.maxSlot <= 0 {
		log.Panicf("maximum slot duration must be positive, got %f",
			b.maxSlot)
	}

	if b.numPriorities <= 0 {
		log.Panicf("priority level count must be positive, got %d",
			b.numPriorities)
	}

	c := &Cycle{
		instance:            b.ids.Next(),
		portName:            b.portName,
		upperBoundCycleTime: b.upperBound,
		lowerBoundCycleTime: b.lowerBound,
		firstCycleStart:     b.firstStart,
		maximumSlotDuration: b.maxSlot,
		cycleStart:          -1,
		numPriorities:       b.numPriorities,
		arrangement:         b.arrangement,
	}
	c.name = "cycle" + strconv.Itoa(c.instance)
	c.SetSlotBudget(b.slotBudget)

	return c
}
