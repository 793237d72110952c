package recording

import (
	"database/sql"
	"fmt"

	"github.com/schedlab/tsngen/cycle"
	"github.com/schedlab/tsngen/id"
)

// CycleRecord is one persisted cycle, with plain numeric state only.
type CycleRecord struct {
	Instance        int
	Name            string
	Port            string
	UpperBound      float64
	LowerBound      float64
	FirstStart      float64
	MaxSlotDuration float64
	Duration        float64
	Start           float64
	Wrap            bool
	PriorityLevels  int
	SlotBudget      int
	Arrangement     string
}

// Restore rebuilds the cycle the record was taken from, including its
// instance number and solved values. Symbolic bindings are not restored;
// they must be rebuilt in a new solver context.
func (r CycleRecord) Restore() (*cycle.Cycle, error) {
	mode, ok := cycle.ParseArrangementMode(r.Arrangement)
	if !ok {
		return nil, fmt.Errorf("unknown arrangement mode %q", r.Arrangement)
	}

	c := cycle.MakeBuilder().
		WithIDSource(id.NewSource()).
		WithBounds(r.UpperBound, r.LowerBound).
		WithFirstCycleStart(r.FirstStart).
		WithMaximumSlotDuration(r.MaxSlotDuration).
		WithPortName(r.Port).
		WithPriorityLevels(r.PriorityLevels).
		WithSlotBudget(r.SlotBudget).
		WithArrangement(mode).
		Build()

	c.SetInstance(r.Instance)
	c.SetCycleDuration(r.Duration)
	c.SetCycleStart(r.Start)
	c.SetWrapTransmission(r.Wrap)

	return c, nil
}

// Reader reads a schedule recording back.
type Reader struct {
	db *sql.DB
}

// NewReader opens a recording file produced by a Recorder.
func NewReader(dbFilename string) (*Reader, error) {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		return nil, err
	}

	return &Reader{db: db}, nil
}

// Cycles returns every persisted cycle, in instance order.
func (r *Reader) Cycles() ([]CycleRecord, error) {
	rows, err := r.db.Query(`
		SELECT instance, name, port,
			upper_bound, lower_bound, first_start, max_slot_duration,
			duration, start, wrap,
			priority_levels, slot_budget, arrangement
		FROM cycles ORDER BY instance`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CycleRecord
	for rows.Next() {
		var rec CycleRecord
		err := rows.Scan(
			&rec.Instance, &rec.Name, &rec.Port,
			&rec.UpperBound, &rec.LowerBound,
			&rec.FirstStart, &rec.MaxSlotDuration,
			&rec.Duration, &rec.Start, &rec.Wrap,
			&rec.PriorityLevels, &rec.SlotBudget, &rec.Arrangement,
		)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Solution rebuilds the solution store of one cycle. Slot rows were
// written in record order, so the store's priority ordering survives the
// round trip.
func (r *Reader) Solution(instance int) (*cycle.SolutionStore, error) {
	rows, err := r.db.Query(`
		SELECT priority, start, duration
		FROM slots WHERE instance = ? ORDER BY rowid`, instance)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []int
	starts := make(map[int][]float64)
	durations := make(map[int][]float64)

	for rows.Next() {
		var priority int
		var start, duration float64
		if err := rows.Scan(&priority, &start, &duration); err != nil {
			return nil, err
		}

		if _, seen := starts[priority]; !seen {
			order = append(order, priority)
		}

		starts[priority] = append(starts[priority], start)
		durations[priority] = append(durations[priority], duration)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	store := &cycle.SolutionStore{}
	for _, priority := range order {
		store.RecordSlot(priority, starts[priority], durations[priority])
	}

	return store, nil
}

// Close releases the database.
func (r *Reader) Close() error {
	return r.db.Close()
}
