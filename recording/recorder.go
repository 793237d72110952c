// Package recording persists solved schedules. A Recorder writes cycles
// and their materialized slot assignments into a SQLite database; a
// Reader loads them back so a later run can re-assert them as fixed
// constraints. Only plain numeric cycle state is persisted — symbolic
// bindings are rebuilt fresh in each new solver context.
package recording

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"

	"github.com/schedlab/tsngen/cycle"
	"github.com/schedlab/tsngen/id"
)

// Recorder is a backend that can record solved cycles.
type Recorder interface {
	// RecordCycle buffers a cycle and its recorded slot assignments.
	RecordCycle(c *cycle.Cycle)

	// Flush writes all buffered rows into the database.
	Flush()

	// Close flushes and releases the database.
	Close()
}

// NewRecorder creates a Recorder writing to path + ".sqlite3". An empty
// path picks a unique name. An existing file is refused rather than
// appended to.
func NewRecorder(path string) Recorder {
	if path == "" {
		path = "tsngen_schedule_" + id.UniqueName()
	}

	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Schedule recording created: %s\n", filename)

	w := &sqliteWriter{db: db}
	w.createTables()

	atexit.Register(func() { w.Flush() })

	return w
}

type cycleRow struct {
	instance        int
	name            string
	port            string
	upperBound      float64
	lowerBound      float64
	firstStart      float64
	maxSlotDuration float64
	duration        float64
	start           float64
	wrap            bool
	priorityLevels  int
	slotBudget      int
	arrangement     string
}

type slotRow struct {
	instance  int
	priority  int
	slotIndex int
	start     float64
	duration  float64
}

type sqliteWriter struct {
	db *sql.DB

	cycles []cycleRow
	slots  []slotRow
}

func (w *sqliteWriter) createTables() {
	_, err := w.db.Exec(`
		CREATE TABLE cycles (
			instance INTEGER PRIMARY KEY,
			name TEXT,
			port TEXT,
			upper_bound REAL,
			lower_bound REAL,
			first_start REAL,
			max_slot_duration REAL,
			duration REAL,
			start REAL,
			wrap INTEGER,
			priority_levels INTEGER,
			slot_budget INTEGER,
			arrangement TEXT
		);
		CREATE TABLE slots (
			instance INTEGER,
			priority INTEGER,
			slot_index INTEGER,
			start REAL,
			duration REAL
		);
	`)
	if err != nil {
		panic(err)
	}
}

func (w *sqliteWriter) RecordCycle(c *cycle.Cycle) {
	w.cycles = append(w.cycles, cycleRow{
		instance:        c.Instance(),
		name:            c.Name(),
		port:            c.PortName(),
		upperBound:      c.UpperBoundCycleTime(),
		lowerBound:      c.LowerBoundCycleTime(),
		firstStart:      c.FirstCycleStart(),
		maxSlotDuration: c.MaximumSlotDuration(),
		duration:        c.CycleDuration(),
		start:           c.CycleStart(),
		wrap:            c.WrapTransmission(),
		priorityLevels:  c.PriorityLevels(),
		slotBudget:      c.SlotBudget(),
		arrangement:     c.Arrangement().String(),
	})

	solution := c.Solution()
	for _, priority := range solution.Recorded() {
		starts := solution.SlotStarts(priority)
		durations := solution.SlotDurations(priority)

		for j := range starts {
			w.slots = append(w.slots, slotRow{
				instance:  c.Instance(),
				priority:  priority,
				slotIndex: j,
				start:     starts[j],
				duration:  durations[j],
			})
		}
	}
}

func (w *sqliteWriter) Flush() {
	if len(w.cycles) == 0 && len(w.slots) == 0 {
		return
	}

	tx, err := w.db.Begin()
	if err != nil {
		panic(err)
	}

	w.flushCycles(tx)
	w.flushSlots(tx)

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	w.cycles = nil
	w.slots = nil
}

func (w *sqliteWriter) flushCycles(tx *sql.Tx) {
	stmt, err := tx.Prepare(`
		INSERT INTO cycles VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, r := range w.cycles {
		_, err := stmt.Exec(
			r.instance, r.name, r.port,
			r.upperBound, r.lowerBound, r.firstStart, r.maxSlotDuration,
			r.duration, r.start, r.wrap,
			r.priorityLevels, r.slotBudget, r.arrangement,
		)
		if err != nil {
			panic(err)
		}
	}
}

func (w *sqliteWriter) flushSlots(tx *sql.Tx) {
	stmt, err := tx.Prepare(`INSERT INTO slots VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, r := range w.slots {
		_, err := stmt.Exec(
			r.instance, r.priority, r.slotIndex, r.start, r.duration)
		if err != nil {
			panic(err)
		}
	}
}

func (w *sqliteWriter) Close() {
	w.Flush()

	if err := w.db.Close(); err != nil {
		log.Printf("closing schedule recording: %v", err)
	}
}
