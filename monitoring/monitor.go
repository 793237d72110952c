// Package monitoring turns a schedule-generation run into a small web
// server, so long incremental solves (cycle by cycle, port by port) can
// be inspected while they run.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/schedlab/tsngen/cycle"
)

// Monitor serves the state of registered cycles and solve passes over
// HTTP.
type Monitor struct {
	portNumber  int
	openBrowser bool

	cycles []*cycle.Cycle

	passesLock sync.Mutex
	passes     []*SolvePass
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor in a browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterCycle registers a cycle to be monitored.
func (m *Monitor) RegisterCycle(c *cycle.Cycle) {
	m.cycles = append(m.cycles, c)
}

// CreateSolvePass adds a tracker for one solving pass.
func (m *Monitor) CreateSolvePass(name string) *SolvePass {
	m.passesLock.Lock()
	defer m.passesLock.Unlock()

	p := newSolvePass(name)
	m.passes = append(m.passes, p)

	return p
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/cycles", m.listCycles)
	r.HandleFunc("/api/cycle/{name}", m.cycleDetails)
	r.HandleFunc("/api/progress", m.listSolvePasses)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring schedule generation with %s\n", url)

	if m.openBrowser {
		// Best effort; headless environments have no browser.
		_ = browser.OpenURL(url)
	}

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

type cycleSummary struct {
	Instance       int     `json:"instance"`
	Name           string  `json:"name"`
	Port           string  `json:"port"`
	UpperBound     float64 `json:"upper_bound"`
	LowerBound     float64 `json:"lower_bound"`
	Duration       float64 `json:"duration"`
	Start          float64 `json:"start"`
	PriorityLevels int     `json:"priority_levels"`
	SlotBudget     int     `json:"slot_budget"`
}

type slotAssignment struct {
	Priority  int       `json:"priority"`
	Starts    []float64 `json:"starts"`
	Durations []float64 `json:"durations"`
}

type cycleDetail struct {
	cycleSummary
	Arrangement      string           `json:"arrangement"`
	SlotsPerPriority []int            `json:"slots_per_priority"`
	RecordedSlots    []slotAssignment `json:"recorded_slots"`
}

func summarize(c *cycle.Cycle) cycleSummary {
	return cycleSummary{
		Instance:       c.Instance(),
		Name:           c.Name(),
		Port:           c.PortName(),
		UpperBound:     c.UpperBoundCycleTime(),
		LowerBound:     c.LowerBoundCycleTime(),
		Duration:       c.CycleDuration(),
		Start:          c.CycleStart(),
		PriorityLevels: c.PriorityLevels(),
		SlotBudget:     c.SlotBudget(),
	}
}

func (m *Monitor) listCycles(w http.ResponseWriter, _ *http.Request) {
	summaries := make([]cycleSummary, 0, len(m.cycles))
	for _, c := range m.cycles {
		summaries = append(summaries, summarize(c))
	}

	writeJSON(w, summaries)
}

func (m *Monitor) cycleDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	c := m.findCycle(name)
	if c == nil {
		http.Error(w, "cycle "+name+" not found", http.StatusNotFound)
		return
	}

	detail := cycleDetail{
		cycleSummary:     summarize(c),
		Arrangement:      c.Arrangement().String(),
		SlotsPerPriority: c.SlotsPerPriority(),
		RecordedSlots:    []slotAssignment{},
	}

	for _, priority := range c.Solution().Recorded() {
		detail.RecordedSlots = append(detail.RecordedSlots, slotAssignment{
			Priority:  priority,
			Starts:    c.Solution().SlotStarts(priority),
			Durations: c.Solution().SlotDurations(priority),
		})
	}

	writeJSON(w, detail)
}

func (m *Monitor) listSolvePasses(w http.ResponseWriter, _ *http.Request) {
	m.passesLock.Lock()
	defer m.passesLock.Unlock()

	writeJSON(w, m.passes)
}

func (m *Monitor) findCycle(name string) *cycle.Cycle {
	for _, c := range m.cycles {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
