package monitoring

import (
	"sync"
	"time"

	"github.com/schedlab/tsngen/id"
)

// A SolvePass tracks one pass of the incremental solve, from binding
// through checking to recording.
type SolvePass struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Phase     string    `json:"phase"`
	Outcome   string    `json:"outcome"`
}

func newSolvePass(name string) *SolvePass {
	return &SolvePass{
		ID:        id.UniqueName(),
		Name:      name,
		StartTime: time.Now(),
		Phase:     "created",
	}
}

// EnterPhase records the phase the pass is currently in.
func (p *SolvePass) EnterPhase(phase string) {
	p.Lock()
	defer p.Unlock()

	p.Phase = phase
}

// Complete marks the pass finished with the solver's outcome.
func (p *SolvePass) Complete(outcome string) {
	p.Lock()
	defer p.Unlock()

	p.Phase = "complete"
	p.Outcome = outcome
}
