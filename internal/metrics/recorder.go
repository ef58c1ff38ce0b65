package metrics

import (
	"sync"

	"github.com/CU-DBMI-Peds/phoenix/pkg/respiratory"
)

// Distribution is a point-in-time copy of the recorded counters.
type Distribution struct {
	// Scores[s] is the number of entries that scored s.
	Scores   [respiratory.MaxScore + 1]uint64
	Entries  uint64
	Batches  uint64
	Rejected uint64
}

// Recorder accumulates score counts across batches.
//
// All exported methods are safe for concurrent use.
type Recorder struct {
	mu sync.Mutex
	d  Distribution
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe counts one scored batch. Values outside [0, MaxScore] are counted
// as entries but not bucketed.
func (r *Recorder) Observe(scores []int) {
	var counts [respiratory.MaxScore + 1]uint64
	for _, s := range scores {
		if s >= 0 && s <= respiratory.MaxScore {
			counts[s]++
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range counts {
		r.d.Scores[i] += c
	}
	r.d.Entries += uint64(len(scores))
	r.d.Batches++
}

// Reject counts a batch refused because its series lengths differed.
func (r *Recorder) Reject() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.Rejected++
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Distribution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d
}
