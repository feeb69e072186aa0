// Package timing keeps per-operation duration statistics.
package timing

import (
	"sync"
	"time"
)

// Stats summarises the recorded durations of one operation.
type Stats struct {
	Count   int
	Total   time.Duration
	Average time.Duration
	Max     time.Duration
	Last    time.Duration
}

type Tracker struct {
	timings map[string]*Stats
	mu      sync.RWMutex
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string]*Stats),
		now:     time.Now,
	}
}

// Start begins timing operation; calling the returned func records it and
// returns the elapsed time.
func (tt *Tracker) Start(operation string) func() time.Duration {
	start := tt.now()
	return func() time.Duration {
		d := tt.now().Sub(start)
		tt.Record(operation, d)
		return d
	}
}

func (tt *Tracker) Record(operation string, d time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	s := tt.timings[operation]
	if s == nil {
		s = &Stats{}
		tt.timings[operation] = s
	}
	s.Count++
	s.Total += d
	s.Average = s.Total / time.Duration(s.Count)
	s.Last = d
	if d > s.Max {
		s.Max = d
	}
}

func (tt *Tracker) Stats(operation string) Stats {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	if s := tt.timings[operation]; s != nil {
		return *s
	}
	return Stats{}
}
