// Package diagnostic records per-phase wall-clock cost, the only observable
// output spec.md's external interfaces call for beyond the simulation state
// itself. It is deliberately minimal: no metrics library appears anywhere
// in the example pack this module was grounded on, so this stays on the
// standard library rather than reaching for one in the ecosystem at large.
package diagnostic

import (
	"sync"
	"time"
)

// Sample is a rolling summary of the durations recorded under one name.
type Sample struct {
	Last  time.Duration
	Mean  time.Duration
	Count uint64
}

func (s *Sample) record(d time.Duration) {
	s.Count++
	s.Last = d
	// Incremental mean avoids retaining the full history of samples.
	s.Mean += (d - s.Mean) / time.Duration(s.Count)
}

// Store is a named counter registry, one Sample per phase. The zero value
// is not usable; construct with NewStore.
type Store struct {
	mu      sync.Mutex
	samples map[string]*Sample
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{samples: make(map[string]*Sample)}
}

// Record adds one duration observation under name.
func (s *Store) Record(name string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample, ok := s.samples[name]
	if !ok {
		sample = &Sample{}
		s.samples[name] = sample
	}
	sample.record(d)
}

// Measure runs fn, timing it and recording the result under name. It
// mirrors the reference implementation's diagnostic::measure combinator,
// which wraps a phase system with an Instant-based timer.
func (s *Store) Measure(name string, fn func()) {
	start := time.Now()
	fn()
	s.Record(name, time.Since(start))
}

// Snapshot returns a copy of every recorded Sample, safe to read without
// holding the Store's lock.
func (s *Store) Snapshot() map[string]Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Sample, len(s.samples))
	for name, sample := range s.samples {
		out[name] = *sample
	}
	return out
}
