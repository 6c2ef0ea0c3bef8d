// Package metrics tracks search and sampling performance statistics.
package metrics

import (
	"math"
	"slices"
	"sync"
	"time"
)

// LatencyTracker keeps a bounded window of recent operation durations
// in a ring buffer. Once the window is full, every new sample
// overwrites the oldest one, so snapshots always describe recent
// behavior rather than the full process lifetime.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	filled  int
}

const defaultWindow = 10000

// NewLatencyTracker creates a tracker holding the most recent window
// samples. A window of zero or less uses the default size.
func NewLatencyTracker(window int) *LatencyTracker {
	if window <= 0 {
		window = defaultWindow
	}
	return &LatencyTracker{samples: make([]time.Duration, window)}
}

// Record stores one operation duration, evicting the oldest sample
// when the window is full.
func (t *LatencyTracker) Record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples[t.next] = d
	t.next = (t.next + 1) % len(t.samples)
	if t.filled < len(t.samples) {
		t.filled++
	}
}

// Count returns the number of samples currently in the window.
func (t *LatencyTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filled
}

// Reset empties the window.
func (t *LatencyTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next = 0
	t.filled = 0
}

// LatencyStats summarizes a latency window in milliseconds.
type LatencyStats struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Snapshot computes summary statistics over the current window. An
// empty window reports zeros.
func (t *LatencyTracker) Snapshot() LatencyStats {
	t.mu.Lock()
	sorted := make([]time.Duration, t.filled)
	copy(sorted, t.samples[:t.filled])
	t.mu.Unlock()

	if len(sorted) == 0 {
		return LatencyStats{}
	}
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	return LatencyStats{
		Mean:  millis(sum) / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		P99:   percentile(sorted, 99),
		Min:   millis(sorted[0]),
		Max:   millis(sorted[len(sorted)-1]),
		Count: len(sorted),
	}
}

// percentile interpolates linearly between the two samples straddling
// the requested rank. The input must be sorted and non-empty.
func percentile(sorted []time.Duration, p float64) float64 {
	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower < 0 {
		lower = 0
	}
	if upper >= len(sorted) {
		upper = len(sorted) - 1
	}
	if lower == upper {
		return millis(sorted[lower])
	}
	frac := rank - float64(lower)
	return millis(sorted[lower])*(1-frac) + millis(sorted[upper])*frac
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
