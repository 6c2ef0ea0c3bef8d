package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// EngineMetrics tracks performance metrics for the search index and deck sampler.
type EngineMetrics struct {
	SearchLatency     *LatencyTracker
	IndexBuildLatency *LatencyTracker
	DeckGenLatency    *LatencyTracker
	ExportLatency     *LatencyTracker

	// Counters (atomic operations for thread safety)
	SearchesServed atomic.Uint64
	CardsIndexed   atomic.Uint64
	IndexRebuilds  atomic.Uint64
	DecksGenerated atomic.Uint64
	DecksValid     atomic.Uint64
	DecksExported  atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
	mu        sync.RWMutex
}

// NewEngineMetrics creates a new metrics collector.
func NewEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		SearchLatency:     NewLatencyTracker(10000),
		IndexBuildLatency: NewLatencyTracker(1000),
		DeckGenLatency:    NewLatencyTracker(10000),
		ExportLatency:     NewLatencyTracker(10000),
		startTime:         time.Now(),
	}
}

// RecordSearchDuration records the time taken to serve a card search.
func (m *EngineMetrics) RecordSearchDuration(d time.Duration) {
	m.SearchLatency.Record(d)
	m.SearchesServed.Add(1)
}

// RecordIndexBuild records the duration of an index rebuild and the number of
// cards it covered.
func (m *EngineMetrics) RecordIndexBuild(d time.Duration, cardCount int) {
	m.IndexBuildLatency.Record(d)
	m.IndexRebuilds.Add(1)
	m.CardsIndexed.Store(uint64(cardCount))
}

// RecordDeckGeneration records the time taken to generate a deck and whether
// it satisfied its constraints.
func (m *EngineMetrics) RecordDeckGeneration(d time.Duration, valid bool) {
	m.DeckGenLatency.Record(d)
	m.DecksGenerated.Add(1)
	if valid {
		m.DecksValid.Add(1)
	}
}

// RecordExportDuration records the time taken to export a deck.
func (m *EngineMetrics) RecordExportDuration(d time.Duration) {
	m.ExportLatency.Record(d)
	m.DecksExported.Add(1)
}

// EngineStats contains the computed statistics from metrics.
type EngineStats struct {
	// Latency statistics (milliseconds)
	SearchLatency     LatencyStats `json:"search_latency"`
	IndexBuildLatency LatencyStats `json:"index_build_latency"`
	DeckGenLatency    LatencyStats `json:"deck_gen_latency"`
	ExportLatency     LatencyStats `json:"export_latency"`

	// Counters
	SearchesServed uint64  `json:"searches_served"`
	CardsIndexed   uint64  `json:"cards_indexed"`
	IndexRebuilds  uint64  `json:"index_rebuilds"`
	DecksGenerated uint64  `json:"decks_generated"`
	DecksValid     uint64  `json:"decks_valid"`
	DecksExported  uint64  `json:"decks_exported"`
	DeckValidRate  float64 `json:"deck_valid_rate"` // percentage

	// System info
	Uptime string `json:"uptime"` // human-readable uptime
}

// GetStats returns a snapshot of the current statistics.
func (m *EngineMetrics) GetStats() *EngineStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	generated := m.DecksGenerated.Load()
	valid := m.DecksValid.Load()

	validRate := 0.0
	if generated > 0 {
		validRate = (float64(valid) / float64(generated)) * 100
	}

	uptime := time.Since(m.startTime).Round(time.Second).String()

	return &EngineStats{
		SearchLatency:     m.SearchLatency.Snapshot(),
		IndexBuildLatency: m.IndexBuildLatency.Snapshot(),
		DeckGenLatency:    m.DeckGenLatency.Snapshot(),
		ExportLatency:     m.ExportLatency.Snapshot(),
		SearchesServed:    m.SearchesServed.Load(),
		CardsIndexed:      m.CardsIndexed.Load(),
		IndexRebuilds:     m.IndexRebuilds.Load(),
		DecksGenerated:    generated,
		DecksValid:        valid,
		DecksExported:     m.DecksExported.Load(),
		DeckValidRate:     validRate,
		Uptime:            uptime,
	}
}

// Reset clears all metrics.
func (m *EngineMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchLatency.Reset()
	m.IndexBuildLatency.Reset()
	m.DeckGenLatency.Reset()
	m.ExportLatency.Reset()

	m.SearchesServed.Store(0)
	m.CardsIndexed.Store(0)
	m.IndexRebuilds.Store(0)
	m.DecksGenerated.Store(0)
	m.DecksValid.Store(0)
	m.DecksExported.Store(0)

	m.startTime = time.Now()
}
