package metrics

import (
	"testing"
	"time"
)

func TestLatencyTrackerEmpty(t *testing.T) {
	lt := NewLatencyTracker(100)
	stats := lt.Snapshot()
	if stats.Mean != 0 || stats.P95 != 0 || stats.Min != 0 || stats.Max != 0 {
		t.Error("empty tracker should report zeros")
	}
	if stats.Count != 0 {
		t.Errorf("expected 0 samples, got %d", stats.Count)
	}
}

func TestLatencyTrackerStatistics(t *testing.T) {
	lt := NewLatencyTracker(100)
	for _, ms := range []int{10, 20, 30, 40} {
		lt.Record(time.Duration(ms) * time.Millisecond)
	}

	stats := lt.Snapshot()
	if stats.Mean != 25 {
		t.Errorf("expected mean 25, got %v", stats.Mean)
	}
	if stats.Min != 10 {
		t.Errorf("expected min 10, got %v", stats.Min)
	}
	if stats.Max != 40 {
		t.Errorf("expected max 40, got %v", stats.Max)
	}
	// p50 of [10 20 30 40] interpolates between 20 and 30
	if stats.P50 != 25 {
		t.Errorf("expected p50 25, got %v", stats.P50)
	}
	if stats.Count != 4 {
		t.Errorf("expected 4 samples, got %d", stats.Count)
	}
}

func TestLatencyTrackerEvictsOldest(t *testing.T) {
	lt := NewLatencyTracker(4)
	for _, ms := range []int{100, 200, 1, 2, 3, 4} {
		lt.Record(time.Duration(ms) * time.Millisecond)
	}

	stats := lt.Snapshot()
	if stats.Count != 4 {
		t.Errorf("expected window of 4 samples, got %d", stats.Count)
	}
	// The 100ms and 200ms samples were overwritten.
	if stats.Max != 4 {
		t.Errorf("expected max 4 after eviction, got %v", stats.Max)
	}
	if stats.Min != 1 {
		t.Errorf("expected min 1, got %v", stats.Min)
	}
}

func TestLatencyTrackerReset(t *testing.T) {
	lt := NewLatencyTracker(10)
	lt.Record(5 * time.Millisecond)
	lt.Reset()
	if lt.Count() != 0 {
		t.Errorf("expected 0 samples after reset, got %d", lt.Count())
	}
}

func TestEngineMetricsStats(t *testing.T) {
	m := NewEngineMetrics()
	m.RecordSearchDuration(2 * time.Millisecond)
	m.RecordIndexBuild(50*time.Millisecond, 1234)
	m.RecordDeckGeneration(3*time.Millisecond, true)
	m.RecordDeckGeneration(4*time.Millisecond, false)
	m.RecordExportDuration(time.Millisecond)

	stats := m.GetStats()
	if stats.SearchesServed != 1 {
		t.Errorf("expected 1 search, got %d", stats.SearchesServed)
	}
	if stats.CardsIndexed != 1234 {
		t.Errorf("expected 1234 cards indexed, got %d", stats.CardsIndexed)
	}
	if stats.DecksGenerated != 2 || stats.DecksValid != 1 {
		t.Errorf("expected 2 generated / 1 valid, got %d / %d", stats.DecksGenerated, stats.DecksValid)
	}
	if stats.DeckValidRate != 50 {
		t.Errorf("expected 50%% valid rate, got %v", stats.DeckValidRate)
	}
	if stats.DeckGenLatency.Count != 2 {
		t.Errorf("expected 2 deck gen samples, got %d", stats.DeckGenLatency.Count)
	}

	m.Reset()
	if m.GetStats().DecksGenerated != 0 {
		t.Error("expected counters cleared after reset")
	}
}
