package sampler

import (
	"sort"
	"strings"

	"github.com/ramonehamilton/deckforge/internal/cards"
)

// DeckEntry is one distinct card in a deck with its copy count.
type DeckEntry struct {
	Card        *cards.Card `json:"card"`
	Count       int         `json:"count"`
	IsCommander bool        `json:"isCommander,omitempty"`
	IsSideboard bool        `json:"isSideboard,omitempty"`
}

// Deck is a generated deck configuration: the entry list, the fully
// resolved constraints it was built under, and computed statistics.
type Deck struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Entries     []DeckEntry `json:"entries"`
	Constraints Constraints `json:"constraints"`
	Stats       Stats       `json:"stats"`

	// Valid reports whether the deck reached the completion
	// threshold of its target size.
	Valid bool `json:"valid"`
}

// ManaCurveBuckets are the histogram buckets for non-land mana
// values, in display order.
var ManaCurveBuckets = []string{"0-1", "2", "3", "4", "5", "6+"}

// CurveBucket returns the histogram bucket for a mana value.
func CurveBucket(manaValue float64) string {
	switch {
	case manaValue <= 1:
		return "0-1"
	case manaValue >= 6:
		return "6+"
	default:
		return ManaCurveBuckets[int(manaValue)-1]
	}
}

// Stats summarizes a deck's composition.
type Stats struct {
	TotalCards  int `json:"totalCards"`
	UniqueCards int `json:"uniqueCards"`

	// Categories counts cards by primary category.
	Categories map[cards.Category]int `json:"categories"`

	LandCount    int `json:"landCount"`
	NonLandCount int `json:"nonLandCount"`

	// ManaCurve is a histogram over ManaCurveBuckets; lands are
	// excluded.
	ManaCurve map[string]int `json:"manaCurve"`

	// Colors is the union of color identities present, in WUBRG
	// order.
	Colors []string `json:"colors"`

	// AverageManaValue is the mean mana value of non-land cards.
	AverageManaValue float64 `json:"averageManaValue"`
}

// wubrgOrder fixes the display order of color letters.
var wubrgOrder = map[string]int{"W": 0, "U": 1, "B": 2, "R": 3, "G": 4, "C": 5}

// ComputeStats calculates statistics over a deck's card multiset.
func ComputeStats(entries []DeckEntry) Stats {
	stats := Stats{
		Categories: make(map[cards.Category]int),
		ManaCurve:  make(map[string]int),
	}
	for _, label := range ManaCurveBuckets {
		stats.ManaCurve[label] = 0
	}

	colorSeen := make(map[string]bool)
	var manaValueSum float64

	for _, entry := range entries {
		card := entry.Card
		stats.TotalCards += entry.Count
		stats.UniqueCards++
		stats.Categories[card.PrimaryCategory()] += entry.Count

		for _, c := range card.ColorIdentity {
			colorSeen[strings.ToUpper(c)] = true
		}

		if card.IsLand() {
			stats.LandCount += entry.Count
			continue
		}
		stats.NonLandCount += entry.Count
		stats.ManaCurve[CurveBucket(card.ManaValue)] += entry.Count
		manaValueSum += card.ManaValue * float64(entry.Count)
	}

	for c := range colorSeen {
		stats.Colors = append(stats.Colors, c)
	}
	sort.Slice(stats.Colors, func(i, j int) bool {
		return wubrgOrder[stats.Colors[i]] < wubrgOrder[stats.Colors[j]]
	})

	if stats.NonLandCount > 0 {
		stats.AverageManaValue = manaValueSum / float64(stats.NonLandCount)
	}

	return stats
}
