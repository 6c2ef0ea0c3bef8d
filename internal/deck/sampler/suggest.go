package sampler

import "fmt"

// Suggestion severities. The current rule set is advisory only and
// never emits SeverityError; IsValid therefore tracks hard rule
// violations if stricter rules are added later.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Curve-shape thresholds used by the advisory rules.
const (
	lowCurveMinShare = 0.30
	topEndMaxShare   = 0.25
	maxAverageMV     = 3.5
)

// Suggestion is one rule-based finding about a deck.
type Suggestion struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// Advice is the result of a suggestion pass over a deck.
type Advice struct {
	Stats       Stats        `json:"stats"`
	Suggestions []Suggestion `json:"suggestions"`

	// IsValid is true when no error-severity finding exists.
	IsValid bool `json:"isValid"`
}

// SuggestImprovements runs the advisory rules against a deck.
func (s *Sampler) SuggestImprovements(deck *Deck, input Constraints) *Advice {
	cons := ValidateConstraints(input)
	stats := deck.Stats
	var suggestions []Suggestion

	if stats.LandCount < cons.MinLands {
		suggestions = append(suggestions, Suggestion{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Deck has %d lands, below the minimum of %d", stats.LandCount, cons.MinLands),
			Action:   fmt.Sprintf("Add %d more lands", cons.MinLands-stats.LandCount),
		})
	} else if stats.LandCount > cons.MaxLands {
		suggestions = append(suggestions, Suggestion{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Deck has %d lands, above the maximum of %d", stats.LandCount, cons.MaxLands),
			Action:   fmt.Sprintf("Cut %d lands", stats.LandCount-cons.MaxLands),
		})
	}

	if stats.NonLandCount > 0 {
		lowCurve := stats.ManaCurve["0-1"] + stats.ManaCurve["2"]
		if share := float64(lowCurve) / float64(stats.NonLandCount); share < lowCurveMinShare {
			suggestions = append(suggestions, Suggestion{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Only %.0f%% of non-land cards cost 2 or less", share*100),
				Action:   "Add more cheap spells to improve early plays",
			})
		}

		topEnd := stats.ManaCurve["5"] + stats.ManaCurve["6+"]
		if share := float64(topEnd) / float64(stats.NonLandCount); share > topEndMaxShare {
			suggestions = append(suggestions, Suggestion{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("%.0f%% of non-land cards cost 5 or more", share*100),
				Action:   "Trim expensive spells to smooth the curve",
			})
		}

		if stats.AverageManaValue > maxAverageMV {
			suggestions = append(suggestions, Suggestion{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("Average mana value is %.2f", stats.AverageManaValue),
				Action:   "Lower the curve toward an average of 3.0 or less",
			})
		}
	}

	advice := &Advice{
		Stats:       stats,
		Suggestions: suggestions,
		IsValid:     true,
	}
	for _, sg := range suggestions {
		if sg.Severity == SeverityError {
			advice.IsValid = false
			break
		}
	}
	return advice
}
