package sampler

// DefaultCompletionThreshold is the fraction of the target deck size
// a generated deck must reach to be marked valid. The candidate pool
// may run out before the target is met, so completion is a soft
// criterion, not a hard guarantee.
const DefaultCompletionThreshold = 0.9

// Constraints describes a deck generation request. Zero-valued fields
// are filled from the format defaults by ValidateConstraints.
type Constraints struct {
	// Format name; unknown formats use the 60-card default profile.
	Format string `json:"format"`

	// DeckSize is the target total card count.
	DeckSize int `json:"deckSize"`

	// MaxCopies caps copies of each non-basic-land card.
	MaxCopies int `json:"maxCopies"`

	// MinLands and MaxLands bound the land count; the actual target
	// is drawn uniformly from this range.
	MinLands int `json:"minLands"`
	MaxLands int `json:"maxLands"`

	// CommanderIdentity, when non-empty, restricts every card's color
	// identity to a subset of these colors.
	CommanderIdentity []string `json:"commanderIdentity,omitempty"`

	// MaxManaValue, when set, rejects cards above this mana value.
	MaxManaValue *float64 `json:"maxManaValue,omitempty"`

	// MustInclude cards are seeded into the deck before random fill.
	MustInclude []string `json:"mustInclude,omitempty"`

	// Banned cards are never added.
	Banned []string `json:"banned,omitempty"`

	// CompletionThreshold overrides DefaultCompletionThreshold when
	// positive.
	CompletionThreshold float64 `json:"completionThreshold,omitempty"`

	// RequiresCommander marks singleton formats built around a
	// color-identity-restricted commander.
	RequiresCommander bool `json:"requiresCommander"`
}

// ValidateConstraints fills every unset field from the format
// defaults and always yields a fully populated value.
func ValidateConstraints(input Constraints) Constraints {
	defaults := FormatDefaults(input.Format)

	out := input
	if out.DeckSize <= 0 {
		out.DeckSize = defaults.DeckSize
	}
	if out.MaxCopies <= 0 {
		out.MaxCopies = defaults.MaxCopies
	}
	if out.MinLands <= 0 {
		out.MinLands = defaults.MinLands
	}
	if out.MaxLands <= 0 {
		out.MaxLands = defaults.MaxLands
	}
	if out.MaxLands < out.MinLands {
		out.MaxLands = out.MinLands
	}
	if out.CompletionThreshold <= 0 {
		out.CompletionThreshold = DefaultCompletionThreshold
	}
	if defaults.RequiresCommander {
		out.RequiresCommander = true
	}
	return out
}

// singleton reports whether the constraints describe a one-copy
// format.
func (c Constraints) singleton() bool {
	return c.MaxCopies == 1
}
