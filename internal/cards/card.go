// Package cards defines the normalized card record consumed by the
// search index and the deck sampler.
package cards

import (
	"strconv"
	"strings"
	"time"
)

// Color letters used for colors and color identity. A card with none
// of the five is colorless, represented by the sentinel "C".
const (
	ColorWhite = "W"
	ColorBlue  = "U"
	ColorBlack = "B"
	ColorRed   = "R"
	ColorGreen = "G"
	Colorless  = "C"
)

// Card represents one fully parsed, denormalized card printing.
// Records are value-like snapshots: the index and sampler never
// mutate them after construction.
type Card struct {
	// Identifiers. ID is unique per printing; OracleID is shared by
	// all printings of the same functional card.
	ID       string `json:"id"`
	OracleID string `json:"oracle_id"`

	Name       string    `json:"name"`
	ReleasedAt time.Time `json:"released_at"`
	SetCode    string    `json:"set"`
	SetName    string    `json:"set_name,omitempty"`
	Artist     string    `json:"artist,omitempty"`

	// Type line and its decomposition (split on the em-dash separator).
	TypeLine   string   `json:"type_line"`
	Supertypes []string `json:"supertypes"`
	Types      []string `json:"types"`
	Subtypes   []string `json:"subtypes"`

	// Mana information
	ManaCost  *string `json:"mana_cost,omitempty"`
	ManaValue float64 `json:"mana_value"`

	// Colors and identity (subsets of WUBRG; empty means colorless)
	Colors        []string `json:"colors"`
	ColorIdentity []string `json:"color_identity"`

	// Rules text and derived keywords (declared plus text-detected)
	OracleText *string  `json:"oracle_text,omitempty"`
	Keywords   []string `json:"keywords"`

	// Power/Toughness (for creatures; may be non-numeric, e.g. "*")
	Power     *string `json:"power,omitempty"`
	Toughness *string `json:"toughness,omitempty"`

	Rarity string `json:"rarity"` // "common", "uncommon", "rare", "mythic"

	// Legalities maps format name to whether the card is legal there.
	Legalities map[string]bool `json:"legalities,omitempty"`

	// Faces of multi-faced cards (transform, modal, split, ...)
	Faces []CardFace `json:"card_faces,omitempty"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string  `json:"name"`
	TypeLine   string  `json:"type_line"`
	ManaCost   *string `json:"mana_cost,omitempty"`
	OracleText *string `json:"oracle_text,omitempty"`
	Power      *string `json:"power,omitempty"`
	Toughness  *string `json:"toughness,omitempty"`
}

// Category is the primary gameplay category of a card, used for deck
// statistics and export grouping.
type Category string

const (
	CategoryLand         Category = "land"
	CategoryCreature     Category = "creature"
	CategoryPlaneswalker Category = "planeswalker"
	CategoryInstant      Category = "instant"
	CategorySorcery      Category = "sorcery"
	CategoryEnchantment  Category = "enchantment"
	CategoryArtifact     Category = "artifact"
	CategoryBattle       Category = "battle"
	CategoryOther        Category = "other"
)

// categoryOrder is the precedence used when a card carries several
// types. Land wins over any secondary type.
var categoryOrder = []Category{
	CategoryLand,
	CategoryCreature,
	CategoryPlaneswalker,
	CategoryInstant,
	CategorySorcery,
	CategoryEnchantment,
	CategoryArtifact,
	CategoryBattle,
}

// PrimaryCategory returns the card's primary gameplay category.
func (c *Card) PrimaryCategory() Category {
	for _, cat := range categoryOrder {
		for _, t := range c.Types {
			if strings.EqualFold(t, string(cat)) {
				return cat
			}
		}
	}
	return CategoryOther
}

// IsLand reports whether the card is a land of any kind.
func (c *Card) IsLand() bool {
	return c.hasType("Land")
}

// IsBasicLand reports whether the card is a basic land. Basic lands
// are exempt from per-card copy limits.
func (c *Card) IsBasicLand() bool {
	if !c.hasType("Land") {
		return false
	}
	for _, s := range c.Supertypes {
		if strings.EqualFold(s, "Basic") {
			return true
		}
	}
	return false
}

func (c *Card) hasType(name string) bool {
	for _, t := range c.Types {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// HasTypeWord reports whether name appears in the card's supertypes,
// types, or subtypes.
func (c *Card) HasTypeWord(name string) bool {
	for _, group := range [][]string{c.Supertypes, c.Types, c.Subtypes} {
		for _, t := range group {
			if strings.EqualFold(t, name) {
				return true
			}
		}
	}
	return false
}

// EffectiveColors returns the card's colors with colorless cards
// coerced to the singleton {C}.
func (c *Card) EffectiveColors() []string {
	if len(c.Colors) == 0 {
		return []string{Colorless}
	}
	return c.Colors
}

// EffectiveColorIdentity returns the card's color identity with
// colorless cards coerced to the singleton {C}.
func (c *Card) EffectiveColorIdentity() []string {
	if len(c.ColorIdentity) == 0 {
		return []string{Colorless}
	}
	return c.ColorIdentity
}

// NumericPower returns the card's power as a number. Non-numeric
// values such as "*" report ok=false and must be skipped by numeric
// filters rather than treated as zero.
func (c *Card) NumericPower() (float64, bool) {
	return parseNumeric(c.Power)
}

// NumericToughness returns the card's toughness as a number.
func (c *Card) NumericToughness() (float64, bool) {
	return parseNumeric(c.Toughness)
}

func parseNumeric(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FullOracleText returns the card's rules text with the text of every
// face appended, so multi-faced cards are searchable as a whole.
func (c *Card) FullOracleText() string {
	var sb strings.Builder
	if c.OracleText != nil {
		sb.WriteString(*c.OracleText)
	}
	for _, face := range c.Faces {
		if face.OracleText == nil || *face.OracleText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(*face.OracleText)
	}
	return sb.String()
}

// LegalIn reports whether the card is legal in the named format.
// Cards without legality data report false.
func (c *Card) LegalIn(format string) bool {
	if c.Legalities == nil {
		return false
	}
	return c.Legalities[strings.ToLower(format)]
}

// HasLegalityData reports whether the card carries explicit
// format-legality information.
func (c *Card) HasLegalityData() bool {
	return len(c.Legalities) > 0
}
