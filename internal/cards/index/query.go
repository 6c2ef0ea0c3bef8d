package index

// Op is a comparison operator accepted by numeric, rarity, and color
// filters. The zero value means equality.
type Op string

const (
	OpEq Op = "="
	OpLt Op = "<"
	OpGt Op = ">"
	OpLe Op = "<="
	OpGe Op = ">="
)

// orDefault returns the operator with the equality default applied.
func (op Op) orDefault() Op {
	if op == "" {
		return OpEq
	}
	return op
}

// known reports whether the operator is one the engine evaluates.
// Filters carrying an unknown operator are skipped, not failed.
func (op Op) known() bool {
	switch op.orDefault() {
	case OpEq, OpLt, OpGt, OpLe, OpGe:
		return true
	}
	return false
}

// SortField selects the attribute results are ordered by.
type SortField string

const (
	SortNone      SortField = ""
	SortName      SortField = "name"
	SortManaValue SortField = "manaValue"
	SortRarity    SortField = "rarity"
	SortReleased  SortField = "released"
	SortColor     SortField = "color"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Query describes a conjunctive card search. Every field is optional;
// an absent field is a no-op and an empty query matches the full
// corpus. Filters of different kinds are AND-combined.
type Query struct {
	// Text searches name and rules text. Supports a small boolean
	// grammar: whitespace conjunction, the word "or" for disjunction,
	// and a leading '-' for negation.
	Text string `json:"text,omitempty"`

	// Name matches tokenized card names, AND-combined across tokens.
	Name string `json:"name,omitempty"`

	// Types matches across type, subtype, and supertype; multiple
	// entries are AND-combined.
	Types []string `json:"types,omitempty"`

	// Colors and ColorIdentity hold target color strings (subsets of
	// "wubrgc") compared with set algebra under their operator.
	Colors          string `json:"colors,omitempty"`
	ColorsOp        Op     `json:"colorsOp,omitempty"`
	ColorIdentity   string `json:"colorIdentity,omitempty"`
	ColorIdentityOp Op     `json:"colorIdentityOp,omitempty"`

	// Numeric attribute filters. Cards whose attribute is missing or
	// non-numeric never match.
	ManaValue   *float64 `json:"manaValue,omitempty"`
	ManaValueOp Op       `json:"manaValueOp,omitempty"`
	Power       *float64 `json:"power,omitempty"`
	PowerOp     Op       `json:"powerOp,omitempty"`
	Toughness   *float64 `json:"toughness,omitempty"`
	ToughnessOp Op       `json:"toughnessOp,omitempty"`

	// Rarity compares on the common < uncommon < rare < mythic order.
	// Unrecognized rarities fall back to an exact index lookup.
	Rarity   string `json:"rarity,omitempty"`
	RarityOp Op     `json:"rarityOp,omitempty"`

	// Set matches the set code exactly.
	Set string `json:"set,omitempty"`

	// Format requires the card to be legal in the format, not merely
	// printed into it.
	Format string `json:"format,omitempty"`

	// Keywords are AND-combined exact keyword lookups.
	Keywords []string `json:"keywords,omitempty"`

	// Artist matches tokenized artist names, AND-combined.
	Artist string `json:"artist,omitempty"`

	SortBy    SortField `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	// Limit and Offset paginate the sorted result. Limit <= 0 means
	// unlimited. Limit is applied after sorting, never before.
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}
