package index

import "strings"

// colorSet is a set over the letters wubrgc.
type colorSet map[string]struct{}

// parseColorSet builds a color set from a color string such as "wu"
// or "WUr". Characters outside the color alphabet are ignored.
func parseColorSet(s string) colorSet {
	set := make(colorSet)
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'w', 'u', 'b', 'r', 'g', 'c':
			set[string(r)] = struct{}{}
		}
	}
	return set
}

func colorSetFromSlice(colors []string) colorSet {
	set := make(colorSet)
	for _, c := range colors {
		c = strings.ToLower(c)
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

func (a colorSet) subsetOf(b colorSet) bool {
	for c := range a {
		if _, ok := b[c]; !ok {
			return false
		}
	}
	return true
}

func (a colorSet) equals(b colorSet) bool {
	return len(a) == len(b) && a.subsetOf(b)
}

// compareColorSets applies a set-algebra operator between a card's
// colors and the target: "=" exact equality, "<=" card within target,
// ">=" card covers target, "<"/">" the proper variants.
func compareColorSets(card, target colorSet, op Op) bool {
	switch op.orDefault() {
	case OpEq:
		return card.equals(target)
	case OpLe:
		return card.subsetOf(target)
	case OpGe:
		return target.subsetOf(card)
	case OpLt:
		return card.subsetOf(target) && len(card) < len(target)
	case OpGt:
		return target.subsetOf(card) && len(card) > len(target)
	default:
		return false
	}
}

// compareNumeric applies op between a card attribute and the target.
func compareNumeric(value, target float64, op Op) bool {
	switch op.orDefault() {
	case OpEq:
		return value == target
	case OpLt:
		return value < target
	case OpGt:
		return value > target
	case OpLe:
		return value <= target
	case OpGe:
		return value >= target
	default:
		return false
	}
}

// rarityRank orders the four rarities. Unknown rarities are absent.
var rarityRank = map[string]int{
	"common":   0,
	"uncommon": 1,
	"rare":     2,
	"mythic":   3,
}
