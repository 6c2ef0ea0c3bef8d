package index

import (
	"sort"
	"strings"

	"github.com/ramonehamilton/deckforge/internal/cards"
)

// Search evaluates a conjunctive query and returns matching card
// records, sorted and paginated. Unknown filter values restrict to an
// empty match for that filter; unknown operators disable their filter;
// absent filters are no-ops, so the empty query returns the full
// corpus.
func (idx *Index) Search(q Query) []*cards.Card {
	var result idSet

	var cachedUniverse idSet
	universe := func() idSet {
		if cachedUniverse == nil {
			cachedUniverse = idx.allIDs()
		}
		return cachedUniverse
	}

	if q.Text != "" {
		if node := parseTextQuery(q.Text); node != nil {
			result = intersect(result, node.eval(idx, universe))
		}
	}

	if q.Name != "" {
		for _, token := range Tokenize(q.Name) {
			result = intersect(result, idx.lookupOrEmpty(fieldName, token))
		}
	}

	for _, typeName := range q.Types {
		if typeName == "" {
			continue
		}
		matches := union(idx.lookupOrEmpty(fieldType, typeName),
			union(idx.lookupOrEmpty(fieldSubtype, typeName),
				idx.lookupOrEmpty(fieldSupertype, typeName)))
		result = intersect(result, matches)
	}

	// Color filters are comparator scans over the corpus rather than
	// index lookups; the set algebra does not decompose into single
	// per-letter postings without extra bookkeeping.
	if q.Colors != "" && q.ColorsOp.known() {
		target := parseColorSet(q.Colors)
		result = idx.scan(result, func(c *cards.Card) bool {
			return compareColorSets(colorSetFromSlice(c.EffectiveColors()), target, q.ColorsOp)
		})
	}
	if q.ColorIdentity != "" && q.ColorIdentityOp.known() {
		target := parseColorSet(q.ColorIdentity)
		result = idx.scan(result, func(c *cards.Card) bool {
			return compareColorSets(colorSetFromSlice(c.EffectiveColorIdentity()), target, q.ColorIdentityOp)
		})
	}

	if q.ManaValue != nil && q.ManaValueOp.known() {
		result = idx.numericFilter(result, *q.ManaValue, q.ManaValueOp, fieldManaValue, func(c *cards.Card) (float64, bool) {
			return c.ManaValue, true
		})
	}
	if q.Power != nil && q.PowerOp.known() {
		result = idx.numericFilter(result, *q.Power, q.PowerOp, fieldPower, (*cards.Card).NumericPower)
	}
	if q.Toughness != nil && q.ToughnessOp.known() {
		result = idx.numericFilter(result, *q.Toughness, q.ToughnessOp, fieldToughness, (*cards.Card).NumericToughness)
	}

	if q.Rarity != "" && q.RarityOp.known() {
		result = intersect(result, idx.rarityFilter(q.Rarity, q.RarityOp))
	}

	if q.Set != "" {
		result = intersect(result, idx.lookupOrEmpty(fieldSet, q.Set))
	}
	if q.Format != "" {
		result = intersect(result, idx.lookupOrEmpty(fieldFormat, q.Format))
	}

	for _, kw := range q.Keywords {
		if kw == "" {
			continue
		}
		result = intersect(result, idx.lookupOrEmpty(fieldKeyword, kw))
	}

	if q.Artist != "" {
		for _, token := range Tokenize(q.Artist) {
			result = intersect(result, idx.lookupOrEmpty(fieldArtist, token))
		}
	}

	if result == nil {
		result = universe()
	}

	matched := make([]*cards.Card, 0, len(result))
	for id := range result {
		matched = append(matched, idx.cardsByID[id])
	}

	sortCards(matched, q.SortBy, q.SortOrder)

	return paginate(matched, q.Offset, q.Limit)
}

// lookupOrEmpty is lookup with misses reported as the empty set, so
// an unknown value constrains the result instead of being ignored.
func (idx *Index) lookupOrEmpty(field, value string) idSet {
	if set := idx.lookup(field, value); set != nil {
		return set
	}
	return newIDSet()
}

// scan filters the current result (or the whole corpus when
// unconstrained) with a per-card predicate.
func (idx *Index) scan(current idSet, pred func(*cards.Card) bool) idSet {
	out := newIDSet()
	if current != nil {
		for id := range current {
			if pred(idx.cardsByID[id]) {
				out.add(id)
			}
		}
		return out
	}
	for id, card := range idx.cardsByID {
		if pred(card) {
			out.add(id)
		}
	}
	return out
}

// numericFilter applies a comparator against a numeric attribute.
// Equality hits the field index directly; other operators scan, with
// non-numeric attribute values skipped.
func (idx *Index) numericFilter(current idSet, target float64, op Op, field string, attr func(*cards.Card) (float64, bool)) idSet {
	if op.orDefault() == OpEq {
		return intersect(current, idx.lookupOrEmpty(field, formatNumeric(target)))
	}
	return idx.scan(current, func(c *cards.Card) bool {
		v, ok := attr(c)
		if !ok {
			return false
		}
		return compareNumeric(v, target, op)
	})
}

// rarityFilter resolves a rarity comparator into a union of the
// (at most four) rarity postings satisfying it. Rarities outside the
// known order fall back to an exact-match lookup.
func (idx *Index) rarityFilter(rarity string, op Op) idSet {
	targetRank, ok := rarityRank[strings.ToLower(rarity)]
	if !ok {
		return idx.lookupOrEmpty(fieldRarity, rarity)
	}

	out := newIDSet()
	for name, rank := range rarityRank {
		if compareNumeric(float64(rank), float64(targetRank), op) {
			out = union(out, idx.lookupOrEmpty(fieldRarity, name))
		}
	}
	return out
}

// sortCards orders results by the requested field. Results are
// always sorted (by name when no field is requested) so queries are
// deterministic across runs.
func sortCards(list []*cards.Card, by SortField, order SortOrder) {
	var less func(a, b *cards.Card) bool

	switch by {
	case SortManaValue:
		less = func(a, b *cards.Card) bool { return a.ManaValue < b.ManaValue }
	case SortRarity:
		less = func(a, b *cards.Card) bool {
			return rarityRank[strings.ToLower(a.Rarity)] < rarityRank[strings.ToLower(b.Rarity)]
		}
	case SortReleased:
		less = func(a, b *cards.Card) bool { return a.ReleasedAt.Before(b.ReleasedAt) }
	case SortColor:
		less = func(a, b *cards.Card) bool {
			return strings.Join(a.Colors, "") < strings.Join(b.Colors, "")
		}
	default:
		less = func(a, b *cards.Card) bool { return a.Name < b.Name }
	}

	sort.SliceStable(list, func(i, j int) bool {
		if order == Descending {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

// paginate applies offset then limit. Limit <= 0 means unlimited.
func paginate(list []*cards.Card, offset, limit int) []*cards.Card {
	if offset > 0 {
		if offset >= len(list) {
			return []*cards.Card{}
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
