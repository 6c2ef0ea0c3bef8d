package index

import "strings"

// Free-text queries are parsed into a small boolean AST instead of
// guessing disjunction from the presence of the word "or" somewhere
// in the string. Grammar, loosest binding first:
//
//	expr  := conj ("or" conj)*
//	conj  := term+
//	term  := "-" term | token
//
// Tokens are normalized with the same rules as the text index, so a
// term that tokenizes to nothing (punctuation, single letters) is
// dropped from its conjunction.

// textNode is a node of the parsed text query.
type textNode interface {
	// eval resolves the node into an id set. universe is the full
	// corpus and is only materialized for negation.
	eval(idx *Index, universe func() idSet) idSet
}

type tokenNode struct {
	token string
}

func (n tokenNode) eval(idx *Index, _ func() idSet) idSet {
	set := idx.text[n.token]
	if set == nil {
		return newIDSet()
	}
	return set
}

type andNode struct {
	children []textNode
}

func (n andNode) eval(idx *Index, universe func() idSet) idSet {
	var result idSet
	for _, child := range n.children {
		result = intersect(result, child.eval(idx, universe))
		if result != nil && len(result) == 0 {
			return result
		}
	}
	if result == nil {
		return newIDSet()
	}
	return result
}

type orNode struct {
	children []textNode
}

func (n orNode) eval(idx *Index, universe func() idSet) idSet {
	result := newIDSet()
	for _, child := range n.children {
		result = union(result, child.eval(idx, universe))
	}
	return result
}

type notNode struct {
	child textNode
}

func (n notNode) eval(idx *Index, universe func() idSet) idSet {
	return subtract(universe(), n.child.eval(idx, universe))
}

// parseTextQuery parses a free-text query into an AST. Returns nil
// when the query contains no usable terms.
func parseTextQuery(text string) textNode {
	words := strings.Fields(strings.ToLower(text))

	var disjuncts []textNode
	var current []textNode

	flush := func() {
		if len(current) == 0 {
			return
		}
		if len(current) == 1 {
			disjuncts = append(disjuncts, current[0])
		} else {
			disjuncts = append(disjuncts, andNode{children: current})
		}
		current = nil
	}

	for _, word := range words {
		if word == "or" {
			flush()
			continue
		}

		negated := false
		for strings.HasPrefix(word, "-") {
			negated = !negated
			word = word[1:]
		}

		tokens := Tokenize(word)
		if len(tokens) == 0 {
			continue
		}
		for _, token := range tokens {
			var node textNode = tokenNode{token: token}
			if negated {
				node = notNode{child: node}
			}
			current = append(current, node)
		}
	}
	flush()

	switch len(disjuncts) {
	case 0:
		return nil
	case 1:
		return disjuncts[0]
	default:
		return orNode{children: disjuncts}
	}
}
