package cards

import "strings"

// knownSupertypes are the supertypes that can precede the card types
// on a type line.
var knownSupertypes = map[string]bool{
	"basic":     true,
	"legendary": true,
	"snow":      true,
	"world":     true,
	"ongoing":   true,
}

// ParseTypeLine decomposes a type line into supertypes, types, and
// subtypes. The portion after the em-dash separator holds subtypes;
// before it, recognized supertypes are peeled off the front and the
// remainder are card types. Multi-faced type lines joined with "//"
// contribute the union of both faces.
func ParseTypeLine(typeLine string) (supertypes, types, subtypes []string) {
	if typeLine == "" {
		return nil, nil, nil
	}

	seenSuper := make(map[string]bool)
	seenType := make(map[string]bool)
	seenSub := make(map[string]bool)

	for _, facePart := range strings.Split(typeLine, "//") {
		facePart = strings.TrimSpace(facePart)
		if facePart == "" {
			continue
		}

		left, right, _ := strings.Cut(facePart, "—")

		for _, word := range strings.Fields(left) {
			if knownSupertypes[strings.ToLower(word)] {
				if !seenSuper[word] {
					seenSuper[word] = true
					supertypes = append(supertypes, word)
				}
				continue
			}
			if !seenType[word] {
				seenType[word] = true
				types = append(types, word)
			}
		}

		for _, word := range strings.Fields(right) {
			if !seenSub[word] {
				seenSub[word] = true
				subtypes = append(subtypes, word)
			}
		}
	}

	return supertypes, types, subtypes
}
