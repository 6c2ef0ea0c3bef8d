package cards

import "strings"

// commonKeywords are the evergreen keyword abilities detected in
// rules text when a card does not declare them explicitly.
var commonKeywords = []string{
	"Flying", "First strike", "Double strike", "Deathtouch", "Haste",
	"Hexproof", "Indestructible", "Lifelink", "Menace", "Reach",
	"Trample", "Vigilance", "Ward", "Flash", "Defender",
}

// DeriveKeywords returns the union of a card's declared keywords and
// the keywords textually detected in its rules text, lower-cased and
// deduplicated.
func DeriveKeywords(declared []string, oracleText string) []string {
	seen := make(map[string]bool)
	var result []string

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		result = append(result, kw)
	}

	for _, kw := range declared {
		add(kw)
	}

	lowerText := strings.ToLower(oracleText)
	for _, kw := range commonKeywords {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			add(kw)
		}
	}

	return result
}
