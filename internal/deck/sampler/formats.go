// Package sampler turns a candidate card pool plus format and curve
// constraints into randomized deck configurations with statistics.
package sampler

import (
	"sort"
	"strings"
)

// FormatConfig holds the deckbuilding defaults for a constructed
// format.
type FormatConfig struct {
	DeckSize          int  `json:"deckSize"`
	MaxCopies         int  `json:"maxCopies"`
	MinLands          int  `json:"minLands"`
	MaxLands          int  `json:"maxLands"`
	RequiresCommander bool `json:"requiresCommander"`
}

// formatConfigs maps format names to their defaults. Unknown formats
// fall back to defaultFormatConfig.
var formatConfigs = map[string]FormatConfig{
	"standard":  {DeckSize: 60, MaxCopies: 4, MinLands: 20, MaxLands: 26},
	"pioneer":   {DeckSize: 60, MaxCopies: 4, MinLands: 20, MaxLands: 26},
	"modern":    {DeckSize: 60, MaxCopies: 4, MinLands: 20, MaxLands: 26},
	"legacy":    {DeckSize: 60, MaxCopies: 4, MinLands: 18, MaxLands: 24},
	"vintage":   {DeckSize: 60, MaxCopies: 4, MinLands: 18, MaxLands: 24},
	"pauper":    {DeckSize: 60, MaxCopies: 4, MinLands: 20, MaxLands: 26},
	"limited":   {DeckSize: 40, MaxCopies: 4, MinLands: 16, MaxLands: 18},
	"commander": {DeckSize: 100, MaxCopies: 1, MinLands: 35, MaxLands: 40, RequiresCommander: true},
	"brawl":     {DeckSize: 60, MaxCopies: 1, MinLands: 22, MaxLands: 26, RequiresCommander: true},
}

// defaultFormatConfig covers unknown format names.
var defaultFormatConfig = FormatConfig{DeckSize: 60, MaxCopies: 4, MinLands: 20, MaxLands: 26}

// FormatDefaults returns the configuration for a format name, falling
// back to the 60-card default for unknown formats.
func FormatDefaults(format string) FormatConfig {
	if cfg, ok := formatConfigs[strings.ToLower(format)]; ok {
		return cfg
	}
	return defaultFormatConfig
}

// Formats returns the known format names in alphabetical order.
func Formats() []string {
	names := make([]string, 0, len(formatConfigs))
	for name := range formatConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
