package cards

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseTypeLine(t *testing.T) {
	tests := []struct {
		name       string
		typeLine   string
		supertypes []string
		types      []string
		subtypes   []string
	}{
		{
			name:     "simple creature",
			typeLine: "Creature — Goblin Warrior",
			types:    []string{"Creature"},
			subtypes: []string{"Goblin", "Warrior"},
		},
		{
			name:       "legendary artifact creature",
			typeLine:   "Legendary Artifact Creature — Golem",
			supertypes: []string{"Legendary"},
			types:      []string{"Artifact", "Creature"},
			subtypes:   []string{"Golem"},
		},
		{
			name:       "basic land",
			typeLine:   "Basic Land — Mountain",
			supertypes: []string{"Basic"},
			types:      []string{"Land"},
			subtypes:   []string{"Mountain"},
		},
		{
			name:     "no subtypes",
			typeLine: "Instant",
			types:    []string{"Instant"},
		},
		{
			name:     "double-faced",
			typeLine: "Creature — Human Werewolf // Creature — Werewolf",
			types:    []string{"Creature"},
			subtypes: []string{"Human", "Werewolf"},
		},
		{
			name:     "empty",
			typeLine: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			supers, types, subs := ParseTypeLine(tt.typeLine)
			if !reflect.DeepEqual(supers, tt.supertypes) {
				t.Errorf("supertypes = %v, want %v", supers, tt.supertypes)
			}
			if !reflect.DeepEqual(types, tt.types) {
				t.Errorf("types = %v, want %v", types, tt.types)
			}
			if !reflect.DeepEqual(subs, tt.subtypes) {
				t.Errorf("subtypes = %v, want %v", subs, tt.subtypes)
			}
		})
	}
}

func TestPrimaryCategory(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  Category
	}{
		{"creature", []string{"Creature"}, CategoryCreature},
		{"land beats creature", []string{"Land", "Creature"}, CategoryLand},
		{"artifact creature", []string{"Artifact", "Creature"}, CategoryCreature},
		{"enchantment", []string{"Enchantment"}, CategoryEnchantment},
		{"battle", []string{"Battle"}, CategoryBattle},
		{"tribal only", []string{"Tribal"}, CategoryOther},
		{"empty", nil, CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &Card{Types: tt.types}
			if got := card.PrimaryCategory(); got != tt.want {
				t.Errorf("PrimaryCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBasicLand(t *testing.T) {
	mountain := &Card{
		Supertypes: []string{"Basic"},
		Types:      []string{"Land"},
		Subtypes:   []string{"Mountain"},
	}
	if !mountain.IsBasicLand() {
		t.Error("expected basic land")
	}

	dual := &Card{Types: []string{"Land"}}
	if dual.IsBasicLand() {
		t.Error("non-basic land flagged as basic")
	}

	creature := &Card{Supertypes: []string{"Legendary"}, Types: []string{"Creature"}}
	if creature.IsBasicLand() {
		t.Error("creature flagged as basic land")
	}
}

func TestDeriveKeywords(t *testing.T) {
	// Declared keywords and text-detected keywords are unioned.
	got := DeriveKeywords([]string{"Flying"}, "Flying\nWhen this creature enters, it gains lifelink.")
	want := []string{"flying", "lifelink"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveKeywords() = %v, want %v", got, want)
	}

	// No duplicates when declared and detected overlap.
	got = DeriveKeywords([]string{"Trample", "trample"}, "Trample")
	if len(got) != 1 || got[0] != "trample" {
		t.Errorf("DeriveKeywords() = %v, want [trample]", got)
	}

	if kws := DeriveKeywords(nil, ""); kws != nil {
		t.Errorf("DeriveKeywords(nil, \"\") = %v, want nil", kws)
	}
}

func TestNumericPower(t *testing.T) {
	card := &Card{Power: strPtr("3"), Toughness: strPtr("*")}

	p, ok := card.NumericPower()
	if !ok || p != 3 {
		t.Errorf("NumericPower() = %v, %v, want 3, true", p, ok)
	}

	// Non-numeric toughness must be skipped, not treated as zero.
	if _, ok := card.NumericToughness(); ok {
		t.Error("expected non-numeric toughness to report ok=false")
	}

	none := &Card{}
	if _, ok := none.NumericPower(); ok {
		t.Error("expected missing power to report ok=false")
	}
}

func TestEffectiveColors(t *testing.T) {
	red := &Card{Colors: []string{"R"}}
	if got := red.EffectiveColors(); !reflect.DeepEqual(got, []string{"R"}) {
		t.Errorf("EffectiveColors() = %v", got)
	}

	colorless := &Card{}
	if got := colorless.EffectiveColors(); !reflect.DeepEqual(got, []string{Colorless}) {
		t.Errorf("EffectiveColors() = %v, want [C]", got)
	}
	if got := colorless.EffectiveColorIdentity(); !reflect.DeepEqual(got, []string{Colorless}) {
		t.Errorf("EffectiveColorIdentity() = %v, want [C]", got)
	}
}

func TestFullOracleText(t *testing.T) {
	card := &Card{
		OracleText: strPtr("Front side text."),
		Faces: []CardFace{
			{Name: "Front", OracleText: strPtr("Front face ability.")},
			{Name: "Back", OracleText: strPtr("Back face ability.")},
		},
	}

	got := card.FullOracleText()
	want := "Front side text.\nFront face ability.\nBack face ability."
	if got != want {
		t.Errorf("FullOracleText() = %q, want %q", got, want)
	}
}

func TestLegalIn(t *testing.T) {
	card := &Card{Legalities: map[string]bool{"modern": true, "standard": false}}

	if !card.LegalIn("Modern") {
		t.Error("expected legal in modern")
	}
	if card.LegalIn("standard") {
		t.Error("expected not legal in standard")
	}

	bare := &Card{}
	if bare.LegalIn("modern") {
		t.Error("card without legality data must not report legal")
	}
	if bare.HasLegalityData() {
		t.Error("HasLegalityData() should be false for bare card")
	}
}
