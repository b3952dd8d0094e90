// Package colors is the single canonicalization point for the oracle's color
// vocabulary. Both fortune-text scanning and catalog-color normalization go
// through the same alias table, so the two can never drift apart.
package colors

import "strings"

// Canonical is the closed palette every alias resolves into.
var Canonical = []string{
	"Gold", "Brown", "Orange", "Yellow", "Green", "Pink",
	"Blue", "Red", "Black", "Silver", "Purple",
}

type alias struct {
	word string
	base string
}

// aliases maps every accepted spelling, poetic variants included, to its
// canonical label. Order is fixed so scans are reproducible.
var aliases = []alias{
	{"gold", "Gold"},
	{"golden", "Gold"},
	{"brown", "Brown"},
	{"bronze", "Brown"},
	{"orange", "Orange"},
	{"amber", "Orange"},
	{"copper", "Orange"},
	{"yellow", "Yellow"},
	{"ivory", "Yellow"},
	{"green", "Green"},
	{"emerald", "Green"},
	{"jade", "Green"},
	{"pink", "Pink"},
	{"rose", "Pink"},
	{"coral", "Pink"},
	{"blue", "Blue"},
	{"azure", "Blue"},
	{"sapphire", "Blue"},
	{"turquoise", "Blue"},
	{"red", "Red"},
	{"crimson", "Red"},
	{"scarlet", "Red"},
	{"ruby", "Red"},
	{"black", "Black"},
	{"ebony", "Black"},
	{"onyx", "Black"},
	{"silver", "Silver"},
	{"silvery", "Silver"},
	{"pearl", "Silver"},
	{"violet", "Purple"},
	{"purple", "Purple"},
	{"lavender", "Purple"},
}

// Scan finds every color the text mentions and returns the canonical labels,
// deduplicated, in first-seen alias order. The match is purely lexical: an
// alias counts when it appears preceded by a space or wrapped in the bold
// markers the oracle is instructed to use.
func Scan(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	seen := make(map[string]bool)
	for _, a := range aliases {
		if !strings.Contains(lower, " "+a.word) && !strings.Contains(lower, "**"+a.word+"**") {
			continue
		}
		if seen[a.base] {
			continue
		}
		seen[a.base] = true
		out = append(out, a.base)
	}
	return out
}

// Normalize maps a free-form catalog color to its canonical label. Any
// parenthetical qualifier is dropped first, e.g. "Brown (for chocolate
// variant)" normalizes to "Brown". The boolean reports whether the color is
// part of the known palette.
func Normalize(raw string) (string, bool) {
	base := strings.TrimSpace(strings.SplitN(raw, "(", 2)[0])
	if base == "" {
		return "", false
	}
	capitalized := strings.ToUpper(base[:1]) + strings.ToLower(base[1:])

	for _, a := range aliases {
		if strings.EqualFold(a.word, capitalized) {
			return a.base, true
		}
	}
	return capitalized, false
}
