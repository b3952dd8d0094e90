package oracle

import (
	"strings"

	"mystica/pkg/models"
)

// DialogueState is the host-side dialogue position for one turn. The model is
// only asked to render prose for a state that has already been decided here,
// so the conversational flow does not depend on model compliance.
type DialogueState int

const (
	// StateMissingName: the seeker's name is unknown; ask for it.
	StateMissingName DialogueState = iota
	// StateMissingDOB: name known, birth date unknown; ask for the date.
	StateMissingDOB
	// StateAwaitingFocus: profile complete but the latest message names no
	// focus; offer the Work/Love/Wealth choice.
	StateAwaitingFocus
	// StateDivining: profile complete and a divination intent was detected;
	// produce the actual fortune.
	StateDivining
)

func (s DialogueState) String() string {
	switch s {
	case StateMissingName:
		return "missing_name"
	case StateMissingDOB:
		return "missing_dob"
	case StateAwaitingFocus:
		return "awaiting_focus"
	case StateDivining:
		return "divining"
	default:
		return "unknown"
	}
}

// DivinationChoices are the phrases that count as "the seeker picked a focus
// or wants the reading to proceed".
var DivinationChoices = []string{
	"work",
	"love",
	"wealth",
	"all",
	"all of them",
	"everything",
	"general",
	"general vision",
	"tell me about work",
	"tell me about love",
	"tell me about wealth",
	"work and love",
	"love and wealth",
	"work and wealth",
	"work, love, and wealth",
	"yes tell me more",
	"proceed",
	"continue",
	"yes please",
}

// intent keywords matched token-wise when the message is not an exact phrase.
var intentKeywords = map[string]bool{
	"work":       true,
	"love":       true,
	"wealth":     true,
	"everything": true,
	"general":    true,
	"proceed":    true,
	"continue":   true,
}

// ResolveState decides the dialogue state from profile completeness and the
// latest message.
func ResolveState(profile models.UserProfile, message string) DialogueState {
	if strings.TrimSpace(profile.Name) == "" {
		return StateMissingName
	}
	if strings.TrimSpace(profile.DateOfBirth) == "" {
		return StateMissingDOB
	}
	if MatchesDivinationIntent(message) {
		return StateDivining
	}
	return StateAwaitingFocus
}

// MatchesDivinationIntent performs the case-insensitive check the original
// prompt delegated to the model: an exact configured phrase, or any focus
// keyword appearing as a word of the message.
func MatchesDivinationIntent(message string) bool {
	norm := normalize(message)
	if norm == "" {
		return false
	}
	for _, choice := range DivinationChoices {
		if norm == choice {
			return true
		}
	}
	for _, tok := range tokens(norm) {
		if intentKeywords[tok] {
			return true
		}
	}
	return false
}

// FocusAreas returns which of the three focus categories the message names,
// in fixed Work/Love/Wealth order. Empty means a general reading.
func FocusAreas(message string) []string {
	present := make(map[string]bool)
	for _, tok := range tokens(normalize(message)) {
		present[tok] = true
	}

	var out []string
	for _, area := range []string{"work", "love", "wealth"} {
		if present[area] {
			out = append(out, strings.ToUpper(area[:1])+area[1:])
		}
	}
	return out
}

func normalize(message string) string {
	return trimPunct(strings.ToLower(strings.TrimSpace(message)))
}

func tokens(norm string) []string {
	fields := strings.Fields(norm)
	for i, f := range fields {
		fields[i] = trimPunct(f)
	}
	return fields
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case '.', ',', '!', '?', ';', ':':
			return true
		}
		return false
	})
}
