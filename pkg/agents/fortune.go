package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"mystica/pkg/colors"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
)

// Sentinel placeholders shown to the model when a profile field is unknown.
const (
	PlaceholderName = "Awaiting Whisper from the Stars"
	PlaceholderDOB  = "Echoes of a Past Yet Unsung"
)

// FortuneTeller renders the Mystica persona for the dialogue state resolved
// host-side and scans the resulting prose for color mentions.
type FortuneTeller struct {
	llm Completer
}

func NewFortuneTeller(llm Completer) *FortuneTeller {
	return &FortuneTeller{llm: llm}
}

// Generate produces the oracle's reply for one turn. Colors are only scanned
// for a divining turn; every other state returns an empty set.
func (f *FortuneTeller) Generate(ctx context.Context, fc models.FortuneContext) (string, []string, error) {
	state := oracle.ResolveState(fc.UserProfile, fc.LatestMessage)
	prompt := buildFortunePrompt(fc, state)

	text, err := f.llm.Complete(ctx, prompt)
	if err != nil {
		return "", nil, oracle.Errorf(oracle.StageFortune, "failed to generate fortune: %w", err)
	}

	var mentioned []string
	if state == oracle.StateDivining {
		mentioned = colors.Scan(text)
	}

	log.Ctx(ctx).Debug().
		Stringer("dialogue_state", state).
		Strs("colors", mentioned).
		Msg("fortune generated")

	return text, mentioned, nil
}

func buildFortunePrompt(fc models.FortuneContext, state oracle.DialogueState) string {
	name := fc.UserProfile.Name
	if name == "" {
		name = PlaceholderName
	}
	dob := fc.UserProfile.DateOfBirth
	if dob == "" {
		dob = PlaceholderDOB
	}
	handprint := "Fate's Imprint Optional, Yet Potent"
	if fc.UserProfile.HandprintAnalysis != "" {
		handprint = "Palm Lines Revealed: " + fc.UserProfile.HandprintAnalysis
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are **Mystica, the All-Seeing Oracle**. Your voice is ancient, your wisdom vast, your pronouncements both enigmatic and deeply insightful. You peer through the veils of time and fate.

**Seeker Information:**
* **Name:** %s
* **Date of Birth:** %s
* **Handprint Analysis:** %s
* **Seeker's Latest Utterance:** %q

Your response MUST be ONLY the direct words of Mystica to the seeker.

`, name, dob, handprint, fc.LatestMessage)

	switch state {
	case oracle.StateMissingName:
		b.WriteString(`**Your Task:** The seeker's essence remains shrouded. Beckon forth their name with mystical urgency, and do not proceed further.
*Example*: "The mists swirl, seeker, but your essence remains shrouded. Whisper to me the name the spirits call you by, that I may part the veils for you."`)

	case oracle.StateMissingDOB:
		fmt.Fprintf(&b, `**Your Task:** Addressing the seeker by their name, %s, request their birth-sign from the cosmic calendar. Ask only for the date of birth.
*Example*: "%s, the celestial spheres align with your presence, yet the exact moment of your arrival upon this earthly coil is needed. Share with me your date of birth, that the stars may illuminate your path."`, name, name)

	case oracle.StateAwaitingFocus:
		fmt.Fprintf(&b, `**Your Task:** This is the Invitation to Choose. Acknowledge the seeker by name, %s, then invite them to choose their focus of inquiry among **Work**, **Love**, and **Wealth**. If uncertain, offer all of the choices. Do not divine yet.
*Example*: "The threads of your destiny are complex, %s. Do you seek insight into the realm of **Work**, the tender dance of **Love**, or the shifting tides of **Wealth**?"`, name, name)

	case oracle.StateDivining:
		b.WriteString(`**Your Task: Main Divination.**
`)
		if areas := oracle.FocusAreas(fc.LatestMessage); len(areas) > 0 {
			fmt.Fprintf(&b, "The seeker asks about: %s. For EACH of these categories, provide a mystical fortune with a color mention.\n", strings.Join(areas, ", "))
		} else {
			b.WriteString("Provide an encompassing general fortune with color recommendations.\n")
		}
		b.WriteString(`Use colors like: **gold**, **silver**, **red**, **pink**, **blue**, **green**, **brown**, **orange**, **yellow**, **black**, **purple**.
You may also use poetic variations like **crimson** (for red), **rose** (for pink), **emerald** (for green), etc.

**Guiding Principles:** Be mystical, mention colors in bold (e.g., **gold**, **emerald**, **crimson**, **rose**).`)
	}

	b.WriteString(`

Your response should be ONLY Mystica's words.`)

	return b.String()
}
