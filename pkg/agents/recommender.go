package agents

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"mystica/pkg/colors"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
)

// DefaultReason backfills any recommendation whose generated justification
// could not be parsed or produced.
const DefaultReason = "This item carries an auspicious resonance with the guiding energies."

// FailurePolicy declares what a reason-generation failure does.
type FailurePolicy int

const (
	// FailOpen degrades silently: every matched item gets DefaultReason.
	FailOpen FailurePolicy = iota
	// FailClosed surfaces the failure as a recommendation-stage error.
	FailClosed
)

// Recommender matches catalog products against the seeker's color energies
// and asks the model to justify each match.
type Recommender struct {
	llm    Completer
	max    int
	policy FailurePolicy
}

func NewRecommender(llm Completer, maxRecommendations int, policy FailurePolicy) *Recommender {
	return &Recommender{llm: llm, max: maxRecommendations, policy: policy}
}

// Recommend returns at most the configured number of matches, in catalog
// order, each paired with a one-sentence mystical reason. An empty color set
// or no matches returns an empty list without calling the model.
func (r *Recommender) Recommend(ctx context.Context, colorSet []string, products []models.Product) ([]models.Recommendation, error) {
	matched := r.match(colorSet, products)
	if len(matched) == 0 {
		return nil, nil
	}

	reasons, err := r.generateReasons(ctx, matched)
	if err != nil {
		if r.policy == FailClosed {
			return nil, oracle.Errorf(oracle.StageRecommendation, "failed to generate reasons: %w", err)
		}
		log.Ctx(ctx).Warn().Err(err).Msg("reason generation failed, using default reasons")
		reasons = make([]string, len(matched))
		for i := range reasons {
			reasons[i] = DefaultReason
		}
	}

	out := make([]models.Recommendation, len(matched))
	for i, p := range matched {
		out[i] = models.Recommendation{Product: p, Reason: reasons[i]}
	}
	return out, nil
}

func (r *Recommender) match(colorSet []string, products []models.Product) []models.Product {
	wanted := make(map[string]bool, len(colorSet))
	for _, c := range colorSet {
		wanted[c] = true
	}

	var matched []models.Product
	for _, p := range products {
		if len(matched) >= r.max {
			break
		}
		normalized, _ := colors.Normalize(p.PrimaryColor)
		if wanted[normalized] {
			matched = append(matched, p)
		}
	}
	return matched
}

func (r *Recommender) generateReasons(ctx context.Context, products []models.Product) ([]string, error) {
	resp, err := r.llm.Complete(ctx, buildReasonsPrompt(products))
	if err != nil {
		return nil, err
	}
	return parseReasons(resp, len(products)), nil
}

func buildReasonsPrompt(products []models.Product) string {
	var items strings.Builder
	for i, p := range products {
		fmt.Fprintf(&items, "%d. Item: %q (English: %q, Color Energy: %s)\n",
			i+1, p.NameThai, p.NameEnglish, p.PrimaryColor)
	}

	return fmt.Sprintf(`You are Mystica, the All-Seeing Oracle, continuing your guidance for a seeker.
The seeker has been attuned to specific color energies that align with their current path.
For the following items, each resonating with one of these auspicious colors, provide a brief, mystical, and positive suitability reason (1 sentence per item).
Focus on how the item's essence, combined with its associated color's energy, might uniquely benefit the seeker or illuminate their journey. Be poetic and insightful.

Here are the items:
%s
Please provide your reasons in a numbered list, corresponding to the item numbers above. Ensure each reason is a single, flowing sentence.
Example format for your response:
1. [Mystical reason for item 1, linking its essence and color to the seeker's path.]
2. [Mystical reason for item 2, linking its essence and color to the seeker's path.]
`, items.String())
}

// parseReasons pulls numbered answers out of the response. Lines that do not
// start with an in-range number followed by a period are ignored; missing
// slots are backfilled with DefaultReason. The result always has
// expectedCount entries.
func parseReasons(text string, expectedCount int) []string {
	var reasons []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		numText, reason, found := strings.Cut(line, ".")
		if !found {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSpace(numText))
		if err != nil || num < 1 || num > expectedCount {
			continue
		}
		reasons = append(reasons, strings.TrimSpace(reason))
	}

	for len(reasons) < expectedCount {
		reasons = append(reasons, DefaultReason)
	}
	return reasons[:expectedCount]
}
