package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"mystica/pkg/metrics"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
	"mystica/pkg/repository/session"
)

// recommendationHeader opens the digest message that follows a fortune.
const recommendationHeader = "🎁 **Mystica also senses these items might align with your path:**"

// MessageExtractor pulls profile fields out of a message.
type MessageExtractor interface {
	Extract(ctx context.Context, message string, current models.UserProfile) (models.UserProfile, error)
}

// FortuneGenerator produces the oracle's reply and its mentioned colors.
type FortuneGenerator interface {
	Generate(ctx context.Context, fc models.FortuneContext) (string, []string, error)
}

// HandprintAnalyzer reads a palm image.
type HandprintAnalyzer interface {
	Analyze(ctx context.Context, imageBase64 string) (string, error)
}

// ProductRecommender matches products to colors with justifications.
type ProductRecommender interface {
	Recommend(ctx context.Context, colorSet []string, products []models.Product) ([]models.Recommendation, error)
}

// Catalog is the read-only product source.
type Catalog interface {
	All() []models.Product
}

// Workflow sequences extraction, generation and recommendation for each turn
// and owns all session mutations.
type Workflow struct {
	extractor   MessageExtractor
	fortune     FortuneGenerator
	analyzer    HandprintAnalyzer
	recommender ProductRecommender
	catalog     Catalog
	sessions    session.Repository
	reg         *metrics.Registry
}

func NewWorkflow(
	extractor MessageExtractor,
	fortune FortuneGenerator,
	analyzer HandprintAnalyzer,
	recommender ProductRecommender,
	catalog Catalog,
	sessions session.Repository,
	reg *metrics.Registry,
) *Workflow {
	return &Workflow{
		extractor:   extractor,
		fortune:     fortune,
		analyzer:    analyzer,
		recommender: recommender,
		catalog:     catalog,
		sessions:    sessions,
		reg:         reg,
	}
}

// ProcessMessage runs one full turn: extract profile fields, persist them,
// generate the fortune and, when colors were mentioned, the recommendation
// digest. Returns the ordered assistant messages of the turn.
//
// There is no rollback: a profile persisted before a later stage fails stays
// persisted.
func (w *Workflow) ProcessMessage(ctx context.Context, sessionID string, userMessage string) ([]models.Message, error) {
	sess, err := w.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, oracle.Wrap(oracle.StageWorkflow, err)
	}

	sess.Messages = append(sess.Messages, models.Message{Role: models.RoleUser, Content: userMessage})

	updated, err := w.extractor.Extract(ctx, userMessage, sess.Profile)
	if err != nil {
		w.countError(ctx, err)
		return nil, oracle.Wrap(oracle.StageWorkflow, err)
	}
	sess.Profile = updated
	if err := w.sessions.Put(ctx, sess); err != nil {
		return nil, oracle.Wrap(oracle.StageWorkflow, err)
	}

	fc := models.FortuneContext{UserProfile: updated, LatestMessage: userMessage}
	fortuneText, colorSet, err := w.fortune.Generate(ctx, fc)
	if err != nil {
		w.countError(ctx, err)
		return nil, oracle.Wrap(oracle.StageWorkflow, err)
	}

	responses := []models.Message{{Role: models.RoleAssistant, Content: fortuneText}}

	if len(colorSet) > 0 {
		sess.ColorAssociations = colorSet

		recs, err := w.recommender.Recommend(ctx, colorSet, w.catalog.All())
		if err != nil {
			w.countError(ctx, err)
			return nil, oracle.Wrap(oracle.StageWorkflow, err)
		}
		if len(recs) > 0 {
			responses = append(responses, models.Message{
				Role:    models.RoleAssistant,
				Content: formatRecommendations(recs),
			})
			if w.reg != nil {
				w.reg.Inc(ctx, metrics.CounterRecommendations, nil, int64(len(recs)))
			}
		}
	}

	sess.Messages = append(sess.Messages, responses...)
	if err := w.sessions.Put(ctx, sess); err != nil {
		return nil, oracle.Wrap(oracle.StageWorkflow, err)
	}

	if w.reg != nil {
		w.reg.Inc(ctx, metrics.CounterTurns, nil, 1)
	}
	log.Ctx(ctx).Info().
		Str("session_id", sessionID).
		Int("responses", len(responses)).
		Strs("colors", colorSet).
		Msg("turn processed")

	return responses, nil
}

// ProcessHandprint analyzes a palm image and folds the result into the
// profile. The caller composes the user-facing message.
func (w *Workflow) ProcessHandprint(ctx context.Context, sessionID string, imageBase64 string) (string, error) {
	sess, err := w.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", oracle.Wrap(oracle.StageWorkflow, err)
	}

	analysis, err := w.analyzer.Analyze(ctx, imageBase64)
	if err != nil {
		w.countError(ctx, err)
		return "", oracle.Wrap(oracle.StageWorkflow, err)
	}

	sess.Profile.HandprintAnalysis = analysis
	sess.Profile.HandprintImageBase64 = imageBase64
	sess.HandprintAnalyzed = true
	if err := w.sessions.Put(ctx, sess); err != nil {
		return "", oracle.Wrap(oracle.StageWorkflow, err)
	}

	if w.reg != nil {
		w.reg.Inc(ctx, metrics.CounterHandprints, nil, 1)
	}
	return analysis, nil
}

// RecordAssistantMessage appends an assistant-authored message to the visible
// history without running the pipeline. Used by the HTTP layer for fallback
// and handprint announcements.
func (w *Workflow) RecordAssistantMessage(ctx context.Context, sessionID string, content string) error {
	sess, err := w.sessions.Get(ctx, sessionID)
	if err != nil {
		return oracle.Wrap(oracle.StageWorkflow, err)
	}
	sess.Messages = append(sess.Messages, models.Message{Role: models.RoleAssistant, Content: content})
	return oracle.Wrap(oracle.StageWorkflow, w.sessions.Put(ctx, sess))
}

func (w *Workflow) countError(ctx context.Context, err error) {
	if w.reg == nil {
		return
	}
	stage, ok := oracle.StageOf(err)
	if !ok {
		stage = oracle.StageWorkflow
	}
	w.reg.Inc(ctx, metrics.CounterStageErrors, map[string]string{"stage": string(stage)}, 1)
}

func formatRecommendations(recs []models.Recommendation) string {
	items := make([]string, len(recs))
	for i, rec := range recs {
		items[i] = fmt.Sprintf("**%s**\n_%s_", rec.Product.NameThai, rec.Reason)
	}
	return recommendationHeader + "\n\n" + strings.Join(items, "\n\n---\n\n")
}
