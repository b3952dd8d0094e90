package agents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mystica/pkg/agents"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
	"mystica/pkg/repository/catalog"
)

func product(thai, english, color string) models.Product {
	return models.Product{NameThai: thai, NameEnglish: english, PrimaryColor: color}
}

func TestRecommendEmptyColorSetSkipsModel(t *testing.T) {
	llm := &fakeLLM{}
	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), nil, catalog.NewRepository().All())
	require.NoError(t, err)
	require.Empty(t, recs)
	require.Zero(t, llm.completeCalls)
}

func TestRecommendNoMatchesSkipsModel(t *testing.T) {
	llm := &fakeLLM{}
	products := []models.Product{product("a", "A", "Gold")}
	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), []string{"Pink"}, products)
	require.NoError(t, err)
	require.Empty(t, recs)
	require.Zero(t, llm.completeCalls)
}

func TestRecommendCapsAtConfiguredMax(t *testing.T) {
	llm := &fakeLLM{completeFn: func(string) (string, error) {
		return "1. One.\n2. Two.\n3. Three.", nil
	}}
	products := []models.Product{
		product("a", "A", "Gold"),
		product("b", "B", "Gold"),
		product("c", "C", "Gold"),
		product("d", "D", "Gold"),
		product("e", "E", "Gold"),
	}

	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), []string{"Gold"}, products)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	// Catalog order, not color order.
	require.Equal(t, "a", recs[0].Product.NameThai)
	require.Equal(t, "b", recs[1].Product.NameThai)
	require.Equal(t, "c", recs[2].Product.NameThai)
}

func TestRecommendNormalizesCatalogColors(t *testing.T) {
	llm := &fakeLLM{completeFn: func(string) (string, error) {
		return "1. Reason one.\n2. Reason two.", nil
	}}
	products := []models.Product{
		product("choc", "Choc", "Brown (for chocolate variant)"),
		product("viol", "Viol", "Violet"),
	}

	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), []string{"Brown", "Purple"}, products)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Reason one.", recs[0].Reason)
	require.Equal(t, "Reason two.", recs[1].Reason)
}

func TestRecommendParsesNumberedReasons(t *testing.T) {
	llm := &fakeLLM{completeFn: func(prompt string) (string, error) {
		require.Contains(t, prompt, "numbered list")
		return "1. First reason.\n2. Second reason.", nil
	}}
	products := []models.Product{product("a", "A", "Gold"), product("b", "B", "Blue")}

	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), []string{"Gold", "Blue"}, products)
	require.NoError(t, err)
	require.Equal(t, "First reason.", recs[0].Reason)
	require.Equal(t, "Second reason.", recs[1].Reason)
}

func TestRecommendBackfillsMalformedReasons(t *testing.T) {
	llm := &fakeLLM{completeFn: func(string) (string, error) {
		// Out-of-range and unparsable lines are ignored.
		return "Behold!\n7. Out of range.\n1. Kept reason.", nil
	}}
	products := []models.Product{product("a", "A", "Gold"), product("b", "B", "Blue")}

	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), []string{"Gold", "Blue"}, products)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Kept reason.", recs[0].Reason)
	require.Equal(t, agents.DefaultReason, recs[1].Reason)
}

func TestRecommendFailOpenUsesDefaults(t *testing.T) {
	llm := &fakeLLM{completeFn: func(string) (string, error) {
		return "", errors.New("backend down")
	}}
	products := []models.Product{product("a", "A", "Gold")}

	recs, err := agents.NewRecommender(llm, 3, agents.FailOpen).
		Recommend(context.Background(), []string{"Gold"}, products)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, agents.DefaultReason, recs[0].Reason)
}

func TestRecommendFailClosedPropagates(t *testing.T) {
	llm := &fakeLLM{completeFn: func(string) (string, error) {
		return "", errors.New("backend down")
	}}
	products := []models.Product{product("a", "A", "Gold")}

	_, err := agents.NewRecommender(llm, 3, agents.FailClosed).
		Recommend(context.Background(), []string{"Gold"}, products)
	require.Error(t, err)

	stage, ok := oracle.StageOf(err)
	require.True(t, ok)
	require.Equal(t, oracle.StageRecommendation, stage)
}
