package agents_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mystica/pkg/agents"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
	"mystica/pkg/repository/catalog"
	"mystica/pkg/repository/session"
)

const anmumThai = "แอนมัม มาเทอร์น่า นมยูเอชที" // the catalog's Pink entry

func newWorkflow(llm *fakeLLM, repo session.Repository) *agents.Workflow {
	return agents.NewWorkflow(
		agents.NewExtractor(llm),
		agents.NewFortuneTeller(llm),
		agents.NewAnalyzer(llm),
		agents.NewRecommender(llm, 3, agents.FailOpen),
		catalog.NewRepository(),
		repo,
		nil,
	)
}

func TestProcessMessageAsksForName(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepository(0, nil)
	sess, err := repo.Create(ctx)
	require.NoError(t, err)

	llm := &fakeLLM{
		structuredFn: func(string, string) (string, error) {
			return `{"user_name":null,"user_dob":null,"handprint_analysis":null}`, nil
		},
		completeFn: func(string) (string, error) {
			return "Whisper to me the name the spirits call you by.", nil
		},
	}

	responses, err := newWorkflow(llm, repo).ProcessMessage(ctx, sess.ID, "Hello")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, models.RoleAssistant, responses[0].Role)

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Empty(t, stored.ColorAssociations)
	require.Len(t, stored.Messages, 2) // user turn + oracle reply
	require.Equal(t, models.RoleUser, stored.Messages[0].Role)
}

func TestProcessMessageLoveFortuneRecommends(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepository(0, nil)
	sess, err := repo.Create(ctx)
	require.NoError(t, err)
	sess.Profile = models.UserProfile{Name: "Mira", DateOfBirth: "1990-01-01"}
	require.NoError(t, repo.Put(ctx, sess))

	llm := &fakeLLM{
		structuredFn: func(string, string) (string, error) {
			return `{"user_name":null,"user_dob":null,"handprint_analysis":null}`, nil
		},
		completeFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "numbered list") {
				return "1. A tender glow awaits.", nil
			}
			return "In love, a **rose** light embraces you, Mira.", nil
		},
	}

	responses, err := newWorkflow(llm, repo).ProcessMessage(ctx, sess.ID, "love")
	require.NoError(t, err)
	require.Len(t, responses, 2)
	require.Contains(t, responses[1].Content, anmumThai)
	require.Contains(t, responses[1].Content, "_A tender glow awaits._")

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Pink"}, stored.ColorAssociations)
}

func TestProcessMessageProfilePersistsWhenGenerationFails(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepository(0, nil)
	sess, err := repo.Create(ctx)
	require.NoError(t, err)

	llm := &fakeLLM{
		structuredFn: func(string, string) (string, error) {
			return `{"user_name":"Mira","user_dob":null,"handprint_analysis":null}`, nil
		},
		completeFn: func(string) (string, error) {
			return "", errors.New("timeout")
		},
	}

	_, err = newWorkflow(llm, repo).ProcessMessage(ctx, sess.ID, "My name is Mira")
	require.Error(t, err)

	stage, ok := oracle.StageOf(err)
	require.True(t, ok)
	require.Equal(t, oracle.StageFortune, stage)

	// No rollback: the extracted profile stays persisted.
	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "Mira", stored.Profile.Name)
}

func TestProcessMessageUnknownSession(t *testing.T) {
	repo := session.NewMemoryRepository(0, nil)
	_, err := newWorkflow(&fakeLLM{}, repo).ProcessMessage(context.Background(), "ghost", "Hello")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestProcessHandprintUpdatesProfile(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepository(0, nil)
	sess, err := repo.Create(ctx)
	require.NoError(t, err)

	llm := &fakeLLM{visionFn: func(prompt, dataURI string) (string, error) {
		require.Contains(t, prompt, "mystical palm reader")
		require.True(t, strings.HasPrefix(dataURI, "data:image/jpeg;base64,"))
		return "A deep fate line crosses a radiant mount.", nil
	}}

	analysis, err := newWorkflow(llm, repo).ProcessHandprint(ctx, sess.ID, "cGF5bG9hZA==")
	require.NoError(t, err)
	require.Equal(t, "A deep fate line crosses a radiant mount.", analysis)

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, analysis, stored.Profile.HandprintAnalysis)
	require.Equal(t, "cGF5bG9hZA==", stored.Profile.HandprintImageBase64)
	require.True(t, stored.HandprintAnalyzed)
}

func TestProcessHandprintErrorCarriesFallback(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepository(0, nil)
	sess, err := repo.Create(ctx)
	require.NoError(t, err)

	llm := &fakeLLM{visionFn: func(string, string) (string, error) {
		return "", errors.New("vision backend down")
	}}

	_, err = newWorkflow(llm, repo).ProcessHandprint(ctx, sess.ID, "cGF5bG9hZA==")
	require.Error(t, err)
	require.ErrorContains(t, err, agents.HandprintFallback)

	stage, ok := oracle.StageOf(err)
	require.True(t, ok)
	require.Equal(t, oracle.StageHandprint, stage)
}

func TestRecordAssistantMessage(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepository(0, nil)
	sess, err := repo.Create(ctx)
	require.NoError(t, err)

	w := newWorkflow(&fakeLLM{}, repo)
	require.NoError(t, w.RecordAssistantMessage(ctx, sess.ID, "The threads of fate are tangled."))

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	require.Equal(t, models.RoleAssistant, stored.Messages[0].Role)
}
