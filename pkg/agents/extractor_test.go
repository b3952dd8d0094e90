package agents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mystica/pkg/agents"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
)

func TestExtractMergesNewValues(t *testing.T) {
	llm := &fakeLLM{structuredFn: func(prompt, schemaName string) (string, error) {
		require.Equal(t, "extracted_info", schemaName)
		require.Contains(t, prompt, `"My name is Mira"`)
		return `{"user_name":"Mira","user_dob":null,"handprint_analysis":null}`, nil
	}}

	current := models.UserProfile{DateOfBirth: "1990-01-01", HandprintImageBase64: "imgpayload"}
	got, err := agents.NewExtractor(llm).Extract(context.Background(), "My name is Mira", current)
	require.NoError(t, err)

	require.Equal(t, "Mira", got.Name)
	require.Equal(t, "1990-01-01", got.DateOfBirth)
	require.Equal(t, "imgpayload", got.HandprintImageBase64)
}

func TestExtractKeepsPriorOnNulls(t *testing.T) {
	llm := &fakeLLM{structuredFn: func(string, string) (string, error) {
		return `{"user_name":null,"user_dob":null,"handprint_analysis":null}`, nil
	}}

	current := models.UserProfile{Name: "Mira", DateOfBirth: "1990-01-01", HandprintAnalysis: "deep lines"}
	got, err := agents.NewExtractor(llm).Extract(context.Background(), "Hello", current)
	require.NoError(t, err)
	require.Equal(t, current, got)
}

func TestExtractPromptSummarizesKnowledge(t *testing.T) {
	var seen string
	llm := &fakeLLM{structuredFn: func(prompt, _ string) (string, error) {
		seen = prompt
		return `{}`, nil
	}}

	_, err := agents.NewExtractor(llm).Extract(context.Background(), "Hello", models.UserProfile{Name: "Mira"})
	require.NoError(t, err)
	require.Contains(t, seen, "Name: Mira")
	require.Contains(t, seen, "DOB: Unknown")
	require.Contains(t, seen, "Handprint Analysis: Unknown")
	require.Contains(t, seen, "Output nulls if no new info")
}

func TestExtractErrorIsStageTagged(t *testing.T) {
	llm := &fakeLLM{structuredFn: func(string, string) (string, error) {
		return "", errors.New("backend down")
	}}

	_, err := agents.NewExtractor(llm).Extract(context.Background(), "Hello", models.UserProfile{})
	require.Error(t, err)
	require.ErrorContains(t, err, "backend down")

	stage, ok := oracle.StageOf(err)
	require.True(t, ok)
	require.Equal(t, oracle.StageExtraction, stage)
}

func TestExtractMalformedJSON(t *testing.T) {
	llm := &fakeLLM{structuredFn: func(string, string) (string, error) {
		return "not json", nil
	}}

	_, err := agents.NewExtractor(llm).Extract(context.Background(), "Hello", models.UserProfile{})
	stage, ok := oracle.StageOf(err)
	require.True(t, ok)
	require.Equal(t, oracle.StageExtraction, stage)
}
