package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mystica/pkg/models"
	"mystica/pkg/oracle"
)

func TestResolveStateMissingName(t *testing.T) {
	state := oracle.ResolveState(models.UserProfile{}, "Hello, I wish to know my future!")
	require.Equal(t, oracle.StateMissingName, state)
}

func TestResolveStateMissingDOB(t *testing.T) {
	state := oracle.ResolveState(models.UserProfile{Name: "Mira"}, "My name is Mira")
	require.Equal(t, oracle.StateMissingDOB, state)
}

func TestResolveStateAwaitingFocus(t *testing.T) {
	profile := models.UserProfile{Name: "Mira", DateOfBirth: "1990-01-01"}
	state := oracle.ResolveState(profile, "what happens now?")
	require.Equal(t, oracle.StateAwaitingFocus, state)
}

func TestResolveStateDivining(t *testing.T) {
	profile := models.UserProfile{Name: "Mira", DateOfBirth: "1990-01-01"}
	for _, msg := range []string{"love", "Love", "tell me about work", "WEALTH!", "continue", "yes please", "work and love"} {
		require.Equal(t, oracle.StateDivining, oracle.ResolveState(profile, msg), msg)
	}
}

func TestMatchesDivinationIntentRejectsChatter(t *testing.T) {
	for _, msg := range []string{"", "hello there", "my name is Mira", "what can you do?"} {
		require.False(t, oracle.MatchesDivinationIntent(msg), msg)
	}
}

func TestFocusAreas(t *testing.T) {
	require.Equal(t, []string{"Love"}, oracle.FocusAreas("love"))
	require.Equal(t, []string{"Work", "Wealth"}, oracle.FocusAreas("work and wealth"))
	require.Equal(t, []string{"Work", "Love", "Wealth"}, oracle.FocusAreas("work, love, and wealth"))
	require.Empty(t, oracle.FocusAreas("continue"))
}
