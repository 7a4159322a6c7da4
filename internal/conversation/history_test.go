package conversation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryAppendAndRecent(t *testing.T) {
	h := tempHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, Transcript{
		SessionID:       "s1",
		UserMessage:     "I feel happy",
		ResponseMessage: "🎼 I - IV - V - I",
		Intent:          "emotional_progression",
		Confidence:      0.66,
	}))
	require.NoError(t, h.Append(ctx, Transcript{
		SessionID:       "s1",
		UserMessage:     "analyze each chord",
		ResponseMessage: "🎼 Individual Chord Analysis",
		Intent:          "individual_analysis",
		Confidence:      1.0,
	}))

	got, err := h.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "individual_analysis", got[0].Intent)
	assert.Equal(t, "emotional_progression", got[1].Intent)
	assert.Equal(t, 0.66, got[1].Confidence)
}

func TestHistorySessionIsolation(t *testing.T) {
	h := tempHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, Transcript{SessionID: "a", UserMessage: "x", ResponseMessage: "y", Intent: "educational"}))
	require.NoError(t, h.Append(ctx, Transcript{SessionID: "b", UserMessage: "x", ResponseMessage: "y", Intent: "comparison"}))

	got, err := h.Recent(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "educational", got[0].Intent)
}

func TestHistoryRecentLimit(t *testing.T) {
	h := tempHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Append(ctx, Transcript{SessionID: "s", UserMessage: "m", ResponseMessage: "r", Intent: "educational"}))
	}

	got, err := h.Recent(ctx, "s", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
