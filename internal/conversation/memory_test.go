package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAndGet(t *testing.T) {
	m := NewMemory(time.Hour)

	ctx := Fresh("session-1")
	ctx.LastProgression = []string{"I", "IV", "V", "I"}
	m.Store(ctx)

	got := m.Get("session-1")
	require.NotNil(t, got)
	assert.Equal(t, []string{"I", "IV", "V", "I"}, got.LastProgression)
}

func TestMemoryGetUnknownSession(t *testing.T) {
	m := NewMemory(time.Hour)
	assert.Nil(t, m.Get("missing"))
}

func TestMemoryExpiryEvictsOnRead(t *testing.T) {
	m := NewMemory(50 * time.Millisecond)

	ctx := Fresh("session-1")
	ctx.Timestamp = time.Now().Add(-time.Second)
	m.Store(ctx)

	assert.Nil(t, m.Get("session-1"))
	assert.Equal(t, 0, m.Len())
}

func TestMemoryCleanup(t *testing.T) {
	m := NewMemory(time.Minute)

	fresh := Fresh("fresh")
	m.Store(fresh)

	stale := Fresh("stale")
	stale.Timestamp = time.Now().Add(-2 * time.Minute)
	m.Store(stale)

	evicted, remaining := m.Cleanup()
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, remaining)
	assert.NotNil(t, m.Get("fresh"))
}

func TestDeriveNonRegression(t *testing.T) {
	prev := Fresh("s")
	prev.LastProgression = []string{"i", "iv", "i", "v"}
	prev.LastEmotion = "Sadness"
	prev.LastStyle = "Classical"
	prev.LastMode = "Aeolian"

	// A response with no musical payload keeps everything remembered.
	next := Derive(prev, "s", map[string]any{"message": "explained some theory"})
	assert.Equal(t, prev.LastProgression, next.LastProgression)
	assert.Equal(t, "Sadness", next.LastEmotion)
	assert.Equal(t, "Classical", next.LastStyle)
	assert.Equal(t, "Aeolian", next.LastMode)
}

func TestDeriveOverwritesWithNewData(t *testing.T) {
	prev := Fresh("s")
	prev.LastProgression = []string{"i", "iv"}
	prev.LastEmotion = "Sadness"

	next := Derive(prev, "s", map[string]any{
		"chords":   []string{"I", "V", "vi", "IV"},
		"emotions": map[string]float64{"Joy": 0.9, "Trust": 0.1},
		"primary_result": map[string]any{
			"genre":        "Pop",
			"primary_mode": "Ionian",
		},
	})

	assert.Equal(t, []string{"I", "V", "vi", "IV"}, next.LastProgression)
	assert.Equal(t, "Joy", next.LastEmotion)
	assert.Equal(t, "Pop", next.LastStyle)
	assert.Equal(t, "Ionian", next.LastMode)
}

func TestDeriveFromNilPrevious(t *testing.T) {
	next := Derive(nil, "s", map[string]any{"chords": []string{"I"}})
	assert.Equal(t, []string{"I"}, next.LastProgression)
	assert.Empty(t, next.LastEmotion)
}
