package engines

import (
	"context"
	"testing"

	"github.com/chordelia/chordelia-api/internal/engines/chord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallContainsPanics(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.call(context.Background(), "exploding", func() Result {
		panic("boom")
	})

	assert.True(t, result.Failed())
	assert.Contains(t, result.Err, "exploding engine panic")
	assert.Contains(t, result.Err, "boom")
}

func TestResultToMap(t *testing.T) {
	ok := OK(map[string]any{"chords": []string{"I", "V"}})
	assert.False(t, ok.Failed())
	assert.Equal(t, []string{"I", "V"}, ok.ToMap()["chords"])

	failed := Errf("engine %s unavailable", "theory")
	assert.True(t, failed.Failed())
	assert.Equal(t, map[string]any{"error": "engine theory unavailable"}, failed.ToMap())
}

func TestProgressionAdapterGenerate(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.Progression.Generate(context.Background(), "feeling happy and bright", "Pop", 3)
	require.False(t, result.Failed())

	chords, _ := result.Data["chords"].([]string)
	assert.NotEmpty(t, chords)
	assert.Equal(t, "Ionian", result.Data["primary_mode"])
	assert.Equal(t, "database_selection", result.Data["generation_method"])
}

func TestChordAdapterMapsConsonancePreference(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.Chord.Generate(context.Background(), "a warm chord", map[string]any{
		"consonant_dissonant_preference": "consonant",
		"style_preference":               "Classical",
	})
	require.False(t, result.Failed())

	options, ok := result.Data["individual_results"].([]chord.Result)
	require.True(t, ok)
	require.NotEmpty(t, options)
	// A consonant preference keeps dissonant chords off the top.
	assert.Less(t, options[0].CDValue, 0.5)
}

func TestChordAdapterHonorsNumOptions(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.Chord.Generate(context.Background(), "a happy bright chord", map[string]any{
		"num_options": 2,
	})
	require.False(t, result.Failed())

	options, ok := result.Data["individual_results"].([]chord.Result)
	require.True(t, ok)
	assert.Len(t, options, 2)

	// Without the parameter the default of four applies.
	result = a.Chord.Generate(context.Background(), "a happy bright chord", map[string]any{})
	require.False(t, result.Failed())
	options, _ = result.Data["individual_results"].([]chord.Result)
	assert.Len(t, options, 4)
}

func TestTheoryAdapterHandleComparison(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.Theory.Handle(context.Background(), "comparison", map[string]any{}, nil)
	require.False(t, result.Failed())

	alternatives, ok := result.Data["style_alternatives"].(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, alternatives, "Jazz")
	assert.Contains(t, alternatives, "Classical")
}

func TestTheoryAdapterHandleAnalyzeWithoutProgression(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.Theory.Handle(context.Background(), "emotional_progression", map[string]any{}, nil)
	assert.True(t, result.Failed())
}

func TestVoicingAdapterOptimize(t *testing.T) {
	a := NewAdapters(nil, nil)

	result := a.Voicing.Optimize(context.Background(), []string{"I", "IV", "V", "I"},
		map[string]float64{"Joy": 1.0}, "C", "classical")
	require.False(t, result.Failed())

	assert.Equal(t, false, result.Data["fallback"])
	assert.NotNil(t, result.Data["voiced_chords"])
	assert.NotNil(t, result.Data["register_analysis"])
}
