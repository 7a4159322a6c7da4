package voicing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordPitchClasses(t *testing.T) {
	tests := []struct {
		chord    string
		expected []int
	}{
		{"I", []int{0, 4, 7}},
		{"vi", []int{9, 0, 4}},
		{"V7", []int{7, 11, 2, 5}},
		{"vii°", []int{11, 2, 5}},
		{"♭VII", []int{10, 2, 5}},
		{"♭II", []int{1, 5, 8}},
		{"I+", []int{0, 4, 8}},
		{"iiø7", []int{2, 5, 8, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			got, ok := chordPitchClasses(tt.chord, "C")
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestChordPitchClassesUnparseable(t *testing.T) {
	_, ok := chordPitchClasses("XYZ", "C")
	assert.False(t, ok)

	_, ok = chordPitchClasses("I", "H")
	assert.False(t, ok)
}

func TestOptimizeTracksEmotionalRegister(t *testing.T) {
	e := NewEngine()

	bright := e.Optimize([]string{"I", "IV", "V", "I"}, map[string]float64{"Joy": 1.0}, "C", "Classical")
	dark := e.Optimize([]string{"i", "iv", "v", "i"}, map[string]float64{"Fear": 1.0}, "C", "Classical")

	require.Len(t, bright.VoicedChords, 4)
	require.Len(t, dark.VoicedChords, 4)

	assert.Equal(t, 5.0, bright.RegisterAnalysis.AverageRegister)
	assert.Equal(t, 2.0, dark.RegisterAnalysis.AverageRegister)
	assert.Greater(t, bright.VoicedChords[0].NotesMIDI[0], dark.VoicedChords[0].NotesMIDI[0])
	assert.False(t, bright.Fallback)
}

func TestOptimizeRepeatedChordCostsNothing(t *testing.T) {
	e := NewEngine()

	result := e.Optimize([]string{"I", "I"}, map[string]float64{"Joy": 1.0}, "C", "")

	require.Len(t, result.VoicedChords, 2)
	assert.Equal(t, 0.0, result.VoicedChords[0].VoiceLeadingCost)
	assert.Equal(t, 0.0, result.VoicedChords[1].VoiceLeadingCost)
	assert.Equal(t, 0.0, result.TotalCost)
}

func TestOptimizeMinimizesMovement(t *testing.T) {
	e := NewEngine()

	result := e.Optimize([]string{"I", "V", "vi", "IV"}, map[string]float64{"Joy": 1.0}, "C", "Pop")

	// Each voice moves at most a tritone per transition, so three
	// voices never exceed 18 semitones total.
	for _, vc := range result.VoicedChords[1:] {
		assert.LessOrEqual(t, vc.VoiceLeadingCost, 18.0)
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	e := NewEngine()
	weights := map[string]float64{"Sadness": 0.7, "Trust": 0.3}

	a := e.Optimize([]string{"i", "♭VI", "♭III", "♭VII"}, weights, "A", "Rock")
	b := e.Optimize([]string{"i", "♭VI", "♭III", "♭VII"}, weights, "A", "Rock")

	assert.Equal(t, a, b)
}

func TestOptimizeUnparseableChordDegradesToTonicTriad(t *testing.T) {
	e := NewEngine()

	result := e.Optimize([]string{"???", "I"}, map[string]float64{"Joy": 1.0}, "C", "")

	require.Len(t, result.VoicedChords, 2)
	assert.False(t, result.Fallback)
	assert.Len(t, result.VoicedChords[0].Notes, 3)
}

func TestOptimizeEmptyProgressionFallsBack(t *testing.T) {
	e := NewEngine()

	result := e.Optimize(nil, map[string]float64{"Joy": 1.0}, "C", "")

	assert.True(t, result.Fallback)
	assert.Equal(t, []int{4, 5}, result.RegisterAnalysis.TargetRegisters)
	assert.Equal(t, 4.5, result.RegisterAnalysis.AverageRegister)
	assert.Equal(t, 0.0, result.TotalCost)
}

func TestHarmonicRhythmShape(t *testing.T) {
	e := NewEngine()

	result := e.Optimize([]string{"I", "V", "I"}, map[string]float64{"Joy": 1.0}, "C", "")

	require.Len(t, result.HarmonicRhythm["tensions"], 3)
	require.Len(t, result.HarmonicRhythm["durations"], 3)
	// The opening chord has no movement, so its tension is the floor.
	assert.Equal(t, 0.0, result.HarmonicRhythm["tensions"][0])
	for _, d := range result.HarmonicRhythm["durations"] {
		assert.Equal(t, 1.0, d)
	}
}
