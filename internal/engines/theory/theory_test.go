package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLegalProgression(t *testing.T) {
	e := NewEngine()

	analysis, err := e.Analyze([]string{"I", "IV", "V", "I"}, "Ionian")
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.True(t, analysis.Legal)
	require.Len(t, analysis.Chords, 4)
	assert.Equal(t, "tonic", analysis.Chords[0].Function)
	assert.Equal(t, "subdominant", analysis.Chords[1].Function)
	assert.Equal(t, "dominant", analysis.Chords[2].Function)
}

func TestAnalyzeIllegalChordFlagged(t *testing.T) {
	e := NewEngine()

	analysis, err := e.Analyze([]string{"I", "♭II", "V"}, "Ionian")
	require.Error(t, err)
	require.NotNil(t, analysis, "illegal progressions still return the per-chord breakdown")

	assert.False(t, analysis.Legal)
	assert.True(t, analysis.Chords[0].Legal)
	assert.False(t, analysis.Chords[1].Legal)
	assert.True(t, analysis.Chords[2].Legal)
}

func TestAnalyzeExtendedChordLegal(t *testing.T) {
	e := NewEngine()

	// V7 is legal wherever V is.
	analysis, err := e.Analyze([]string{"ii", "V7", "I"}, "Ionian")
	require.NoError(t, err)
	assert.True(t, analysis.Legal)
}

func TestAnalyzeUnknownMode(t *testing.T) {
	e := NewEngine()

	analysis, err := e.Analyze([]string{"I"}, "Hypermixolydian")
	assert.Error(t, err)
	assert.Nil(t, analysis)
}

func TestAnalyzeEmptyProgression(t *testing.T) {
	e := NewEngine()

	_, err := e.Analyze(nil, "Ionian")
	assert.Error(t, err)
}

func TestGenerateLegal(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		style    string
		mode     string
		expected []string
	}{
		{"Pop", "Ionian", []string{"I", "V", "vi", "IV"}},
		{"Jazz", "Ionian", []string{"ii", "V", "I", "vi"}},
		{"Classical", "Aeolian", []string{"i", "iv", "v", "i"}},
	}

	for _, tt := range tests {
		t.Run(tt.style+"/"+tt.mode, func(t *testing.T) {
			got, err := e.GenerateLegal(tt.style, tt.mode, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			analysis, err := e.Analyze(got, tt.mode)
			require.NoError(t, err)
			assert.True(t, analysis.Legal)
		})
	}
}

func TestGenerateLegalWrapsLength(t *testing.T) {
	e := NewEngine()

	got, err := e.GenerateLegal("Pop", "Ionian", 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"I", "V", "vi", "IV", "I", "V"}, got)
}

func TestGenerateLegalUnknownStyle(t *testing.T) {
	e := NewEngine()

	_, err := e.GenerateLegal("Vaporwave", "Ionian", 4)
	assert.Error(t, err)
}

func TestCompareStylesCoversAllStyles(t *testing.T) {
	e := NewEngine()

	comparison, err := e.CompareStyles("Dorian", 4)
	require.NoError(t, err)
	require.Len(t, comparison, len(AvailableStyles))

	for style, progression := range comparison {
		analysis, err := e.Analyze(progression, "Dorian")
		require.NoError(t, err, "style %s produced an illegal progression", style)
		assert.True(t, analysis.Legal)
	}
}

func TestCompareStylesUnknownMode(t *testing.T) {
	e := NewEngine()

	_, err := e.CompareStyles("Chromatic", 4)
	assert.Error(t, err)
}

func TestValidChordsFor(t *testing.T) {
	assert.Contains(t, ValidChordsFor("Aeolian"), "♭VII")
	assert.Nil(t, ValidChordsFor("Unknown"))
}
