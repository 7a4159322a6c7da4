package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeChordSymbol(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain chord untouched", "I", "I"},
		{"minor chord untouched", "vi", "vi"},
		{"altered dominant", "V7alt", "V7#5"},
		{"altered subdominant", "IValt", "IV#11"},
		{"thirteenth simplifies", "V13", "V7"},
		{"eleventh simplifies", "ii11", "ii7"},
		{"half diminished", "iimin7b5", "iiø7"},
		{"diminished seventh", "viidim7", "vii°7"},
		{"augmented seventh", "Vaug7", "V+7"},
		// The rewritten IVM7#11 exceeds the complexity cutoff, so the
		// base survives without the extension.
		{"lydian major seventh", "IVmaj7#11", "IVM7"},
		{"empty input falls back to tonic", "", "I"},
		{"whitespace falls back to tonic", "   ", "I"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeChordSymbol(tt.in))
		})
	}
}

func TestNormalizeChordSymbolIdempotent(t *testing.T) {
	inputs := []string{"V7alt", "IVmaj7#11", "iimin7b5", "V13", "I", "♭VII"}
	for _, in := range inputs {
		once := NormalizeChordSymbol(in)
		twice := NormalizeChordSymbol(once)
		assert.Equal(t, once, twice, "normalizing %q twice diverged", in)
	}
}

func TestNormalizeComplexSymbolExtractsBase(t *testing.T) {
	// Long symbols with accidentals collapse to their readable base.
	got := NormalizeChordSymbol("V7b9b13sus4/3")
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), len("V7b9b13sus4/3"))
}

func TestNormalizeProgression(t *testing.T) {
	got := NormalizeProgression([]string{"I", "V13", "vi", "IValt"})
	assert.Equal(t, []string{"I", "V7", "vi", "IV#11"}, got)
}
