package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineProgressionMode(t *testing.T) {
	o := newTestOrchestrator(t)

	tests := []struct {
		name        string
		progression []string
		emotion     string
		mode        string
		validated   bool
	}{
		{"minor root with minor iv", []string{"i", "iv", "i", "v"}, "", "Aeolian", true},
		{"major root with major IV", []string{"I", "IV", "V", "I"}, "", "Ionian", true},
		{"minor root with flats", []string{"i", "♭VII", "♭VI"}, "", "Phrygian", true},
		{"emotion fallback", []string{"I", "V", "vi"}, "Joy", "Ionian", true},
		{"no signal defaults to ionian", []string{"I", "V", "vi"}, "", "Ionian", true},
		{"unvalidatable keeps heuristic", []string{"i", "♭II", "i", "v"}, "", "Phrygian", false},
		{"empty progression", nil, "Sadness", "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, validated := o.determineProgressionMode(tt.progression, tt.emotion)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.validated, validated)
		})
	}
}

func TestValidateChordInMode(t *testing.T) {
	o := newTestOrchestrator(t)

	assert.True(t, o.validateChordInMode("V", "Ionian"))
	assert.True(t, o.validateChordInMode("V7", "Ionian"), "extended chords are legal where their base is")
	assert.False(t, o.validateChordInMode("♭II", "Ionian"))
	assert.False(t, o.validateChordInMode("I", "Hypermixolydian"))
}

func TestChordEmotionsByTheory(t *testing.T) {
	minorTonic := chordEmotionsByTheory("i", "Aeolian")
	assert.Equal(t, 0.8, minorTonic["Sadness"])

	majorSubdominant := chordEmotionsByTheory("IV", "Ionian")
	assert.Equal(t, 0.8, majorSubdominant["Joy"])

	diminished := chordEmotionsByTheory("vii°", "Ionian")
	assert.Equal(t, 0.8, diminished["Fear"])

	// Flat chords darken in minor modes and add color in major ones.
	darkFlat := chordEmotionsByTheory("♭VI", "Aeolian")
	assert.Equal(t, 0.6, darkFlat["Sadness"])
	brightFlat := chordEmotionsByTheory("♭VI", "Ionian")
	assert.Equal(t, 0.7, brightFlat["Surprise"])

	assert.Empty(t, chordEmotionsByTheory("sus4", "Ionian"))
}
