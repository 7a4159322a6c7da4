package synth

import (
	"context"
	"testing"

	"github.com/chordelia/chordelia-api/internal/engines"
	"github.com/chordelia/chordelia-api/internal/engines/chord"
	"github.com/chordelia/chordelia-api/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSynthesizer() *Synthesizer {
	adapters := engines.NewAdapters(nil, nil)
	return NewSynthesizer(adapters.Voicing)
}

func TestSynthesizeEmotionalProgression(t *testing.T) {
	s := newTestSynthesizer()

	ui := intent.UserIntent{Primary: intent.EmotionalProgression, Params: map[string]any{}}
	results := map[string]any{
		"progression": map[string]any{
			"chords":       []string{"I", "IV", "V13", "I"},
			"emotion":      map[string]float64{"Joy": 0.8, "Trust": 0.2},
			"primary_mode": "Ionian",
			"key":          "C",
			"genre":        "Pop",
		},
	}

	response := s.Synthesize(context.Background(), ui, results)

	assert.Equal(t, []string{"I", "IV", "V7", "I"}, response["chords"])
	assert.Equal(t, []string{"I", "IV", "V13", "I"}, response["original_chords"])
	msg, _ := response["message"].(string)
	assert.Contains(t, msg, "I → IV → V13 → I")
	assert.Contains(t, msg, "Mode: Ionian")

	// Voice leading post-processing always yields a payload.
	require.NotNil(t, response["voice_leading"])
	suggestions, _ := response["suggestions"].([]string)
	assert.Len(t, suggestions, 4)
}

func TestSynthesizeSingleChord(t *testing.T) {
	s := newTestSynthesizer()

	ui := intent.UserIntent{
		Primary: intent.IndividualChord,
		Params:  map[string]any{"consonant_dissonant_preference": "consonant"},
	}
	results := map[string]any{
		"individual_results": []chord.Result{
			{
				Candidate: chord.Candidate{
					Symbol:        "Cmaj7",
					RomanNumeral:  "maj7",
					ModeContext:   "Ionian",
					StyleContext:  "Jazz",
					CDValue:       0.4,
					CDDescription: "moderate",
					EmotionWeights: map[string]float64{
						"Joy": 0.8, "Love": 0.7,
					},
				},
				EmotionalScore: 0.75,
			},
			{
				Candidate: chord.Candidate{Symbol: "Am7", CDValue: 0.35},
			},
		},
	}

	response := s.Synthesize(context.Background(), ui, results)

	assert.Equal(t, "Cmaj7", response["chord_symbol"])
	assert.Equal(t, "consonant", response["consonant_dissonant_preference"])
	msg, _ := response["message"].(string)
	assert.Contains(t, msg, "Cmaj7")
	assert.Contains(t, msg, "Alternative chords")
	assert.Contains(t, msg, "Am7")
}

func TestSynthesizeSingleChordNoResults(t *testing.T) {
	s := newTestSynthesizer()

	ui := intent.UserIntent{Primary: intent.IndividualChord, Params: map[string]any{}}
	response := s.Synthesize(context.Background(), ui, map[string]any{})

	assert.Contains(t, response, "error")
	msg, _ := response["message"].(string)
	assert.Contains(t, msg, "couldn't find a chord")
	suggestions, _ := response["suggestions"].([]string)
	assert.NotEmpty(t, suggestions)
}

func TestSynthesizeIndividualAnalysis(t *testing.T) {
	s := newTestSynthesizer()

	progression := []string{"i", "iv"}
	ui := intent.UserIntent{
		Primary: intent.IndividualAnalysis,
		Params:  map[string]any{"context_progression": progression},
	}
	results := map[string]any{
		"individual": []map[string]any{
			{
				"chord_symbol":    "Am",
				"mode_context":    "Aeolian",
				"style_context":   "Classical",
				"emotion_weights": map[string]float64{"Sadness": 1.0},
				"emotional_score": 0.9,
			},
			{
				"chord_symbol":    "Dm",
				"mode_context":    "Aeolian",
				"style_context":   "Classical",
				"emotion_weights": map[string]float64{"Sadness": 0.8},
				"emotional_score": 0.7,
			},
		},
	}

	response := s.Synthesize(context.Background(), ui, results)

	assert.Equal(t, progression, response["chords"])
	assert.Equal(t, true, response["progression_breakdown"])
	msg, _ := response["message"].(string)
	assert.Contains(t, msg, "1. i")
	assert.Contains(t, msg, "2. iv")
	assert.Contains(t, msg, "Sadness")
}

func TestSynthesizeIndividualAnalysisWithoutContext(t *testing.T) {
	s := newTestSynthesizer()

	ui := intent.UserIntent{Primary: intent.IndividualAnalysis, Params: map[string]any{}}
	response := s.Synthesize(context.Background(), ui, map[string]any{})

	msg, _ := response["message"].(string)
	assert.Contains(t, msg, "No progression found")
}

func TestSynthesizeComparison(t *testing.T) {
	s := newTestSynthesizer()

	ui := intent.UserIntent{Primary: intent.Comparison, Params: map[string]any{}}
	results := map[string]any{
		"theory": map[string]any{
			"style_alternatives": map[string][]string{
				"Jazz": {"ii", "V", "I", "vi"},
				"Pop":  {"I", "V", "vi", "IV"},
			},
		},
	}

	response := s.Synthesize(context.Background(), ui, results)

	msg, _ := response["message"].(string)
	assert.Contains(t, msg, "Style Comparison")
	assert.Contains(t, msg, "Jazz")
	assert.Contains(t, msg, "ii → V → I → vi")

	playback, _ := response["style_playback_data"].(map[string][]string)
	require.Contains(t, playback, "Pop")
}

func TestSynthesizeUnknownIntentFallsBack(t *testing.T) {
	s := newTestSynthesizer()

	ui := intent.UserIntent{Primary: "unheard_of", Params: map[string]any{}}
	response := s.Synthesize(context.Background(), ui, map[string]any{})

	// Default template is the emotional progression one.
	assert.Contains(t, response, "suggestions")
	assert.Contains(t, response, "chords")
}

func TestSuggestionsTruncated(t *testing.T) {
	ui := intent.UserIntent{
		Primary: intent.Comparison,
		Params: map[string]any{
			"styles":   []string{"Jazz", "Blues"},
			"emotions": []string{"Joy"},
		},
	}

	got := Suggestions(ui, intent.Comparison)
	assert.Len(t, got, 4)
}
