package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmotions(t *testing.T) {
	params := ExtractParameters("something melancholy but warm")

	require.Contains(t, params, "primary_emotion")
	assert.Equal(t, "sad", params["primary_emotion"])

	detected := params["detected_emotions"].([]string)
	assert.Contains(t, detected, "sad")
	assert.Contains(t, detected, "love")
}

func TestExtractConsonancePriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"consonant cue", "something smooth and gentle", "consonant"},
		{"dissonant cue", "edgy and rough", "dissonant"},
		{"moderate cue", "balanced with a bit of edge", "moderate"},
		{"consonant wins over dissonant", "smooth but tense", "consonant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ExtractParameters(tt.text)
			assert.Equal(t, tt.expected, params["consonant_dissonant_preference"])
		})
	}
}

func TestExtractConsonanceAbsent(t *testing.T) {
	params := ExtractParameters("give me a chord")
	_, ok := params["consonant_dissonant_preference"]
	assert.False(t, ok)
}

func TestExtractModeAndStyle(t *testing.T) {
	params := ExtractParameters("a dreamy jazz chord")

	assert.Equal(t, "Lydian", params["primary_mode"])
	assert.Equal(t, "Jazz", params["primary_style"])
}

func TestExtractModeFirstMatchWins(t *testing.T) {
	// "bright" cues major before any later mode table entry.
	params := ExtractParameters("bright and floating")
	assert.Equal(t, "Major", params["primary_mode"])
}

func TestExtractNumbersClamped(t *testing.T) {
	params := ExtractParameters("give me 25 options of length 99")

	assert.Equal(t, 10, params["num_options"])
	assert.Equal(t, 16, params["length"])
}

func TestExtractSingleNumber(t *testing.T) {
	params := ExtractParameters("3 chord ideas")

	assert.Equal(t, 3, params["num_options"])
	_, ok := params["length"]
	assert.False(t, ok)
}
