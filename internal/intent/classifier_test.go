package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEmotionalProgression(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name    string
		message string
	}{
		{"first person feeling", "I feel really happy today"},
		{"emotion plus progression", "give me a sad progression"},
		{"mood request", "make it sound mysterious"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.message, nil)
			assert.Equal(t, EmotionalProgression, result.Primary)
			assert.Greater(t, result.Confidence, 0.0)
		})
	}
}

func TestClassifyIndividualChord(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("what chord represents longing?", nil)
	assert.Equal(t, IndividualChord, result.Primary)
	assert.Contains(t, result.Engines, "individual")
}

func TestClassifyComparison(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("compare jazz vs blues versions", nil)
	assert.Equal(t, Comparison, result.Primary)
}

func TestClassifyDefaultFallback(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("asdf qwerty", nil)
	assert.Equal(t, EmotionalProgression, result.Primary)
	assert.InDelta(t, 0.3, result.Confidence, 0.001)
}

func TestClassifyConfidenceCap(t *testing.T) {
	c := NewClassifier()

	// Several theory patterns match at once; confidence never exceeds 1.
	result := c.Classify("explain the theory analysis of a jazz progression, why does it work in dorian mode", nil)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestClassifyContextBoost(t *testing.T) {
	c := NewClassifier()
	ctx := &ClassifyContext{
		LastProgression: []string{"i", "iv", "i", "v"},
		LastEmotion:     "Sadness",
	}

	result := c.Classify("analyze each chord please", ctx)

	require.Equal(t, IndividualAnalysis, result.Primary)
	assert.Equal(t, ctx.LastProgression, result.Params["context_progression"])
	assert.Equal(t, "Sadness", result.Params["context_emotion"])
}

func TestClassifyNoBoostWithoutProgression(t *testing.T) {
	c := NewClassifier()

	// Matching patterns without remembered state must not inject context.
	result := c.Classify("analyze each chord please", &ClassifyContext{})
	_, hasContext := result.Params["context_progression"]
	assert.False(t, hasContext)
}

func TestClassifyNoBoostWithoutPatternMatch(t *testing.T) {
	c := NewClassifier()
	ctx := &ClassifyContext{LastProgression: []string{"I", "IV", "V", "I"}}

	// Remembered state alone must not hijack an unrelated message.
	result := c.Classify("I feel happy", ctx)
	assert.Equal(t, EmotionalProgression, result.Primary)
	_, hasContext := result.Params["context_progression"]
	assert.False(t, hasContext)
}
