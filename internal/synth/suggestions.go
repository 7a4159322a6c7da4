package synth

import "github.com/chordelia/chordelia-api/internal/intent"

const maxSuggestions = 4

var baseSuggestions = map[string][]string{
	intent.EmotionalProgression: {
		"Try this in a different style",
		"Show me individual chord emotions",
		"Compare across musical styles",
		"Explain the music theory",
	},
	intent.IndividualChord: {
		"Show me similar chords",
		"Create a progression with this chord",
		"Explain why this chord fits",
		"Try in different modes",
	},
	intent.TheoryRequest: {
		"Add emotional context",
		"Compare with other styles",
		"Show me variations",
		"Explain the harmonic functions",
	},
	intent.Comparison: {
		"Try a different emotion",
		"Add more styles to compare",
		"Explain the differences",
		"Show me individual chord analysis",
	},
	intent.Educational: {
		"Show me practical examples",
		"Try this concept in practice",
		"Compare with other concepts",
		"Test my understanding",
	},
}

// Suggestions builds the follow-up prompts for a response type:
// category defaults plus conditional extras, truncated to four.
func Suggestions(userIntent intent.UserIntent, responseType string) []string {
	base, ok := baseSuggestions[responseType]
	if !ok {
		base = baseSuggestions[intent.EmotionalProgression]
	}
	suggestions := append([]string(nil), base...)

	if _, ok := userIntent.Params["styles"]; ok {
		suggestions = append(suggestions, "Try other musical styles")
	}
	if _, ok := userIntent.Params["emotions"]; ok {
		suggestions = append(suggestions, "Explore different emotions")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
