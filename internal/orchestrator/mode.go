package orchestrator

import (
	"strings"

	"github.com/chordelia/chordelia-api/internal/engines/theory"
)

// emotionModeMap infers a mode from a remembered emotion when the
// chord pattern rules are inconclusive.
var emotionModeMap = map[string]string{
	"Joy": "Ionian", "Sadness": "Aeolian", "Fear": "Phrygian",
	"Anger": "Phrygian", "Love": "Mixolydian", "Trust": "Dorian",
	"Malice": "Locrian", "Wonder": "Lydian", "Empowerment": "Ionian",
	"Gratitude": "Ionian", "Reverence": "Lydian", "Transcendence": "Lydian",
}

// modeAlternatives are tried in order when the candidate mode fails
// theory validation.
var modeAlternatives = []string{"Aeolian", "Ionian", "Dorian", "Phrygian"}

// determineProgressionMode infers the mode of a remembered progression:
// chord-pattern rules first, then the remembered emotion, then Ionian.
// The candidate is validated against the theory engine; when neither
// the candidate nor any alternative validates, the heuristic guess is
// returned with validated=false.
func (o *Orchestrator) determineProgressionMode(progression []string, contextEmotion string) (mode string, validated bool) {
	if len(progression) == 0 {
		return "Unknown", false
	}

	hasMinorRoot := false
	hasMajorRoot := false
	hasMinorIV := false
	hasMajorIV := false
	hasFlatIntervals := false
	for _, chord := range progression {
		if strings.HasPrefix(chord, "i") && !strings.HasPrefix(chord, "ii") {
			hasMinorRoot = true
		}
		if strings.HasPrefix(chord, "I") && !strings.HasPrefix(chord, "II") {
			hasMajorRoot = true
		}
		if chord == "iv" {
			hasMinorIV = true
		}
		if chord == "IV" {
			hasMajorIV = true
		}
		if chord == "♭II" || chord == "♭VII" {
			hasFlatIntervals = true
		}
	}

	candidate := ""
	switch {
	case hasMinorRoot && hasMinorIV:
		candidate = "Aeolian"
	case hasMajorRoot && hasMajorIV && !hasMinorIV:
		candidate = "Ionian"
	case hasMinorRoot && hasFlatIntervals:
		candidate = "Phrygian"
	default:
		if contextEmotion != "" {
			if m, ok := emotionModeMap[contextEmotion]; ok {
				candidate = m
			}
		}
		if candidate == "" {
			candidate = "Ionian"
		}
	}

	if analysis, err := o.theory.Analyze(progression, candidate); err == nil && analysis.Legal {
		return candidate, true
	}
	for _, alt := range modeAlternatives {
		if alt == candidate {
			continue
		}
		if analysis, err := o.theory.Analyze(progression, alt); err == nil && analysis.Legal {
			return alt, true
		}
	}
	return candidate, false
}

// validateChordInMode checks a single chord's legality.
func (o *Orchestrator) validateChordInMode(chord, mode string) bool {
	vocab := theory.ValidChordsFor(mode)
	if len(vocab) == 0 {
		return false
	}
	for _, base := range vocab {
		if chord == base || strings.HasPrefix(chord, base) {
			return true
		}
	}
	return false
}

// chordEmotionsByTheory derives emotion weights from chord quality when
// the chord engine has no matching entry.
func chordEmotionsByTheory(chord, mode string) map[string]float64 {
	weights := map[string]float64{}

	switch {
	case strings.HasPrefix(chord, "i") && !strings.HasPrefix(chord, "ii"):
		weights["Sadness"] = 0.8
		weights["Shame"] = 0.3
		weights["Fear"] = 0.2
	case chord == "iv" || chord == "v":
		weights["Sadness"] = 0.7
		weights["Trust"] = 0.3
	case strings.HasPrefix(chord, "I") && !strings.HasPrefix(chord, "II"):
		weights["Joy"] = 0.9
		weights["Trust"] = 0.6
		weights["Love"] = 0.4
	case chord == "IV" || chord == "V":
		weights["Joy"] = 0.8
		weights["Anticipation"] = 0.5
	case strings.Contains(chord, "°") || strings.Contains(chord, "dim"):
		weights["Fear"] = 0.8
		weights["Surprise"] = 0.5
		weights["Disgust"] = 0.3
	case strings.Contains(chord, "♭"):
		if mode == "Aeolian" || mode == "Phrygian" {
			weights["Sadness"] = 0.6
			weights["Anger"] = 0.4
		} else {
			weights["Surprise"] = 0.7
			weights["Aesthetic Awe"] = 0.5
		}
	}
	return weights
}
