package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// emotionFamilies groups free-text cues into emotion families. The
// first family to match becomes the primary emotion; every match lands
// in detected_emotions.
var emotionFamilies = []struct {
	name     string
	keywords []string
}{
	{"happy", []string{"happy", "joy", "joyful", "cheerful", "bright", "upbeat", "positive"}},
	{"sad", []string{"sad", "melancholy", "sorrowful", "depressed", "down", "blue", "mournful"}},
	{"angry", []string{"angry", "rage", "furious", "mad", "aggressive", "intense", "harsh"}},
	{"fear", []string{"scary", "frightening", "tense", "anxious", "nervous", "worried", "dark"}},
	{"love", []string{"love", "romantic", "tender", "affectionate", "warm", "intimate"}},
	{"wonder", []string{"wonder", "awe", "mysterious", "magical", "ethereal", "transcendent"}},
	{"trust", []string{"trust", "confidence", "steady", "reliable", "stable", "grounded"}},
	{"surprise", []string{"surprise", "unexpected", "shocking", "sudden", "startling"}},
	{"transcendence", []string{
		"transcendent", "mystical", "ethereal", "otherworldly", "cosmic", "divine",
		"spiritual", "enlightened", "transcendental", "sublime", "celestial",
		"dreamlike", "lucid", "visionary", "floating", "weightless",
		"ego death", "dissolution", "sacred", "dissonant",
	}},
}

// Consonance extraction is priority-ordered: consonant cues win over
// dissonant cues, which win over moderate cues.
var (
	consonantKeywords = []string{"consonant", "smooth", "peaceful", "gentle", "soft", "harmonious", "stable", "resolved"}
	dissonantKeywords = []string{"dissonant", "tense", "harsh", "edgy", "rough", "complex", "unresolved", "tension"}
	moderateKeywords  = []string{"moderate", "balanced", "medium", "some tension", "bit of edge"}
)

// modeCues maps mode names to their triggering words, first match wins
// in declaration order.
var modeCues = []struct {
	mode     string
	keywords []string
}{
	{"major", []string{"major", "ionian", "bright", "happy"}},
	{"minor", []string{"minor", "aeolian", "sad", "dark"}},
	{"dorian", []string{"dorian", "folk", "modal"}},
	{"mixolydian", []string{"mixolydian", "bluesy", "dominant"}},
	{"lydian", []string{"lydian", "dreamy", "floating"}},
	{"phrygian", []string{"phrygian", "spanish", "exotic"}},
}

var styleCues = []struct {
	style    string
	keywords []string
}{
	{"jazz", []string{"jazz", "swing", "bebop", "smooth jazz"}},
	{"classical", []string{"classical", "baroque", "romantic", "orchestral"}},
	{"pop", []string{"pop", "commercial", "radio", "mainstream"}},
	{"rock", []string{"rock", "guitar", "electric", "power"}},
	{"blues", []string{"blues", "twelve bar", "shuffle"}},
	{"folk", []string{"folk", "acoustic", "traditional"}},
}

var numberPattern = regexp.MustCompile(`\d+`)

const (
	maxNumOptions = 10
	maxLength     = 16
)

func normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

// ExtractParameters pulls musical parameters from a lowercased message:
// emotion families, consonance preference, mode, style, and numeric
// options.
func ExtractParameters(text string) map[string]any {
	params := map[string]any{}

	var detected []string
	for _, family := range emotionFamilies {
		if containsAny(text, family.keywords) {
			detected = append(detected, family.name)
		}
	}
	if len(detected) > 0 {
		params["primary_emotion"] = detected[0]
		params["detected_emotions"] = detected
	}

	switch {
	case containsAny(text, consonantKeywords):
		params["consonant_dissonant_preference"] = "consonant"
	case containsAny(text, dissonantKeywords):
		params["consonant_dissonant_preference"] = "dissonant"
	case containsAny(text, moderateKeywords):
		params["consonant_dissonant_preference"] = "moderate"
	}

	for _, cue := range modeCues {
		if containsAny(text, cue.keywords) {
			params["primary_mode"] = capitalize(cue.mode)
			break
		}
	}

	for _, cue := range styleCues {
		if containsAny(text, cue.keywords) {
			params["primary_style"] = capitalize(cue.style)
			break
		}
	}

	numbers := numberPattern.FindAllString(text, -1)
	if len(numbers) > 0 {
		if n, err := strconv.Atoi(numbers[0]); err == nil {
			params["num_options"] = clamp(n, 1, maxNumOptions)
		}
		if len(numbers) > 1 {
			if n, err := strconv.Atoi(numbers[1]); err == nil {
				params["length"] = clamp(n, 1, maxLength)
			}
		}
	}

	return params
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
