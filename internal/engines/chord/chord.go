// Package chord implements the individual-chord engine: single chords
// selected from an emotion-weighted database, filtered by mode and
// style context and biased toward a requested consonance level.
package chord

import (
	"sort"
	"strings"
)

// Candidate is one chord in the database with its emotional and
// contextual metadata.
type Candidate struct {
	Symbol         string             `json:"chord_symbol"`
	RomanNumeral   string             `json:"roman_numeral"`
	ModeContext    string             `json:"mode_context"`
	StyleContext   string             `json:"style_context"`
	EmotionWeights map[string]float64 `json:"emotion_weights"`
	CDValue        float64            `json:"consonant_dissonant_value"`
	CDDescription  string             `json:"consonant_dissonant_description"`
	ChordID        string             `json:"chord_id"`
}

// Result is a scored selection returned to callers.
type Result struct {
	Candidate
	EmotionalScore float64            `json:"emotional_score"`
	Prompt         string             `json:"prompt"`
	ParsedEmotions map[string]float64 `json:"parsed_emotions"`
	Key            string             `json:"key"`
}

// Options constrains chord selection.
type Options struct {
	NumOptions      int
	ModePreference  string   // "Any" or a mode name
	StylePreference string   // "Any" or a style name
	Key             string   // root key for symbols, defaults to C
	CDPreference    *float64 // nil means no consonance constraint
}

// database holds the chord-to-emotion map. CD values run 0 (fully
// consonant) to 1 (fully dissonant).
var database = []Candidate{
	{Symbol: "C", RomanNumeral: "I", ModeContext: "Ionian", StyleContext: "Classical", CDValue: 0.1, CDDescription: "consonant",
		EmotionWeights: map[string]float64{"Joy": 1.0, "Trust": 0.7, "Love": 0.6, "Surprise": 0.3, "Anticipation": 0.2, "Aesthetic Awe": 0.4}},
	{Symbol: "F", RomanNumeral: "IV", ModeContext: "Ionian", StyleContext: "Classical", CDValue: 0.15, CDDescription: "consonant",
		EmotionWeights: map[string]float64{"Joy": 0.8, "Trust": 0.6, "Love": 0.5, "Surprise": 0.2, "Sadness": 0.1, "Anticipation": 0.3, "Aesthetic Awe": 0.4}},
	{Symbol: "G", RomanNumeral: "V", ModeContext: "Ionian", StyleContext: "Classical", CDValue: 0.3, CDDescription: "consonant",
		EmotionWeights: map[string]float64{"Anticipation": 0.9, "Joy": 0.4, "Love": 0.3, "Trust": 0.2, "Surprise": 0.4, "Fear": 0.2, "Sadness": 0.1, "Anger": 0.1, "Aesthetic Awe": 0.3}},
	{Symbol: "Am", RomanNumeral: "vi", ModeContext: "Ionian", StyleContext: "Classical", CDValue: 0.2, CDDescription: "consonant",
		EmotionWeights: map[string]float64{"Sadness": 0.7, "Trust": 0.5, "Love": 0.5, "Shame": 0.3, "Anticipation": 0.2, "Joy": 0.2, "Fear": 0.1, "Aesthetic Awe": 0.1}},
	{Symbol: "Am", RomanNumeral: "i", ModeContext: "Aeolian", StyleContext: "Classical", CDValue: 0.2, CDDescription: "consonant",
		EmotionWeights: map[string]float64{"Sadness": 1.0, "Shame": 0.6, "Trust": 0.4, "Love": 0.3, "Fear": 0.2, "Anticipation": 0.3, "Envy": 0.2}},
	{Symbol: "Dm", RomanNumeral: "iv", ModeContext: "Aeolian", StyleContext: "Classical", CDValue: 0.25, CDDescription: "consonant",
		EmotionWeights: map[string]float64{"Sadness": 0.8, "Shame": 0.6, "Fear": 0.3, "Trust": 0.3, "Anger": 0.1, "Love": 0.2}},
	{Symbol: "Cmaj7", RomanNumeral: "maj7", ModeContext: "Ionian", StyleContext: "Jazz", CDValue: 0.4, CDDescription: "moderate",
		EmotionWeights: map[string]float64{"Joy": 0.8, "Love": 0.7, "Trust": 0.6, "Aesthetic Awe": 0.6, "Sadness": 0.3, "Surprise": 0.2}},
	{Symbol: "Am7", RomanNumeral: "min7", ModeContext: "Dorian", StyleContext: "Jazz", CDValue: 0.35, CDDescription: "moderate",
		EmotionWeights: map[string]float64{"Sadness": 0.6, "Trust": 0.5, "Love": 0.4, "Shame": 0.3, "Joy": 0.3}},
	{Symbol: "G7", RomanNumeral: "7", ModeContext: "Mixolydian", StyleContext: "Jazz", CDValue: 0.55, CDDescription: "moderate",
		EmotionWeights: map[string]float64{"Anticipation": 0.9, "Surprise": 0.6, "Trust": 0.4, "Aesthetic Awe": 0.3, "Anger": 0.2, "Fear": 0.3}},
	{Symbol: "G#dim7", RomanNumeral: "dim7", ModeContext: "Locrian", StyleContext: "Jazz", CDValue: 0.9, CDDescription: "dissonant",
		EmotionWeights: map[string]float64{"Fear": 1.0, "Disgust": 0.6, "Shame": 0.6, "Anticipation": 0.7, "Surprise": 0.5}},
	{Symbol: "C7", RomanNumeral: "I7", ModeContext: "Mixolydian", StyleContext: "Blues", CDValue: 0.5, CDDescription: "moderate",
		EmotionWeights: map[string]float64{"Joy": 0.8, "Trust": 0.6, "Sadness": 0.4, "Love": 0.4, "Shame": 0.2, "Aesthetic Awe": 0.3, "Surprise": 0.4}},
	{Symbol: "F7", RomanNumeral: "IV7", ModeContext: "Mixolydian", StyleContext: "Blues", CDValue: 0.5, CDDescription: "moderate",
		EmotionWeights: map[string]float64{"Joy": 0.6, "Sadness": 0.5, "Trust": 0.4, "Love": 0.3, "Anticipation": 0.3}},
	{Symbol: "Caug", RomanNumeral: "I+", ModeContext: "Lydian", StyleContext: "Cinematic", CDValue: 0.75, CDDescription: "dissonant",
		EmotionWeights: map[string]float64{"Aesthetic Awe": 0.9, "Surprise": 0.7, "Anticipation": 0.5, "Fear": 0.3}},
	{Symbol: "Dsus4", RomanNumeral: "IIsus4", ModeContext: "Lydian", StyleContext: "Cinematic", CDValue: 0.45, CDDescription: "moderate",
		EmotionWeights: map[string]float64{"Aesthetic Awe": 0.6, "Anticipation": 0.6, "Wonder": 0.5, "Trust": 0.3}},
	{Symbol: "Bdim", RomanNumeral: "vii°", ModeContext: "Ionian", StyleContext: "Classical", CDValue: 0.8, CDDescription: "dissonant",
		EmotionWeights: map[string]float64{"Fear": 0.8, "Anticipation": 0.6, "Shame": 0.4, "Envy": 0.3}},
	{Symbol: "Dm7b5", RomanNumeral: "iiø7", ModeContext: "Aeolian", StyleContext: "Jazz", CDValue: 0.7, CDDescription: "dissonant",
		EmotionWeights: map[string]float64{"Sadness": 0.7, "Fear": 0.5, "Shame": 0.5, "Anticipation": 0.4}},
}

// emotionKeywords drives free-text emotion detection for chord prompts.
var emotionKeywords = map[string][]string{
	"Joy":           {"happy", "joy", "bright", "cheerful", "excited", "uplifting"},
	"Sadness":       {"sad", "melancholy", "sorrow", "blue", "mournful", "wistful"},
	"Fear":          {"tense", "anxious", "scared", "dark", "ominous", "unsettling"},
	"Anger":         {"angry", "aggressive", "harsh", "furious"},
	"Disgust":       {"disgusted", "sour", "repulsed"},
	"Surprise":      {"surprising", "unexpected", "shocked", "quirky"},
	"Trust":         {"warm", "safe", "stable", "comfortable", "grounded"},
	"Anticipation":  {"anticipation", "building", "eager", "unresolved", "hopeful"},
	"Shame":         {"regret", "shame", "guilt"},
	"Love":          {"love", "romantic", "tender", "intimate", "affection"},
	"Envy":          {"jealous", "envious", "bitter"},
	"Aesthetic Awe": {"awe", "wonder", "sublime", "majestic", "dreamy", "ethereal", "beautiful"},
}

// Engine selects individual chords from prompts.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// ParseEmotionWeights extracts a normalized emotion vector from a prompt.
func (e *Engine) ParseEmotionWeights(text string) map[string]float64 {
	lower := strings.ToLower(text)
	weights := make(map[string]float64)
	total := 0.0
	for emotion, keywords := range emotionKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				weights[emotion]++
				total++
			}
		}
	}
	if total == 0 {
		return map[string]float64{"Joy": 1.0}
	}
	for emotion := range weights {
		weights[emotion] /= total
	}
	return weights
}

// Generate returns scored chord options for the prompt under the given
// constraints. Never returns an empty slice: when nothing in the
// database matches, a plain tonic major fallback is returned.
func (e *Engine) Generate(prompt string, opts Options) []Result {
	if opts.NumOptions < 1 {
		opts.NumOptions = 1
	}
	if opts.Key == "" {
		opts.Key = "C"
	}
	if opts.ModePreference == "" {
		opts.ModePreference = "Any"
	}
	if opts.StylePreference == "" {
		opts.StylePreference = "Any"
	}

	emotions := e.ParseEmotionWeights(prompt)

	type scored struct {
		cand  Candidate
		score float64
	}
	var candidates []scored
	for _, cand := range database {
		if opts.ModePreference != "Any" && cand.ModeContext != opts.ModePreference {
			continue
		}
		if opts.StylePreference != "Any" && cand.StyleContext != opts.StylePreference {
			continue
		}

		score := 0.0
		for emotion, userWeight := range emotions {
			score += userWeight * cand.EmotionWeights[emotion]
		}
		if opts.CDPreference != nil {
			// Closeness to the requested consonance level contributes
			// alongside emotional fit.
			distance := cand.CDValue - *opts.CDPreference
			if distance < 0 {
				distance = -distance
			}
			score += (1 - distance) * 0.5
		}

		if score > 0.01 {
			candidates = append(candidates, scored{cand: cand, score: score})
		}
	}

	if len(candidates) == 0 {
		fallback := Candidate{
			Symbol:         "C",
			RomanNumeral:   "I",
			ModeContext:    "Ionian",
			StyleContext:   "Classical",
			EmotionWeights: map[string]float64{"Joy": 1.0},
			CDValue:        0.1,
			CDDescription:  "consonant",
			ChordID:        "fallback_001",
		}
		return []Result{{
			Candidate:      fallback,
			EmotionalScore: 1.0,
			Prompt:         prompt,
			ParsedEmotions: emotions,
			Key:            opts.Key,
		}}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > opts.NumOptions {
		candidates = candidates[:opts.NumOptions]
	}

	results := make([]Result, 0, len(candidates))
	for _, sc := range candidates {
		cand := sc.cand
		cand.Symbol = transpose(cand.Symbol, "C", opts.Key)
		if cand.ChordID == "" {
			cand.ChordID = cand.StyleContext + "_" + cand.ModeContext + "_" + cand.RomanNumeral
		}
		results = append(results, Result{
			Candidate:      cand,
			EmotionalScore: sc.score,
			Prompt:         prompt,
			ParsedEmotions: emotions,
			Key:            opts.Key,
		})
	}
	return results
}

var chromaticScale = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// transpose shifts a chord symbol from one key to another. Symbols with
// unrecognized roots come back unchanged.
func transpose(symbol, fromKey, toKey string) string {
	if fromKey == toKey {
		return symbol
	}
	fromIdx := noteIndex(fromKey)
	toIdx := noteIndex(toKey)
	if fromIdx < 0 || toIdx < 0 {
		return symbol
	}
	interval := (toIdx - fromIdx + 12) % 12

	root := string(symbol[0])
	rest := symbol[1:]
	if len(symbol) > 1 && (symbol[1] == '#' || symbol[1] == 'b') {
		root = symbol[:2]
		rest = symbol[2:]
	}
	rootIdx := noteIndex(root)
	if rootIdx < 0 {
		return symbol
	}
	return chromaticScale[(rootIdx+interval)%12] + rest
}

func noteIndex(note string) int {
	// Normalize flats to the sharp spelling the scale uses.
	flats := map[string]string{"Db": "C#", "Eb": "D#", "Gb": "F#", "Ab": "G#", "Bb": "A#"}
	if sharp, ok := flats[note]; ok {
		note = sharp
	}
	for i, n := range chromaticScale {
		if n == note {
			return i
		}
	}
	return -1
}
