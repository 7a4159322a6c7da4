// Package progression implements the chord-progression generation
// engine: free-text emotion parsing against a weighted keyword table
// and database selection of progressions per emotion and genre.
package progression

import (
	"fmt"
	"sort"
	"strings"
)

// Progression is one generated result.
type Progression struct {
	Chords           []string           `json:"chords"`
	EmotionWeights   map[string]float64 `json:"emotion_weights"`
	PrimaryMode      string             `json:"primary_mode"`
	Genre            string             `json:"genre"`
	Key              string             `json:"key"`
	ProgressionID    string             `json:"progression_id"`
	GenerationMethod string             `json:"generation_method"`
	Metadata         map[string]any     `json:"metadata"`
}

// entry is one progression in the database with genre affinities.
type entry struct {
	chords []string
	genres map[string]float64
}

// database maps each core emotion to its progression pool.
var database = map[string][]entry{
	"Joy": {
		{chords: []string{"I", "IV", "V", "I"}, genres: map[string]float64{"Pop": 0.8, "Rock": 0.6, "Jazz": 0.5}},
		{chords: []string{"I", "vi", "IV", "V"}, genres: map[string]float64{"Pop": 0.9, "Rock": 0.5, "Folk": 0.6}},
		{chords: []string{"I", "V", "vi", "IV"}, genres: map[string]float64{"Pop": 0.9, "Rock": 0.7, "RnB": 0.5}},
	},
	"Sadness": {
		{chords: []string{"i", "iv", "i", "v"}, genres: map[string]float64{"Classical": 0.7, "Folk": 0.6, "Pop": 0.5}},
		{chords: []string{"i", "VI", "III", "VII"}, genres: map[string]float64{"Rock": 0.7, "Pop": 0.6, "Cinematic": 0.5}},
		{chords: []string{"i", "VII", "VI", "VII"}, genres: map[string]float64{"Rock": 0.8, "Cinematic": 0.6, "Pop": 0.4}},
	},
	"Fear": {
		{chords: []string{"i", "♭II", "i", "v"}, genres: map[string]float64{"Cinematic": 0.9, "Classical": 0.6}},
		{chords: []string{"♭II", "i", "iv", "i"}, genres: map[string]float64{"Cinematic": 0.8, "Classical": 0.5}},
		{chords: []string{"i", "♭II", "♭VII", "i"}, genres: map[string]float64{"Cinematic": 0.7, "Rock": 0.4}},
	},
	"Anger": {
		{chords: []string{"I", "♭II", "iv", "I"}, genres: map[string]float64{"Rock": 0.8, "Cinematic": 0.6}},
		{chords: []string{"I", "♭II", "♭VI", "I"}, genres: map[string]float64{"Rock": 0.7, "Cinematic": 0.7}},
		{chords: []string{"I", "V", "♭II", "I"}, genres: map[string]float64{"Rock": 0.8, "Blues": 0.5}},
	},
	"Disgust": {
		{chords: []string{"i°", "♭II", "♭v", "i°"}, genres: map[string]float64{"Cinematic": 0.8, "Jazz": 0.4}},
		{chords: []string{"i°", "iv", "♭II", "♭v"}, genres: map[string]float64{"Cinematic": 0.7, "Jazz": 0.5}},
	},
	"Surprise": {
		{chords: []string{"I", "II", "V", "I"}, genres: map[string]float64{"Jazz": 0.7, "Pop": 0.5, "Classical": 0.5}},
		{chords: []string{"I", "II", "iii", "IV"}, genres: map[string]float64{"Jazz": 0.6, "Classical": 0.6}},
		{chords: []string{"I", "V", "II", "I"}, genres: map[string]float64{"Jazz": 0.6, "Pop": 0.5}},
	},
	"Trust": {
		{chords: []string{"i", "ii", "IV", "i"}, genres: map[string]float64{"Folk": 0.7, "Pop": 0.6}},
		{chords: []string{"i", "IV", "v", "i"}, genres: map[string]float64{"Folk": 0.7, "RnB": 0.5}},
		{chords: []string{"i", "ii", "v", "i"}, genres: map[string]float64{"Folk": 0.6, "Jazz": 0.5}},
	},
	"Anticipation": {
		{chords: []string{"i", "ii", "V", "i"}, genres: map[string]float64{"Jazz": 0.7, "Classical": 0.6}},
		{chords: []string{"i", "IV", "V", "i"}, genres: map[string]float64{"Pop": 0.7, "Rock": 0.6}},
		{chords: []string{"i", "ii", "vi", "V"}, genres: map[string]float64{"Jazz": 0.6, "RnB": 0.6}},
	},
	"Shame": {
		{chords: []string{"i", "iv", "V", "i"}, genres: map[string]float64{"Classical": 0.7, "Cinematic": 0.5}},
		{chords: []string{"i", "♭VI", "V", "i"}, genres: map[string]float64{"Classical": 0.6, "Cinematic": 0.6}},
	},
	"Love": {
		{chords: []string{"I", "♭VII", "IV", "I"}, genres: map[string]float64{"Pop": 0.7, "RnB": 0.8, "Folk": 0.5}},
		{chords: []string{"I", "IV", "♭VII", "I"}, genres: map[string]float64{"RnB": 0.7, "Pop": 0.6}},
		{chords: []string{"I", "♭VII", "V", "I"}, genres: map[string]float64{"Pop": 0.6, "Rock": 0.5}},
	},
	"Envy": {
		{chords: []string{"i", "♯iv°", "V", "i"}, genres: map[string]float64{"Classical": 0.6, "Cinematic": 0.7}},
		{chords: []string{"i", "♭VI", "V", "♯iv°"}, genres: map[string]float64{"Cinematic": 0.7, "Jazz": 0.4}},
	},
	"Aesthetic Awe": {
		{chords: []string{"I", "II", "III+", "I"}, genres: map[string]float64{"Cinematic": 0.8, "Classical": 0.7}},
		{chords: []string{"I", "♯IVdim", "III+", "II"}, genres: map[string]float64{"Cinematic": 0.8, "Jazz": 0.5}},
		{chords: []string{"I", "III+", "II", "I"}, genres: map[string]float64{"Cinematic": 0.7, "Classical": 0.6}},
	},
}

// emotionModes maps each emotion to its characteristic mode.
var emotionModes = map[string]string{
	"Joy":           "Ionian",
	"Sadness":       "Aeolian",
	"Fear":          "Phrygian",
	"Anger":         "Phrygian",
	"Disgust":       "Locrian",
	"Surprise":      "Lydian",
	"Trust":         "Dorian",
	"Anticipation":  "Dorian",
	"Shame":         "Aeolian",
	"Love":          "Mixolydian",
	"Envy":          "Aeolian",
	"Aesthetic Awe": "Lydian",
}

// emotionKeywords drives free-text emotion detection. Order matters only
// within weights, not across emotions: every matching keyword adds to
// its emotion's weight.
var emotionKeywords = map[string][]string{
	"Joy":           {"happy", "joy", "excited", "cheerful", "uplifted", "bright", "celebratory"},
	"Sadness":       {"sad", "depressed", "grieving", "blue", "mournful", "melancholy", "sorrowful"},
	"Fear":          {"afraid", "scared", "anxious", "nervous", "terrified", "worried", "tense"},
	"Anger":         {"angry", "furious", "frustrated", "irritated", "rage", "aggressive"},
	"Disgust":       {"disgusted", "repulsed", "nauseated", "revolted"},
	"Surprise":      {"surprised", "shocked", "amazed", "startled", "unexpected"},
	"Trust":         {"trust", "safe", "secure", "supported", "bonded", "intimate", "comfortable"},
	"Anticipation":  {"anticipation", "expectation", "eager", "hopeful", "building", "yearning"},
	"Shame":         {"guilt", "shame", "regret", "embarrassed", "remorseful"},
	"Love":          {"love", "romantic", "affection", "caring", "warm", "tender", "devoted"},
	"Envy":          {"jealous", "envious", "spiteful", "competitive", "bitter", "possessive"},
	"Aesthetic Awe": {"awe", "wonder", "sublime", "inspired", "majestic", "transcendent", "beautiful"},
}

// Engine is the progression generation oracle.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// ParseEmotionWeights scores every emotion against the text and
// normalizes the result to sum to 1. A text matching nothing defaults
// to pure Joy so generation always has a target.
func (e *Engine) ParseEmotionWeights(text string) map[string]float64 {
	lower := strings.ToLower(text)
	weights := make(map[string]float64, len(emotionKeywords))

	total := 0.0
	for emotion, keywords := range emotionKeywords {
		score := 0.0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		weights[emotion] = score
		total += score
	}

	if total == 0 {
		weights["Joy"] = 1.0
		return weights
	}
	for emotion := range weights {
		weights[emotion] /= total
	}
	return weights
}

// Generate returns count progressions for the emotion expressed in the
// text, ranked by fit with the requested genre.
func (e *Engine) Generate(emotionText, genrePreference string, count int) ([]Progression, error) {
	if count < 1 {
		count = 1
	}
	weights := e.ParseEmotionWeights(emotionText)
	primary := dominantEmotion(weights)

	pool := database[primary]
	if len(pool) == 0 {
		return nil, fmt.Errorf("no progressions for emotion %q", primary)
	}

	// Rank the pool by affinity with the requested genre, stable so
	// equal-affinity entries keep database order.
	ranked := make([]entry, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].genres[genrePreference] > ranked[j].genres[genrePreference]
	})

	results := make([]Progression, 0, count)
	for i := 0; i < count; i++ {
		picked := ranked[i%len(ranked)]
		results = append(results, Progression{
			Chords:           append([]string(nil), picked.chords...),
			EmotionWeights:   weights,
			PrimaryMode:      emotionModes[primary],
			Genre:            genrePreference,
			Key:              "C",
			ProgressionID:    fmt.Sprintf("%s_%03d", strings.ToLower(strings.ReplaceAll(primary, " ", "_")), i%len(ranked)+1),
			GenerationMethod: "database_selection",
			Metadata: map[string]any{
				"primary_emotion":   primary,
				"has_substitutions": false,
			},
		})
	}
	return results, nil
}

// ModeForEmotion exposes the emotion-to-mode table for callers that
// need to infer a mode from remembered emotional context.
func ModeForEmotion(emotion string) (string, bool) {
	mode, ok := emotionModes[emotion]
	return mode, ok
}

func dominantEmotion(weights map[string]float64) string {
	best := "Joy"
	bestWeight := -1.0
	// Deterministic winner: iterate sorted keys.
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if weights[name] > bestWeight {
			best = name
			bestWeight = weights[name]
		}
	}
	return best
}
