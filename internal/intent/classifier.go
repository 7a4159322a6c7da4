// Package intent classifies user messages into routing intents and
// extracts musical parameters. Classification is regex presence
// scoring: each matched pattern counts once, remembered conversation
// state boosts the re-analysis intent.
package intent

import "regexp"

// Intent names in scoring order. Ties resolve to the earliest.
const (
	EmotionalProgression = "emotional_progression"
	IndividualChord      = "individual_chord"
	IndividualAnalysis   = "individual_analysis"
	TheoryRequest        = "theory_request"
	Comparison           = "comparison"
	Educational          = "educational"
)

// contextBoost is added to individual_analysis when the session
// remembers a progression and at least one of its patterns matched.
const contextBoost = 2

// UserIntent is the classified routing decision for one message.
type UserIntent struct {
	Primary    string         `json:"primary_intent"`
	Confidence float64        `json:"confidence"`
	Params     map[string]any `json:"extracted_params"`
	Engines    []string       `json:"suggested_engines"`
}

// ClassifyContext is the remembered conversation state the classifier
// consults. A nil context or empty progression disables the boost.
type ClassifyContext struct {
	LastProgression []string
	LastEmotion     string
}

type category struct {
	name     string
	patterns []*regexp.Regexp
	engines  []string
}

var categories = []category{
	{
		name: EmotionalProgression,
		patterns: compile(
			`i\s+(feel|am\s+feeling|want\s+something)`,
			`(happy|sad|angry|romantic|nostalgic|excited|melancholy|joyful|peaceful|dramatic|energetic|soulful).*progression`,
			`make.*sound|want.*that.*sounds|create.*mood`,
			`feeling\s+(like|very|really|quite|somewhat)`,
			`(uplifting|depressing|calming|aggressive|tender|mysterious|bright|dark)`,
		),
		engines: []string{"progression", "individual", "theory"},
	},
	{
		name: IndividualChord,
		patterns: compile(
			`what\s+chord|which\s+chord|chord\s+for|chord\s+that`,
			`single\s+chord|one\s+chord|individual\s+chord`,
			`best\s+chord\s+for|chord\s+represents`,
		),
		engines: []string{"individual", "theory"},
	},
	{
		name: IndividualAnalysis,
		patterns: compile(
			`show.*me.*individual.*chord.*emotions?`,
			`individual.*chord.*emotions?`,
			`analyze.*each.*chord`,
			`emotions?.*for.*each.*chord`,
			`breakdown.*of.*chord.*emotions?`,
			`ask.*for.*details`,
		),
		engines: []string{"individual"},
	},
	{
		name: TheoryRequest,
		patterns: compile(
			`(jazz|blues|classical|rock|pop|folk|rnb|cinematic)\s+(progression|chord|style)`,
			`(ionian|dorian|phrygian|lydian|mixolydian|aeolian|locrian)\s+(mode|scale)`,
			`theory|analysis|explain|why|how.*work`,
			`generate.*in\s+(jazz|blues|classical|rock|pop|folk)`,
			`show.*me.*in\s+(major|minor|dorian|phrygian)`,
		),
		engines: []string{"theory", "progression"},
	},
	{
		name: Comparison,
		patterns: compile(
			`compare|versus|vs|different.*style`,
			`how.*sound.*in|what.*if.*were`,
			`show.*me.*different|try.*in.*style`,
			`(jazz|blues|classical).*vs.*(jazz|blues|classical)`,
		),
		engines: []string{"theory", "progression", "individual"},
	},
	{
		name: Educational,
		patterns: compile(
			`explain|why.*does|how.*work|what.*makes`,
			`teach.*me|learn.*about|understand`,
			`difference.*between|what.*is.*the`,
			`music.*theory|harmonic.*function`,
		),
		engines: []string{"theory", "individual"},
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Classifier scores messages against the intent categories.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores the message, applies the context boost, and extracts
// parameters. A message matching nothing falls back to
// emotional_progression at 0.3 confidence.
func (c *Classifier) Classify(text string, ctx *ClassifyContext) UserIntent {
	lower := normalize(text)

	scores := make(map[string]int, len(categories))
	for _, cat := range categories {
		score := 0
		for _, pattern := range cat.patterns {
			if pattern.MatchString(lower) {
				score++
			}
		}
		scores[cat.name] = score
	}

	params := map[string]any{}
	if ctx != nil && len(ctx.LastProgression) > 0 && scores[IndividualAnalysis] > 0 {
		scores[IndividualAnalysis] += contextBoost
		params["context_progression"] = ctx.LastProgression
		params["context_emotion"] = ctx.LastEmotion
	}

	primary := EmotionalProgression
	confidence := 0.3
	best := 0
	for _, cat := range categories {
		if scores[cat.name] > best {
			best = scores[cat.name]
			primary = cat.name
		}
	}
	if best > 0 {
		confidence = float64(best) / 3.0
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	for key, value := range ExtractParameters(lower) {
		params[key] = value
	}

	return UserIntent{
		Primary:    primary,
		Confidence: confidence,
		Params:     params,
		Engines:    enginesFor(primary),
	}
}

func enginesFor(name string) []string {
	for _, cat := range categories {
		if cat.name == name {
			return append([]string(nil), cat.engines...)
		}
	}
	return []string{"progression"}
}
