// Package voicing implements voice-leading optimization: roman-numeral
// progressions are realized as concrete note voicings whose registers
// track the emotional profile and whose inversions minimize semitone
// movement between consecutive chords.
package voicing

import (
	"sort"
	"strings"
)

// VoicedChord is one chord realized as concrete notes with octaves.
type VoicedChord struct {
	ChordSymbol      string  `json:"chord_symbol"`
	Notes            []Note  `json:"notes"`
	RegisterRange    [2]int  `json:"register_range"`
	VoiceLeadingCost float64 `json:"voice_leading_cost"`
	EmotionalFitness float64 `json:"emotional_fitness"`
	NotesMIDI        []int   `json:"notes_midi"`
}

// Note is a pitch with its octave.
type Note struct {
	Name   string `json:"note"`
	Octave int    `json:"octave"`
}

// Result is the full optimization output.
type Result struct {
	VoicedChords     []VoicedChord        `json:"voiced_chords"`
	TotalCost        float64              `json:"total_voice_leading_cost"`
	RegisterAnalysis RegisterAnalysis     `json:"register_analysis"`
	HarmonicRhythm   map[string][]float64 `json:"harmonic_rhythm"`
	Key              string               `json:"key"`
	Fallback         bool                 `json:"fallback"`
}

// RegisterAnalysis summarizes where the voicings sit.
type RegisterAnalysis struct {
	TargetRegisters []int   `json:"target_registers"`
	AverageRegister float64 `json:"average_register"`
}

// emotionRegisters maps emotions to target octaves. Dark, heavy
// emotions sit low; bright and transcendent ones sit high.
var emotionRegisters = map[string]int{
	"Joy": 5, "Surprise": 5, "Aesthetic Awe": 6, "Love": 5,
	"Trust": 4, "Anticipation": 4, "Sadness": 3, "Shame": 3,
	"Envy": 3, "Fear": 2, "Anger": 2, "Disgust": 2,
}

// styleRegisterModifiers scale emotional intensity per style before
// register mapping, matching each style's typical voicing density.
var styleRegisterModifiers = map[string]float64{
	"classical": 1.0, "jazz": 0.8, "blues": 0.7,
	"rock": 0.9, "pop": 0.9, "metal": 0.6, "experimental": 0.5,
}

// romanDegrees maps roman numerals (case-insensitive base) to scale
// degree offsets in semitones from the tonic.
var romanDegrees = map[string]int{
	"i": 0, "ii": 2, "iii": 4, "iv": 5, "v": 7, "vi": 9, "vii": 11,
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var keyOffsets = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3, "E": 4, "F": 5,
	"F#": 6, "Gb": 6, "G": 7, "G#": 8, "Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
}

// Engine realizes progressions as voicings.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Optimize voices the progression for the emotional profile. It never
// fails: chords it cannot parse get a root-position tonic fallback, and
// a fully unparseable progression yields the octave-4 fallback result.
func (e *Engine) Optimize(progression []string, emotionWeights map[string]float64, key, styleContext string) *Result {
	if len(progression) == 0 {
		return fallbackResult(progression, key)
	}
	if key == "" {
		key = "C"
	}

	weights := applyStyleModifier(emotionWeights, styleContext)
	target := targetRegister(weights)

	result := &Result{Key: key}
	var prevMIDI []int
	for _, chord := range progression {
		pitches, ok := chordPitchClasses(chord, key)
		if !ok {
			pitches = []int{keyOffsets[key] % 12, (keyOffsets[key] + 4) % 12, (keyOffsets[key] + 7) % 12}
		}

		midi := voiceChord(pitches, prevMIDI, target)
		cost := movementCost(prevMIDI, midi)

		notes := make([]Note, len(midi))
		minOct, maxOct := 10, -1
		for i, m := range midi {
			oct := m/12 - 1
			notes[i] = Note{Name: noteNames[m%12], Octave: oct}
			if oct < minOct {
				minOct = oct
			}
			if oct > maxOct {
				maxOct = oct
			}
		}

		result.VoicedChords = append(result.VoicedChords, VoicedChord{
			ChordSymbol:      chord,
			Notes:            notes,
			NotesMIDI:        midi,
			RegisterRange:    [2]int{minOct, maxOct},
			VoiceLeadingCost: cost,
			EmotionalFitness: fitness(weights, target, minOct, maxOct),
		})
		result.TotalCost += cost
		result.RegisterAnalysis.TargetRegisters = append(result.RegisterAnalysis.TargetRegisters, target)
		prevMIDI = midi
	}

	sum := 0
	for _, r := range result.RegisterAnalysis.TargetRegisters {
		sum += r
	}
	result.RegisterAnalysis.AverageRegister = float64(sum) / float64(len(result.RegisterAnalysis.TargetRegisters))
	result.HarmonicRhythm = harmonicRhythm(result.VoicedChords, weights)
	return result
}

// fallbackResult is the degraded output: root position triads in
// octave 4, zero cost.
func fallbackResult(progression []string, key string) *Result {
	if key == "" {
		key = "C"
	}
	result := &Result{Key: key, Fallback: true}
	tonic := keyOffsets[key] % 12
	for _, chord := range progression {
		notes := []Note{
			{Name: noteNames[tonic], Octave: 4},
			{Name: noteNames[(tonic+4)%12], Octave: 4},
			{Name: noteNames[(tonic+7)%12], Octave: 5},
		}
		result.VoicedChords = append(result.VoicedChords, VoicedChord{
			ChordSymbol:      chord,
			Notes:            notes,
			RegisterRange:    [2]int{4, 5},
			VoiceLeadingCost: 0,
			EmotionalFitness: 0.5,
		})
	}
	result.RegisterAnalysis = RegisterAnalysis{TargetRegisters: []int{4, 5}, AverageRegister: 4.5}
	tensions := make([]float64, len(progression))
	durations := make([]float64, len(progression))
	for i := range progression {
		tensions[i] = 0.5
		durations[i] = 1.0
	}
	result.HarmonicRhythm = map[string][]float64{"tensions": tensions, "durations": durations}
	return result
}

func applyStyleModifier(weights map[string]float64, styleContext string) map[string]float64 {
	modifier := 1.0
	if styleContext != "" {
		if m, ok := styleRegisterModifiers[strings.ToLower(styleContext)]; ok {
			modifier = m
		}
	}
	scaled := make(map[string]float64, len(weights))
	for emotion, w := range weights {
		scaled[emotion] = w * modifier
	}
	return scaled
}

// targetRegister is the weight-averaged octave of the emotion profile,
// defaulting to octave 4 for an empty profile.
func targetRegister(weights map[string]float64) int {
	total, acc := 0.0, 0.0
	for emotion, w := range weights {
		if reg, ok := emotionRegisters[emotion]; ok && w > 0 {
			acc += float64(reg) * w
			total += w
		}
	}
	if total == 0 {
		return 4
	}
	target := int(acc/total + 0.5)
	if target < 1 {
		target = 1
	}
	if target > 7 {
		target = 7
	}
	return target
}

// chordPitchClasses parses a roman numeral into pitch classes within
// the key. Handles accidental prefixes, quality suffixes and extended
// forms by reading the triad off the numeral's case.
func chordPitchClasses(chord, key string) ([]int, bool) {
	tonic, ok := keyOffsets[key]
	if !ok {
		return nil, false
	}

	s := chord
	accidental := 0
	for len(s) > 0 {
		switch {
		case strings.HasPrefix(s, "♭"), strings.HasPrefix(s, "b") && len(s) > 1 && isRomanChar(rune(s[1])):
			accidental--
			s = strings.TrimPrefix(strings.TrimPrefix(s, "♭"), "b")
		case strings.HasPrefix(s, "♯"), strings.HasPrefix(s, "#"):
			accidental++
			s = strings.TrimPrefix(strings.TrimPrefix(s, "♯"), "#")
		default:
			goto parsed
		}
	}
parsed:

	base := ""
	for _, r := range s {
		if isRomanChar(r) {
			base += string(r)
		} else {
			break
		}
	}
	if base == "" {
		return nil, false
	}
	degree, ok := romanDegrees[strings.ToLower(base)]
	if !ok {
		return nil, false
	}
	root := (tonic + degree + accidental + 12) % 12

	suffix := s[len(base):]
	minor := base == strings.ToLower(base)
	third, fifth := 4, 7
	if minor {
		third = 3
	}
	switch {
	case strings.HasPrefix(suffix, "°"), strings.HasPrefix(suffix, "dim"), strings.HasPrefix(suffix, "ø"):
		third, fifth = 3, 6
	case strings.HasPrefix(suffix, "+"), strings.HasPrefix(suffix, "aug"):
		third, fifth = 4, 8
	}

	pitches := []int{root, (root + third) % 12, (root + fifth) % 12}
	if strings.Contains(suffix, "7") {
		seventh := 10
		if strings.Contains(suffix, "maj7") || strings.Contains(suffix, "M7") {
			seventh = 11
		}
		pitches = append(pitches, (root+seventh)%12)
	}
	return pitches, true
}

func isRomanChar(r rune) bool {
	return r == 'i' || r == 'v' || r == 'I' || r == 'V'
}

// voiceChord places pitch classes near the target register, then when a
// previous voicing exists, nudges each voice to its nearest octave
// realization to minimize movement.
func voiceChord(pitches []int, prevMIDI []int, targetRegister int) []int {
	base := 12 * (targetRegister + 1)
	midi := make([]int, len(pitches))
	for i, pc := range pitches {
		m := base + pc
		if len(prevMIDI) > 0 {
			ref := prevMIDI[i%len(prevMIDI)]
			for m-ref > 6 {
				m -= 12
			}
			for ref-m > 6 {
				m += 12
			}
		}
		midi[i] = m
	}
	sort.Ints(midi)
	return midi
}

// movementCost is the summed semitone distance between paired voices.
func movementCost(prev, curr []int) float64 {
	if len(prev) == 0 {
		return 0
	}
	n := len(prev)
	if len(curr) < n {
		n = len(curr)
	}
	cost := 0.0
	for i := 0; i < n; i++ {
		d := curr[i] - prev[i]
		if d < 0 {
			d = -d
		}
		cost += float64(d)
	}
	return cost
}

// fitness scores how well a voicing's register matches the target.
func fitness(weights map[string]float64, target, minOct, maxOct int) float64 {
	center := float64(minOct+maxOct) / 2
	d := center - float64(target)
	if d < 0 {
		d = -d
	}
	f := 1.0 - d/4
	if f < 0 {
		f = 0
	}
	return f
}

// harmonicRhythm derives per-chord tension from voice-leading cost and
// assigns uniform durations.
func harmonicRhythm(chords []VoicedChord, weights map[string]float64) map[string][]float64 {
	tensions := make([]float64, len(chords))
	durations := make([]float64, len(chords))
	maxCost := 0.0
	for _, c := range chords {
		if c.VoiceLeadingCost > maxCost {
			maxCost = c.VoiceLeadingCost
		}
	}
	for i, c := range chords {
		if maxCost > 0 {
			tensions[i] = c.VoiceLeadingCost / maxCost
		} else {
			tensions[i] = 0.5
		}
		durations[i] = 1.0
	}
	return map[string][]float64{"tensions": tensions, "durations": durations}
}
