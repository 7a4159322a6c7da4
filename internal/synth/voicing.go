package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/chordelia/chordelia-api/internal/engines/voicing"
)

// processVoiceLeading runs the voicing engine over a progression and
// flattens its output into the response shape. Any failure degrades to
// the octave-4 fallback payload with an error entry, never an absent
// section.
func (s *Synthesizer) processVoiceLeading(ctx context.Context, chords []string, emotions map[string]float64, key, style string) map[string]any {
	if key == "" {
		key = "C"
	}
	result := s.voicing.Optimize(ctx, chords, emotions, key, strings.ToLower(style))
	if result.Failed() {
		return fallbackVoiceLeading(chords, result.Err)
	}

	data := result.Data
	voiced, _ := data["voiced_chords"].([]voicing.VoicedChord)

	voicedOut := make([]map[string]any, 0, len(voiced))
	registerRange := []int{4, 5}
	lo, hi := 10, -1
	for _, vc := range voiced {
		parts := make([]string, 0, len(vc.Notes))
		for _, n := range vc.Notes {
			parts = append(parts, fmt.Sprintf("%s%d", n.Name, n.Octave))
		}
		voicedOut = append(voicedOut, map[string]any{
			"chord_symbol":       vc.ChordSymbol,
			"notes":              vc.Notes,
			"register_range":     []int{vc.RegisterRange[0], vc.RegisterRange[1]},
			"voice_leading_cost": vc.VoiceLeadingCost,
			"emotional_fitness":  vc.EmotionalFitness,
			"notes_display":      strings.Join(parts, " - "),
		})
		if vc.RegisterRange[0] < lo {
			lo = vc.RegisterRange[0]
		}
		if vc.RegisterRange[1] > hi {
			hi = vc.RegisterRange[1]
		}
	}
	if hi >= 0 {
		registerRange = []int{lo, hi}
	}

	avgRegister := 4.5
	if ra, ok := data["register_analysis"].(voicing.RegisterAnalysis); ok {
		avgRegister = ra.AverageRegister
	}

	return map[string]any{
		"voiced_chords":            voicedOut,
		"register_analysis":        data["register_analysis"],
		"total_voice_leading_cost": data["total_voice_leading_cost"],
		"harmonic_rhythm":          data["harmonic_rhythm"],
		"average_register":         avgRegister,
		"register_range":           registerRange,
	}
}

func fallbackVoiceLeading(chords []string, errMsg string) map[string]any {
	voiced := make([]map[string]any, 0, len(chords))
	tensions := make([]float64, len(chords))
	durations := make([]float64, len(chords))
	for i, chord := range chords {
		voiced = append(voiced, map[string]any{
			"chord_symbol":       chord,
			"notes":              []any{},
			"register_range":     []int{4, 5},
			"voice_leading_cost": 0.0,
			"emotional_fitness":  0.5,
			"notes_display":      "Fallback mode",
		})
		tensions[i] = 0.5
		durations[i] = 1.0
	}
	return map[string]any{
		"voiced_chords":            voiced,
		"register_analysis":        map[string]any{"target_registers": []int{4, 5}, "average_register": 4.5},
		"total_voice_leading_cost": 0.0,
		"harmonic_rhythm":          map[string][]float64{"tensions": tensions, "durations": durations},
		"average_register":         4.5,
		"register_range":           []int{4, 5},
		"error":                    errMsg,
	}
}
