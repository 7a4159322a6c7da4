// Package synth combines engine results into unified chat responses:
// per-intent message templates, chord-symbol normalization for
// playback, voice-leading post-processing, and follow-up suggestions.
package synth

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chordelia/chordelia-api/internal/engines"
	"github.com/chordelia/chordelia-api/internal/engines/chord"
	"github.com/chordelia/chordelia-api/internal/intent"
)

// Synthesizer renders engine results into response payloads.
type Synthesizer struct {
	voicing *engines.VoicingAdapter
}

func NewSynthesizer(voicing *engines.VoicingAdapter) *Synthesizer {
	return &Synthesizer{voicing: voicing}
}

// Synthesize dispatches on the primary intent. Unknown intents fall
// back to the emotional-progression template.
func (s *Synthesizer) Synthesize(ctx context.Context, userIntent intent.UserIntent, results map[string]any) map[string]any {
	switch userIntent.Primary {
	case intent.EmotionalProgression:
		return s.emotionalProgression(ctx, userIntent, results)
	case intent.IndividualChord:
		return s.singleChord(userIntent, results)
	case intent.IndividualAnalysis:
		return s.individualAnalysis(userIntent, results)
	case intent.TheoryRequest:
		return s.theoryRequest(ctx, userIntent, results)
	case intent.Comparison:
		return s.comparison(userIntent, results)
	case intent.Educational:
		return s.educational(userIntent, results)
	default:
		return s.emotionalProgression(ctx, userIntent, results)
	}
}

func (s *Synthesizer) emotionalProgression(ctx context.Context, userIntent intent.UserIntent, results map[string]any) map[string]any {
	progressionResult := anyMap(results["progression"])
	theoryResult := anyMap(results["theory"])
	individualResult := results["individual"]

	chords := stringSlice(progressionResult["chords"])
	emotions := floatMap(progressionResult["emotion"])
	if len(emotions) == 0 {
		emotions = floatMap(progressionResult["emotion_weights"])
	}

	var messageParts []string
	if len(chords) > 0 {
		messageParts = append(messageParts, fmt.Sprintf("🎼 **%s**", strings.Join(chords, " → ")))
	}
	if len(emotions) > 0 {
		messageParts = append(messageParts, "🎭 Emotions: "+topEmotionText(emotions, 2))
	}
	if mode, ok := progressionResult["primary_mode"].(string); ok && mode != "" {
		messageParts = append(messageParts, "🎵 Mode: "+mode)
	}
	if individualAvailable(individualResult) {
		messageParts = append(messageParts, "🔍 Individual chord emotions available - ask for details!")
	}
	if alts := anyMap(theoryResult["style_alternatives"]); len(alts) > 0 {
		messageParts = append(messageParts, fmt.Sprintf("🎶 %d style alternatives available", len(alts)))
	}

	cleanedChords := NormalizeProgression(chords)

	generationMethod, _ := progressionResult["generation_method"].(string)
	metadata := anyMap(progressionResult["metadata"])
	hasSubstitutions, _ := metadata["has_substitutions"].(bool)
	substitutionCount := intValue(progressionResult["substitution_count"])

	var voiceLeading map[string]any
	if len(chords) > 0 && len(emotions) > 0 {
		key, _ := progressionResult["key"].(string)
		style, _ := progressionResult["genre"].(string)
		if style == "" {
			style = "classical"
		}
		voiceLeading = s.processVoiceLeading(ctx, chords, emotions, key, style)
		if _, failed := voiceLeading["error"]; !failed {
			avg, _ := voiceLeading["average_register"].(float64)
			cost, _ := voiceLeading["total_voice_leading_cost"].(float64)
			rr, _ := voiceLeading["register_range"].([]int)
			if len(rr) == 2 {
				messageParts = append(messageParts, fmt.Sprintf("🎹 Voice Leading: Register %.1f (range %d-%d)", avg, rr[0], rr[1]))
			}
			if len(chords) > 1 {
				messageParts = append(messageParts, fmt.Sprintf("🎵 Smooth transitions: %.1f semitones average movement", cost/float64(len(chords)-1)))
			}
		}
	}

	return map[string]any{
		"message":             strings.Join(messageParts, "\n\n"),
		"chords":              cleanedChords,
		"original_chords":     chords,
		"substitution_count":  substitutionCount,
		"generation_method":   generationMethod,
		"has_substitutions":   hasSubstitutions,
		"voice_leading":       voiceLeading,
		"emotions":            emotions,
		"primary_result":      progressionResult,
		"alternatives":        theoryResult["style_alternatives"],
		"individual_analysis": individualResult,
		"suggestions":         Suggestions(userIntent, intent.EmotionalProgression),
	}
}

func (s *Synthesizer) singleChord(userIntent intent.UserIntent, results map[string]any) map[string]any {
	options, _ := results["individual_results"].([]chord.Result)
	if len(options) == 0 {
		return map[string]any{
			"error":   "No chord suggestions generated",
			"message": "❌ I couldn't find a chord for that request. Try describing the feeling differently.",
			"suggestions": []string{
				"Describe the emotion differently",
				"Ask for a progression instead",
			},
		}
	}
	best := options[0]

	cdPreference := "not specified"
	if pref, ok := userIntent.Params["consonant_dissonant_preference"].(string); ok {
		cdPreference = pref
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎵 **%s** (%s)\n\n", best.Symbol, best.RomanNumeral)
	fmt.Fprintf(&b, "🎭 **Emotions**: %s\n", topEmotionText(best.EmotionWeights, 3))
	fmt.Fprintf(&b, "🎼 **Context**: %s / %s\n", best.ModeContext, best.StyleContext)
	fmt.Fprintf(&b, "🎶 **Harmonic Character**: %s (CD: %.2f)\n", best.CDDescription, best.CDValue)
	if cdPreference != "not specified" {
		fmt.Fprintf(&b, "🎯 **Preference Match**: %s harmonic character\n", cdPreference)
	}
	if len(options) > 1 {
		b.WriteString("\n🎲 **Alternative chords**:\n")
		for i, alt := range options[1:] {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "   %d. %s (CD: %.2f)\n", i+2, alt.Symbol, alt.CDValue)
		}
	}

	return map[string]any{
		"message":                         b.String(),
		"chord_symbol":                    best.Symbol,
		"roman_numeral":                   best.RomanNumeral,
		"emotions":                        best.EmotionWeights,
		"mode_context":                    best.ModeContext,
		"style_context":                   best.StyleContext,
		"consonant_dissonant_value":       best.CDValue,
		"consonant_dissonant_description": best.CDDescription,
		"consonant_dissonant_preference":  cdPreference,
		"all_chord_options":               options,
		"suggestions":                     Suggestions(userIntent, intent.IndividualChord),
	}
}

func (s *Synthesizer) individualAnalysis(userIntent intent.UserIntent, results map[string]any) map[string]any {
	progression := stringSlice(userIntent.Params["context_progression"])
	if len(progression) == 0 {
		return map[string]any{
			"message":     "❌ No progression found in conversation context. Please generate a progression first.",
			"suggestions": []string{"Generate a new progression", "Ask for a specific chord"},
		}
	}

	analyses, _ := results["individual"].([]map[string]any)

	messageParts := []string{fmt.Sprintf("🎼 **Individual Chord Analysis for: %s**", strings.Join(progression, " → "))}

	if len(analyses) >= len(progression) {
		for i, chordName := range progression {
			analysis := analyses[i]
			messageParts = append(messageParts, fmt.Sprintf("\n**%d. %s**", i+1, chordName))

			if errMsg, ok := analysis["error"].(string); ok && errMsg != "" {
				messageParts = append(messageParts, fmt.Sprintf("  ❌ Error: %s", errMsg))
				continue
			}
			if emotions := floatMap(analysis["emotion_weights"]); len(emotions) > 0 {
				text := topEmotionText(emotions, 3)
				if text != "" {
					messageParts = append(messageParts, "  🎭 Emotions: "+text)
				} else {
					messageParts = append(messageParts, "  🎭 Neutral emotional content")
				}
			}
			mode, _ := analysis["mode_context"].(string)
			style, _ := analysis["style_context"].(string)
			if mode != "" || style != "" {
				if mode == "" {
					mode = "Unknown"
				}
				if style == "" {
					style = "Unknown"
				}
				messageParts = append(messageParts, fmt.Sprintf("  🎼 Context: %s (%s)", mode, style))
			}
			if score, ok := analysis["emotional_score"].(float64); ok {
				messageParts = append(messageParts, fmt.Sprintf("  🎯 Emotional fit: %.2f", score))
			}
		}
	} else {
		messageParts = append(messageParts, "\n🔍 **Basic chord breakdown:**")
		for i, chordName := range progression {
			messageParts = append(messageParts, fmt.Sprintf("\n**%d. %s**", i+1, chordName))
			messageParts = append(messageParts, "  🎵 Roman numeral chord")
			messageParts = append(messageParts, "  🎼 Part of progression context")
		}
	}

	return map[string]any{
		"message":               strings.Join(messageParts, "\n"),
		"chords":                progression,
		"individual_analysis":   analyses,
		"progression_breakdown": true,
		"suggestions": []string{
			"Play this progression",
			"Try in a different style",
			"Compare with other progressions",
			"Explain the harmonic functions",
		},
	}
}

func (s *Synthesizer) theoryRequest(ctx context.Context, userIntent intent.UserIntent, results map[string]any) map[string]any {
	theoryResult := anyMap(results["theory"])
	progressionResult := anyMap(results["progression"])

	var messageParts []string

	rawChords := stringSlice(theoryResult["progression"])
	if len(rawChords) > 0 {
		messageParts = append(messageParts, fmt.Sprintf("🎼 **%s**", strings.Join(rawChords, " → ")))
	}

	style := "Classical"
	if sp, ok := userIntent.Params["primary_style"].(string); ok && sp != "" {
		style = sp
	}
	mode := "Ionian"
	if mp, ok := userIntent.Params["primary_mode"].(string); ok && mp != "" {
		mode = mp
	}
	messageParts = append(messageParts, fmt.Sprintf("🎵 Style: %s | Mode: %s", style, mode))

	if theoryResult["analysis"] != nil {
		messageParts = append(messageParts, "🔍 Theoretical analysis available")
	}
	emotions := floatMap(progressionResult["emotion"])
	if len(emotions) == 0 {
		emotions = floatMap(progressionResult["emotion_weights"])
	}
	if len(emotions) > 0 {
		messageParts = append(messageParts, "🎭 Emotional character: "+topEmotionText(emotions, 1))
	}

	cleanedChords := NormalizeProgression(rawChords)

	var voiceLeading map[string]any
	if len(rawChords) > 0 && len(emotions) > 0 {
		key, _ := theoryResult["key"].(string)
		voiceLeading = s.processVoiceLeading(ctx, rawChords, emotions, key, style)
		if _, failed := voiceLeading["error"]; !failed {
			avg, _ := voiceLeading["average_register"].(float64)
			messageParts = append(messageParts, fmt.Sprintf("🎹 Voice leading optimized for %s style (Register: %.1f)", style, avg))
		}
	}

	return map[string]any{
		"message":           strings.Join(messageParts, "\n\n"),
		"chords":            cleanedChords,
		"original_chords":   rawChords,
		"voice_leading":     voiceLeading,
		"style":             style,
		"mode":              mode,
		"primary_result":    theoryResult,
		"emotional_context": progressionResult,
		"suggestions":       Suggestions(userIntent, intent.TheoryRequest),
	}
}

// styleDescriptions gives each style a one-line character note for
// comparison responses.
var styleDescriptions = map[string]string{
	"Blues":     "Blues progressions emphasize dominant 7ths and bVII chords, creating that characteristic 'blue' sound with tension and release",
	"Jazz":      "Jazz uses extended chords (7ths, 9ths) and chromatic movement, often featuring ii-V-I progressions",
	"Classical": "Classical style focuses on functional harmony with clear tonic-dominant relationships and careful voice leading",
	"Pop":       "Pop progressions are often simple but catchy, using I-V-vi-IV and similar patterns that are memorable and singable",
	"Rock":      "Rock emphasizes power and movement with strong V chords and sometimes augmented tensions for edge",
	"Folk":      "Folk music uses simple, modal progressions that feel natural and organic, often staying close to home keys",
	"RnB":       "R&B features sophisticated harmony with extended chords and smooth voice leading, creating rich emotional textures",
	"Cinematic": "Cinematic music uses dramatic harmony including diminished chords and unusual extensions for emotional impact",
}

func (s *Synthesizer) comparison(userIntent intent.UserIntent, results map[string]any) map[string]any {
	theoryResult := anyMap(results["theory"])
	progressionResult := anyMap(results["progression"])

	messageParts := []string{"🎼 **Style Comparison**"}

	comparisons := styleComparisons(theoryResult["style_alternatives"])

	styles := make([]string, 0, len(comparisons))
	for style := range comparisons {
		styles = append(styles, style)
	}
	sort.Strings(styles)

	for _, style := range styles {
		progression := comparisons[style]
		if len(progression) == 0 {
			continue
		}
		messageParts = append(messageParts, fmt.Sprintf("• **%s**: %s", style, strings.Join(progression, " → ")))
		if desc, ok := styleDescriptions[style]; ok {
			messageParts = append(messageParts, fmt.Sprintf("  *%s*", desc))
		}
	}

	emotions := floatMap(progressionResult["emotion"])
	if len(emotions) == 0 {
		emotions = floatMap(progressionResult["emotion_weights"])
	}
	if len(emotions) > 0 {
		messageParts = append(messageParts, "\n🎭 Emotional foundation: "+topEmotionText(emotions, 2))
	}

	cleanedComparisons := make(map[string][]string, len(comparisons))
	for style, progression := range comparisons {
		cleanedComparisons[style] = NormalizeProgression(progression)
	}

	return map[string]any{
		"message":             strings.Join(messageParts, "\n\n"),
		"comparisons":         comparisons,
		"style_playback_data": cleanedComparisons,
		"primary_result":      theoryResult,
		"emotional_context":   progressionResult,
		"suggestions":         Suggestions(userIntent, intent.Comparison),
	}
}

func (s *Synthesizer) educational(userIntent intent.UserIntent, results map[string]any) map[string]any {
	theoryResult := anyMap(results["theory"])

	messageParts := []string{"📚 **Music Theory Explanation**"}
	if explanation, ok := theoryResult["explanation"].(string); ok && explanation != "" {
		messageParts = append(messageParts, explanation)
	}
	if examples := stringSlice(theoryResult["examples"]); len(examples) > 0 {
		messageParts = append(messageParts, "🎵 **Examples:**")
		for _, example := range examples {
			messageParts = append(messageParts, "• "+example)
		}
	}

	return map[string]any{
		"message":         strings.Join(messageParts, "\n\n"),
		"primary_result":  theoryResult,
		"supporting_data": results["individual"],
		"suggestions":     Suggestions(userIntent, intent.Educational),
	}
}

// topEmotionText renders the n highest-weighted emotions, skipping
// zero weights.
func topEmotionText(emotions map[string]float64, n int) string {
	type pair struct {
		name   string
		weight float64
	}
	pairs := make([]pair, 0, len(emotions))
	for name, w := range emotions {
		pairs = append(pairs, pair{name, w})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].weight != pairs[j].weight {
			return pairs[i].weight > pairs[j].weight
		}
		return pairs[i].name < pairs[j].name
	})
	parts := make([]string, 0, n)
	for _, p := range pairs {
		if len(parts) >= n {
			break
		}
		if p.weight <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%.2f)", p.name, p.weight))
	}
	return strings.Join(parts, ", ")
}

func individualAvailable(v any) bool {
	switch typed := v.(type) {
	case []map[string]any:
		return len(typed) > 0
	case []chord.Result:
		return len(typed) > 0
	case map[string]any:
		_, hasErr := typed["error"]
		return !hasErr && len(typed) > 0
	}
	return false
}

func anyMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func floatMap(v any) map[string]float64 {
	switch typed := v.(type) {
	case map[string]float64:
		return typed
	case map[string]any:
		out := make(map[string]float64, len(typed))
		for k, raw := range typed {
			if f, ok := raw.(float64); ok {
				out[k] = f
			}
		}
		return out
	}
	return nil
}

func stringSlice(v any) []string {
	switch typed := v.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intValue(v any) int {
	switch typed := v.(type) {
	case int:
		return typed
	case float64:
		return int(typed)
	}
	return 0
}

func styleComparisons(v any) map[string][]string {
	switch typed := v.(type) {
	case map[string][]string:
		return typed
	case map[string]any:
		out := make(map[string][]string, len(typed))
		for style, raw := range typed {
			out[style] = stringSlice(raw)
		}
		return out
	}
	return map[string][]string{}
}
