package synth

import "strings"

// normalizeReplacements rewrite complex jazz symbols into playback
// equivalents. Order matters: maj7#11 must rewrite before 11.
var normalizeReplacements = []struct{ old, new string }{
	{"maj7#11", "M7#11"},
	{"min7b5", "ø7"},
	{"dim7", "°7"},
	{"aug7", "+7"},
	{"13", "7"},
	{"11", "7"},
}

// NormalizeChordSymbol rewrites a chord symbol for playback: altered
// dominants get explicit alterations, extended chords simplify, and
// overly complex symbols collapse to their roman-numeral base. Empty
// input falls back to the tonic. The pipeline is idempotent.
func NormalizeChordSymbol(symbol string) string {
	cleaned := strings.TrimSpace(symbol)
	if cleaned == "" {
		return "I"
	}

	if strings.Contains(cleaned, "alt") {
		cleaned = strings.ReplaceAll(cleaned, "V7alt", "V7#5")
		cleaned = strings.ReplaceAll(cleaned, "IValt", "IV#11")
		cleaned = strings.ReplaceAll(cleaned, "alt", "#5")
	}

	for _, r := range normalizeReplacements {
		cleaned = strings.ReplaceAll(cleaned, r.old, r.new)
	}

	if len(cleaned) > 6 && strings.ContainsAny(cleaned, "b#/") {
		if base := extractBase(cleaned); base != "" {
			cleaned = base
		}
	}

	if cleaned == "" {
		return "I"
	}
	return cleaned
}

// NormalizeProgression maps NormalizeChordSymbol over a progression.
func NormalizeProgression(chords []string) []string {
	cleaned := make([]string, len(chords))
	for i, chord := range chords {
		cleaned[i] = NormalizeChordSymbol(chord)
	}
	return cleaned
}

// extractBase greedily reads the roman-numeral base of a complex
// symbol: letters accumulate, the first quality marker is kept and
// terminates, anything else terminates.
func extractBase(symbol string) string {
	base := ""
	for _, r := range symbol {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			base += string(r)
		case r == '7' || r == '9' || r == '+' || r == '°' || r == 'ø':
			base += string(r)
			return base
		default:
			return base
		}
	}
	return base
}
