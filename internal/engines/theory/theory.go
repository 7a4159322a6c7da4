// Package theory implements the harmony/theory engine: mode legality
// tables, style-aware legal progression generation, and cross-style
// comparison. It is a deterministic, table-driven oracle consumed
// through a narrow contract by the adapter layer.
package theory

import (
	"fmt"
	"strings"
)

// AvailableStyles lists every style the engine can generate for.
var AvailableStyles = []string{
	"Classical", "Jazz", "Blues", "Pop", "Rock", "Folk", "RnB", "Cinematic",
}

// AvailableModes lists every mode with a legality table.
var AvailableModes = []string{
	"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian",
}

// modeChords maps each mode to its diatonic chord vocabulary.
// Chords outside this set are theory violations for the mode.
var modeChords = map[string][]string{
	"Ionian":     {"I", "ii", "iii", "IV", "V", "vi", "vii°"},
	"Aeolian":    {"i", "ii°", "♭III", "iv", "v", "♭VI", "♭VII"},
	"Dorian":     {"i", "ii", "♭III", "IV", "v", "vi°", "♭VII"},
	"Phrygian":   {"i", "♭II", "♭III", "iv", "v°", "♭VI", "♭vii"},
	"Mixolydian": {"I", "ii", "iii°", "IV", "v", "vi", "♭VII"},
	"Lydian":     {"I", "II", "iii", "♯iv°", "V", "vi", "vii"},
	"Locrian":    {"i°", "♭II", "♭iii", "iv", "♭V", "♭VI", "♭vii"},
}

// harmonicFunction maps scale degrees to their functional role.
var harmonicFunction = map[string]string{
	"I": "tonic", "i": "tonic", "i°": "tonic",
	"ii": "subdominant", "ii°": "subdominant", "II": "subdominant", "♭II": "subdominant",
	"iii": "mediant", "iii°": "mediant", "♭III": "mediant", "♭iii": "mediant",
	"IV": "subdominant", "iv": "subdominant", "♯iv°": "subdominant",
	"V": "dominant", "v": "dominant", "v°": "dominant", "♭V": "dominant",
	"vi": "submediant", "VI": "submediant", "vi°": "submediant", "♭VI": "submediant",
	"vii": "leading", "vii°": "leading", "♭VII": "subtonic", "♭vii": "subtonic",
}

// styleMoves encodes per-style preferred chord movement: for each style,
// an ordered list of chords (by vocabulary index into the mode table)
// forming that style's characteristic walk. Indices keep the tables
// mode-agnostic so a Jazz walk works in Dorian as well as Ionian.
var styleMoves = map[string][]int{
	"Classical": {0, 3, 4, 0}, // tonic - subdominant - dominant - tonic
	"Jazz":      {1, 4, 0, 5}, // ii - V - I - vi turnaround
	"Blues":     {0, 3, 0, 4}, // I - IV - I - V shuffle skeleton
	"Pop":       {0, 4, 5, 3}, // I - V - vi - IV
	"Rock":      {0, 6, 3, 0}, // I - VII - IV - I power movement
	"Folk":      {0, 3, 1, 0}, // close-to-home modal movement
	"RnB":       {1, 4, 2, 5}, // extended ii - V with mediant colour
	"Cinematic": {0, 5, 2, 4}, // wide dramatic leaps
}

// Engine is the theory oracle.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Analysis is the result of validating a progression against a mode.
type Analysis struct {
	Mode   string          `json:"mode"`
	Chords []ChordAnalysis `json:"chords"`
	Legal  bool            `json:"legal"`
}

// ChordAnalysis describes one chord's standing within the analyzed mode.
type ChordAnalysis struct {
	Chord    string `json:"chord"`
	Function string `json:"function"`
	Legal    bool   `json:"legal"`
}

// Analyze validates a progression against a mode's chord vocabulary.
// Returns an error when the mode is unknown or any chord is illegal in
// the mode - the caller decides whether that is a fault or a negative
// domain result.
func (e *Engine) Analyze(progression []string, mode string) (*Analysis, error) {
	vocab, ok := modeChords[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
	if len(progression) == 0 {
		return nil, fmt.Errorf("empty progression")
	}

	analysis := &Analysis{Mode: mode, Legal: true}
	for _, chord := range progression {
		legal := chordLegalIn(chord, vocab)
		analysis.Chords = append(analysis.Chords, ChordAnalysis{
			Chord:    chord,
			Function: functionOf(chord),
			Legal:    legal,
		})
		if !legal {
			analysis.Legal = false
		}
	}

	if !analysis.Legal {
		return analysis, fmt.Errorf("progression contains chords outside %s", mode)
	}
	return analysis, nil
}

// GenerateLegal produces a progression of the requested length using the
// style's characteristic movement over the mode's chord vocabulary.
func (e *Engine) GenerateLegal(style, mode string, length int) ([]string, error) {
	vocab, ok := modeChords[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
	moves, ok := styleMoves[style]
	if !ok {
		return nil, fmt.Errorf("unknown style: %s (available: %s)", style, strings.Join(AvailableStyles, ", "))
	}
	if length < 1 {
		length = 4
	}

	progression := make([]string, 0, length)
	for i := 0; i < length; i++ {
		degree := moves[i%len(moves)]
		progression = append(progression, vocab[degree%len(vocab)])
	}
	return progression, nil
}

// CompareStyles generates the same-length progression in every style for
// the given mode.
func (e *Engine) CompareStyles(mode string, length int) (map[string][]string, error) {
	if _, ok := modeChords[mode]; !ok {
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}

	comparison := make(map[string][]string, len(AvailableStyles))
	for _, style := range AvailableStyles {
		progression, err := e.GenerateLegal(style, mode, length)
		if err != nil {
			continue
		}
		comparison[style] = progression
	}
	return comparison, nil
}

// ValidChordsFor returns the diatonic vocabulary for a mode, or nil for
// an unknown mode.
func ValidChordsFor(mode string) []string {
	return modeChords[mode]
}

// chordLegalIn accepts exact vocabulary members plus extended forms of
// them (V7 is legal wherever V is).
func chordLegalIn(chord string, vocab []string) bool {
	for _, base := range vocab {
		if chord == base {
			return true
		}
	}
	for _, base := range vocab {
		if strings.HasPrefix(chord, base) {
			return true
		}
	}
	return false
}

func functionOf(chord string) string {
	// Longest-prefix match so ♭VII resolves before ♭V.
	best := ""
	fn := "chromatic"
	for degree, function := range harmonicFunction {
		if strings.HasPrefix(chord, degree) && len(degree) > len(best) {
			best = degree
			fn = function
		}
	}
	return fn
}
