package handlers

import (
	"net/http"
	"strings"

	"github.com/chordelia/chordelia-api/internal/engines"
	"github.com/chordelia/chordelia-api/internal/synth"
	"github.com/gin-gonic/gin"
)

// ChordHandler serves the direct engine endpoints that bypass the
// conversational layer.
type ChordHandler struct {
	adapters *engines.Adapters
}

func NewChordHandler(adapters *engines.Adapters) *ChordHandler {
	return &ChordHandler{adapters: adapters}
}

// GenerateChordRequest is the /chord/generate request body.
type GenerateChordRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	NumOptions      int    `json:"num_options"`
	ModePreference  string `json:"mode_preference"`
	StylePreference string `json:"style_preference"`
	Key             string `json:"key"`
	CDPreference    string `json:"consonant_dissonant_preference"`
}

// Generate selects individual chords for a prompt.
func (h *ChordHandler) Generate(c *gin.Context) {
	var req GenerateChordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	params := map[string]any{}
	if req.NumOptions > 0 {
		params["num_options"] = req.NumOptions
	}
	if req.ModePreference != "" {
		params["mode_preference"] = req.ModePreference
	}
	if req.StylePreference != "" {
		params["style_preference"] = req.StylePreference
	}
	if req.Key != "" {
		params["key"] = req.Key
	}
	if req.CDPreference != "" {
		params["consonant_dissonant_preference"] = req.CDPreference
	}

	result := h.adapters.Chord.Generate(c.Request.Context(), req.Prompt, params)
	if result.Failed() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Err})
		return
	}
	c.JSON(http.StatusOK, result.Data)
}

// AnalyzeProgressionRequest is the /progression/analyze request body.
type AnalyzeProgressionRequest struct {
	Chords []string `json:"chords"`
	Mode   string   `json:"mode"`
}

// AnalyzeProgression validates a progression and reports its
// consonance trajectory chord by chord.
func (h *ChordHandler) AnalyzeProgression(c *gin.Context) {
	var req AnalyzeProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Chords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No chords provided"})
		return
	}
	if req.Mode == "" {
		req.Mode = "Ionian"
	}

	result := h.adapters.Theory.Analyze(c.Request.Context(), req.Chords, req.Mode)
	if result.Failed() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Err})
		return
	}

	trajectory := make([]gin.H, 0, len(req.Chords))
	total := 0.0
	for _, chord := range req.Chords {
		value := chordCDValue(chord)
		total += value
		trajectory = append(trajectory, gin.H{
			"chord":       synth.NormalizeChordSymbol(chord),
			"cd_value":    value,
			"description": cdDescription(value),
		})
	}
	average := total / float64(len(req.Chords))

	response := result.Data
	response["chords"] = req.Chords
	response["cd_trajectory"] = trajectory
	response["average_cd"] = average
	response["cd_flow"] = cdFlow(trajectory, average)
	c.JSON(http.StatusOK, response)
}

// chordCDValue estimates consonance from chord quality: plain triads
// are consonant, sevenths moderate, diminished and augmented colors
// dissonant.
func chordCDValue(chord string) float64 {
	switch {
	case strings.ContainsAny(chord, "°ø") || strings.Contains(chord, "dim"):
		return 0.85
	case strings.Contains(chord, "+") || strings.Contains(chord, "aug"):
		return 0.75
	case strings.Contains(chord, "♭") || strings.Contains(chord, "♯") ||
		strings.Contains(chord, "#") || strings.Contains(chord, "b"):
		return 0.6
	case strings.Contains(chord, "7"):
		return 0.5
	default:
		return 0.2
	}
}

// cdFlow summarizes how consonance moves across the progression.
func cdFlow(trajectory []gin.H, average float64) string {
	if len(trajectory) < 2 {
		return "static " + cdDescription(average)
	}
	first, _ := trajectory[0]["cd_value"].(float64)
	last, _ := trajectory[len(trajectory)-1]["cd_value"].(float64)
	switch {
	case last-first > 0.2:
		return "building tension"
	case first-last > 0.2:
		return "resolving"
	default:
		return "mostly " + cdDescription(average)
	}
}

func cdDescription(value float64) string {
	switch {
	case value < 0.35:
		return "consonant"
	case value > 0.65:
		return "dissonant"
	default:
		return "moderate"
	}
}
