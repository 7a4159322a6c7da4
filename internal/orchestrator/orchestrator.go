// Package orchestrator routes classified messages through the music
// engines and assembles the final response: context resolution,
// classification, engine fan-out, synthesis, and persistence.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/chordelia/chordelia-api/internal/conversation"
	"github.com/chordelia/chordelia-api/internal/engines"
	"github.com/chordelia/chordelia-api/internal/engines/chord"
	"github.com/chordelia/chordelia-api/internal/engines/theory"
	"github.com/chordelia/chordelia-api/internal/intent"
	"github.com/chordelia/chordelia-api/internal/logger"
	"github.com/chordelia/chordelia-api/internal/metrics"
	"github.com/chordelia/chordelia-api/internal/synth"
)

// Orchestrator coordinates the engines for one deployment.
type Orchestrator struct {
	classifier    *intent.Classifier
	synthesizer   *synth.Synthesizer
	adapters      *engines.Adapters
	resolver      *conversation.Resolver
	history       *conversation.History
	theory        *theory.Engine
	sentryMetrics *metrics.SentryMetrics
}

// New wires the orchestrator. history may be nil when transcript
// archiving is disabled.
func New(adapters *engines.Adapters, resolver *conversation.Resolver, history *conversation.History, sentryMetrics *metrics.SentryMetrics) *Orchestrator {
	return &Orchestrator{
		classifier:    intent.NewClassifier(),
		synthesizer:   synth.NewSynthesizer(adapters.Voicing),
		adapters:      adapters,
		resolver:      resolver,
		history:       history,
		theory:        theory.NewEngine(),
		sentryMetrics: sentryMetrics,
	}
}

// ProcessMessage handles one chat message end to end. It never
// panics outward: any engine or synthesis fault degrades to a safe
// error payload.
func (o *Orchestrator) ProcessMessage(ctx context.Context, sessionID, message string, client *conversation.ClientContext) (response map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("message processing panic", fmt.Errorf("panic: %v", r), logger.Fields{
				"session_id": sessionID,
			})
			response = map[string]any{
				"error":     fmt.Sprintf("%v", r),
				"message":   "I encountered an error processing your request. Please try again.",
				"timestamp": time.Now().Unix(),
			}
		}
	}()

	convCtx := o.resolver.Resolve(sessionID, client)

	classifyCtx := &intent.ClassifyContext{
		LastProgression: convCtx.LastProgression,
		LastEmotion:     convCtx.LastEmotion,
	}
	userIntent := o.classifier.Classify(message, classifyCtx)

	_, boosted := userIntent.Params["context_progression"]
	if o.sentryMetrics != nil {
		o.sentryMetrics.RecordClassification(ctx, userIntent.Primary, userIntent.Confidence, boosted)
	}
	logger.Info("📨 message classified", logger.Fields{
		"session_id": sessionID,
		"intent":     userIntent.Primary,
		"confidence": userIntent.Confidence,
	})

	results := map[string]any{}

	if userIntent.Primary == intent.IndividualAnalysis && len(convCtx.LastProgression) > 0 {
		results["individual"] = o.analyzeProgressionChords(ctx, convCtx.LastProgression, convCtx.LastEmotion)
	} else if contains(userIntent.Engines, "progression") {
		results["progression"] = o.callProgression(ctx, message, userIntent)
	}

	if contains(userIntent.Engines, "individual") && userIntent.Primary != intent.IndividualAnalysis {
		individual := o.callIndividual(ctx, message, userIntent)
		results["individual"] = individual["individual_results"]
		results["individual_results"] = individual["individual_results"]
	}

	if contains(userIntent.Engines, "theory") {
		results["theory"] = o.callTheory(ctx, userIntent)
	}

	response = o.synthesizer.Synthesize(ctx, userIntent, results)
	response["intent"] = userIntent.Primary
	response["confidence"] = userIntent.Confidence
	response["engines_used"] = userIntent.Engines
	response["timestamp"] = time.Now().Unix()

	if _, err := o.resolver.Persist(sessionID, convCtx, response); err != nil {
		logger.Warn("context persistence degraded", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if o.history != nil {
		msg, _ := response["message"].(string)
		if err := o.history.Append(ctx, conversation.Transcript{
			SessionID:       sessionID,
			UserMessage:     message,
			ResponseMessage: msg,
			Intent:          userIntent.Primary,
			Confidence:      userIntent.Confidence,
		}); err != nil {
			logger.Warn("transcript archive degraded", logger.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	return response
}

// AnalyzeProgression validates a progression against a mode without
// touching conversation state.
func (o *Orchestrator) AnalyzeProgression(ctx context.Context, progression []string, mode string) map[string]any {
	return o.adapters.Theory.Analyze(ctx, progression, mode).ToMap()
}

// Context exposes the resolved conversation state for inspection
// endpoints.
func (o *Orchestrator) Context(sessionID string) *conversation.Context {
	return o.resolver.Resolve(sessionID, nil)
}

// RecentTranscripts returns the newest archived exchanges for the
// session, or nil when archiving is disabled or unreadable.
func (o *Orchestrator) RecentTranscripts(ctx context.Context, sessionID string, limit int) []conversation.Transcript {
	if o.history == nil {
		return nil
	}
	transcripts, err := o.history.Recent(ctx, sessionID, limit)
	if err != nil {
		logger.Warn("transcript read degraded", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil
	}
	return transcripts
}

// analyzeProgressionChords re-analyzes a remembered progression chord
// by chord. Every chord yields exactly one entry: a validated
// analysis, a theory-derived fallback, or a violation record.
func (o *Orchestrator) analyzeProgressionChords(ctx context.Context, progression []string, contextEmotion string) []map[string]any {
	mode, validated := o.determineProgressionMode(progression, contextEmotion)
	modeSource := "heuristic"
	if validated {
		modeSource = "validated"
	}
	logger.Info("🔍 re-analyzing remembered progression", logger.Fields{
		"mode":        mode,
		"mode_source": modeSource,
		"chords":      len(progression),
	})

	analyses := make([]map[string]any, 0, len(progression))
	for _, chordName := range progression {
		if !o.validateChordInMode(chordName, mode) {
			analyses = append(analyses, map[string]any{
				"chord_symbol":     chordName,
				"roman_numeral":    chordName,
				"mode_context":     mode,
				"mode_source":      modeSource,
				"style_context":    "Invalid",
				"error":            fmt.Sprintf("Theory violation: %s is not valid in %s mode", chordName, mode),
				"emotion_weights":  map[string]float64{},
				"emotional_score":  0.0,
				"theory_validated": false,
			})
			continue
		}

		prompt := fmt.Sprintf("%s chord in %s mode", chordName, mode)
		if contextEmotion != "" {
			prompt = fmt.Sprintf("%s %s chord in %s mode", contextEmotion, chordName, mode)
		}

		result := o.adapters.Chord.Generate(ctx, prompt, map[string]any{})
		if !result.Failed() {
			if options := chordResults(result.Data["individual_results"]); len(options) > 0 {
				best := options[0]
				analyses = append(analyses, map[string]any{
					"chord_symbol":     best["chord_symbol"],
					"roman_numeral":    chordName,
					"mode_context":     mode,
					"mode_source":      modeSource,
					"style_context":    best["style_context"],
					"emotion_weights":  best["emotion_weights"],
					"emotional_score":  best["emotional_score"],
					"theory_validated": true,
				})
				continue
			}
		}

		analyses = append(analyses, map[string]any{
			"chord_symbol":     chordName,
			"roman_numeral":    chordName,
			"mode_context":     mode,
			"mode_source":      modeSource,
			"style_context":    "Classical",
			"emotion_weights":  chordEmotionsByTheory(chordName, mode),
			"emotional_score":  0.5,
			"theory_validated": true,
		})
	}
	return analyses
}

func (o *Orchestrator) callProgression(ctx context.Context, message string, userIntent intent.UserIntent) map[string]any {
	emotionText := message
	if emotion, ok := userIntent.Params["primary_emotion"].(string); ok && emotion != "" {
		emotionText = emotion
	}
	style := "Pop"
	if s, ok := userIntent.Params["primary_style"].(string); ok && s != "" {
		style = s
	}

	result := o.adapters.Progression.Generate(ctx, emotionText, style, 1)
	return result.ToMap()
}

func (o *Orchestrator) callIndividual(ctx context.Context, message string, userIntent intent.UserIntent) map[string]any {
	params := map[string]any{}
	if mode, ok := userIntent.Params["primary_mode"].(string); ok {
		params["mode_preference"] = mode
	}
	if style, ok := userIntent.Params["primary_style"].(string); ok {
		params["style_preference"] = style
	}
	if pref, ok := userIntent.Params["consonant_dissonant_preference"].(string); ok {
		params["consonant_dissonant_preference"] = pref
	}
	if n, ok := userIntent.Params["num_options"].(int); ok {
		params["num_options"] = n
	}

	result := o.adapters.Chord.Generate(ctx, message, params)
	return result.ToMap()
}

func (o *Orchestrator) callTheory(ctx context.Context, userIntent intent.UserIntent) map[string]any {
	params := map[string]any{}
	if mode, ok := userIntent.Params["primary_mode"].(string); ok {
		params["mode_preference"] = normalizeMode(mode)
	}
	if style, ok := userIntent.Params["primary_style"].(string); ok {
		params["style_preference"] = style
	}
	if length, ok := userIntent.Params["length"].(int); ok {
		params["num_chords"] = length
	}

	// Outside explicit theory intents the engine supplies style
	// alternatives for the synthesized progression.
	primary := userIntent.Primary
	if primary != intent.Comparison && primary != intent.TheoryRequest {
		primary = intent.Comparison
		result := o.adapters.Theory.Handle(ctx, primary, params, nil)
		if result.Failed() {
			return result.ToMap()
		}
		return map[string]any{"style_alternatives": result.Data["style_alternatives"]}
	}

	return o.adapters.Theory.Handle(ctx, primary, params, nil).ToMap()
}

// normalizeMode maps the extractor's colloquial mode names onto the
// theory engine's vocabulary.
func normalizeMode(mode string) string {
	switch mode {
	case "Major":
		return "Ionian"
	case "Minor":
		return "Aeolian"
	}
	return mode
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

// chordResults flattens the chord engine's typed results into maps.
func chordResults(v any) []map[string]any {
	if results, ok := v.([]map[string]any); ok {
		return results
	}
	typed, ok := v.([]chord.Result)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(typed))
	for _, r := range typed {
		out = append(out, map[string]any{
			"chord_symbol":    r.Symbol,
			"roman_numeral":   r.RomanNumeral,
			"mode_context":    r.ModeContext,
			"style_context":   r.StyleContext,
			"emotion_weights": r.EmotionWeights,
			"emotional_score": r.EmotionalScore,
		})
	}
	return out
}
