package engines

import (
	"context"
	"time"

	"github.com/chordelia/chordelia-api/internal/engines/chord"
	"github.com/chordelia/chordelia-api/internal/engines/progression"
	"github.com/chordelia/chordelia-api/internal/engines/theory"
	"github.com/chordelia/chordelia-api/internal/engines/voicing"
	"github.com/chordelia/chordelia-api/internal/logger"
	"github.com/chordelia/chordelia-api/internal/metrics"
)

// cdPreferenceValues maps the extracted consonance preference words to
// target CD values on the 0 (consonant) to 1 (dissonant) scale.
var cdPreferenceValues = map[string]float64{
	"consonant": 0.2,
	"dissonant": 0.8,
	"moderate":  0.5,
}

// Adapters bundles every engine behind the Result contract.
type Adapters struct {
	Progression *ProgressionAdapter
	Chord       *ChordAdapter
	Theory      *TheoryAdapter
	Voicing     *VoicingAdapter

	sentryMetrics *metrics.SentryMetrics
	cloudwatch    *metrics.Client
}

// NewAdapters wires the engines to the metric sinks. Either sink may be
// nil.
func NewAdapters(sentryMetrics *metrics.SentryMetrics, cloudwatch *metrics.Client) *Adapters {
	a := &Adapters{
		sentryMetrics: sentryMetrics,
		cloudwatch:    cloudwatch,
	}
	a.Progression = &ProgressionAdapter{engine: progression.NewEngine(), parent: a}
	a.Chord = &ChordAdapter{engine: chord.NewEngine(), parent: a}
	a.Theory = &TheoryAdapter{engine: theory.NewEngine(), parent: a}
	a.Voicing = &VoicingAdapter{engine: voicing.NewEngine(), parent: a}
	return a
}

// call runs fn with panic containment and records the invocation to the
// logger and both metric sinks.
func (a *Adapters) call(ctx context.Context, name string, fn func() Result) (result Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = Errf("%s engine panic: %v", name, r)
		}
		duration := time.Since(start)
		logger.LogEngineCall(name, duration, result.Failed(), nil)
		if a.sentryMetrics != nil {
			a.sentryMetrics.RecordEngineCall(ctx, name, duration, result.Failed())
		}
		if a.cloudwatch != nil {
			a.cloudwatch.RecordEngineCall(name, duration, result.Failed())
		}
	}()
	return fn()
}

// ProgressionAdapter fronts the emotional progression generator.
type ProgressionAdapter struct {
	engine *progression.Engine
	parent *Adapters
}

// Generate produces progressions for the emotional text.
func (p *ProgressionAdapter) Generate(ctx context.Context, emotionText, genre string, count int) Result {
	return p.parent.call(ctx, "progression", func() Result {
		results, err := p.engine.Generate(emotionText, genre, count)
		if err != nil {
			return Errf("progression generation failed: %v", err)
		}
		primary := results[0]
		return OK(map[string]any{
			"chords":            primary.Chords,
			"emotion":           primary.EmotionWeights,
			"primary_mode":      primary.PrimaryMode,
			"genre":             primary.Genre,
			"key":               primary.Key,
			"progression_id":    primary.ProgressionID,
			"generation_method": primary.GenerationMethod,
			"metadata":          primary.Metadata,
			"all_progressions":  results,
		})
	})
}

// ParseEmotions exposes the emotion parser without generation.
func (p *ProgressionAdapter) ParseEmotions(text string) map[string]float64 {
	return p.engine.ParseEmotionWeights(text)
}

// ChordAdapter fronts the individual-chord engine.
type ChordAdapter struct {
	engine *chord.Engine
	parent *Adapters
}

// Generate selects individual chords for the prompt. Params carries the
// extracted intent parameters; the consonance preference word is mapped
// to its CD target here.
func (c *ChordAdapter) Generate(ctx context.Context, prompt string, params map[string]any) Result {
	return c.parent.call(ctx, "individual_chord", func() Result {
		opts := chord.Options{NumOptions: 4}
		if n, ok := params["num_options"].(int); ok && n > 0 {
			opts.NumOptions = n
		}
		if mode, ok := params["mode_preference"].(string); ok {
			opts.ModePreference = mode
		}
		if style, ok := params["style_preference"].(string); ok {
			opts.StylePreference = style
		}
		if key, ok := params["key"].(string); ok {
			opts.Key = key
		}
		if pref, ok := params["consonant_dissonant_preference"].(string); ok {
			if target, known := cdPreferenceValues[pref]; known {
				opts.CDPreference = &target
			}
		}

		results := c.engine.Generate(prompt, opts)
		return OK(map[string]any{
			"individual_results": results,
		})
	})
}

// TheoryAdapter fronts the theory engine with intent-dependent behavior.
type TheoryAdapter struct {
	engine *theory.Engine
	parent *Adapters
}

// Handle dispatches on intent: comparison produces the all-styles view,
// theory_request generates a legal progression for the requested style
// and mode, everything else analyzes the given progression in the mode.
func (t *TheoryAdapter) Handle(ctx context.Context, intentPrimary string, params map[string]any, progressionChords []string) Result {
	return t.parent.call(ctx, "theory", func() Result {
		mode := "Ionian"
		if m, ok := params["mode_preference"].(string); ok && m != "" && m != "Any" {
			mode = m
		}
		length := 4
		if n, ok := params["num_chords"].(int); ok && n > 0 {
			length = n
		}

		switch intentPrimary {
		case "comparison":
			comparison, err := t.engine.CompareStyles(mode, length)
			if err != nil {
				return Errf("style comparison failed: %v", err)
			}
			return OK(map[string]any{
				"style_alternatives": comparison,
				"mode":               mode,
			})

		case "theory_request":
			style := "Classical"
			if s, ok := params["style_preference"].(string); ok && s != "" && s != "Any" {
				style = s
			}
			prog, err := t.engine.GenerateLegal(style, mode, length)
			if err != nil {
				return Errf("legal generation failed: %v", err)
			}
			return OK(map[string]any{
				"progression": prog,
				"style":       style,
				"mode":        mode,
			})

		default:
			if len(progressionChords) == 0 {
				return Errf("no progression to analyze")
			}
			analysis, err := t.engine.Analyze(progressionChords, mode)
			if analysis == nil {
				return Errf("analysis failed: %v", err)
			}
			data := map[string]any{
				"analysis": analysis,
				"mode":     mode,
				"legal":    analysis.Legal,
			}
			// An illegal progression is a negative domain answer, not
			// an engine failure.
			return OK(data)
		}
	})
}

// Analyze validates a progression directly, bypassing intent dispatch.
func (t *TheoryAdapter) Analyze(ctx context.Context, progressionChords []string, mode string) Result {
	return t.parent.call(ctx, "theory", func() Result {
		analysis, err := t.engine.Analyze(progressionChords, mode)
		if analysis == nil {
			return Errf("analysis failed: %v", err)
		}
		return OK(map[string]any{
			"analysis": analysis,
			"mode":     mode,
			"legal":    analysis.Legal,
		})
	})
}

// VoicingAdapter fronts the voice-leading engine.
type VoicingAdapter struct {
	engine *voicing.Engine
	parent *Adapters
}

// Optimize voices the progression. The engine itself degrades to a
// fallback voicing rather than failing, so the Result only fails on
// panic.
func (v *VoicingAdapter) Optimize(ctx context.Context, chords []string, emotionWeights map[string]float64, key, style string) Result {
	return v.parent.call(ctx, "voice_leading", func() Result {
		res := v.engine.Optimize(chords, emotionWeights, key, style)
		return OK(map[string]any{
			"voiced_chords":            res.VoicedChords,
			"total_voice_leading_cost": res.TotalCost,
			"register_analysis":        res.RegisterAnalysis,
			"harmonic_rhythm":          res.HarmonicRhythm,
			"key":                      res.Key,
			"fallback":                 res.Fallback,
		})
	})
}
