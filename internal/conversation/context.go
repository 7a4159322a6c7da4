// Package conversation holds per-session memory: an ephemeral TTL
// store, a durable JSON chatlog, a resolver that merges the two with
// client-echoed state, and a sqlite transcript archive.
package conversation

import "time"

// Context is the remembered state for one session.
type Context struct {
	LastResponse    map[string]any `json:"last_response"`
	LastProgression []string       `json:"last_progression"`
	LastEmotion     string         `json:"last_emotion"`
	LastStyle       string         `json:"last_style"`
	LastMode        string         `json:"last_mode"`
	SessionID       string         `json:"session_id"`
	Timestamp       time.Time      `json:"timestamp"`
}

// Fresh returns an empty context for the session stamped now.
func Fresh(sessionID string) *Context {
	return &Context{
		LastResponse: map[string]any{},
		SessionID:    sessionID,
		Timestamp:    time.Now(),
	}
}

// Expired reports whether the context is older than the TTL.
func (c *Context) Expired(ttl time.Duration) bool {
	return time.Since(c.Timestamp) > ttl
}

// Derive builds the next context from a response, merging with the
// previous one under the non-regression rule: an empty field in the
// response never overwrites a remembered non-empty value.
func Derive(prev *Context, sessionID string, response map[string]any) *Context {
	next := Fresh(sessionID)
	next.LastResponse = response

	chords := stringSlice(response["chords"])
	emotion := dominantKey(response["emotions"])
	style, mode := primaryResultFields(response)

	if prev != nil {
		next.LastProgression = prev.LastProgression
		next.LastEmotion = prev.LastEmotion
		next.LastStyle = prev.LastStyle
		next.LastMode = prev.LastMode
	}
	if len(chords) > 0 {
		next.LastProgression = chords
	}
	if emotion != "" {
		next.LastEmotion = emotion
	}
	if style != "" {
		next.LastStyle = style
	}
	if mode != "" {
		next.LastMode = mode
	}
	return next
}

func stringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// dominantKey returns the highest-weighted key of an emotion map.
func dominantKey(v any) string {
	weights, ok := v.(map[string]float64)
	if !ok {
		if anyMap, isAny := v.(map[string]any); isAny {
			weights = make(map[string]float64, len(anyMap))
			for k, raw := range anyMap {
				if f, isF := raw.(float64); isF {
					weights[k] = f
				}
			}
		}
	}
	best := ""
	bestWeight := 0.0
	for emotion, w := range weights {
		if w > bestWeight || (w == bestWeight && best != "" && emotion < best) {
			best = emotion
			bestWeight = w
		}
	}
	return best
}

func primaryResultFields(response map[string]any) (style, mode string) {
	primary, ok := response["primary_result"].(map[string]any)
	if !ok {
		return "", ""
	}
	style, _ = primary["genre"].(string)
	mode, _ = primary["primary_mode"].(string)
	return style, mode
}
