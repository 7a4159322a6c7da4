package conversation

import "time"

// ClientContext is the state a client echoes back with its request,
// used only when both server-side stores come up empty.
type ClientContext struct {
	LastResponse    map[string]any `json:"lastResponse"`
	LastProgression []string       `json:"lastProgression"`
	LastEmotion     string         `json:"lastEmotion"`
	LastStyle       string         `json:"lastStyle"`
	LastMode        string         `json:"lastMode"`
}

// Resolver merges the durable chatlog, the ephemeral memory, and
// client-echoed state into one context per request.
type Resolver struct {
	chatlog *ChatLog
	memory  *Memory
	ttl     time.Duration
}

func NewResolver(chatlog *ChatLog, memory *Memory, ttl time.Duration) *Resolver {
	return &Resolver{chatlog: chatlog, memory: memory, ttl: ttl}
}

// Resolve returns the context for the session, in precedence order:
// durable chatlog, ephemeral memory, client echo, fresh. The TTL
// applies uniformly, so a stale durable entry is skipped rather than
// revived.
func (r *Resolver) Resolve(sessionID string, client *ClientContext) *Context {
	if ctx := r.chatlog.Get(sessionID); ctx != nil && !ctx.Expired(r.ttl) {
		return ctx
	}
	if ctx := r.memory.Get(sessionID); ctx != nil {
		return ctx
	}
	if client != nil && len(client.LastProgression) > 0 {
		return &Context{
			LastResponse:    orEmpty(client.LastResponse),
			LastProgression: client.LastProgression,
			LastEmotion:     client.LastEmotion,
			LastStyle:       client.LastStyle,
			LastMode:        client.LastMode,
			SessionID:       sessionID,
			Timestamp:       time.Now(),
		}
	}
	return Fresh(sessionID)
}

// Persist derives the next context from the response and writes it to
// both stores.
func (r *Resolver) Persist(sessionID string, prev *Context, response map[string]any) (*Context, error) {
	next := Derive(prev, sessionID, response)
	r.memory.Store(next)
	if err := r.chatlog.Save(sessionID, next); err != nil {
		return next, err
	}
	return next, nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
