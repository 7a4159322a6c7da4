package conversation

import (
	"sync"
	"time"
)

// Memory is the ephemeral in-process session store. Entries expire
// after the TTL and are evicted lazily on read or in bulk by Cleanup.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*Context
	ttl      time.Duration
}

// NewMemory creates an empty store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		sessions: make(map[string]*Context),
		ttl:      ttl,
	}
}

// Store saves the context under its session ID.
func (m *Memory) Store(ctx *Context) {
	if ctx == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[ctx.SessionID] = ctx
}

// Get returns the live context for the session, evicting it when
// expired. Returns nil when nothing usable remains.
func (m *Memory) Get(sessionID string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	if ctx.Expired(m.ttl) {
		delete(m.sessions, sessionID)
		return nil
	}
	return ctx
}

// Cleanup evicts every expired session and reports how many were
// removed and how many remain.
func (m *Memory) Cleanup() (evicted, remaining int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, ctx := range m.sessions {
		if ctx.Expired(m.ttl) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted, len(m.sessions)
}

// Len reports the current session count, expired entries included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
