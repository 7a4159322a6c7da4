package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// chatlogEntry is the on-disk shape of one session's saved context.
type chatlogEntry struct {
	LastResponse    map[string]any `json:"last_response"`
	LastProgression []string       `json:"last_progression"`
	LastEmotion     string         `json:"last_emotion"`
	LastStyle       string         `json:"last_style"`
	LastMode        string         `json:"last_mode"`
	Timestamp       int64          `json:"timestamp"`
}

// ChatLog is the durable session store: one JSON file holding every
// session keyed by ID, rewritten whole on each save.
type ChatLog struct {
	mu   sync.Mutex
	path string
}

// NewChatLog opens (or creates) the chatlog file.
func NewChatLog(path string) (*ChatLog, error) {
	log := &ChatLog{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("create chatlog: %w", err)
		}
	}
	return log, nil
}

// Save writes the session's context into the log. A nil context is a
// no-op.
func (l *ChatLog) Save(sessionID string, ctx *Context) error {
	if ctx == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	entries[sessionID] = chatlogEntry{
		LastResponse:    ctx.LastResponse,
		LastProgression: ctx.LastProgression,
		LastEmotion:     ctx.LastEmotion,
		LastStyle:       ctx.LastStyle,
		LastMode:        ctx.LastMode,
		Timestamp:       ctx.Timestamp.Unix(),
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal chatlog: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write chatlog: %w", err)
	}
	return nil
}

// Get returns the saved context for the session, or nil when absent or
// unreadable.
func (l *ChatLog) Get(sessionID string) *Context {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return nil
	}
	entry, ok := entries[sessionID]
	if !ok {
		return nil
	}
	return &Context{
		LastResponse:    entry.LastResponse,
		LastProgression: entry.LastProgression,
		LastEmotion:     entry.LastEmotion,
		LastStyle:       entry.LastStyle,
		LastMode:        entry.LastMode,
		SessionID:       sessionID,
		Timestamp:       time.Unix(entry.Timestamp, 0),
	}
}

func (l *ChatLog) load() (map[string]chatlogEntry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read chatlog: %w", err)
	}
	entries := map[string]chatlogEntry{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse chatlog: %w", err)
		}
	}
	return entries, nil
}
