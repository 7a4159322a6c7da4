package conversation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// History archives full message transcripts in sqlite. Unlike the
// context stores it never expires entries and is read only for
// inspection, so losing it never affects routing.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	user_message TEXT NOT NULL,
	response_message TEXT NOT NULL,
	intent TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_transcripts_session ON transcripts(session_id, created_at);
`

// Transcript is one archived exchange.
type Transcript struct {
	ID              int64     `json:"id"`
	SessionID       string    `json:"session_id"`
	UserMessage     string    `json:"user_message"`
	ResponseMessage string    `json:"response_message"`
	Intent          string    `json:"intent"`
	Confidence      float64   `json:"confidence"`
	CreatedAt       time.Time `json:"created_at"`
}

// OpenHistory opens (or creates) the transcript database.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &History{db: db}, nil
}

// Append archives one exchange.
func (h *History) Append(ctx context.Context, t Transcript) error {
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO transcripts (session_id, user_message, response_message, intent, confidence, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.UserMessage, t.ResponseMessage, t.Intent, t.Confidence, created,
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}
	return nil
}

// Recent returns the newest transcripts for a session, newest first.
func (h *History) Recent(ctx context.Context, sessionID string, limit int) ([]Transcript, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, session_id, user_message, response_message, intent, confidence, created_at
		 FROM transcripts WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []Transcript
	for rows.Next() {
		var t Transcript
		if err := rows.Scan(&t.ID, &t.SessionID, &t.UserMessage, &t.ResponseMessage, &t.Intent, &t.Confidence, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}
