package handlers

import (
	"net/http"

	"github.com/chordelia/chordelia-api/internal/conversation"
	"github.com/chordelia/chordelia-api/internal/logger"
	"github.com/chordelia/chordelia-api/internal/orchestrator"
	"github.com/gin-gonic/gin"
)

// ChatHandler serves the integrated chat endpoints.
type ChatHandler struct {
	orchestrator *orchestrator.Orchestrator
}

const debugTranscriptLimit = 10

func NewChatHandler(orch *orchestrator.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orch}
}

// IntegratedChatRequest is the /chat/integrated request body. Context
// is the client-echoed conversation state used only when the server
// remembers nothing for the session.
type IntegratedChatRequest struct {
	Message string                      `json:"message" binding:"required"`
	Context *conversation.ClientContext `json:"context"`
}

// IntegratedChat handles the main conversational endpoint.
func (h *ChatHandler) IntegratedChat(c *gin.Context) {
	var req IntegratedChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	sessionID := c.GetString("session_id")
	logger.Info("📨 chat message received", logger.Fields{
		"request_id": c.GetString("request_id"),
		"session_id": sessionID,
	})

	response := h.orchestrator.ProcessMessage(c.Request.Context(), sessionID, req.Message, req.Context)
	response["session_id"] = sessionID

	c.JSON(http.StatusOK, response)
}

// AnalyzeRequest is the /chat/analyze request body.
type AnalyzeRequest struct {
	Chords []string `json:"chords"`
	Mode   string   `json:"mode"`
}

// Analyze validates a progression against a mode (Ionian when not
// given) without touching conversation state.
func (h *ChatHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Chords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No chords provided"})
		return
	}
	if req.Mode == "" {
		req.Mode = "Ionian"
	}

	result := h.orchestrator.AnalyzeProgression(c.Request.Context(), req.Chords, req.Mode)
	if errMsg, failed := result["error"].(string); failed {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed: " + errMsg})
		return
	}

	result["chords"] = req.Chords
	c.JSON(http.StatusOK, result)
}

// DebugContext exposes the resolved conversation context for the
// session, for troubleshooting follow-up behavior.
func (h *ChatHandler) DebugContext(c *gin.Context) {
	sessionID := c.GetString("session_id")
	ctx := h.orchestrator.Context(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"session_id":         sessionID,
		"last_progression":   ctx.LastProgression,
		"last_emotion":       ctx.LastEmotion,
		"last_style":         ctx.LastStyle,
		"last_mode":          ctx.LastMode,
		"timestamp":          ctx.Timestamp.Unix(),
		"recent_transcripts": h.orchestrator.RecentTranscripts(c.Request.Context(), sessionID, debugTranscriptLimit),
	})
}
