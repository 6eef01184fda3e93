// Package webchat serves the browser chat widget over a WebSocket. Each
// connection drives one booking conversation against the engine.
package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/harborview-health/scheduler-agent/internal/engine"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// Turner processes one conversation turn. Satisfied by *engine.Engine.
type Turner interface {
	ProcessTurn(ctx context.Context, sessionID, utterance string) (engine.Reply, error)
}

// Handler manages web chat connections and messages.
type Handler struct {
	engine Turner
	logger *logging.Logger
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string `json:"type"` // "message", "session", "pong", "error"
	Text      string `json:"text,omitempty"`
	Role      string `json:"role,omitempty"`
	State     string `json:"state,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewHandler creates a web chat handler.
func NewHandler(eng Turner, logger *logging.Logger) *Handler {
	if eng == nil {
		panic("webchat: engine required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: eng, logger: logger.Component("webchat")}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// ServeHTTP upgrades to WebSocket and handles real-time messaging.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	// Greet reconnecting and fresh sessions alike; the engine replays the
	// prompt for whatever state the session is in.
	h.sendReply(r.Context(), conn, sessionID, "")

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		h.sendReply(r.Context(), conn, sessionID, msg.Text)
	}
}

func (h *Handler) sendReply(ctx context.Context, conn *websocket.Conn, sessionID, text string) {
	reply, err := h.engine.ProcessTurn(ctx, sessionID, text)
	if err != nil {
		h.logger.Error("webchat: turn failed", "session_id", sessionID, "error", err)
		_ = websocket.JSON.Send(conn, OutboundMessage{
			Type: "error",
			Text: "Sorry, something went wrong. Please try again.",
		})
		return
	}
	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "message",
		Role:      "assistant",
		Text:      reply.Message,
		State:     reply.State,
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
