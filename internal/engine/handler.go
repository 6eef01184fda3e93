package engine

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// Handler wires HTTP requests to the conversation engine.
type Handler struct {
	engine *Engine
	logger *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(engine *Engine, logger *logging.Logger) *Handler {
	if engine == nil {
		panic("engine: handler requires an engine")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, logger: logger.Component("chat_handler")}
}

// MessageRequest is the POST body for a chat turn.
type MessageRequest struct {
	Message string `json:"message"`
}

// Start handles POST /chat/start: it mints a session id and returns the
// opening prompt.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	reply, err := h.engine.ProcessTurn(r.Context(), sessionID, "")
	if err != nil {
		h.logger.Error("failed to start session", "error", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, reply)
}

// Message handles POST /chat/{sessionID}.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "Session id required", http.StatusBadRequest)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message required", http.StatusBadRequest)
		return
	}

	reply, err := h.engine.ProcessTurn(r.Context(), sessionID, req.Message)
	if err != nil {
		h.logger.Error("failed to process turn", "session_id", sessionID, "error", err)
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, reply)
}

// Reset handles POST /chat/{sessionID}/reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "Session id required", http.StatusBadRequest)
		return
	}
	if err := h.engine.ResetSession(r.Context(), sessionID); err != nil {
		h.logger.Error("failed to reset session", "session_id", sessionID, "error", err)
		http.Error(w, "Failed to reset session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Snapshot handles GET /chat/{sessionID}.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "Session id required", http.StatusBadRequest)
		return
	}
	snap, ok, err := h.engine.SessionSnapshot(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load session", "session_id", sessionID, "error", err)
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
