package api

import (
	"encoding/json"
	"net/http"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/bankora/bankora-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SendMessageResponse struct {
	UserMessage      MessageResponse `json:"userMessage"`
	AssistantMessage MessageResponse `json:"assistantMessage"`
}

func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	conversationID := chi.URLParam(r, "conversationID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatService.Send(r.Context(), user.ID, conversationID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SendMessageResponse{
		UserMessage:      toMessageResponse(result.UserMessage),
		AssistantMessage: toMessageResponse(result.AssistantMessage),
	})
}

type EditMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type EditMessageResponse struct {
	Message     MessageResponse  `json:"message"`
	Regenerated *MessageResponse `json:"regenerated,omitempty"`
}

func (h *Handler) EditMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	conversationID := chi.URLParam(r, "conversationID")
	messageID := chi.URLParam(r, "messageID")

	var req EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatService.Edit(r.Context(), user.ID, conversationID, domain.Message{
		ID:      messageID,
		Role:    domain.Role(req.Role),
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := EditMessageResponse{Message: toMessageResponse(result.Message)}
	if result.Regenerated != nil {
		regenerated := toMessageResponse(result.Regenerated)
		resp.Regenerated = &regenerated
	}
	writeJSON(w, http.StatusOK, resp)
}

type RegenerateRequest struct {
	Index int `json:"index"`
}

func (h *Handler) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	conversationID := chi.URLParam(r, "conversationID")

	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chatService.Regenerate(r.Context(), user.ID, conversationID, req.Index)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMessageResponse(msg))
}
