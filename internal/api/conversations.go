package api

import (
	"encoding/json"
	"net/http"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/bankora/bankora-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

type ConversationResponse struct {
	ID        string `json:"id"`
	ModelType string `json:"modelType"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type SummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ModelType string `json:"modelType"`
	UpdatedAt string `json:"updatedAt"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

func toConversationResponse(c *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        c.ID,
		ModelType: string(c.ModelType),
		Title:     c.Title,
		CreatedAt: c.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: c.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func toSummaryResponses(summaries []domain.ConversationSummary) []SummaryResponse {
	out := make([]SummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = SummaryResponse{
			ID:        s.ID,
			Title:     s.Title,
			ModelType: string(s.ModelType),
			UpdatedAt: s.UpdatedAt.UTC().Format(timestampLayout),
		}
	}
	return out
}

func toMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.CreatedAt.UTC().Format(timestampLayout),
	}
}

func toMessageResponses(msgs []domain.Message) []MessageResponse {
	out := make([]MessageResponse, len(msgs))
	for i := range msgs {
		out[i] = toMessageResponse(&msgs[i])
	}
	return out
}

type CreateConversationRequest struct {
	ModelType string `json:"modelType"`
	Title     string `json:"title"`
}

func (h *Handler) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.convService.Create(r.Context(), user.ID, domain.ModelType(req.ModelType), req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toConversationResponse(conv))
}

type ListConversationsResponse struct {
	FinGenie []SummaryResponse `json:"fingenie"`
	Bankora  []SummaryResponse `json:"bankora"`
}

func (h *Handler) ListConversationsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	lists, err := h.convService.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListConversationsResponse{
		FinGenie: toSummaryResponses(lists.FinGenie),
		Bankora:  toSummaryResponses(lists.Bankora),
	})
}

type GetConversationResponse struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

func (h *Handler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	conversationID := chi.URLParam(r, "conversationID")

	conv, msgs, err := h.convService.Get(r.Context(), user.ID, conversationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GetConversationResponse{
		ConversationResponse: toConversationResponse(conv),
		Messages:             toMessageResponses(msgs),
	})
}

type RenameConversationRequest struct {
	Title string `json:"title"`
}

func (h *Handler) RenameConversationHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	conversationID := chi.URLParam(r, "conversationID")

	var req RenameConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.convService.Rename(r.Context(), user.ID, conversationID, req.Title); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	conversationID := chi.URLParam(r, "conversationID")

	if err := h.convService.Delete(r.Context(), user.ID, conversationID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
