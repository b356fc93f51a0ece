package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bankora/bankora-api/internal/auth"
	"github.com/bankora/bankora-api/internal/domain"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password, req.DisplayName, h.cfg.IsAdmin(req.Email))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
}

type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	DisplayName   string  `json:"displayName"`
	PhoneNumber   string  `json:"phoneNumber,omitempty"`
	Address       string  `json:"address,omitempty"`
	Occupation    string  `json:"occupation,omitempty"`
	MonthlyIncome *string `json:"monthlyIncome,omitempty"`
	SavingsGoal   *string `json:"savingsGoal,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Occupation:  u.Occupation,
		CreatedAt:   u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt:   u.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	if u.MonthlyIncome != nil {
		s := u.MonthlyIncome.String()
		resp.MonthlyIncome = &s
	}
	if u.SavingsGoal != nil {
		s := u.SavingsGoal.String()
		resp.SavingsGoal = &s
	}
	return resp
}
