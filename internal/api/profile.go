package api

import (
	"encoding/json"
	"net/http"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/bankora/bankora-api/internal/middleware"
	"github.com/shopspring/decimal"
)

func (h *Handler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type UpdateProfileRequest struct {
	DisplayName   *string          `json:"displayName"`
	PhoneNumber   *string          `json:"phoneNumber"`
	Address       *string          `json:"address"`
	Occupation    *string          `json:"occupation"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome"`
	SavingsGoal   *decimal.Decimal `json:"savingsGoal"`
}

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, domain.ProfileUpdate{
		DisplayName:   req.DisplayName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		Occupation:    req.Occupation,
		MonthlyIncome: req.MonthlyIncome,
		SavingsGoal:   req.SavingsGoal,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
