package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/bankora/bankora-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type AddExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.Format(dateLayout),
		CreatedAt:   e.CreatedAt.UTC().Format(timestampLayout),
	}
}

func (h *Handler) AddExpenseHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	expense, err := h.expenseService.AddExpense(r.Context(), user.ID, req.Amount, req.Category, req.Description, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (h *Handler) ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	expenses, err := h.expenseService.ListExpenses(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = toExpenseResponse(&expenses[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	expenseID := chi.URLParam(r, "expenseID")

	if err := h.expenseService.DeleteExpense(r.Context(), user.ID, expenseID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SummaryResponseBody struct {
	TotalExpenses     decimal.Decimal            `json:"totalExpenses"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	MonthlyTrend      map[string]decimal.Decimal `json:"monthlyTrend"`
}

func (h *Handler) ExpenseSummaryHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	summary, err := h.expenseService.Summary(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponseBody{
		TotalExpenses:     summary.TotalExpenses,
		CategoryBreakdown: summary.CategoryBreakdown,
		MonthlyTrend:      summary.MonthlyTrend,
	})
}

type AddTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Type:        string(t.TxType),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format(dateLayout),
		CreatedAt:   t.CreatedAt.UTC().Format(timestampLayout),
	}
}

func (h *Handler) AddTransactionHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	tx, err := h.expenseService.AddTransaction(r.Context(), user.ID, req.Amount, domain.TxType(req.Type), req.Category, req.Description, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *Handler) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	txs, err := h.expenseService.ListTransactions(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = toTransactionResponse(&txs[i])
	}
	writeJSON(w, http.StatusOK, out)
}
