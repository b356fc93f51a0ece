package api

import (
	"net/http"

	"github.com/bankora/bankora-api/internal/middleware"
	"github.com/bankora/bankora-api/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, users *service.UserService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover())
	r.Use(middleware.Logging())
	r.Use(chimw.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.UserLoader(h.cfg.JWTSecret, users))

			r.Get("/profile", h.GetProfileHandler)
			r.Patch("/profile", h.UpdateProfileHandler)

			r.Post("/conversations", h.CreateConversationHandler)
			r.Get("/conversations", h.ListConversationsHandler)
			r.Get("/conversations/{conversationID}", h.GetConversationHandler)
			r.Patch("/conversations/{conversationID}", h.RenameConversationHandler)
			r.Delete("/conversations/{conversationID}", h.DeleteConversationHandler)

			r.Post("/conversations/{conversationID}/messages", h.SendMessageHandler)
			r.Patch("/conversations/{conversationID}/messages/{messageID}", h.EditMessageHandler)
			r.Post("/conversations/{conversationID}/regenerate", h.RegenerateHandler)

			r.Post("/expenses", h.AddExpenseHandler)
			r.Get("/expenses", h.ListExpensesHandler)
			r.Get("/expenses/summary", h.ExpenseSummaryHandler)
			r.Delete("/expenses/{expenseID}", h.DeleteExpenseHandler)

			r.Post("/transactions", h.AddTransactionHandler)
			r.Get("/transactions", h.ListTransactionsHandler)
		})
	})

	return r
}
