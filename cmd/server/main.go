package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	bankoraapi "github.com/bankora/bankora-api"
	"github.com/bankora/bankora-api/internal/api"
	"github.com/bankora/bankora-api/internal/config"
	"github.com/bankora/bankora-api/internal/notify"
	"github.com/bankora/bankora-api/internal/repository"
	"github.com/bankora/bankora-api/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(bankoraapi.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	users := repository.NewUsers(pool)
	conversations := repository.NewConversations(pool)
	expenses := repository.NewExpenses(pool)
	transactions := repository.NewTransactions(pool)

	// Initialize services
	notifier := notify.New(cfg)
	userService := service.NewUserService(users, notifier)
	convService := service.NewConversationService(conversations)
	providers := service.NewProviderRouter(
		service.NewFinGenieClient(cfg.FinGenieURL, cfg.FinGenieKey),
		service.NewBankoraClient(cfg.BankoraURL),
	)
	chatService := service.NewChatService(conversations, providers, notifier)
	expenseService := service.NewExpenseService(expenses, transactions)

	// Initialize handler and router
	h := api.New(api.Deps{
		Cfg:            cfg,
		UserService:    userService,
		ConvService:    convService,
		ChatService:    chatService,
		ExpenseService: expenseService,
	})
	router := api.NewRouter(h, userService)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped gracefully")
}
