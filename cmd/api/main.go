// Package main is the entry point for the QUANTA API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quanta/backend/config"
	"github.com/quanta/backend/internal/application/usecase/auth"
	"github.com/quanta/backend/internal/application/usecase/budget"
	"github.com/quanta/backend/internal/application/usecase/category"
	"github.com/quanta/backend/internal/application/usecase/coach"
	"github.com/quanta/backend/internal/application/usecase/dashboard"
	"github.com/quanta/backend/internal/application/usecase/goal"
	"github.com/quanta/backend/internal/application/usecase/recurring"
	"github.com/quanta/backend/internal/application/usecase/savingsplan"
	"github.com/quanta/backend/internal/application/usecase/transaction"
	infracache "github.com/quanta/backend/internal/infra/cache"
	"github.com/quanta/backend/internal/infra/db"
	"github.com/quanta/backend/internal/infra/server/router"
	"github.com/quanta/backend/internal/integration/adapters"
	"github.com/quanta/backend/internal/integration/cache"
	"github.com/quanta/backend/internal/integration/entrypoint/controller"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
	"github.com/quanta/backend/internal/integration/notify"
	"github.com/quanta/backend/internal/integration/persistence"
	"github.com/quanta/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting QUANTA API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.RecurringTemplateModel{},
		&model.MonthlyDocumentModel{},
		&model.MonthlyItemModel{},
		&model.GoalModel{},
		&model.ContributionModel{},
		&model.BudgetModel{},
		&model.ReminderJobModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	if err := persistence.SeedSystemCategories(context.Background(), database.DB()); err != nil {
		slog.Error("Failed to seed system categories", "error", err)
		os.Exit(1)
	}

	redisClient, err := infracache.NewRedisClient(&cfg.Redis)
	cacheHealthChecker := func() bool { return false }
	if err != nil {
		slog.Warn("Redis connection failed, coach responses will not be cached", "error", err)
		redisClient = nil
	} else {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
	}

	// Repositories
	userRepo := persistence.NewUserRepository(database.DB())
	tokenRepo := persistence.NewTokenRepository(database.DB())
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	templateRepo := persistence.NewRecurringTemplateRepository(database.DB())
	documentRepo := persistence.NewMonthlyDocumentRepository(database.DB())
	goalRepo := persistence.NewGoalRepository(database.DB())
	budgetRepo := persistence.NewBudgetRepository(database.DB())
	reminderQueueRepo := persistence.NewReminderQueueRepository(database.DB())

	// Adapters and services
	clock := adapters.NewSystemClock()
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	coachService := adapters.NewGeminiCoachService(cfg.Gemini.APIKey)
	analysisCache := cache.NewAnalysisCache(redisClient)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, clock)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Recurring use cases
	commitRecurringUseCase := recurring.NewCommitRecurringUseCase(transactionRepo, templateRepo, documentRepo, clock)
	getMonthlyDocumentUseCase := recurring.NewGetMonthlyDocumentUseCase(templateRepo, documentRepo, clock)
	settleItemUseCase := recurring.NewSettleItemUseCase(transactionRepo, documentRepo, clock)
	pendingPaymentsUseCase := recurring.NewPendingPaymentsUseCase(transactionRepo, clock)
	listTemplatesUseCase := recurring.NewListTemplatesUseCase(templateRepo)
	updateTemplateUseCase := recurring.NewUpdateTemplateUseCase(templateRepo, documentRepo, clock)
	deactivateTemplateUseCase := recurring.NewDeactivateTemplateUseCase(templateRepo, documentRepo, clock)

	// Goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, clock)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	addContributionUseCase := goal.NewAddContributionUseCase(goalRepo, transactionRepo, categoryRepo, clock)
	removeContributionUseCase := goal.NewRemoveContributionUseCase(goalRepo, clock)
	getPlanUseCase := savingsplan.NewGetPlanUseCase(goalRepo, transactionRepo, clock)

	// Budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, clock)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Coach and dashboard use cases
	getAnalysisUseCase := coach.NewGetAnalysisUseCase(transactionRepo, goalRepo, categoryRepo, userRepo, coachService, analysisCache, clock)
	getTipsUseCase := coach.NewGetTipsUseCase(transactionRepo, goalRepo, categoryRepo, userRepo, coachService, analysisCache, clock)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(transactionRepo, goalRepo, clock)

	// Controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck, cacheHealthChecker)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	categoryController := controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase, updateCategoryUseCase, deleteCategoryUseCase)
	transactionController := controller.NewTransactionController(listTransactionsUseCase, createTransactionUseCase, updateTransactionUseCase, deleteTransactionUseCase, commitRecurringUseCase)
	recurringController := controller.NewRecurringController(getMonthlyDocumentUseCase, settleItemUseCase, pendingPaymentsUseCase, listTemplatesUseCase, updateTemplateUseCase, deactivateTemplateUseCase)
	goalController := controller.NewGoalController(listGoalsUseCase, createGoalUseCase, getGoalUseCase, updateGoalUseCase, deleteGoalUseCase, addContributionUseCase, removeContributionUseCase, getPlanUseCase)
	budgetController := controller.NewBudgetController(listBudgetsUseCase, createBudgetUseCase, updateBudgetUseCase, deleteBudgetUseCase)
	coachController := controller.NewCoachController(getAnalysisUseCase, getTipsUseCase)
	dashboardController := controller.NewDashboardController(getSummaryUseCase)
	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Reminder worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Reminder.Enabled && cfg.Email.ResendAPIKey != "" {
		emailSender := notify.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker := notify.NewWorker(
			userRepo,
			goalRepo,
			reminderQueueRepo,
			emailSender,
			clock,
			pendingPaymentsUseCase,
			listBudgetsUseCase,
			notify.WorkerConfig{
				CheckInterval: cfg.Reminder.CheckInterval,
				BatchSize:     cfg.Reminder.BatchSize,
			},
		)
		go worker.Start(workerCtx)
	} else {
		slog.Info("Reminder worker disabled")
	}

	// Router and HTTP server
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		recurringController,
		goalController,
		budgetController,
		coachController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
