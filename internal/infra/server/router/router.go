// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/quanta/backend/internal/integration/entrypoint/controller"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	recurringController   *controller.RecurringController
	goalController        *controller.GoalController
	budgetController      *controller.BudgetController
	coachController       *controller.CoachController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	recurringController *controller.RecurringController,
	goalController *controller.GoalController,
	budgetController *controller.BudgetController,
	coachController *controller.CoachController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		categoryController:    categoryController,
		transactionController: transactionController,
		recurringController:   recurringController,
		goalController:        goalController,
		budgetController:      budgetController,
		coachController:       coachController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PUT("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.recurringController != nil && r.authMiddleware != nil {
			recurring := v1.Group("/recurring")
			recurring.Use(r.authMiddleware.Authenticate())
			{
				recurring.GET("/monthly/:period", r.recurringController.GetMonthlyDocument)
				recurring.POST("/monthly/:period/settle", r.recurringController.SettleItem)
				recurring.GET("/pending", r.recurringController.PendingPayments)
				recurring.GET("/templates", r.recurringController.ListTemplates)
				recurring.PATCH("/templates/:id", r.recurringController.UpdateTemplate)
				recurring.DELETE("/templates/:id", r.recurringController.DeactivateTemplate)
			}
		}

		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
				goals.POST("/:id/contributions", r.goalController.AddContribution)
				goals.DELETE("/:id/contributions/:index", r.goalController.RemoveContribution)
				goals.GET("/:id/plan", r.goalController.GetPlan)
			}
		}

		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.PATCH("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}
		}

		if r.coachController != nil && r.authMiddleware != nil {
			coach := v1.Group("/coach")
			coach.Use(r.authMiddleware.Authenticate())
			{
				coach.GET("/analysis", r.coachController.GetAnalysis)
				coach.GET("/tips", r.coachController.GetTips)
			}
		}

		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
			}
		}
	}
}
