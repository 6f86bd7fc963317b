package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/usecase/budget"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
	"github.com/quanta/backend/internal/integration/entrypoint/dto"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	listUseCase   *budget.ListBudgetsUseCase
	createUseCase *budget.CreateBudgetUseCase
	updateUseCase *budget.UpdateBudgetUseCase
	deleteUseCase *budget.DeleteBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	createUseCase *budget.CreateBudgetUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /budgets requests. Each budget carries the spending
// accumulated in its current period window.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID format"})
		return
	}

	input := budget.CreateBudgetInput{
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: decimal.NewFromFloat(req.LimitAmount),
		Period:      entity.BudgetPeriodMonthly,
	}
	if req.AlertOnExceed != nil {
		input.AlertOnExceed = *req.AlertOnExceed
	} else {
		input.AlertOnExceed = true
	}
	if req.Period != nil {
		input.Period = entity.BudgetPeriod(*req.Period)
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// Update handles PATCH /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid budget ID format"})
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	input := budget.UpdateBudgetInput{
		UserID:        userID,
		BudgetID:      budgetID,
		AlertOnExceed: req.AlertOnExceed,
	}
	if req.LimitAmount != nil {
		limitAmount := decimal.NewFromFloat(*req.LimitAmount)
		input.LimitAmount = &limitAmount
	}
	if req.Period != nil {
		period := entity.BudgetPeriod(*req.Period)
		input.Period = &period
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid budget ID format"})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	}); err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		statusCode := c.getStatusCodeForBudgetError(budgetErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound, domainerror.ErrCodeBudgetCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeBudgetCategoryNotOwned, domainerror.ErrCodeUnauthorizedBudget:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidLimitAmount,
		domainerror.ErrCodeInvalidBudgetPeriod,
		domainerror.ErrCodeMissingBudgetFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
