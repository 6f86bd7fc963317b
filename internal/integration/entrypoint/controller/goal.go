package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/usecase/goal"
	"github.com/quanta/backend/internal/application/usecase/savingsplan"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
	"github.com/quanta/backend/internal/integration/entrypoint/dto"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles savings goal endpoints, including the
// contribution ledger and the savings plan projection.
type GoalController struct {
	listUseCase               *goal.ListGoalsUseCase
	createUseCase             *goal.CreateGoalUseCase
	getUseCase                *goal.GetGoalUseCase
	updateUseCase             *goal.UpdateGoalUseCase
	deleteUseCase             *goal.DeleteGoalUseCase
	addContributionUseCase    *goal.AddContributionUseCase
	removeContributionUseCase *goal.RemoveContributionUseCase
	getPlanUseCase            *savingsplan.GetPlanUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	addContributionUseCase *goal.AddContributionUseCase,
	removeContributionUseCase *goal.RemoveContributionUseCase,
	getPlanUseCase *savingsplan.GetPlanUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:               listUseCase,
		createUseCase:             createUseCase,
		getUseCase:                getUseCase,
		updateUseCase:             updateUseCase,
		deleteUseCase:             deleteUseCase,
		addContributionUseCase:    addContributionUseCase,
		removeContributionUseCase: removeContributionUseCase,
		getPlanUseCase:            getPlanUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	input := goal.CreateGoalInput{
		UserID:                userID,
		Name:                  req.Name,
		TargetAmount:          decimal.NewFromFloat(req.TargetAmount),
		Icon:                  req.Icon,
		Color:                 req.Color,
		ContributionFrequency: entity.FrequencyMonthly,
		AutoDeduct:            req.AutoDeduct,
	}
	if req.ContributionAmount != nil {
		amount := decimal.NewFromFloat(*req.ContributionAmount)
		input.ContributionAmount = &amount
	}
	if req.ContributionFrequency != nil {
		input.ContributionFrequency = entity.Frequency(*req.ContributionFrequency)
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid target_date format, expected YYYY-MM-DD"})
			return
		}
		input.TargetDate = &targetDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid goal ID format"})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid goal ID format"})
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	input := goal.UpdateGoalInput{
		UserID:          userID,
		GoalID:          goalID,
		Name:            req.Name,
		Icon:            req.Icon,
		Color:           req.Color,
		ClearTargetDate: req.ClearTargetDate,
		AutoDeduct:      req.AutoDeduct,
	}
	if req.TargetAmount != nil {
		targetAmount := decimal.NewFromFloat(*req.TargetAmount)
		input.TargetAmount = &targetAmount
	}
	if req.ContributionAmount != nil {
		amount := decimal.NewFromFloat(*req.ContributionAmount)
		input.ContributionAmount = &amount
	}
	if req.ContributionFrequency != nil {
		frequency := entity.Frequency(*req.ContributionFrequency)
		input.ContributionFrequency = &frequency
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid target_date format, expected YYYY-MM-DD"})
			return
		}
		input.TargetDate = &targetDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid goal ID format"})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		UserID: userID,
		GoalID: goalID,
	}); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddContribution handles POST /goals/:id/contributions requests.
func (c *GoalController) AddContribution(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid goal ID format"})
		return
	}

	var req dto.AddContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidContribution),
		})
		return
	}

	output, err := c.addContributionUseCase.Execute(ctx.Request.Context(), goal.AddContributionInput{
		UserID: userID,
		GoalID: goalID,
		Amount: decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	response := dto.ContributionResultResponse{
		Goal: dto.ToGoalResponse(output.Goal),
	}
	if output.MirrorTransaction != nil {
		transaction := dto.ToTransactionResponse(output.MirrorTransaction)
		response.Transaction = &transaction
	}

	ctx.JSON(http.StatusCreated, response)
}

// RemoveContribution handles DELETE /goals/:id/contributions/:index requests.
func (c *GoalController) RemoveContribution(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid goal ID format"})
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid contribution index"})
		return
	}

	output, err := c.removeContributionUseCase.Execute(ctx.Request.Context(), goal.RemoveContributionInput{
		UserID:       userID,
		GoalID:       goalID,
		HistoryIndex: index,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ContributionResultResponse{
		Goal: dto.ToGoalResponse(output.Goal),
	})
}

// GetPlan handles GET /goals/:id/plan requests.
func (c *GoalController) GetPlan(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid goal ID format"})
		return
	}

	output, err := c.getPlanUseCase.Execute(ctx.Request.Context(), savingsplan.GetPlanInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsPlanResponse(output.Plan))
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		statusCode := c.getStatusCodeForGoalError(goalErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func (c *GoalController) getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound, domainerror.ErrCodeContributionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidContributionFreq,
		domainerror.ErrCodeMissingGoalFields,
		domainerror.ErrCodeInvalidContribution:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
