package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanta/backend/internal/application/usecase/coach"
	domainerror "github.com/quanta/backend/internal/domain/error"
	"github.com/quanta/backend/internal/integration/entrypoint/dto"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// CoachController handles AI financial coaching endpoints.
type CoachController struct {
	analysisUseCase *coach.GetAnalysisUseCase
	tipsUseCase     *coach.GetTipsUseCase
}

// NewCoachController creates a new coach controller instance.
func NewCoachController(
	analysisUseCase *coach.GetAnalysisUseCase,
	tipsUseCase *coach.GetTipsUseCase,
) *CoachController {
	return &CoachController{
		analysisUseCase: analysisUseCase,
		tipsUseCase:     tipsUseCase,
	}
}

// GetAnalysis handles GET /coach/analysis requests. refresh=true
// bypasses the cache and regenerates.
func (c *CoachController) GetAnalysis(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.analysisUseCase.Execute(ctx.Request.Context(), coach.GetAnalysisInput{
		UserID:  userID,
		Refresh: ctx.Query("refresh") == "true",
	})
	if err != nil {
		c.handleCoachError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalysisResponse(output.Analysis, output.Cached, output.Stale))
}

// GetTips handles GET /coach/tips requests.
func (c *CoachController) GetTips(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.tipsUseCase.Execute(ctx.Request.Context(), coach.GetTipsInput{
		UserID:  userID,
		Refresh: ctx.Query("refresh") == "true",
	})
	if err != nil {
		c.handleCoachError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTipsResponse(output.Tips, output.Cached, output.Stale))
}

// handleCoachError handles coach errors and returns appropriate HTTP responses.
func (c *CoachController) handleCoachError(ctx *gin.Context, err error) {
	var coachErr *domainerror.CoachError
	if errors.As(err, &coachErr) {
		statusCode := c.getStatusCodeForCoachError(coachErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: coachErr.Message,
			Code:  string(coachErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCoachError maps coach error codes to HTTP status codes.
func (c *CoachController) getStatusCodeForCoachError(code domainerror.CoachErrorCode) int {
	switch code {
	case domainerror.ErrCodeCoachRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeCoachUnavailable, domainerror.ErrCodeAnalysisNotAvailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeCoachInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
