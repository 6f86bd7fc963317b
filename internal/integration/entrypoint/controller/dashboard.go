package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanta/backend/internal/application/usecase/dashboard"
	"github.com/quanta/backend/internal/integration/entrypoint/dto"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	summaryUseCase *dashboard.GetSummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(summaryUseCase *dashboard.GetSummaryUseCase) *DashboardController {
	return &DashboardController{
		summaryUseCase: summaryUseCase,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute dashboard summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(output))
}
