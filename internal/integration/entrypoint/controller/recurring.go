package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/usecase/recurring"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
	"github.com/quanta/backend/internal/integration/entrypoint/dto"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring expense endpoints: templates,
// the monthly expense document, settlement and pending payments.
type RecurringController struct {
	getMonthlyUseCase *recurring.GetMonthlyDocumentUseCase
	settleUseCase     *recurring.SettleItemUseCase
	pendingUseCase    *recurring.PendingPaymentsUseCase
	listTemplates     *recurring.ListTemplatesUseCase
	updateTemplate    *recurring.UpdateTemplateUseCase
	deactivate        *recurring.DeactivateTemplateUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	getMonthlyUseCase *recurring.GetMonthlyDocumentUseCase,
	settleUseCase *recurring.SettleItemUseCase,
	pendingUseCase *recurring.PendingPaymentsUseCase,
	listTemplates *recurring.ListTemplatesUseCase,
	updateTemplate *recurring.UpdateTemplateUseCase,
	deactivate *recurring.DeactivateTemplateUseCase,
) *RecurringController {
	return &RecurringController{
		getMonthlyUseCase: getMonthlyUseCase,
		settleUseCase:     settleUseCase,
		pendingUseCase:    pendingUseCase,
		listTemplates:     listTemplates,
		updateTemplate:    updateTemplate,
		deactivate:        deactivate,
	}
}

// GetMonthlyDocument handles GET /recurring/monthly/:period requests.
// The document is generated on first access and regenerated when
// refresh=true is passed.
func (c *RecurringController) GetMonthlyDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := recurring.GetMonthlyDocumentInput{
		UserID:  userID,
		Period:  ctx.Param("period"),
		Refresh: ctx.Query("refresh") == "true",
	}

	output, err := c.getMonthlyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyDocumentResponse(output.Document))
}

// SettleItem handles POST /recurring/monthly/:period/settle requests.
func (c *RecurringController) SettleItem(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.SettleItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid item ID format"})
		return
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), recurring.SettleItemInput{
		UserID: userID,
		Period: ctx.Param("period"),
		ItemID: itemID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	response := dto.SettleItemResponse{
		Item: dto.ToMonthlyItemResponse(output.Item),
	}
	if output.Transaction != nil {
		transaction := dto.ToTransactionResponse(output.Transaction)
		response.Transaction = &transaction
	}

	ctx.JSON(http.StatusOK, response)
}

// PendingPayments handles GET /recurring/pending requests.
func (c *RecurringController) PendingPayments(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.pendingUseCase.Execute(ctx.Request.Context(), recurring.PendingPaymentsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingPaymentListResponse(output.Payments))
}

// ListTemplates handles GET /recurring/templates requests.
func (c *RecurringController) ListTemplates(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listTemplates.Execute(ctx.Request.Context(), recurring.ListTemplatesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active") == "true",
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringTemplateListResponse(output.Templates))
}

// UpdateTemplate handles PATCH /recurring/templates/:id requests.
func (c *RecurringController) UpdateTemplate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid template ID format"})
		return
	}

	var req dto.UpdateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	input := recurring.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: templateID,
		Name:       req.Name,
	}
	if req.DefaultAmount != nil {
		amount := decimal.NewFromFloat(*req.DefaultAmount)
		input.DefaultAmount = &amount
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID format"})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Frequency != nil {
		frequency := entity.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}

	output, err := c.updateTemplate.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringTemplateResponse(output.Template))
}

// DeactivateTemplate handles DELETE /recurring/templates/:id requests.
// The template stops generating monthly items; existing history is kept.
func (c *RecurringController) DeactivateTemplate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid template ID format"})
		return
	}

	output, err := c.deactivate.Execute(ctx.Request.Context(), recurring.DeactivateTemplateInput{
		UserID:     userID,
		TemplateID: templateID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringTemplateResponse(output.Template))
}

// handleRecurringError handles recurring errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		ctx.JSON(getStatusCodeForRecurringError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeTemplateNotFound,
		domainerror.ErrCodeMonthlyDocumentNotFound,
		domainerror.ErrCodeMonthlyItemNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeItemAlreadyPaid:
		return http.StatusConflict
	case domainerror.ErrCodeTemplateInactive:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidPeriod, domainerror.ErrCodeMissingRecurringFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
