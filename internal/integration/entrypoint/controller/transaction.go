package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/application/usecase/recurring"
	"github.com/quanta/backend/internal/application/usecase/transaction"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
	"github.com/quanta/backend/internal/integration/entrypoint/dto"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints. Requests marked
// is_recurring are routed through the recurring commit pipeline so the
// ledger record, template and monthly item stay consistent.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	commitUseCase *recurring.CommitRecurringUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	commitUseCase *recurring.CommitRecurringUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		commitUseCase: commitUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query parameters: " + err.Error(),
		})
		return
	}

	filter := adapter.TransactionFilter{
		UserID: userID,
		Search: query.Search,
	}
	if query.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid start_date format, expected YYYY-MM-DD"})
			return
		}
		filter.StartDate = &startDate
	}
	if query.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		filter.EndDate = &endDate
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID format"})
			return
		}
		filter.CategoryIDs = []uuid.UUID{categoryID}
	}
	if query.Type != "" {
		transactionType := entity.TransactionType(query.Type)
		filter.Type = &transactionType
	}
	if query.Recurring != "" {
		isRecurring := query.Recurring == "true"
		filter.Recurring = &isRecurring
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		Filter: filter,
		Pagination: adapter.TransactionPagination{
			Page:  query.Page,
			Limit: query.Limit,
		},
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result, output.Totals))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	categoryID, ok := parseOptionalUUID(ctx, req.CategoryID)
	if !ok {
		return
	}

	if req.IsRecurring {
		c.commitRecurring(ctx, userID, date, req, categoryID, nil)
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        date,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Type:        entity.TransactionType(req.Type),
		CategoryID:  categoryID,
		Notes:       req.Notes,
		Payment:     entity.PaymentMethod(req.Payment),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests. Setting is_recurring
// converts the transaction into a recurring one in place.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid transaction ID format"})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	categoryID, ok := parseOptionalUUID(ctx, req.CategoryID)
	if !ok {
		return
	}

	if req.IsRecurring {
		createReq := dto.CreateTransactionRequest(req)
		c.commitRecurring(ctx, userID, date, createReq, categoryID, &transactionID)
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Date:          date,
		Description:   req.Description,
		Amount:        decimal.NewFromFloat(req.Amount),
		Type:          entity.TransactionType(req.Type),
		CategoryID:    categoryID,
		Notes:         req.Notes,
		Payment:       entity.PaymentMethod(req.Payment),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid transaction ID format"})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// commitRecurring routes a recurring create or conversion through the
// recurring commit pipeline.
func (c *TransactionController) commitRecurring(
	ctx *gin.Context,
	userID uuid.UUID,
	date time.Time,
	req dto.CreateTransactionRequest,
	categoryID *uuid.UUID,
	existingID *uuid.UUID,
) {
	if req.Frequency == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Frequency is required for recurring transactions",
			Code:  string(domainerror.ErrCodeInvalidFrequency),
		})
		return
	}

	input := recurring.CommitRecurringInput{
		UserID:                userID,
		Date:                  date,
		Description:           req.Description,
		Amount:                decimal.NewFromFloat(req.Amount),
		CategoryID:            categoryID,
		Notes:                 req.Notes,
		Frequency:             entity.Frequency(*req.Frequency),
		ExistingTransactionID: existingID,
	}

	output, err := c.commitUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringCommitError(ctx, err)
		return
	}

	response := dto.CommitRecurringResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Template:    dto.ToRecurringTemplateResponse(output.Template),
		Period:      output.Period,
		AutoPaid:    output.AutoPaid,
	}
	if output.Item != nil {
		item := dto.ToMonthlyItemResponse(output.Item)
		response.Item = &item
	}

	status := http.StatusCreated
	if existingID != nil {
		status = http.StatusOK
	}
	ctx.JSON(status, response)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := c.getStatusCodeForTransactionError(txnErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleRecurringCommitError handles errors from the recurring commit
// pipeline, which can surface either transaction or recurring errors.
func (c *TransactionController) handleRecurringCommitError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		ctx.JSON(getStatusCodeForRecurringError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}
	c.handleTransactionError(ctx, err)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound, domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction, domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the standard missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parseOptionalUUID parses an optional UUID string from a request body.
// It writes a 400 response and returns false on malformed input.
func parseOptionalUUID(ctx *gin.Context, value *string) (*uuid.UUID, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID format"})
		return nil, false
	}
	return &id, true
}
