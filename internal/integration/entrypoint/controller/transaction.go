// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/application/usecase/transaction"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/entrypoint/dto"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles ledger entry endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateEntryUseCase
	listUseCase   *transaction.ListEntriesUseCase
	updateUseCase *transaction.UpdateEntryUseCase
	settleUseCase *transaction.SettleEntryUseCase
	deleteUseCase *transaction.DeleteEntryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateEntryUseCase,
	listUseCase *transaction.ListEntriesUseCase,
	updateUseCase *transaction.UpdateEntryUseCase,
	settleUseCase *transaction.SettleEntryUseCase,
	deleteUseCase *transaction.DeleteEntryUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		settleUseCase: settleUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /entries requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	input := transaction.CreateEntryInput{
		UserID:           userID,
		Amount:           decimal.NewFromFloat(req.Amount),
		Kind:             entity.TransactionKind(req.Kind),
		CategoryID:       categoryID,
		PaymentMethod:    entity.PaymentMethod(req.PaymentMethod),
		InstallmentCount: req.InstallmentCount,
		Description:      req.Description,
	}

	if req.CreditCardID != nil && *req.CreditCardID != "" {
		cardID, err := uuid.Parse(*req.CreditCardID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid credit card ID format",
			})
			return
		}
		input.CreditCardID = &cardID
	}

	if req.Recurring != nil {
		input.Recurring = &transaction.RecurringOptions{
			DueDay: req.Recurring.DueDay,
			Months: req.Recurring.Months,
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	entries := make([]dto.EntryResponse, len(output.Entries))
	for i, entry := range output.Entries {
		entries[i] = dto.ToEntryResponse(entry)
	}
	ctx.JSON(http.StatusCreated, dto.CreateEntryResponse{Entries: entries})
}

// List handles GET /entries requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	filter := adapter.EntryFilter{
		UserID: userID,
	}

	// Parse date filters (on due date, inclusive)
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err == nil {
			filter.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err == nil {
			filter.EndDate = &endDate
		}
	}

	// Parse kind filter
	if kindStr := ctx.Query("kind"); kindStr != "" {
		kind := entity.TransactionKind(kindStr)
		filter.Kind = &kind
	}

	// Parse category filter
	if categoryIDStr := ctx.Query("categoryId"); categoryIDStr != "" {
		if id, err := uuid.Parse(categoryIDStr); err == nil {
			filter.CategoryID = &id
		}
	}

	// Parse payment method filter
	if methodStr := ctx.Query("paymentMethod"); methodStr != "" {
		method := entity.PaymentMethod(methodStr)
		filter.PaymentMethod = &method
	}

	// Parse credit card filter
	if cardIDStr := ctx.Query("creditCardId"); cardIDStr != "" {
		if id, err := uuid.Parse(cardIDStr); err == nil {
			filter.CreditCardID = &id
		}
	}

	// Parse settlement status filter
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.SettlementStatus(statusStr)
		if status == entity.SettlementStatusPending || status == entity.SettlementStatusSettled {
			filter.Status = &status
		}
	}

	// Parse search filter
	filter.Search = ctx.Query("search")

	// Parse amount bounds
	if minStr := ctx.Query("minAmount"); minStr != "" {
		if min, err := decimal.NewFromString(minStr); err == nil {
			filter.MinAmount = &min
		}
	}
	if maxStr := ctx.Query("maxAmount"); maxStr != "" {
		if max, err := decimal.NewFromString(maxStr); err == nil {
			filter.MaxAmount = &max
		}
	}

	// Parse pagination
	pagination := adapter.EntryPagination{}
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			pagination.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			pagination.Limit = limit
		}
	}

	input := transaction.ListEntriesInput{
		Filter:     filter,
		Pagination: pagination,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve entries",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(output))
}

// Update handles PATCH /entries/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	var req dto.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := transaction.UpdateEntryInput{
		UserID:  userID,
		EntryID: entryID,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}

	if req.Description != nil {
		input.Description = req.Description
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &id
	}

	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}

	if req.CreditCardID != nil && *req.CreditCardID != "" {
		id, err := uuid.Parse(*req.CreditCardID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid credit card ID format",
			})
			return
		}
		input.CreditCardID = &id
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry))
}

// Settle handles POST /entries/:id/settle requests. Settling an already
// settled entry is an idempotent no-op.
func (c *TransactionController) Settle(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	// An empty body is allowed; settlement defaults to today.
	var req dto.SettleEntryRequest
	_ = ctx.ShouldBindJSON(&req)

	input := transaction.SettleEntryInput{
		UserID:  userID,
		EntryID: entryID,
	}

	if req.PaidDate != nil && *req.PaidDate != "" {
		paidDate, err := time.Parse("2006-01-02", *req.PaidDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid paid date format. Use YYYY-MM-DD",
			})
			return
		}
		input.PaidDate = &paidDate
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry))
}

// Delete handles DELETE /entries/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	input := transaction.DeleteEntryInput{
		UserID:  userID,
		EntryID: entryID,
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
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

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionKind,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeCreditCardRequired,
		domainerror.ErrCodeInvalidRecurringSchedule,
		domainerror.ErrCodeInstallmentsWithoutCard,
		domainerror.ErrCodeNoFieldsToUpdate,
		domainerror.ErrCodeDescriptionTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
