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

	"github.com/finledger/backend/internal/application/usecase/creditcard"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/entrypoint/dto"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
)

// CreditCardController handles credit card and statement endpoints.
type CreditCardController struct {
	createUseCase        *creditcard.CreateCardUseCase
	listUseCase          *creditcard.ListCardsUseCase
	getStatementsUseCase *creditcard.GetStatementsUseCase
	recomputeUseCase     *creditcard.RecomputeStatementUseCase
	settleUseCase        *creditcard.SettleStatementUseCase
}

// NewCreditCardController creates a new credit card controller instance.
func NewCreditCardController(
	createUseCase *creditcard.CreateCardUseCase,
	listUseCase *creditcard.ListCardsUseCase,
	getStatementsUseCase *creditcard.GetStatementsUseCase,
	recomputeUseCase *creditcard.RecomputeStatementUseCase,
	settleUseCase *creditcard.SettleStatementUseCase,
) *CreditCardController {
	return &CreditCardController{
		createUseCase:        createUseCase,
		listUseCase:          listUseCase,
		getStatementsUseCase: getStatementsUseCase,
		recomputeUseCase:     recomputeUseCase,
		settleUseCase:        settleUseCase,
	}
}

// Create handles POST /credit-cards requests.
func (c *CreditCardController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateCreditCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeCreditCardNameRequired),
		})
		return
	}

	input := creditcard.CreateCardInput{
		UserID:      userID,
		Name:        req.Name,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		CreditLimit: decimal.NewFromFloat(req.CreditLimit),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreditCardResponse{
		ID:          output.ID.String(),
		Name:        output.Name,
		ClosingDay:  output.ClosingDay,
		DueDay:      output.DueDay,
		CreditLimit: output.CreditLimit.StringFixed(2),
	})
}

// List handles GET /credit-cards requests.
func (c *CreditCardController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), creditcard.ListCardsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve credit cards",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditCardListResponse(output))
}

// GetStatements handles GET /statements requests. Month and year default to
// the current cycle; cardId narrows the lookup to a single card.
func (c *CreditCardController) GetStatements(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := creditcard.GetStatementsInput{
		UserID: userID,
	}

	if cardIDStr := ctx.Query("cardId"); cardIDStr != "" {
		cardID, err := uuid.Parse(cardIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID format",
			})
			return
		}
		input.CreditCardID = &cardID
	}

	month, year, ok := c.parseCycle(ctx)
	if !ok {
		return
	}
	input.Month = month
	input.Year = year

	output, err := c.getStatementsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementListResponse(output))
}

// RecomputeStatement handles POST /credit-cards/:id/statements/recompute
// requests. It rebuilds the cycle total from the underlying entries.
func (c *CreditCardController) RecomputeStatement(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	month, year, ok := c.parseCycle(ctx)
	if !ok {
		return
	}

	input := creditcard.RecomputeStatementInput{
		UserID:       userID,
		CreditCardID: cardID,
		Month:        month,
		Year:         year,
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StatementResponse{
		ID:           output.ID.String(),
		CreditCardID: output.CreditCardID.String(),
		Month:        output.Month,
		Year:         output.Year,
		TotalAmount:  output.TotalAmount.StringFixed(2),
		DueDate:      output.DueDate.Format("2006-01-02"),
	})
}

// SettleStatement handles POST /statements/:id/pay requests.
func (c *CreditCardController) SettleStatement(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	statementID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid statement ID format",
		})
		return
	}

	// An empty body is allowed; payment defaults to today.
	var req dto.SettleStatementRequest
	_ = ctx.ShouldBindJSON(&req)

	input := creditcard.SettleStatementInput{
		UserID:      userID,
		StatementID: statementID,
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
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SettleStatementResponse{
		ID:       output.ID.String(),
		IsPaid:   output.IsPaid,
		PaidDate: output.PaidDate,
	})
}

// parseCycle reads the optional month/year query parameters. Zero means
// "current cycle" and is resolved by the use case.
func (c *CreditCardController) parseCycle(ctx *gin.Context) (int, int, bool) {
	var month, year int
	if monthStr := ctx.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month",
				Code:  string(domainerror.ErrCodeInvalidStatementCycle),
			})
			return 0, 0, false
		}
		month = m
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year",
				Code:  string(domainerror.ErrCodeInvalidStatementCycle),
			})
			return 0, 0, false
		}
		year = y
	}
	return month, year, true
}

// handleCardError handles credit card and statement errors and returns
// appropriate HTTP responses.
func (c *CreditCardController) handleCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CreditCardError
	if errors.As(err, &cardErr) {
		ctx.JSON(c.getStatusCodeForCardError(cardErr.Code), dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	var stmtErr *domainerror.StatementError
	if errors.As(err, &stmtErr) {
		ctx.JSON(c.getStatusCodeForStatementError(stmtErr.Code), dto.ErrorResponse{
			Error: stmtErr.Message,
			Code:  string(stmtErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCardError maps credit card error codes to HTTP status codes.
func (c *CreditCardController) getStatusCodeForCardError(code domainerror.CreditCardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCreditCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidClosingDay,
		domainerror.ErrCodeInvalidDueDay,
		domainerror.ErrCodeInvalidCreditLimit,
		domainerror.ErrCodeCreditCardNameRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForStatementError maps statement error codes to HTTP status codes.
func (c *CreditCardController) getStatusCodeForStatementError(code domainerror.StatementErrorCode) int {
	switch code {
	case domainerror.ErrCodeStatementNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeStatementAlreadyPaid:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidStatementCycle:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
