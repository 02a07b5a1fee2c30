// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finledger/backend/internal/application/usecase/report"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/entrypoint/dto"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles report endpoints.
type ReportController struct {
	balanceUseCase     *report.GetBalanceUseCase
	summaryUseCase     *report.GetCategorySummaryUseCase
	trendUseCase       *report.GetMonthlyTrendUseCase
	commitmentsUseCase *report.GetPendingCommitmentsUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	balanceUseCase *report.GetBalanceUseCase,
	summaryUseCase *report.GetCategorySummaryUseCase,
	trendUseCase *report.GetMonthlyTrendUseCase,
	commitmentsUseCase *report.GetPendingCommitmentsUseCase,
) *ReportController {
	return &ReportController{
		balanceUseCase:     balanceUseCase,
		summaryUseCase:     summaryUseCase,
		trendUseCase:       trendUseCase,
		commitmentsUseCase: commitmentsUseCase,
	}
}

// GetBalance handles GET /reports/balance requests. The range defaults to
// the first of the current month through today.
func (c *ReportController) GetBalance(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.GetBalanceInput{
		UserID: userID,
	}
	startDate, endDate, ok := c.parseDateRange(ctx)
	if !ok {
		return
	}
	input.StartDate = startDate
	input.EndDate = endDate

	output, err := c.balanceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBalanceResponse(output))
}

// GetCategorySummary handles GET /reports/categories requests.
func (c *ReportController) GetCategorySummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.GetCategorySummaryInput{
		UserID: userID,
	}
	startDate, endDate, ok := c.parseDateRange(ctx)
	if !ok {
		return
	}
	input.StartDate = startDate
	input.EndDate = endDate

	// Optional kind filter
	if kindStr := ctx.Query("kind"); kindStr != "" {
		kind := entity.TransactionKind(kindStr)
		if kind != entity.TransactionKindExpense && kind != entity.TransactionKindIncome {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid kind filter",
			})
			return
		}
		input.Kind = &kind
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySummaryResponse(output))
}

// GetMonthlyTrend handles GET /reports/trend requests.
func (c *ReportController) GetMonthlyTrend(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.GetMonthlyTrendInput{
		UserID: userID,
	}
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		if months, err := strconv.Atoi(monthsStr); err == nil {
			input.Months = months
		}
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyTrendResponse(output))
}

// GetPendingCommitments handles GET /reports/commitments requests.
func (c *ReportController) GetPendingCommitments(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.GetPendingCommitmentsInput{
		UserID: userID,
	}

	output, err := c.commitmentsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingCommitmentsResponse(output))
}

// parseDateRange reads the optional startDate/endDate query parameters.
func (c *ReportController) parseDateRange(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	var startDate, endDate *time.Time
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
			})
			return nil, nil, false
		}
		startDate = &parsed
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
			})
			return nil, nil, false
		}
		endDate = &parsed
	}
	return startDate, endDate, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
