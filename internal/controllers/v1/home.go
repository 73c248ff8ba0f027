package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
)

// RegisterHomeRoutes registers the routes for the monthly home payload with
// the RouterGroup that is passed.
func RegisterHomeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsHome)
	r.GET("", GetHome)
}

// RegisterInsightRoutes registers the routes for the monthly insights with
// the RouterGroup that is passed.
func RegisterInsightRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsInsights)
	r.GET("", GetInsights)
}

type HomeResponse struct {
	Data  *report.MonthlyHomePayload `json:"data"`                                                  // The monthly home payload
	Error *string                    `json:"error" example:"months must be specified in YYYY-MM format, e.g. 2026-02"` // The error, if any occurred
}

type InsightListResponse struct {
	Data  []report.Insight `json:"data"`                                                                      // The budget position per category
	Error *string          `json:"error" example:"months must be specified in YYYY-MM format, e.g. 2026-02"` // The error, if any occurred
}

// monthData loads everything the aggregation needs for a month.
//
// A month without a budget yields empty lines, not an error.
func monthData(month types.Month, settings models.Settings) ([]report.BudgetLine, []report.CategorySpend, error) {
	var lines []report.BudgetLine

	var budget models.Budget
	err := models.DB.First(&budget, "month = ?", month).Error
	if err == nil {
		lines, err = budget.ReportLines(models.DB)
		if err != nil {
			return nil, nil, err
		}
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil, err
	}

	spends, err := models.SpentByCategory(models.DB, month, settings.IncludePending)
	if err != nil {
		return nil, nil, err
	}

	return lines, spends, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Home
// @Success		204
// @Router			/v1/home [options]
func OptionsHome(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Monthly home payload
// @Description	Returns everything the monthly home screen needs: summary totals, chart data, budget lines with status and sync metadata
// @Tags			Home
// @Produce		json
// @Success		200		{object}	HomeResponse
// @Failure		400		{object}	HomeResponse
// @Failure		500		{object}	HomeResponse
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/home [get]
func GetHome(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c, types.MonthOf(time.Now().In(settings.Location())))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	lines, spends, err := monthData(month, settings)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	lastSyncAt, err := models.LastTransactionSync(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HomeResponse{
			Error: &s,
		})
		return
	}

	payload := report.BuildMonthlyHome(month, lines, spends, lastSyncAt, settings.CurrencyCode, settings.Thresholds())
	c.JSON(http.StatusOK, HomeResponse{Data: &payload})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Router			/v1/insights [options]
func OptionsInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Monthly insights
// @Description	Returns the budget-vs-spend position of every budgeted category in the month
// @Tags			Insights
// @Produce		json
// @Success		200		{object}	InsightListResponse
// @Failure		400		{object}	InsightListResponse
// @Failure		500		{object}	InsightListResponse
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/insights [get]
func GetInsights(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightListResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c, types.MonthOf(time.Now().In(settings.Location())))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightListResponse{
			Error: &s,
		})
		return
	}

	lines, spends, err := monthData(month, settings)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, InsightListResponse{
		Data: report.ComputeInsights(lines, spends, settings.Thresholds()),
	})
}
