package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name     string     `json:"name" example:"Groceries"`                                 // Name of the category
	ParentID *uuid.UUID `json:"parentId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`  // ID of the parent category, null for top-level categories
	ColorHex string     `json:"colorHex" example:"#9FC5A8" default:""`                    // Color used for this category in charts
	Note     string     `json:"note" example:"Supermarkets and corner shops" default:""`  // Notes about the category
	Archived bool       `json:"archived" example:"true" default:"false"`                  // Is the category archived?
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:     editable.Name,
		ParentID: editable.ParentID,
		ColorHex: editable.ColorHex,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The category itself
	Monthly      string `json:"monthly" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f/monthly"`           // Monthly detail for this category
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions in this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := httputil.RequestPathV1(c)

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:     model.Name,
			ParentID: model.ParentID,
			ColorHex: model.ColorHex,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/categories/%s", url, model.ID),
			Monthly:      fmt.Sprintf("%s/categories/%s/monthly", url, model.ID),
			Transactions: fmt.Sprintf("%s/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the Category archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.Category, error) {
	return models.Category{
		Archived: f.Archived,
	}, nil
}

// DailySpend is the spend of one calendar day.
type DailySpend struct {
	Date  string          `json:"date" example:"2026-02-14"` // The calendar day
	Spent decimal.Decimal `json:"spent" example:"14.25"`     // Total debit amount of the day
}

// PreviousMonthComparison compares the spend of a month with the month before.
type PreviousMonthComparison struct {
	Month    types.Month     `json:"month" example:"2026-01"`  // The previous month
	Spent    decimal.Decimal `json:"spent" example:"602.10"`   // Amount spent in the previous month
	DeltaPct decimal.Decimal `json:"deltaPct" example:"-15.2"` // Change of the current month against the previous one in percent
}

// CategoryMonthly is the monthly detail view of one category.
type CategoryMonthly struct {
	Category     Category                 `json:"category"`     // The category
	Month        types.Month              `json:"month" example:"2026-02"`
	Planned      decimal.Decimal          `json:"planned" example:"300"`      // The planned amount for the month, zero when the month has no budget line
	Spent        decimal.Decimal          `json:"spent" example:"230"`        // The amount spent in the month
	Remaining    decimal.Decimal          `json:"remaining" example:"70"`     // Planned minus spent, floored at zero
	ProgressPct  decimal.Decimal          `json:"progressPct" example:"76.67"`
	Status       report.Status            `json:"status" example:"on_track"`
	Transactions []Transaction            `json:"transactions"` // The transactions of the category in the month
	Daily        []DailySpend             `json:"daily"`        // Spend per calendar day
	Previous     *PreviousMonthComparison `json:"previous"`     // Comparison with the previous month, only set when requested
}

type CategoryMonthlyResponse struct {
	Data  *CategoryMonthly `json:"data"`                                                      // The monthly detail
	Error *string          `json:"error" example:"there is no category matching your query"` // The error, if any occurred
}

type CategoryMonthlyQuery struct {
	Month           string `form:"month" example:"2026-02"`          // Year and month in YYYY-MM format, defaults to the current month
	ComparePrevious bool   `form:"comparePrevious" example:"true"`   // Include the comparison with the previous month?
}
