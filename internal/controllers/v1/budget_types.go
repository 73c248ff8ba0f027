package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/internal/types"
)

// BudgetLineEditable represents all user configurable parameters of a budget line
type BudgetLineEditable struct {
	CategoryID    uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                             // ID of the category
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"300.00" minimum:"0" swaggertype:"number"`                       // Planned spending for the category
}

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Month types.Month          `json:"month" example:"2026-02"`                                             // The month the budget is for
	Note  string               `json:"note" example:"Vacation month, groceries lower than usual" default:""` // Notes about the budget
	Lines []BudgetLineEditable `json:"lines"`                                                               // The planned amounts per category
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Month: editable.Month,
		Note:  editable.Note,
	}
}

type BudgetLine struct {
	models.DefaultModel
	BudgetLineEditable
}

func newBudgetLine(model models.BudgetLine) BudgetLine {
	return BudgetLine{
		DefaultModel: model.DefaultModel,
		BudgetLineEditable: BudgetLineEditable{
			CategoryID:    model.CategoryID,
			PlannedAmount: model.PlannedAmount,
		},
	}
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`       // The budget itself
	Home string `json:"home" example:"https://example.com/api/v1/home?month=2026-02"`                                 // The monthly home payload for the budget's month
}

type Budget struct {
	models.DefaultModel
	Month types.Month  `json:"month" example:"2026-02"`
	Note  string       `json:"note" example:"Vacation month, groceries lower than usual"`
	Lines []BudgetLine `json:"lines"` // The planned amounts per category
	Links BudgetLinks  `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) (Budget, error) {
	url := httputil.RequestPathV1(c)

	lines, err := model.Lines(models.DB)
	if err != nil {
		return Budget{}, err
	}

	data := make([]BudgetLine, 0, len(lines))
	for _, line := range lines {
		data = append(data, newBudgetLine(line))
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		Month:        model.Month,
		Note:         model.Note,
		Lines:        data,
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/budgets/%s", url, model.ID),
			Home: fmt.Sprintf("%s/home?month=%s", url, model.Month),
		},
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Month  string `form:"month" filterField:"false"`  // By month, YYYY-MM
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}
