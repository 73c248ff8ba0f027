package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
	"gorm.io/gorm"
)

// Budget represents the planned spending for a single month.
//
// There is at most one budget per month.
type Budget struct {
	DefaultModel
	Month types.Month `json:"month" gorm:"uniqueIndex:budget_month" example:"2026-02-01T00:00:00.000000Z"` // The month the budget is for
	Note  string      `json:"note" example:"Vacation month, groceries lower than usual" default:""`        // Notes about the budget
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Note = strings.TrimSpace(b.Note)
	return nil
}

// BudgetLine is the planned amount for one category within a budget.
type BudgetLine struct {
	DefaultModel
	BudgetID      uuid.UUID       `json:"budgetId" gorm:"uniqueIndex:budget_line_budget_category" example:"f3b08e33-8a1c-40bf-a25b-2b0c6853e682"`                             // ID of the budget
	Budget        Budget          `json:"-"`                                                                                                                                  // The budget the line belongs to
	CategoryID    uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_line_budget_category" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                           // ID of the category the amount is planned for
	Category      Category        `json:"-"`                                                                                                                                  // The category the amount is planned for
	PlannedAmount decimal.Decimal `json:"plannedAmount" gorm:"type:DECIMAL(20,8)" example:"300.00" minimum:"0.00000001" multipleOf:"0.00000001" swaggertype:"number" default:"0"` // Planned spending for the category in this month
}

// AfterSave verifies the planned amount.
func (l *BudgetLine) AfterSave(_ *gorm.DB) error {
	if l.PlannedAmount.IsNegative() {
		return ErrPlannedAmountNegative
	}

	return nil
}

// BeforeCreate checks that the budget and the category exist.
func (l *BudgetLine) BeforeCreate(tx *gorm.DB) error {
	_ = l.DefaultModel.BeforeCreate(tx)

	err := tx.First(&Budget{}, "id = ?", l.BudgetID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, "id = ?", l.CategoryID).Error
}

// Lines returns all lines of the budget.
func (b Budget) Lines(db *gorm.DB) ([]BudgetLine, error) {
	var lines []BudgetLine
	err := db.Where(&BudgetLine{BudgetID: b.ID}).Order("created_at ASC").Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// ReportLines resolves the budget lines into report input, joining the
// category names and colors.
func (b Budget) ReportLines(db *gorm.DB) ([]report.BudgetLine, error) {
	lines, err := b.Lines(db)
	if err != nil {
		return nil, err
	}

	reportLines := make([]report.BudgetLine, 0, len(lines))
	for _, line := range lines {
		var category Category
		err = db.First(&category, "id = ?", line.CategoryID).Error
		if err != nil {
			return nil, err
		}

		parentName, err := category.ParentName(db)
		if err != nil {
			return nil, err
		}

		reportLines = append(reportLines, report.BudgetLine{
			CategoryID:         category.ID,
			CategoryName:       category.Name,
			ParentCategoryName: parentName,
			ColorHex:           category.ColorHex,
			Planned:            line.PlannedAmount,
		})
	}

	return reportLines, nil
}
