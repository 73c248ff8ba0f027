// Package report implements the monthly budget-vs-spend aggregation.
//
// All functions are pure: they transform budget lines and pre-aggregated
// category spend into the payloads the API serves. Database access and HTTP
// concerns live in the controllers.
package report

import (
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/types"
)

// Status classifies a category's spend-to-plan ratio.
type Status string

const (
	StatusOnTrack Status = "on_track"
	StatusTight   Status = "tight"
	StatusOver    Status = "over"
)

// Thresholds are the upper bounds for the on_track and tight status tiers.
// Both bounds are inclusive: a ratio exactly at a bound belongs to the
// lower-severity tier.
type Thresholds struct {
	OnTrackMax decimal.Decimal
	TightMax   decimal.Decimal
}

// DefaultThresholds returns the thresholds used when the user has not
// configured their own.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OnTrackMax: decimal.NewFromFloat(0.85),
		TightMax:   decimal.NewFromInt(1),
	}
}

// ComputeStatus returns the status tier for a spend-to-plan ratio.
func ComputeStatus(ratio decimal.Decimal, t Thresholds) Status {
	if ratio.Cmp(t.OnTrackMax) <= 0 {
		return StatusOnTrack
	}

	if ratio.Cmp(t.TightMax) <= 0 {
		return StatusTight
	}

	return StatusOver
}

// BudgetLine is the planned allocation for one category, joined with the
// category reference data the payloads need.
type BudgetLine struct {
	CategoryID         uuid.UUID
	CategoryName       string
	ParentCategoryName string
	ColorHex           string
	Planned            decimal.Decimal
}

// CategorySpend is the pre-aggregated debit sum for one category in a period.
type CategorySpend struct {
	CategoryID uuid.UUID
	Spent      decimal.Decimal
}

// SumByCategory folds spend rows into a map of category ID to total spent.
// Categories absent from the input are simply absent; consumers treat them
// as zero.
func SumByCategory(spends []CategorySpend) map[uuid.UUID]decimal.Decimal {
	sums := make(map[uuid.UUID]decimal.Decimal, len(spends))
	for _, s := range spends {
		sums[s.CategoryID] = sums[s.CategoryID].Add(s.Spent)
	}

	return sums
}

// EnrichedLine is a budget line combined with its spend for the period.
type EnrichedLine struct {
	CategoryID         uuid.UUID       `json:"categoryId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the category
	CategoryName       string          `json:"categoryName" example:"Groceries"`                          // Name of the category
	ParentCategoryName string          `json:"parentCategoryName" example:"Food & Drink"`                 // Name of the parent category. For top-level categories this is the category name itself
	Planned            decimal.Decimal `json:"planned" example:"600"`                                     // The planned amount for the period
	Spent              decimal.Decimal `json:"spent" example:"510.5"`                                     // The amount spent in the period
	Remaining          decimal.Decimal `json:"remaining" example:"89.5"`                                  // Planned minus spent, floored at zero
	ProgressPct        decimal.Decimal `json:"progressPct" example:"85.08"`                               // Spent as a percentage of planned, not capped at 100
	Status             Status          `json:"status" example:"tight"`                                    // Status tier for the line
}

var hundred = decimal.NewFromInt(100)

// EnrichLine combines one budget line with the spend map.
//
// Remaining never goes negative, overspend is only visible via ProgressPct and
// Status. A line with nothing planned is always on_track so that unplanned
// categories do not produce divide-by-zero noise.
func EnrichLine(line BudgetLine, spentByCategory map[uuid.UUID]decimal.Decimal, t Thresholds) EnrichedLine {
	spent := spentByCategory[line.CategoryID]

	remaining := line.Planned.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	progressPct := decimal.Zero
	ratio := decimal.Zero
	if !line.Planned.IsZero() {
		ratio = spent.Div(line.Planned)
		progressPct = ratio.Mul(hundred).Round(2)
	}

	parent := line.ParentCategoryName
	if parent == "" {
		parent = line.CategoryName
	}

	return EnrichedLine{
		CategoryID:         line.CategoryID,
		CategoryName:       line.CategoryName,
		ParentCategoryName: parent,
		Planned:            line.Planned,
		Spent:              spent,
		Remaining:          remaining,
		ProgressPct:        progressPct,
		Status:             ComputeStatus(ratio, t),
	}
}

// Summary holds the whole-budget totals for a month.
type Summary struct {
	BudgetTotal decimal.Decimal `json:"budgetTotal" example:"900"`  // Sum of all planned amounts
	SpentTotal  decimal.Decimal `json:"spentTotal" example:"740.5"` // Sum of all spend on budgeted categories
	Remaining   decimal.Decimal `json:"remaining" example:"159.5"`  // Budget total minus spent total, floored at zero
	SpentPct    decimal.Decimal `json:"spentPct" example:"82.28"`   // Spent total as a percentage of the budget total
}

// ChartSlice is one entry of the chart-friendly spend breakdown.
type ChartSlice struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the category
	CategoryName string          `json:"categoryName" example:"Groceries"`                          // Name of the category
	Spent        decimal.Decimal `json:"spent" example:"510.5"`                                     // The amount spent in the period
	Color        string          `json:"color" example:"#9FC5A8"`                                   // Hex color for rendering the slice
}

// Sync carries the account sync metadata the home screen displays.
type Sync struct {
	LastTransactionSyncAt *time.Time `json:"lastTransactionSyncAt"` // Time of the last transaction sync, null if never synced
}

// MonthlyHomePayload is everything the monthly home screen needs.
type MonthlyHomePayload struct {
	Month       types.Month    `json:"month" example:"2026-02"`          // The requested month
	PeriodStart string         `json:"periodStart" example:"2026-02-01"` // First day of the month
	PeriodEnd   string         `json:"periodEnd" example:"2026-02-28"`   // Last day of the month
	Currency    string         `json:"currency" example:"USD"`           // Currency code for all amounts
	Summary     Summary        `json:"summary"`                          // Whole-budget totals
	Chart       []ChartSlice   `json:"chart"`                            // Spend breakdown for categories with spend
	Lines       []EnrichedLine `json:"lines"`                            // All budget lines with their spend
	Sync        Sync           `json:"sync"`                             // Account sync metadata
}

// chartPalette is the fallback palette for categories without a configured
// color.
var chartPalette = [8]string{
	"#9FC5A8",
	"#6FA8DC",
	"#E8B4BC",
	"#F4D35E",
	"#A67DB8",
	"#7FDBDA",
	"#E07A5F",
	"#81B29A",
}

// chartColor picks the color for a chart slice. Without a configured color the
// category ID is hashed into the palette, keeping colors stable regardless of
// line ordering.
func chartColor(categoryID uuid.UUID, colorHex string) string {
	if colorHex != "" {
		return colorHex
	}

	h := fnv.New32a()
	_, _ = h.Write(categoryID[:])
	return chartPalette[h.Sum32()%uint32(len(chartPalette))]
}

// BuildMonthlyHome composes the monthly home payload.
//
// An empty line slice is not an error: months without a budget produce a
// well-formed payload with zero totals and empty chart and lines.
func BuildMonthlyHome(month types.Month, lines []BudgetLine, spends []CategorySpend, lastSyncAt *time.Time, currency string, t Thresholds) MonthlyHomePayload {
	spentByCategory := SumByCategory(spends)

	enriched := make([]EnrichedLine, 0, len(lines))
	budgetTotal := decimal.Zero
	spentTotal := decimal.Zero

	for _, line := range lines {
		e := EnrichLine(line, spentByCategory, t)
		enriched = append(enriched, e)

		budgetTotal = budgetTotal.Add(line.Planned)
		spentTotal = spentTotal.Add(e.Spent)
	}

	remaining := budgetTotal.Sub(spentTotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	spentPct := decimal.Zero
	if !budgetTotal.IsZero() {
		spentPct = spentTotal.Div(budgetTotal).Mul(hundred).Round(2)
	}

	chart := make([]ChartSlice, 0)
	for i, e := range enriched {
		if !e.Spent.IsPositive() {
			continue
		}

		chart = append(chart, ChartSlice{
			CategoryID:   e.CategoryID,
			CategoryName: e.CategoryName,
			Spent:        e.Spent,
			Color:        chartColor(e.CategoryID, lines[i].ColorHex),
		})
	}

	return MonthlyHomePayload{
		Month:       month,
		PeriodStart: month.PeriodStart().Format("2006-01-02"),
		PeriodEnd:   month.PeriodEnd().Format("2006-01-02"),
		Currency:    currency,
		Summary: Summary{
			BudgetTotal: budgetTotal,
			SpentTotal:  spentTotal,
			Remaining:   remaining,
			SpentPct:    spentPct,
		},
		Chart: chart,
		Lines: enriched,
		Sync: Sync{
			LastTransactionSyncAt: lastSyncAt,
		},
	}
}

// Insight is the budget-vs-spend position of one category.
//
// Unlike EnrichedLine, Remaining is signed here so that the insights list can
// show how far over budget a category is.
type Insight struct {
	CategoryID  uuid.UUID       `json:"categoryId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the category
	Category    string          `json:"category" example:"Groceries"`                              // Name of the category
	Budget      decimal.Decimal `json:"budget" example:"600"`                                      // The planned amount
	Spent       decimal.Decimal `json:"spent" example:"510.5"`                                     // The amount spent
	Remaining   decimal.Decimal `json:"remaining" example:"89.5"`                                  // Budget minus spent, may be negative
	PercentUsed decimal.Decimal `json:"percentUsed" example:"85.08"`                               // Spent as a percentage of the budget
	Status      Status          `json:"status" example:"tight"`                                    // Status tier
}

// ComputeInsights returns the budget-vs-spend position for every budget line.
func ComputeInsights(lines []BudgetLine, spends []CategorySpend, t Thresholds) []Insight {
	spentByCategory := SumByCategory(spends)

	insights := make([]Insight, 0, len(lines))
	for _, line := range lines {
		spent := spentByCategory[line.CategoryID]

		percentUsed := decimal.Zero
		ratio := decimal.Zero
		if !line.Planned.IsZero() {
			ratio = spent.Div(line.Planned)
			percentUsed = ratio.Mul(hundred).Round(2)
		}

		insights = append(insights, Insight{
			CategoryID:  line.CategoryID,
			Category:    line.CategoryName,
			Budget:      line.Planned,
			Spent:       spent,
			Remaining:   line.Planned.Sub(spent),
			PercentUsed: percentUsed,
			Status:      ComputeStatus(ratio, t),
		})
	}

	return insights
}
