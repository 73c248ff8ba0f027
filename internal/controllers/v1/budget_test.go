package v1_test

import (
	"net/http"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/internal/types"
	"github.com/spendiq/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Note:  "Vacation month",
		Lines: []v1.BudgetLineEditable{
			{CategoryID: category.ID, PlannedAmount: decimal.NewFromInt(300)},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), types.NewMonth(2026, 2), response.Data.Month)
	assert.Equal(suite.T(), "Vacation month", response.Data.Note)
	assert.Len(suite.T(), response.Data.Lines, 1)
}

func (suite *TestSuiteStandard) TestCreateBudgetReplacesExistingMonth() {
	groceries := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})
	dining := suite.createTestCategory(v1.CategoryEditable{Name: "Dining"})

	first := suite.createTestBudget(v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: groceries.ID, PlannedAmount: decimal.NewFromInt(300)},
		},
	})

	// Creating for the same month again replaces note and lines
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Note:  "Updated",
		Lines: []v1.BudgetLineEditable{
			{CategoryID: dining.ID, PlannedAmount: decimal.NewFromInt(150)},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), first.ID, response.Data.ID, "Replacing must not create a second budget for the month")
	assert.Equal(suite.T(), "Updated", response.Data.Note)
	assert.Len(suite.T(), response.Data.Lines, 1)
	assert.Equal(suite.T(), dining.ID, response.Data.Lines[0].CategoryID)

	var list v1.BudgetListResponse
	listRecorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", nil)
	test.DecodeResponse(suite.T(), &listRecorder, &list)
	assert.Len(suite.T(), list.Data, 1)
}

func (suite *TestSuiteStandard) TestCreateBudgetNegativePlannedAmount() {
	category := suite.createTestCategory(v1.CategoryEditable{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: category.ID, PlannedAmount: decimal.NewFromInt(-10)},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateBudgetUnknownCategory() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: uuid.New(), PlannedAmount: decimal.NewFromInt(10)},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetBudgetsSorted() {
	_ = suite.createTestBudget(v1.BudgetEditable{Month: types.NewMonth(2026, 1)})
	_ = suite.createTestBudget(v1.BudgetEditable{Month: types.NewMonth(2026, 3)})
	_ = suite.createTestBudget(v1.BudgetEditable{Month: types.NewMonth(2026, 2)})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if !assert.Len(suite.T(), response.Data, 3) {
		return
	}

	assert.Equal(suite.T(), types.NewMonth(2026, 3), response.Data[0].Month, "Budgets must be sorted newest first")
	assert.Equal(suite.T(), types.NewMonth(2026, 2), response.Data[1].Month)
	assert.Equal(suite.T(), types.NewMonth(2026, 1), response.Data[2].Month)
}

func (suite *TestSuiteStandard) TestGetBudgetsFilterMonth() {
	_ = suite.createTestBudget(v1.BudgetEditable{Month: types.NewMonth(2026, 1)})
	_ = suite.createTestBudget(v1.BudgetEditable{Month: types.NewMonth(2026, 2)})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?month=2026-02", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?month=NotAMonth", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateBudgetNote() {
	budget := suite.createTestBudget(v1.BudgetEditable{Month: types.NewMonth(2026, 2)})

	recorder := test.Request(suite.T(), http.MethodPatch, budget.Links.Self, map[string]any{
		"note": "Updated note",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Updated note", response.Data.Note)
	assert.Equal(suite.T(), types.NewMonth(2026, 2), response.Data.Month, "The month must not change when only the note is updated")
}

func (suite *TestSuiteStandard) TestUpdateBudgetReplacesLines() {
	groceries := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})
	dining := suite.createTestCategory(v1.CategoryEditable{Name: "Dining"})

	budget := suite.createTestBudget(v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: groceries.ID, PlannedAmount: decimal.NewFromInt(300)},
			{CategoryID: dining.ID, PlannedAmount: decimal.NewFromInt(150)},
		},
	})

	recorder := test.Request(suite.T(), http.MethodPatch, budget.Links.Self, map[string]any{
		"lines": []map[string]any{
			{"categoryId": groceries.ID, "plannedAmount": 400},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if !assert.Len(suite.T(), response.Data.Lines, 1) {
		return
	}
	assert.Equal(suite.T(), groceries.ID, response.Data.Lines[0].CategoryID)
	assert.True(suite.T(), response.Data.Lines[0].PlannedAmount.Equal(decimal.NewFromInt(400)), "Planned amount is %s", response.Data.Lines[0].PlannedAmount)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	budget := suite.createTestBudget(v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: category.ID, PlannedAmount: decimal.NewFromInt(100)},
		},
	})

	recorder := test.Request(suite.T(), http.MethodDelete, budget.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, budget.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", `{ "month": invalid }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
