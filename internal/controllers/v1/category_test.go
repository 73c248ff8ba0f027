package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
	"github.com/spendiq/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsCategory() {
	path := detailURL("categories", uuid.New())
	recorder := test.Request(suite.T(), http.MethodOptions, path, nil)
	assert.Equal(suite.T(), http.StatusNotFound, recorder.Code, "Request ID %s", recorder.Header().Get("x-request-id"))

	recorder = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/categories/NotParseableAsUUID", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code, "Request ID %s", recorder.Header().Get("x-request-id"))

	path = suite.createTestCategory(v1.CategoryEditable{}).Links.Self
	recorder = test.Request(suite.T(), http.MethodOptions, path, nil)
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code, "Request ID %s", recorder.Header().Get("x-request-id"))
}

func (suite *TestSuiteStandard) TestGetCategories() {
	_ = suite.createTestCategory(v1.CategoryEditable{})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", nil)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), 200, recorder.Code)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestGetCategoriesFilter() {
	_ = suite.createTestCategory(v1.CategoryEditable{Name: "Groceries", Note: "Supermarkets"})
	_ = suite.createTestCategory(v1.CategoryEditable{Name: "Dining", Note: "Restaurants and cafes"})
	_ = suite.createTestCategory(v1.CategoryEditable{Name: "Rent", Archived: true})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Name single", "name=Groceries", 1},
		{"Name no match", "name=Does not exist", 0},
		{"Note", "note=Restaurants and cafes", 1},
		{"Archived", "archived=true", 1},
		{"Not archived", "archived=false", 2},
		{"Search note", "search=restaurants", 1},
		{"Search name", "search=roc", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), nil)
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count, "Query: %s", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateCategoryDuplicateName() {
	_ = suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Groceries"}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.NotNil(suite.T(), response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestCreateCategoryUnknownParent() {
	parentID := uuid.New()
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Child", ParentID: &parentID}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	recorder := test.Request(suite.T(), http.MethodPatch, category.Links.Self, map[string]any{
		"note": "Supermarkets and corner shops",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Supermarkets and corner shops", response.Data.Note)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	category := suite.createTestCategory(v1.CategoryEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, category.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, category.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryMonthly() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	_ = suite.createTestBudget(v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: category.ID, PlannedAmount: decimal.NewFromInt(300)},
		},
	})

	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date:       dayDate(2026, 2, 3),
		Amount:     decimal.NewFromInt(100),
		Name:       "REWE SAGT DANKE",
		CategoryID: &category.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date:       dayDate(2026, 2, 3),
		Amount:     decimal.NewFromInt(30),
		Name:       "EDEKA",
		CategoryID: &category.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date:       dayDate(2026, 2, 14),
		Amount:     decimal.NewFromInt(100),
		Name:       "REWE SAGT DANKE",
		CategoryID: &category.ID,
	})

	// A transaction in another month must not be counted
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date:       dayDate(2026, 1, 20),
		Amount:     decimal.NewFromInt(50),
		Name:       "REWE SAGT DANKE",
		CategoryID: &category.ID,
	})

	recorder := test.Request(suite.T(), http.MethodGet, category.Links.Monthly+"?month=2026-02", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryMonthlyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Spent.Equal(decimal.NewFromInt(230)), "Spent is %s", response.Data.Spent)
	assert.True(suite.T(), response.Data.Planned.Equal(decimal.NewFromInt(300)), "Planned is %s", response.Data.Planned)
	assert.True(suite.T(), response.Data.Remaining.Equal(decimal.NewFromInt(70)), "Remaining is %s", response.Data.Remaining)
	assert.Equal(suite.T(), report.StatusTight, response.Data.Status)
	assert.Len(suite.T(), response.Data.Transactions, 3)

	// Two days with spend, aggregated per day
	assert.Len(suite.T(), response.Data.Daily, 2)
	assert.Equal(suite.T(), "2026-02-03", response.Data.Daily[0].Date)
	assert.True(suite.T(), response.Data.Daily[0].Spent.Equal(decimal.NewFromInt(130)), "Daily spend is %s", response.Data.Daily[0].Spent)

	assert.Nil(suite.T(), response.Data.Previous)
}

func (suite *TestSuiteStandard) TestCategoryMonthlyComparePrevious() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date:       dayDate(2026, 1, 10),
		Amount:     decimal.NewFromInt(200),
		Name:       "REWE SAGT DANKE",
		CategoryID: &category.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date:       dayDate(2026, 2, 10),
		Amount:     decimal.NewFromInt(100),
		Name:       "REWE SAGT DANKE",
		CategoryID: &category.ID,
	})

	recorder := test.Request(suite.T(), http.MethodGet, category.Links.Monthly+"?month=2026-02&comparePrevious=true", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryMonthlyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if !assert.NotNil(suite.T(), response.Data.Previous) {
		return
	}

	assert.Equal(suite.T(), types.NewMonth(2026, 1), response.Data.Previous.Month)
	assert.True(suite.T(), response.Data.Previous.Spent.Equal(decimal.NewFromInt(200)), "Previous spent is %s", response.Data.Previous.Spent)
	assert.True(suite.T(), response.Data.Previous.DeltaPct.Equal(decimal.NewFromInt(-50)), "Delta is %s", response.Data.Previous.DeltaPct)
}

func (suite *TestSuiteStandard) TestCategoryMonthlyInvalidMonth() {
	category := suite.createTestCategory(v1.CategoryEditable{})

	recorder := test.Request(suite.T(), http.MethodGet, category.Links.Monthly+"?month=February", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
