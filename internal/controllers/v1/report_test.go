package v1_test

import (
	"net/http"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/internal/types"
	"github.com/spendiq/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetMonthlyReport() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	_ = suite.createTestBudget(v1.BudgetEditable{
		Month: types.NewMonth(2026, 2),
		Lines: []v1.BudgetLineEditable{
			{CategoryID: category.ID, PlannedAmount: decimal.NewFromInt(300)},
		},
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/monthly?month=2026-02", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	assert.Equal(suite.T(), "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Contains(suite.T(), recorder.Header().Get("Content-Disposition"), "spendiq-2026-02.pdf")

	// PDF files start with the magic bytes %PDF
	body := recorder.Body.Bytes()
	if assert.Greater(suite.T(), len(body), 4) {
		assert.Equal(suite.T(), "%PDF", string(body[:4]))
	}
}

func (suite *TestSuiteStandard) TestGetMonthlyReportEmptyMonth() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/monthly?month=2026-02", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	assert.Equal(suite.T(), "application/pdf", recorder.Header().Get("Content-Type"))
}

func (suite *TestSuiteStandard) TestGetMonthlyReportInvalidMonth() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/monthly?month=NotAMonth", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
