package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateAccount() {
	account := suite.createTestAccount(v1.AccountEditable{
		Name:        "Checking",
		Institution: "Sparkasse",
		Type:        "checking",
		Mask:        "4589",
		Balance:     decimal.NewFromFloat(1204.37),
	})

	assert.Equal(suite.T(), "Checking", account.Name)
	assert.Equal(suite.T(), models.AccountStatusActive, account.Status, "Status must default to active")
	assert.Nil(suite.T(), account.LastSyncAt)
}

func (suite *TestSuiteStandard) TestGetAccountsFilter() {
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Checking", Institution: "Sparkasse"})
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Savings", Institution: "Sparkasse"})
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Credit Card", Institution: "DKB", Status: models.AccountStatusNeedsReauth})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Institution", "institution=Sparkasse", 2},
		{"Status", "status=needs_reauth", 1},
		{"Name", "name=Checking", 1},
		{"Search", "search=card", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), nil)
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count, "Query: %s", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Checking"})

	recorder := test.Request(suite.T(), http.MethodPatch, account.Links.Self, map[string]any{
		"status": models.AccountStatusError,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.AccountStatusError, response.Data.Status)
	assert.Equal(suite.T(), "Checking", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDeleteAccount() {
	account := suite.createTestAccount(v1.AccountEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, account.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, account.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetAccountNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, detailURL("accounts", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
