package v1_test

import (
	"net/http"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetSettingsDefaults() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "UTC", response.Data.Timezone)
	assert.Equal(suite.T(), "USD", response.Data.CurrencyCode)
	assert.True(suite.T(), response.Data.StatusOnTrackMax.Equal(decimal.NewFromFloat(0.85)), "On track max is %s", response.Data.StatusOnTrackMax)
	assert.True(suite.T(), response.Data.StatusTightMax.Equal(decimal.NewFromInt(1)), "Tight max is %s", response.Data.StatusTightMax)
	assert.False(suite.T(), response.Data.IncludePending)
	assert.True(suite.T(), response.Data.InsightsEnabled)
	assert.Equal(suite.T(), []string{"nice"}, response.Data.AIPersonalities)
	assert.Equal(suite.T(), 55, response.Data.AIFrugalScore)
	assert.Equal(suite.T(), 60, response.Data.AIAdviceScore)
}

func (suite *TestSuiteStandard) TestGetSettingsRepeatable() {
	first := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", nil)
	second := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", nil)

	var firstResponse, secondResponse v1.SettingsResponse
	test.DecodeResponse(suite.T(), &first, &firstResponse)
	test.DecodeResponse(suite.T(), &second, &secondResponse)

	assert.Equal(suite.T(), firstResponse.Data.ID, secondResponse.Data.ID, "Repeated access must not create a second settings row")
}

func (suite *TestSuiteStandard) TestUpdateSettings() {
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"timezone":        "Europe/Berlin",
		"currencyCode":    "eur",
		"aiPersonalities": []string{"nice", "humorous"},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Europe/Berlin", response.Data.Timezone)
	assert.Equal(suite.T(), "EUR", response.Data.CurrencyCode, "Currency codes must be uppercased")
	assert.Equal(suite.T(), []string{"nice", "humorous"}, response.Data.AIPersonalities)

	// Fields not included in the request keep their values
	assert.Equal(suite.T(), 55, response.Data.AIFrugalScore)
}

func (suite *TestSuiteStandard) TestUpdateSettingsUnknownField() {
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"timzone": "Europe/Berlin",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "the request body contains fields that do not exist in the settings", *response.Error)
}

func (suite *TestSuiteStandard) TestUpdateSettingsInvalidPersonalities() {
	tests := []map[string]any{
		{"aiPersonalities": []string{"grumpy"}},
		{"aiPersonalities": []string{"nice", "humorous", "cute", "direct"}},
		{"aiFrugalScore": 101},
		{"aiAdviceScore": -1},
	}

	for _, body := range tests {
		recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestUpdateSettingsInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", `{ "timezone": }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
