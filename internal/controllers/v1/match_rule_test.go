package v1_test

import (
	"net/http"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateMatchRule() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	rule := suite.createTestMatchRule(v1.MatchRuleEditable{
		Priority:   2,
		Match:      "REWE*",
		CategoryID: category.ID,
	})

	assert.Equal(suite.T(), "REWE*", rule.Match)
	assert.Equal(suite.T(), uint(2), rule.Priority)
}

func (suite *TestSuiteStandard) TestCreateMatchRuleEmptyPattern() {
	category := suite.createTestCategory(v1.CategoryEditable{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/match-rules", []v1.MatchRuleEditable{{
		Match:      "   ",
		CategoryID: category.ID,
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateMatchRuleUnknownCategory() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/match-rules", []v1.MatchRuleEditable{{
		Match:      "REWE*",
		CategoryID: uuid.New(),
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetMatchRulesFilterCategory() {
	groceries := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})
	dining := suite.createTestCategory(v1.CategoryEditable{Name: "Dining"})

	_ = suite.createTestMatchRule(v1.MatchRuleEditable{Match: "REWE*", CategoryID: groceries.ID})
	_ = suite.createTestMatchRule(v1.MatchRuleEditable{Match: "EDEKA*", CategoryID: groceries.ID})
	_ = suite.createTestMatchRule(v1.MatchRuleEditable{Match: "MCDONALDS*", CategoryID: dining.ID})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/match-rules?category="+groceries.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)
}

func (suite *TestSuiteStandard) TestUpdateMatchRule() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	rule := suite.createTestMatchRule(v1.MatchRuleEditable{Match: "REWE*", CategoryID: category.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, rule.Links.Self, map[string]any{
		"match": "REWE SAGT DANKE*",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "REWE SAGT DANKE*", response.Data.Match)
}

func (suite *TestSuiteStandard) TestDeleteMatchRule() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	rule := suite.createTestMatchRule(v1.MatchRuleEditable{Match: "REWE*", CategoryID: category.ID})

	recorder := test.Request(suite.T(), http.MethodDelete, rule.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, rule.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
