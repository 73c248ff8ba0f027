package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/spendiq/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMatchRulePatternEmpty() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.MatchRule{Match: "  ", CategoryID: category.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMatchRuleEmpty)
}

func (suite *TestSuiteStandard) TestMatchRuleCategoryMustExist() {
	err := models.DB.Create(&models.MatchRule{Match: "REWE*", CategoryID: uuid.New()}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMatchCategory() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	dining := suite.createTestCategory(models.Category{Name: "Dining"})

	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "REWE*", CategoryID: groceries.ID})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 2, Match: "*PIZZA*", CategoryID: dining.ID})

	tests := []struct {
		name         string
		txName       string
		merchantName string
		want         *uuid.UUID
	}{
		{"name match", "REWE SAGT DANKE", "", &groceries.ID},
		{"merchant match", "CARD PAYMENT 4589", "CALL A PIZZA", &dining.ID},
		{"no match", "AMAZON", "", nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			got, err := models.MatchCategory(models.DB, tt.txName, tt.merchantName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func (suite *TestSuiteStandard) TestMatchCategoryPriority() {
	t := suite.T()

	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	shopping := suite.createTestCategory(models.Category{Name: "Shopping"})

	// Both rules match, the one with the lower priority wins
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 5, Match: "REWE*", CategoryID: shopping.ID})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "REWE SAGT*", CategoryID: groceries.ID})

	got, err := models.MatchCategory(models.DB, "REWE SAGT DANKE", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, groceries.ID, *got)
}
