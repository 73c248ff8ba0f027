package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/spendiq/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	name := " Groceries\t"
	note := " Supermarkets and corner shops "

	category := suite.createTestCategory(models.Category{Name: name, Note: note})

	assert.Equal(suite.T(), "Groceries", category.Name)
	assert.Equal(suite.T(), "Supermarkets and corner shops", category.Note)
}

func (suite *TestSuiteStandard) TestCategoryNameUnique() {
	_ = suite.createTestCategory(models.Category{Name: "Dining"})

	err := models.DB.Create(&models.Category{Name: "Dining"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryParentMustExist() {
	nonExisting := uuid.New()

	err := models.DB.Create(&models.Category{Name: "Orphan", ParentID: &nonExisting}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryParentName() {
	t := suite.T()

	parent := suite.createTestCategory(models.Category{Name: "Food"})
	child := suite.createTestCategory(models.Category{Name: "Groceries", ParentID: &parent.ID})

	tests := []struct {
		name     string
		category models.Category
		want     string
	}{
		{"top-level category", parent, ""},
		{"child category", child, "Food"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := tt.category.ParentName(models.DB)
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}
}
