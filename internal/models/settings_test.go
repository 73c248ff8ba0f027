package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/ai"
	"github.com/spendiq/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestLoadSettingsCreatesDefaults() {
	t := suite.T()

	settings, err := models.LoadSettings(models.DB)
	require.NoError(t, err)

	assert.Equal(t, "UTC", settings.Timezone)
	assert.Equal(t, "USD", settings.CurrencyCode)
	assert.True(t, settings.StatusOnTrackMax.Equal(decimal.NewFromFloat(0.85)))
	assert.True(t, settings.StatusTightMax.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, []string{"nice"}, settings.AIPersonalities)

	// The second load returns the same row instead of creating another one
	again, err := models.LoadSettings(models.DB)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	var count int64
	require.NoError(t, models.DB.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func (suite *TestSuiteStandard) TestSettingsValidatesAI() {
	settings, err := models.LoadSettings(models.DB)
	require.NoError(suite.T(), err)

	settings.AIPersonalities = []string{"grumpy"}
	err = models.DB.Save(&settings).Error
	assert.ErrorIs(suite.T(), err, ai.ErrInvalidPersonality)
}

func (suite *TestSuiteStandard) TestSettingsCurrencyUppercased() {
	settings, err := models.LoadSettings(models.DB)
	require.NoError(suite.T(), err)

	settings.CurrencyCode = " eur "
	require.NoError(suite.T(), models.DB.Save(&settings).Error)
	assert.Equal(suite.T(), "EUR", settings.CurrencyCode)
}

func (suite *TestSuiteStandard) TestSettingsLocation() {
	settings := models.Settings{Timezone: "Europe/Berlin"}
	assert.Equal(suite.T(), "Europe/Berlin", settings.Location().String())

	settings.Timezone = "Not/AZone"
	assert.Equal(suite.T(), "UTC", settings.Location().String())
}
