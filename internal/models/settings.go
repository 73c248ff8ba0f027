package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/ai"
	"github.com/spendiq/backend/internal/report"
	"gorm.io/gorm"
)

// Settings holds the user preferences.
//
// There is exactly one settings row. It is created with defaults on first
// access.
type Settings struct {
	DefaultModel
	Timezone               string          `json:"timezone" example:"Europe/Berlin" default:"UTC"`                                             // IANA timezone used for month boundaries in reports
	CurrencyCode           string          `json:"currencyCode" example:"EUR" default:"USD"`                                                   // ISO 4217 currency code
	StatusOnTrackMax       decimal.Decimal `json:"statusOnTrackMax" gorm:"type:DECIMAL(20,8)" example:"0.85" swaggertype:"number"`             // Highest spent to planned ratio still considered on track
	StatusTightMax         decimal.Decimal `json:"statusTightMax" gorm:"type:DECIMAL(20,8)" example:"1" swaggertype:"number"`                  // Highest spent to planned ratio still considered tight
	IncludePending         bool            `json:"includePending" example:"true" default:"false"`                                              // Include pending transactions in spend totals?
	InsightsEnabled        bool            `json:"insightsEnabled" example:"true" default:"true"`                                              // Compute monthly insights?
	AIPersonalities        []string        `json:"aiPersonalities" gorm:"serializer:json" example:"nice,humorous" swaggertype:"array,string"`  // Personalities the AI advisor writes in
	AIFrugalScore          int             `json:"aiFrugalScore" example:"55" minimum:"0" maximum:"100" default:"55"`                          // How frugal the AI advice should be, 0 to 100
	AIAdviceScore          int             `json:"aiAdviceScore" example:"60" minimum:"0" maximum:"100" default:"60"`                          // How actionable the AI advice should be, 0 to 100
}

func (s *Settings) BeforeSave(_ *gorm.DB) error {
	s.Timezone = strings.TrimSpace(s.Timezone)
	s.CurrencyCode = strings.ToUpper(strings.TrimSpace(s.CurrencyCode))

	return s.AI().Validate()
}

// DefaultSettings returns the settings used until the user changes them.
func DefaultSettings() Settings {
	thresholds := report.DefaultThresholds()
	aiDefaults := ai.DefaultSettings()

	return Settings{
		Timezone:         "UTC",
		CurrencyCode:     "USD",
		StatusOnTrackMax: thresholds.OnTrackMax,
		StatusTightMax:   thresholds.TightMax,
		IncludePending:   false,
		InsightsEnabled:  true,
		AIPersonalities:  aiDefaults.Personalities,
		AIFrugalScore:    aiDefaults.FrugalScore,
		AIAdviceScore:    aiDefaults.AdviceScore,
	}
}

// LoadSettings returns the settings row, creating it with defaults when it
// does not exist yet.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var settings Settings
	err := db.Order("created_at ASC").First(&settings).Error
	if err == nil {
		return settings, nil
	}

	if !strings.Contains(err.Error(), ErrResourceNotFound.Error()) {
		return Settings{}, err
	}

	settings = DefaultSettings()
	err = db.Create(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Thresholds returns the status thresholds configured by the user.
func (s Settings) Thresholds() report.Thresholds {
	return report.Thresholds{
		OnTrackMax: s.StatusOnTrackMax,
		TightMax:   s.StatusTightMax,
	}
}

// AI returns the AI advisor settings.
func (s Settings) AI() ai.Settings {
	return ai.Settings{
		Personalities: s.AIPersonalities,
		FrugalScore:   s.AIFrugalScore,
		AdviceScore:   s.AIAdviceScore,
	}
}

// Location parses the configured timezone, falling back to UTC when it is
// invalid or unset.
func (s Settings) Location() *time.Location {
	location, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}

	return location
}
