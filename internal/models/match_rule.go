package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule assigns a category to transactions whose name or merchant
// matches a glob pattern.
type MatchRule struct {
	DefaultModel
	Priority   uint      `json:"priority" example:"2" default:"0"`                            // The priority of the match rule, lower numbers are applied first
	Match      string    `json:"match" example:"REWE*"`                                       // The glob pattern to match transaction names against
	CategoryID uuid.UUID `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`   // The category matching transactions are assigned to
	Category   Category  `json:"-"`                                                           // The category matching transactions are assigned to
}

func (m *MatchRule) BeforeSave(_ *gorm.DB) error {
	m.Match = strings.TrimSpace(m.Match)

	if m.Match == "" {
		return ErrMatchRuleEmpty
	}

	return nil
}

// BeforeCreate checks that the category exists.
func (m *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	return tx.First(&Category{}, "id = ?", m.CategoryID).Error
}

// MatchCategory returns the category of the first rule matching the
// transaction name or merchant name.
//
// Rules are evaluated ordered by priority, then alphabetically by match. Nil
// is returned when no rule matches.
func MatchCategory(db *gorm.DB, name, merchantName string) (*uuid.UUID, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, match ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, name) {
			id := rule.CategoryID
			return &id, nil
		}

		if merchantName != "" && glob.Glob(rule.Match, merchantName) {
			id := rule.CategoryID
			return &id, nil
		}
	}

	return nil, nil
}
