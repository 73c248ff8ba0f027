package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Statuses an account connection can have.
const (
	AccountStatusActive      = "active"
	AccountStatusNeedsReauth = "needs_reauth"
	AccountStatusError       = "error"
)

// Account represents a connected bank account.
type Account struct {
	DefaultModel
	Name        string          `json:"name" example:"Checking"`                                                                  // Name of the account
	Institution string          `json:"institution" example:"Sparkasse" default:""`                                               // Name of the bank
	Type        string          `json:"type" example:"checking" default:""`                                                       // Type of the account, e.g. checking, savings, credit
	Mask        string          `json:"mask" example:"4589" default:""`                                                           // Last digits of the account number
	Balance     decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"1204.37" swaggertype:"number" default:"0"`     // Current balance of the account
	Status      string          `json:"status" example:"active" default:"active"`                                                 // Connection status of the account
	LastSyncAt  *time.Time      `json:"lastSyncAt" example:"2026-02-17T06:30:00.000000Z"`                                         // Last time transactions were synced for this account
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Institution = strings.TrimSpace(a.Institution)

	if a.Status == "" {
		a.Status = AccountStatusActive
	}

	return nil
}

// LastTransactionSync returns the most recent sync time over all accounts,
// nil when no account has ever been synced.
func LastTransactionSync(db *gorm.DB) (*time.Time, error) {
	var accounts []Account
	err := db.Where("last_sync_at IS NOT NULL").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	var latest *time.Time
	for _, account := range accounts {
		if account.LastSyncAt == nil {
			continue
		}

		if latest == nil || account.LastSyncAt.After(*latest) {
			t := account.LastSyncAt.In(time.UTC)
			latest = &t
		}
	}

	return latest, nil
}
