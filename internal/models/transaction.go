package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/report"
	"github.com/spendiq/backend/internal/types"
	"gorm.io/gorm"
)

// Directions a transaction can have. Debits are outgoing money, credits
// incoming.
const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// Transaction represents a single bank transaction.
type Transaction struct {
	DefaultModel
	Date         time.Time       `json:"date" example:"2026-02-14T00:00:00Z"`                                                                                     // Date of the transaction
	Amount       decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.25" minimum:"0.00000001" multipleOf:"0.00000001" swaggertype:"number"`      // The amount, always positive
	Direction    string          `json:"direction" example:"debit" default:"debit"`                                                                               // debit or credit
	Name         string          `json:"name" example:"REWE SAGT DANKE"`                                                                                          // Name of the transaction as reported by the bank
	MerchantName string          `json:"merchantName" example:"REWE" default:""`                                                                                  // Cleaned merchant name, can be empty
	Pending      bool            `json:"pending" example:"true" default:"false"`                                                                                  // Is the transaction still pending?
	Manual       bool            `json:"manual" example:"true" default:"false"`                                                                                   // Was the transaction entered manually?
	CategoryID   *uuid.UUID      `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                                                               // ID of the category, null for uncategorized transactions
	Category     *Category       `json:"-"`                                                                                                                       // The category of the transaction
	AccountID    *uuid.UUID      `json:"accountId" example:"af892e10-7e0a-4f8f-b857-c66019686fc5"`                                                                // ID of the account the transaction belongs to
	Account      *Account        `json:"-"`                                                                                                                       // The account the transaction belongs to
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.MerchantName = strings.TrimSpace(t.MerchantName)

	if t.Direction == "" {
		t.Direction = DirectionDebit
	}

	if t.Direction != DirectionDebit && t.Direction != DirectionCredit {
		return ErrDirectionInvalid
	}

	// Normalize dates to UTC midnight so that month filters behave the
	// same independently of the timezone the date was submitted in.
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}
	t.Date = time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)

	return nil
}

// AfterSave verifies the amount.
func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// BeforeCreate checks that the referenced category and account exist.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	if t.CategoryID != nil && *t.CategoryID != uuid.Nil {
		err := tx.First(&Category{}, "id = ?", *t.CategoryID).Error
		if err != nil {
			return err
		}
	}

	if t.AccountID != nil && *t.AccountID != uuid.Nil {
		return tx.First(&Account{}, "id = ?", *t.AccountID).Error
	}

	return nil
}

// SpentByCategory sums the debit transactions of a month per category.
//
// Uncategorized transactions are not included. Pending transactions are only
// included when includePending is set.
func SpentByCategory(db *gorm.DB, month types.Month, includePending bool) ([]report.CategorySpend, error) {
	query := db.
		Model(&Transaction{}).
		Select("category_id, SUM(amount) AS spent").
		Where("direction = ?", DirectionDebit).
		Where("category_id IS NOT NULL").
		Where("date >= date(?)", month.PeriodStart()).
		Where("date <= date(?)", month.PeriodEnd()).
		Group("category_id")

	if !includePending {
		query = query.Where("pending = ?", false)
	}

	var spends []report.CategorySpend
	err := query.Find(&spends).Error
	if err != nil {
		return nil, err
	}

	return spends, nil
}
