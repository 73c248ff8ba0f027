package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	siq_uuid "github.com/spendiq/backend/internal/uuid"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date         time.Time       `json:"date" example:"2026-02-14T00:00:00Z"`                                                                                // Date of the transaction. Defaults to the current day
	Amount       decimal.Decimal `json:"amount" example:"14.25" minimum:"0.00000001" multipleOf:"0.00000001" swaggertype:"number"`                           // The amount, always positive
	Direction    string          `json:"direction" example:"debit" default:"debit"`                                                                          // debit or credit
	Name         string          `json:"name" example:"REWE SAGT DANKE"`                                                                                     // Name of the transaction
	MerchantName string          `json:"merchantName" example:"REWE" default:""`                                                                             // Cleaned merchant name
	Pending      bool            `json:"pending" example:"true" default:"false"`                                                                             // Is the transaction still pending?
	CategoryID   *uuid.UUID      `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                                                          // ID of the category. When unset, match rules are applied
	AccountID    *uuid.UUID      `json:"accountId" example:"af892e10-7e0a-4f8f-b857-c66019686fc5"`                                                           // ID of the account
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:         editable.Date,
		Amount:       editable.Amount,
		Direction:    editable.Direction,
		Name:         editable.Name,
		MerchantName: editable.MerchantName,
		Pending:      editable.Pending,
		CategoryID:   editable.CategoryID,
		AccountID:    editable.AccountID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Manual bool             `json:"manual" example:"true"` // Was the transaction entered manually?
	Links  TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := httputil.RequestPathV1(c)

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:         model.Date,
			Amount:       model.Amount,
			Direction:    model.Direction,
			Name:         model.Name,
			MerchantName: model.MerchantName,
			Pending:      model.Pending,
			CategoryID:   model.CategoryID,
			AccountID:    model.AccountID,
		},
		Manual: model.Manual,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	CategoryID   siq_uuid.UUID `form:"category"`                        // By ID of the category
	AccountID    siq_uuid.UUID `form:"account"`                         // By ID of the account
	Direction    string       `form:"direction"`                       // debit or credit
	Pending      bool         `form:"pending"`                         // Is the transaction pending?
	Month        string       `form:"month" filterField:"false"`       // Limit to transactions in a month, YYYY-MM
	Search       string       `form:"search" filterField:"false"`      // Search in name and merchant name
	Offset       uint         `form:"offset" filterField:"false"`      // The offset of the first Transaction returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`       // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var categoryID, accountID *uuid.UUID
	if f.CategoryID != siq_uuid.Nil {
		categoryID = &f.CategoryID.UUID
	}
	if f.AccountID != siq_uuid.Nil {
		accountID = &f.AccountID.UUID
	}

	return models.Transaction{
		CategoryID: categoryID,
		AccountID:  accountID,
		Direction:  f.Direction,
		Pending:    f.Pending,
	}, nil
}
