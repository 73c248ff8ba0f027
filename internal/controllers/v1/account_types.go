package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name        string          `json:"name" example:"Checking"`                                             // Name of the account
	Institution string          `json:"institution" example:"Sparkasse" default:""`                          // Name of the bank
	Type        string          `json:"type" example:"checking" default:""`                                  // Type of the account, e.g. checking, savings, credit
	Mask        string          `json:"mask" example:"4589" default:""`                                      // Last digits of the account number
	Balance     decimal.Decimal `json:"balance" example:"1204.37" swaggertype:"number" default:"0"`          // Current balance of the account
	Status      string          `json:"status" example:"active" default:"active"`                            // Connection status of the account
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:        editable.Name,
		Institution: editable.Institution,
		Type:        editable.Type,
		Mask:        editable.Mask,
		Balance:     editable.Balance,
		Status:      editable.Status,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4f8f-b857-c66019686fc5"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4f8f-b857-c66019686fc5"` // Transactions of this account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	LastSyncAt *time.Time   `json:"lastSyncAt" example:"2026-02-17T06:30:00.000000Z"` // Last time transactions were synced for this account
	Links      AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	url := httputil.RequestPathV1(c)

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:        model.Name,
			Institution: model.Institution,
			Type:        model.Type,
			Mask:        model.Mask,
			Balance:     model.Balance,
			Status:      model.Status,
		},
		LastSyncAt: model.LastSyncAt,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/transactions?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name        string `form:"name" filterField:"false"`   // By name
	Institution string `form:"institution"`                // By institution
	Status      string `form:"status"`                     // By connection status
	Search      string `form:"search" filterField:"false"` // Search in name and institution
	Offset      uint   `form:"offset" filterField:"false"` // The offset of the first account returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`  // Maximum number of accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() (models.Account, error) {
	return models.Account{
		Institution: f.Institution,
		Status:      f.Status,
	}, nil
}
