package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
)

// RegisterSyncRoutes registers the routes for the sync status with
// the RouterGroup that is passed.
func RegisterSyncRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSync)
	r.GET("", GetSync)
	r.POST("", CreateSync)
}

// SyncStatus is the sync state of all connected accounts.
type SyncStatus struct {
	LastTransactionSyncAt *time.Time `json:"lastTransactionSyncAt"` // Time of the last transaction sync over all accounts, null if never synced
	Accounts              []Account  `json:"accounts"`              // The accounts with their individual sync state
}

type SyncResponse struct {
	Data  *SyncStatus `json:"data"`                                                                // The sync status
	Error *string     `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sync
// @Success		204
// @Router			/v1/sync [options]
func OptionsSync(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func syncStatus(c *gin.Context) (SyncStatus, error) {
	lastSyncAt, err := models.LastTransactionSync(models.DB)
	if err != nil {
		return SyncStatus{}, err
	}

	var accounts []models.Account
	err = models.DB.Order("name ASC").Find(&accounts).Error
	if err != nil {
		return SyncStatus{}, err
	}

	data := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, newAccount(c, account))
	}

	return SyncStatus{
		LastTransactionSyncAt: lastSyncAt,
		Accounts:              data,
	}, nil
}

// @Summary		Sync status
// @Description	Returns when transactions were last synced, per account and overall
// @Tags			Sync
// @Produce		json
// @Success		200	{object}	SyncResponse
// @Failure		500	{object}	SyncResponse
// @Router			/v1/sync [get]
func GetSync(c *gin.Context) {
	data, err := syncStatus(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SyncResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{Data: &data})
}

// @Summary		Trigger sync
// @Description	Marks all active accounts as synced now. Bank connectivity is out of scope, transactions arrive through the transactions endpoint.
// @Tags			Sync
// @Produce		json
// @Success		200	{object}	SyncResponse
// @Failure		500	{object}	SyncResponse
// @Router			/v1/sync [post]
func CreateSync(c *gin.Context) {
	now := time.Now().In(time.UTC)

	err := models.DB.
		Model(&models.Account{}).
		Where("status = ?", models.AccountStatusActive).
		Update("last_sync_at", now).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SyncResponse{
			Error: &e,
		})
		return
	}

	data, err := syncStatus(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SyncResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{Data: &data})
}
