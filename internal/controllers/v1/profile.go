package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
)

// RegisterProfileRoutes registers the routes for the profile with
// the RouterGroup that is passed.
func RegisterProfileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsProfile)
	r.GET("", GetProfile)
}

// Profile is the composition of the user's accounts and settings.
type Profile struct {
	Accounts []Account       `json:"accounts"` // The connected accounts
	Settings models.Settings `json:"settings"` // The user settings
}

type ProfileResponse struct {
	Data  *Profile `json:"data"`                                                                // The profile
	Error *string  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profile
// @Success		204
// @Router			/v1/profile [options]
func OptionsProfile(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get profile
// @Description	Returns the accounts and settings in one response
// @Tags			Profile
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		500	{object}	ProfileResponse
// @Router			/v1/profile [get]
func GetProfile(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	var accounts []models.Account
	err = models.DB.Order("name ASC").Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	data := Profile{
		Accounts: make([]Account, 0, len(accounts)),
		Settings: settings,
	}
	for _, account := range accounts {
		data.Accounts = append(data.Accounts, newAccount(c, account))
	}

	c.JSON(http.StatusOK, ProfileResponse{Data: &data})
}
