package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
)

// RegisterSettingsRoutes registers the routes for the settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", UpdateSettings)
}

// SettingsEditable represents all user configurable parameters
type SettingsEditable struct {
	Timezone         *string          `json:"timezone" example:"Europe/Berlin"`                                  // IANA timezone used for month boundaries
	CurrencyCode     *string          `json:"currencyCode" example:"EUR"`                                        // ISO 4217 currency code
	StatusOnTrackMax *decimal.Decimal `json:"statusOnTrackMax" example:"0.85" swaggertype:"number"`              // Highest spent to planned ratio still considered on track
	StatusTightMax   *decimal.Decimal `json:"statusTightMax" example:"1" swaggertype:"number"`                   // Highest spent to planned ratio still considered tight
	IncludePending   *bool            `json:"includePending" example:"true"`                                     // Include pending transactions in spend totals?
	InsightsEnabled  *bool            `json:"insightsEnabled" example:"true"`                                    // Compute monthly insights?
	AIPersonalities  *[]string        `json:"aiPersonalities" example:"nice,humorous" swaggertype:"array,string"` // Personalities the assistant writes in
	AIFrugalScore    *int             `json:"aiFrugalScore" example:"55" minimum:"0" maximum:"100"`              // How frugal the advice should be, 0 to 100
	AIAdviceScore    *int             `json:"aiAdviceScore" example:"60" minimum:"0" maximum:"100"`              // How actionable the advice should be, 0 to 100
}

// apply copies the set fields onto the settings.
func (editable SettingsEditable) apply(settings *models.Settings) {
	if editable.Timezone != nil {
		settings.Timezone = *editable.Timezone
	}
	if editable.CurrencyCode != nil {
		settings.CurrencyCode = *editable.CurrencyCode
	}
	if editable.StatusOnTrackMax != nil {
		settings.StatusOnTrackMax = *editable.StatusOnTrackMax
	}
	if editable.StatusTightMax != nil {
		settings.StatusTightMax = *editable.StatusTightMax
	}
	if editable.IncludePending != nil {
		settings.IncludePending = *editable.IncludePending
	}
	if editable.InsightsEnabled != nil {
		settings.InsightsEnabled = *editable.InsightsEnabled
	}
	if editable.AIPersonalities != nil {
		settings.AIPersonalities = *editable.AIPersonalities
	}
	if editable.AIFrugalScore != nil {
		settings.AIFrugalScore = *editable.AIFrugalScore
	}
	if editable.AIAdviceScore != nil {
		settings.AIAdviceScore = *editable.AIAdviceScore
	}
}

type SettingsResponse struct {
	Data  *models.Settings `json:"data"`                                                                       // The settings
	Error *string          `json:"error" example:"the request body contains fields that do not exist in the settings"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the settings. They are created with defaults on first access.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}

// settingsFields is the set of JSON field names the settings accept.
var settingsFields = map[string]struct{}{
	"timezone":         {},
	"currencyCode":     {},
	"statusOnTrackMax": {},
	"statusTightMax":   {},
	"includePending":   {},
	"insightsEnabled":  {},
	"aiPersonalities":  {},
	"aiFrugalScore":    {},
	"aiAdviceScore":    {},
}

// @Summary		Update settings
// @Description	Update the settings. Only values to be updated need to be specified, unknown fields are rejected.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		500			{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	// Reject fields that do not exist to catch typos in configuration
	// updates instead of silently ignoring them
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, SettingsResponse{
			Error: &e,
		})
		return
	}

	for field := range mapBody {
		if _, ok := settingsFields[field]; !ok {
			e := errUnknownSettingsField.Error()
			c.JSON(http.StatusBadRequest, SettingsResponse{
				Error: &e,
			})
			return
		}
	}

	var editable SettingsEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	editable.apply(&settings)

	err = models.DB.Save(&settings).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}
