// Package v1 contains the handlers for the v1 API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/spendiq/backend/internal/types"
	siq_uuid "github.com/spendiq/backend/internal/uuid"
)

type URIID struct {
	ID siq_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryMonth binds the month query parameter as its raw token. Parsing
// happens explicitly so that malformed input maps to ErrMonthFormat.
type QueryMonth struct {
	Month string `form:"month" example:"2026-02"` // Year and month in YYYY-MM format
}

// Pagination contains information about the pagination for collection endpoints.
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

// monthFromQuery parses the month query parameter, defaulting to the current
// month in the user's timezone when the parameter is unset.
func monthFromQuery(c *gin.Context, defaultMonth types.Month) (types.Month, error) {
	var query QueryMonth
	_ = c.Bind(&query)

	if query.Month == "" {
		return defaultMonth, nil
	}

	return types.ParseMonth(query.Month)
}
