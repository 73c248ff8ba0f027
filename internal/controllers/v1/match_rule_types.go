package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendiq/backend/internal/httputil"
	"github.com/spendiq/backend/internal/models"
	siq_uuid "github.com/spendiq/backend/internal/uuid"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	Priority   uint      `json:"priority" example:"2" default:"0"`                          // The priority of the match rule, lower numbers are applied first
	Match      string    `json:"match" example:"REWE*"`                                     // The glob pattern to match transaction names against
	CategoryID uuid.UUID `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The category matching transactions are assigned to
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority:   editable.Priority,
		Match:      editable.Match,
		CategoryID: editable.CategoryID,
	}
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
}

type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := httputil.RequestPathV1(c)

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			CategoryID: model.CategoryID,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                                          // List of the created match rules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *MatchRule `json:"data"`                                                          // Data for the match rule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	CategoryID siq_uuid.UUID `form:"category"`                   // By ID of the category the rule assigns
	Match      string       `form:"match" filterField:"false"`  // By match pattern
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() (models.MatchRule, error) {
	return models.MatchRule{
		CategoryID: f.CategoryID.UUID,
	}, nil
}
