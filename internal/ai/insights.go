package ai

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// MaxInsightCards caps how many cards a single LLM response can produce.
const MaxInsightCards = 4

// InsightCard is one generated insight as shown to the user.
type InsightCard struct {
	Kind   string `json:"kind" example:"alert"`                                      // "alert" for concerning trends, "positive" for good behavior
	Title  string `json:"title" example:"Dining is trending over budget"`            // One-sentence headline
	Body   string `json:"body" example:"You have spent 80% of the dining budget."`   // One or two sentences of detail
	Action string `json:"action" example:"Action: cook at home twice this weekend."` // A concrete next step
}

func (card InsightCard) valid() bool {
	if card.Kind != "alert" && card.Kind != "positive" {
		return false
	}

	return card.Title != "" && card.Body != "" && card.Action != ""
}

// ParseInsights extracts insight cards from an LLM response.
//
// The parse is deliberately tolerant: markdown code fences are stripped,
// malformed entries are discarded and the result is capped at MaxInsightCards.
// A response that cannot be parsed at all yields an empty list, never an
// error, so a misbehaving model degrades to "no insights".
func ParseInsights(response string) []InsightCard {
	payload := strings.TrimSpace(response)

	if strings.Contains(payload, "```") {
		parts := strings.Split(payload, "```")
		if len(parts) > 1 {
			payload = parts[1]
		}
		payload = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(payload), "json"))
	}

	var cards []InsightCard
	if err := json.Unmarshal([]byte(payload), &cards); err != nil {
		log.Debug().Err(err).Msg("discarding unparseable insight response")
		return []InsightCard{}
	}

	valid := make([]InsightCard, 0, MaxInsightCards)
	for _, card := range cards {
		if !card.valid() {
			continue
		}

		valid = append(valid, card)
		if len(valid) == MaxInsightCards {
			break
		}
	}

	return valid
}
