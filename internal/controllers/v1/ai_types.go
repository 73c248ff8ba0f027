package v1

import (
	"github.com/spendiq/backend/internal/ai"
	"github.com/spendiq/backend/internal/models"
)

// ChatEditable is the user message sent to the assistant.
type ChatEditable struct {
	Message string `json:"message" example:"How much did I spend on dining this month?"` // The message for the assistant
}

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	models.DefaultModel
	Role    string `json:"role" example:"assistant"`                        // user or assistant
	Content string `json:"content" example:"You spent $123.45 on dining."` // The message text
}

func newChatMessage(model models.ChatMessage) ChatMessage {
	return ChatMessage{
		DefaultModel: model.DefaultModel,
		Role:         model.Role,
		Content:      model.Content,
	}
}

type ChatResponse struct {
	Data  *ChatMessage `json:"data"`                                             // The assistant's reply
	Error *string      `json:"error" example:"the message must not be empty"` // The error, if any occurred
}

type ChatHistoryResponse struct {
	Data  []ChatMessage `json:"data"`                                                          // The conversation in chronological order
	Error *string       `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type ChatHistoryQuery struct {
	Limit int `form:"limit" example:"20"` // Maximum number of messages to return. Defaults to all.
}

type AIInsightListResponse struct {
	Data  []ai.InsightCard `json:"data"`                                                                      // The generated insight cards
	Error *string          `json:"error" example:"months must be specified in YYYY-MM format, e.g. 2026-02"` // The error, if any occurred
}
