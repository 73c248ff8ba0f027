package v1_test

import (
	"net/http"

	v1 "github.com/spendiq/backend/internal/controllers/v1"
	"github.com/spendiq/backend/internal/llm"
	"github.com/spendiq/backend/internal/models"
	"github.com/spendiq/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestChat() {
	suite.llm.Responses = []string{"You are doing fine this month."}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/ai/chat", v1.ChatEditable{
		Message: "How am I doing this month?",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ChatResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), models.ChatRoleAssistant, response.Data.Role)
	assert.Equal(suite.T(), "You are doing fine this month.", response.Data.Content)

	// The model receives the system prompt, the budget context and the user message
	if !assert.Len(suite.T(), suite.llm.Calls, 1) {
		return
	}
	messages := suite.llm.Calls[0]
	assert.Equal(suite.T(), llm.RoleSystem, messages[0].Role)
	assert.Contains(suite.T(), messages[0].Content, "personal financial assistant")
	assert.Equal(suite.T(), llm.RoleSystem, messages[1].Role)
	assert.Contains(suite.T(), messages[1].Content, "Budget data for")
	assert.Equal(suite.T(), llm.RoleUser, messages[len(messages)-1].Role)
	assert.Equal(suite.T(), "How am I doing this month?", messages[len(messages)-1].Content)

	// Both turns are stored in the history
	historyRecorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/history", nil)
	var history v1.ChatHistoryResponse
	test.DecodeResponse(suite.T(), &historyRecorder, &history)

	if !assert.Len(suite.T(), history.Data, 2) {
		return
	}
	assert.Equal(suite.T(), models.ChatRoleUser, history.Data[0].Role)
	assert.Equal(suite.T(), models.ChatRoleAssistant, history.Data[1].Role)
}

func (suite *TestSuiteStandard) TestChatEmptyMessage() {
	tests := []string{"", "   "}

	for _, message := range tests {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/ai/chat", v1.ChatEditable{Message: message})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}

	assert.Len(suite.T(), suite.llm.Calls, 0, "Empty messages must not reach the model")
}

func (suite *TestSuiteStandard) TestChatModelUnavailable() {
	suite.llm.Responses = nil

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/ai/chat", v1.ChatEditable{Message: "Hello"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadGateway)

	// A failed call must not leave a partial conversation behind
	historyRecorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/history", nil)
	var history v1.ChatHistoryResponse
	test.DecodeResponse(suite.T(), &historyRecorder, &history)
	assert.Len(suite.T(), history.Data, 0)
}

func (suite *TestSuiteStandard) TestChatHistoryLimit() {
	suite.llm.Responses = []string{"Reply"}

	for i := 0; i < 3; i++ {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/ai/chat", v1.ChatEditable{Message: "Hello"})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/history?limit=2", nil)
	var history v1.ChatHistoryResponse
	test.DecodeResponse(suite.T(), &recorder, &history)

	if !assert.Len(suite.T(), history.Data, 2) {
		return
	}

	// The limit returns the newest messages, still in chronological order
	assert.Equal(suite.T(), models.ChatRoleUser, history.Data[0].Role)
	assert.Equal(suite.T(), models.ChatRoleAssistant, history.Data[1].Role)
}

func (suite *TestSuiteStandard) TestDeleteChatHistory() {
	suite.llm.Responses = []string{"Reply"}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/ai/chat", v1.ChatEditable{Message: "Hello"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/ai/history", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	historyRecorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/history", nil)
	var history v1.ChatHistoryResponse
	test.DecodeResponse(suite.T(), &historyRecorder, &history)
	assert.Len(suite.T(), history.Data, 0)
}

func (suite *TestSuiteStandard) TestAIInsights() {
	suite.llm.Responses = []string{"```json\n[" +
		`{ "kind": "alert", "title": "Dining is over budget", "body": "You spent 115% of the dining budget.", "action": "Action: cook at home this weekend." },` +
		`{ "kind": "positive", "title": "Groceries on track", "body": "You are well within the groceries budget.", "action": "Action: keep it up." }` +
		"]\n```"}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/insights?month=2026-02", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AIInsightListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if !assert.Len(suite.T(), response.Data, 2) {
		return
	}
	assert.Equal(suite.T(), "alert", response.Data[0].Kind)
	assert.Equal(suite.T(), "Dining is over budget", response.Data[0].Title)

	// The prompt contains the month's data
	if assert.Len(suite.T(), suite.llm.Calls, 1) {
		prompt := suite.llm.Calls[0][1].Content
		assert.Contains(suite.T(), prompt, "2026-02")
		assert.Contains(suite.T(), prompt, "Generate exactly 4 insights")
	}
}

func (suite *TestSuiteStandard) TestAIInsightsUnparseableResponse() {
	suite.llm.Responses = []string{"I am sorry, I cannot do that."}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/insights?month=2026-02", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AIInsightListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.NotNil(suite.T(), response.Data, "An unparseable model response must yield an empty list, not an error")
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestAIInsightsInvalidMonth() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ai/insights?month=02-2026", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
