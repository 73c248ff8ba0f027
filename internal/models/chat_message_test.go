package models_test

import (
	"fmt"
	"time"

	"github.com/spendiq/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestChatMessageRoleInvalid() {
	err := models.DB.Create(&models.ChatMessage{Role: "system", Content: "nope"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrChatRoleInvalid)
}

func (suite *TestSuiteStandard) TestChatHistoryOrderAndLimit() {
	t := suite.T()

	for i := range 5 {
		message := suite.createTestChatMessage(models.ChatMessage{
			Role:    models.ChatRoleUser,
			Content: fmt.Sprintf("message %d", i),
		})

		// Space out the timestamps, sqlite timestamps are not monotonic
		// within a single test otherwise
		err := models.DB.Model(&message).Update("created_at", time.Date(2026, 2, 1, 12, i, 0, 0, time.UTC)).Error
		require.NoError(t, err)
	}

	history, err := models.ChatHistory(models.DB, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, "message 2", history[0].Content)
	assert.Equal(t, "message 3", history[1].Content)
	assert.Equal(t, "message 4", history[2].Content)
}

func (suite *TestSuiteStandard) TestChatHistoryNoLimit() {
	for i := range 3 {
		_ = suite.createTestChatMessage(models.ChatMessage{
			Role:    models.ChatRoleAssistant,
			Content: fmt.Sprintf("message %d", i),
		})
	}

	history, err := models.ChatHistory(models.DB, 0)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), history, 3)
}

func (suite *TestSuiteStandard) TestPruneChatHistory() {
	t := suite.T()

	for i := range 6 {
		message := suite.createTestChatMessage(models.ChatMessage{
			Role:    models.ChatRoleUser,
			Content: fmt.Sprintf("message %d", i),
		})

		err := models.DB.Model(&message).Update("created_at", time.Date(2026, 2, 1, 12, i, 0, 0, time.UTC)).Error
		require.NoError(t, err)
	}

	err := models.PruneChatHistory(models.DB, 4)
	require.NoError(t, err)

	history, err := models.ChatHistory(models.DB, 0)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "message 2", history[0].Content)
}
