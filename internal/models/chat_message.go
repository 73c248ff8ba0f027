package models

import (
	"strings"

	"gorm.io/gorm"
)

// Roles a chat message can have.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single message of the advisor conversation.
type ChatMessage struct {
	DefaultModel
	Role    string `json:"role" example:"user"`                                 // user or assistant
	Content string `json:"content" example:"How much did I spend on dining?"`   // The message text
}

func (c *ChatMessage) BeforeSave(_ *gorm.DB) error {
	c.Content = strings.TrimSpace(c.Content)

	if c.Role != ChatRoleUser && c.Role != ChatRoleAssistant {
		return ErrChatRoleInvalid
	}

	return nil
}

// ChatHistory returns the most recent chat messages in chronological order.
//
// With a limit of 0, all messages are returned.
func ChatHistory(db *gorm.DB, limit int) ([]ChatMessage, error) {
	query := db.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []ChatMessage
	err := query.Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// PruneChatHistory deletes all but the most recent keep messages.
func PruneChatHistory(db *gorm.DB, keep int) error {
	var recent []ChatMessage
	err := db.Order("created_at DESC, id DESC").Limit(keep).Find(&recent).Error
	if err != nil {
		return err
	}

	if len(recent) < keep {
		return nil
	}

	ids := make([]any, 0, len(recent))
	for _, message := range recent {
		ids = append(ids, message.ID)
	}

	return db.Unscoped().Where("id NOT IN ?", ids).Delete(&ChatMessage{}).Error
}
