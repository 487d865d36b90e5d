package models

import "gorm.io/gorm"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"index;not null"`
	Role           string `gorm:"size:20;not null"` // "user" or "assistant"
	Content        string `gorm:"type:text;not null"`
}
