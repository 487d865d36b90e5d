package models

import "gorm.io/gorm"

const DefaultConversationTitle = "New Chat"

type Conversation struct {
	gorm.Model
	UserID   uint      `gorm:"not null;index"`
	Title    string    `gorm:"size:200;not null"`
	Messages []Message `gorm:"constraint:OnDelete:CASCADE"`
}
