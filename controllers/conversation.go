package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"RubyAI/middleware"
	"RubyAI/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxTitleLen = 200

// loadOwnedConversation resolves :conversation_id for the current user.
// Writes the failure response itself and returns ok=false on any miss:
// 400 malformed id, 404 absent, 403 owned by someone else.
func loadOwnedConversation(c *gin.Context, db *gorm.DB) (models.Conversation, bool) {
	var conv models.Conversation

	cid, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil || cid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return conv, false
	}
	if err := db.First(&conv, cid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		}
		return conv, false
	}
	if conv.UserID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return conv, false
	}
	return conv, true
}

func orderedMessages(db *gorm.DB, conversationID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

func messageJSON(m models.Message) gin.H {
	return gin.H{
		"id":         m.ID,
		"role":       m.Role,
		"content":    m.Content,
		"created_at": m.CreatedAt,
	}
}

func ListConversations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		var convs []models.Conversation
		if err := db.Where("user_id = ?", uid).Order("created_at DESC").Find(&convs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
			return
		}

		result := make([]gin.H, 0, len(convs))
		for _, conv := range convs {
			result = append(result, gin.H{
				"id":         conv.ID,
				"title":      conv.Title,
				"created_at": conv.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

func CreateConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Title string `json:"title"`
		}
		// body is optional; an empty one means the default title
		_ = c.ShouldBindJSON(&body)

		title := strings.TrimSpace(body.Title)
		if title == "" {
			title = models.DefaultConversationTitle
		}
		if len(title) > maxTitleLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": "title too long"})
			return
		}

		conv := models.Conversation{UserID: middleware.CurrentUserID(c), Title: title}
		if err := db.Create(&conv).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":         conv.ID,
			"title":      conv.Title,
			"created_at": conv.CreatedAt,
		})
	}
}

func GetConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, ok := loadOwnedConversation(c, db)
		if !ok {
			return
		}

		msgs, err := orderedMessages(db, conv.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
			return
		}
		messages := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			messages = append(messages, messageJSON(m))
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         conv.ID,
			"title":      conv.Title,
			"created_at": conv.CreatedAt,
			"messages":   messages,
		})
	}
}

// DeleteConversation removes the conversation and its messages, messages
// first, inside one transaction.
func DeleteConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, ok := loadOwnedConversation(c, db)
		if !ok {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("conversation_id = ?", conv.ID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			return tx.Unscoped().Delete(&conv).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
