package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"RubyAI/middleware"
	"RubyAI/models"
	svc "RubyAI/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxMessageLen = 10000

// writeEvent emits one SSE frame: `data: <JSON>\n\n`.
func writeEvent(w http.ResponseWriter, flusher http.Flusher, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", b)
	flusher.Flush()
}

// SendMessage runs one chat turn: persist the user message, relay the
// streamed completion to the client as SSE, persist the assistant reply on a
// clean finish. Client receives data-framed JSON events:
//
//	{"content": "..."}  incremental text
//	{"done": true}      terminal success
//	{"error": "..."}    terminal failure
//
// All precondition failures (bad id, missing, wrong owner, invalid body)
// reject the request before any store write or provider call.
func SendMessage(db *gorm.DB, chat *svc.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, ok := loadOwnedConversation(c, db)
		if !ok {
			return
		}

		var body struct {
			Content      string `json:"content"`
			ImageDataURL string `json:"imageDataUrl"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		if len(body.Content) > maxMessageLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message too long"})
			return
		}

		uid := middleware.CurrentUserID(c)
		release := middleware.AcquireUserSlot(strconv.Itoa(int(uid)))
		defer release()

		// Save user message verbatim, image marker text included. The inline
		// image itself is never persisted; it rides along to the provider only.
		userMsg := models.Message{ConversationID: conv.ID, Role: models.RoleUser, Content: body.Content}
		if err := db.Create(&userMsg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		history, err := orderedMessages(db, conv.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no") // nginx buffering off
		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.String(http.StatusInternalServerError, "streaming unsupported")
			return
		}

		ctx := c.Request.Context()
		deltas := chat.StreamReply(ctx, history, body.Content, body.ImageDataURL)

		var full strings.Builder
		for d := range deltas {
			if d.Err != nil {
				// Headers are long gone; the failure travels as an SSE event
				// and the partial reply is dropped, not saved.
				log.Printf("[chat] provider stream failed (conversation %d): %v", conv.ID, d.Err)
				writeEvent(c.Writer, flusher, gin.H{"error": "Failed to get AI response. Please check your API configuration."})
				return
			}
			full.WriteString(d.Text)
			writeEvent(c.Writer, flusher, gin.H{"content": d.Text})
		}

		if ctx.Err() != nil {
			// Client went away mid-stream; upstream is cancelled and the
			// partial reply is not persisted.
			log.Printf("[chat] client disconnected (conversation %d)", conv.ID)
			return
		}

		botMsg := models.Message{ConversationID: conv.ID, Role: models.RoleAssistant, Content: full.String()}
		if err := db.Create(&botMsg).Error; err != nil {
			log.Printf("[chat] failed to save assistant reply (conversation %d): %v", conv.ID, err)
			writeEvent(c.Writer, flusher, gin.H{"error": "Failed to save response"})
			return
		}

		writeEvent(c.Writer, flusher, gin.H{"done": true})
	}
}
