package conversation

import (
	"RubyAI/controllers"
	"RubyAI/middleware"
	"RubyAI/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers conversation routes (protected)
func Register(g *gin.RouterGroup, db *gorm.DB, chat *services.ChatService) {
	g.GET("/conversations", controllers.ListConversations(db))
	g.POST("/conversations", controllers.CreateConversation(db))
	g.GET("/conversations/:conversation_id", controllers.GetConversation(db))
	g.DELETE("/conversations/:conversation_id", controllers.DeleteConversation(db))
	// Basic rate limiting on the chat submission endpoint
	g.POST("/conversations/:conversation_id/messages", middleware.RateLimit(), controllers.SendMessage(db, chat))
}
