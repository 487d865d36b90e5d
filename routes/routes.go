package routes

import (
	"net/http"

	"RubyAI/middleware"
	"RubyAI/pkg/services"
	"RubyAI/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authRoutes "RubyAI/routes/auth"
	convRoutes "RubyAI/routes/conversation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store, chat *services.ChatService) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Ruby AI backend running"})
	})

	api := r.Group("/api")
	authRoutes.RegisterPublic(api, db, sessions)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(sessions))
	authRoutes.RegisterProtected(protected, db, sessions)
	convRoutes.Register(protected, db, chat)
}
