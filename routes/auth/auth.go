package auth

import (
	"RubyAI/controllers"
	"RubyAI/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterPublic registers public auth routes: /auth/register, /auth/login
func RegisterPublic(g *gin.RouterGroup, db *gorm.DB, sessions *session.Store) {
	g.POST("/auth/register", controllers.Register(db, sessions))
	g.POST("/auth/login", controllers.Login(db, sessions))
}

// RegisterProtected registers protected auth routes: /auth/logout, /auth/me
func RegisterProtected(g *gin.RouterGroup, db *gorm.DB, sessions *session.Store) {
	g.POST("/auth/logout", controllers.Logout(sessions))
	g.GET("/auth/me", controllers.Me(db))
}
