package main

import (
	"log"
	"time"

	"RubyAI/middleware"
	"RubyAI/models"
	"RubyAI/pkg/config"
	"RubyAI/pkg/services"
	"RubyAI/pkg/session"
	"RubyAI/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDatabase() (*gorm.DB, error) {
	switch config.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(config.DatabaseDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(config.DatabaseDSN), &gorm.Config{})
	}
}

func main() {
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}, &models.Session{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
		config.UserConcurrencyLimit,
	)

	sessions := session.NewStore(db, config.SessionTTL, config.SessionCacheMaxItems)
	chat := services.NewChatService()

	r := gin.Default()

	// CORS: the Vite dev server and the Electron shell both talk to this API
	// with cookies, so credentials must be allowed.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, sessions, chat)
	r.Run(":" + config.Port)
}
