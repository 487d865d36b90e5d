package config

import (
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsStaging    bool
	IsProduction bool

	Port          string
	SessionSecret string
	SessionTTL    time.Duration

	DBDriver    string
	DatabaseDSN string

	// Text provider (Groq, fast text-only completions)
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	// Vision provider (OpenRouter, image-capable completions)
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	VisionModel       string

	// Upstream completion timeout; expiry is treated as a provider failure.
	LLMTimeout time.Duration

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	UserConcurrencyLimit   int
	SessionCacheMaxItems   int
)

func init() {
	// .env is optional; the host environment wins in production deployments.
	_ = godotenv.Load()

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "staging"
	}
	if !slices.Contains([]string{"staging", "production"}, AppEnv) {
		log.Fatal("environment variable APP_ENV must be 'staging' or 'production'")
	}
	IsStaging = AppEnv == "staging"
	IsProduction = AppEnv == "production"

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	SessionSecret = os.Getenv("SESSION_SECRET")
	if SessionSecret == "" {
		if IsProduction {
			log.Fatal("SESSION_SECRET must be set in production")
		}
		SessionSecret = "ruby-ai-secret-key-change-in-production"
	}
	SessionTTL = time.Duration(atoiOr(os.Getenv("SESSION_LIFETIME_DAYS"), 30)) * 24 * time.Hour

	DBDriver = os.Getenv("DB_DRIVER")
	if DBDriver == "" {
		DBDriver = "sqlite"
	}
	DatabaseDSN = os.Getenv("DATABASE_DSN")
	if DatabaseDSN == "" {
		DatabaseDSN = "app.db"
	}

	GroqAPIKey = os.Getenv("GROQ_API_KEY")
	GroqBaseURL = envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	GroqModel = envOr("GROQ_MODEL", "llama-3.3-70b-versatile")

	OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	OpenRouterBaseURL = envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	VisionModel = envOr("VISION_MODEL", "google/gemini-2.0-flash-001")

	LLMTimeout = time.Duration(atoiOr(os.Getenv("LLM_TIMEOUT_SECONDS"), 120)) * time.Second

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)
	UserConcurrencyLimit = atoiOr(os.Getenv("USER_CONCURRENCY_LIMIT"), 2)
	SessionCacheMaxItems = atoiOr(os.Getenv("SESSION_CACHE_MAX_ITEMS"), 500)

	log.Printf("[config] AppEnv=%s IsStaging=%v IsProduction=%v", AppEnv, IsStaging, IsProduction)
	log.Printf("[config] DBDriver=%s TextModel=%s VisionModel=%s", DBDriver, GroqModel, VisionModel)
	log.Printf("[config] GroqKeyPresent=%v OpenRouterKeyPresent=%v LLMTimeout=%s",
		GroqAPIKey != "", OpenRouterAPIKey != "", LLMTimeout)
	log.Printf("[config] RateLimit window=%ds capacity=%d userConc=%d sessionTTL=%s",
		RateLimitWindowSeconds, RateLimitCapacity, UserConcurrencyLimit, SessionTTL)
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
