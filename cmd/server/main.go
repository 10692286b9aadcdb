package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/config"
	"github.com/pf-responses/respuestas-api/internal/constants"
	"github.com/pf-responses/respuestas-api/internal/database"
	"github.com/pf-responses/respuestas-api/internal/handlers"
	"github.com/pf-responses/respuestas-api/internal/logging"
	"github.com/pf-responses/respuestas-api/internal/middleware"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		logrus.Warn("OPENAI_API_KEY not set, tag suggestions are disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logrus.StandardLogger()))

	store, err := newSessionStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to create session store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	handlers.RegisterRoutes(r, handlers.Services{
		Auth:    services.NewAuthService(userRepo),
		Answers: services.NewAnswerService(answerRepo, tagRepo, userRepo),
		Tags:    services.NewTagService(tagRepo),
		AI:      aiService,
	})

	// Start server
	addr := ":" + cfg.Port
	logrus.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore returns the Redis-backed store unless SESSION_STORE=cookie.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "cookie" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret), // authentication key
	)
}
