package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pf-responses/respuestas-api/internal/errors"
	"github.com/pf-responses/respuestas-api/internal/middleware"
	"github.com/pf-responses/respuestas-api/internal/services"
)

// Services groups what the HTTP layer depends on. AI may be nil, in which case
// tag suggestions answer 503.
type Services struct {
	Auth    *services.AuthService
	Answers *services.AnswerService
	Tags    *services.TagService
	AI      *services.AIService
}

// RegisterRoutes mounts the health check and the /api tree on r. Session
// middleware must already be installed.
func RegisterRoutes(r *gin.Engine, svc Services) {
	apierrors.UseJSONFieldNames()

	authHandler := NewAuthHandler(svc.Auth)
	answerHandler := NewAnswerHandler(svc.Answers, svc.AI)
	tagHandler := NewTagHandler(svc.Tags)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Respuestas API is running",
		})
	})

	api := r.Group("/api")
	{
		// User routes
		users := api.Group("/usuarios")
		{
			users.POST("", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/logout", authHandler.Logout)
			users.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			users.GET("/:id", middleware.RequireAuth(), authHandler.GetUser)
		}

		// Answer routes (protected)
		answers := api.Group("/respuestas")
		answers.Use(middleware.RequireAuth())
		{
			answerAccess := middleware.RequireAnswerAccess(svc.Answers)

			answers.GET("", answerHandler.ListAnswers)
			answers.POST("", answerHandler.CreateAnswer)
			answers.POST("/suggest-tags", answerHandler.SuggestTags)
			answers.GET("/:id", answerAccess, answerHandler.GetAnswer)
			answers.PATCH("/:id", answerAccess, answerHandler.UpdateAnswer)
			answers.PUT("/:id", answerAccess, answerHandler.UpdateAnswer)
			answers.DELETE("/:id", answerAccess, answerHandler.DeleteAnswer)
		}

		// Tag routes (protected)
		tags := api.Group("/tags")
		tags.Use(middleware.RequireAuth())
		{
			tags.GET("", tagHandler.ListTags)
			tags.GET("/:id", tagHandler.GetTag)
		}
	}
}
