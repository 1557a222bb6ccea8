package handlers

import (
	"net/http"
	"time"

	"github.com/friendr/quiz-session/internal/middleware"
	"github.com/friendr/quiz-session/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig collects what the router needs beyond the handlers
type RouterConfig struct {
	AllowedOrigins []string
	SubmitLimiter  *middleware.IPRateLimiter
	Logger         utils.Logger
}

type HandlerManager struct {
	quizHandler *QuizHandler
}

func NewHandlerManager(sessions SessionStore, submitTimeout time.Duration, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		quizHandler: NewQuizHandler(sessions, submitTimeout, logger),
	}
}

// NewRouter builds the engine with middleware and all routes
func (hm *HandlerManager) NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(cfg.Logger))
	router.Use(utils.ContextLogger(cfg.Logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	hm.SetupRoutes(router, cfg.SubmitLimiter)
	return router
}

// corsConfig allows the quiz page origins; an empty list allows any origin
func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = origins
	config.AllowCredentials = true
	return config
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, submitLimiter *middleware.IPRateLimiter) {
	router.GET("/health", HealthCheck)

	submitChain := []gin.HandlerFunc{hm.quizHandler.SubmitQuiz}
	if submitLimiter != nil {
		submitChain = append([]gin.HandlerFunc{middleware.RateLimitByIP(submitLimiter)}, submitChain...)
	}

	api := router.Group("/friendr/api/quiz")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", hm.quizHandler.CreateSession)
			sessions.GET("/:id", hm.quizHandler.GetSession)
			sessions.DELETE("/:id", hm.quizHandler.CloseSession)
			sessions.PUT("/:id/answers", hm.quizHandler.SelectAnswer)
			sessions.POST("/:id/submit", submitChain...)
			sessions.POST("/:id/reset", hm.quizHandler.ResetQuiz)
			sessions.GET("/:id/notifications", hm.quizHandler.GetNotifications)
			sessions.GET("/:id/export", hm.quizHandler.ExportAnswers)
		}
	}
}

// HealthCheck reports that the service is up
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-session",
	})
}
