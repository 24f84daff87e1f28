package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/handlers"
	"github.com/quizforge/quizforge-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	QuizHandler    *handlers.QuizHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", cfg.AuthHandler.Register)
		authGroup.POST("/login", cfg.AuthHandler.Login)
		authGroup.POST("/google", cfg.AuthHandler.Google)
	}

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	protected.GET("/auth/me", cfg.UserHandler.GetMe)

	protected.POST("/quizzes", cfg.QuizHandler.CreateQuiz)
	protected.POST("/quizzes/generate", cfg.QuizHandler.CreateQuiz)
	protected.GET("/quizzes", cfg.QuizHandler.ListQuizzes)
	protected.GET("/quizzes/:id", cfg.QuizHandler.GetQuiz)
	protected.PUT("/quizzes/:id", cfg.QuizHandler.UpdateQuiz)
	protected.DELETE("/quizzes/:id", cfg.QuizHandler.DeleteQuiz)

	return router
}
