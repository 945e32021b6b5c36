package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepmitra/mocktest-backend/internal/config"
	"github.com/prepmitra/mocktest-backend/internal/handler"
	"github.com/prepmitra/mocktest-backend/internal/middleware"
	"github.com/prepmitra/mocktest-backend/internal/response"
	"github.com/prepmitra/mocktest-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	System *handler.SystemHandler
	Auth   *handler.AuthHandler
	Test   *handler.TestHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(authService *service.AuthService, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request IDs on every response for log correlation.
	router.Use(response.RequestIDMiddleware())

	// Health check — never behind the auth gate.
	router.GET("/", handlers.System.Health)

	// ─── Admin Routes ──────────────────────────────────────────────────
	// Login is the only unauthenticated admin endpoint; everything else
	// sits behind the bearer-token gate.
	router.POST("/admin/login", handlers.Auth.Login)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdminJWT(authService))
	{
		admin.POST("/create-test-with-questions", handlers.Test.CreateTestWithQuestions)
		admin.GET("/tests", handlers.Test.ListTests)
		admin.GET("/tests/:testId/questions", handlers.Test.ListTestQuestions)
		admin.DELETE("/delete-test/:testId", handlers.Test.DeleteTest)
		admin.DELETE("/delete-question/:questionId", handlers.Test.DeleteQuestion)
	}

	return router
}
