package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/reactions-backend/internal/config"
	"github.com/ignatzorin/reactions-backend/internal/http/handlers"
	"github.com/ignatzorin/reactions-backend/internal/http/middleware"
)

// SetupRouter собирает gin.Engine со всеми маршрутами.
// knownReactable отсекает незарегистрированные типы объектов до похода в базу.
func SetupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	reactionHandler *handlers.ReactionHandler,
	tokens middleware.AccessTokenParser,
	knownReactable func(string) bool,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.Identity(tokens))

	reactions := api.Group("/:reactable/:id/reactions")
	reactions.Use(
		middleware.ReactableValidator("reactable", knownReactable),
		middleware.IDValidator("id"),
	)
	{
		reactions.GET("", reactionHandler.List)
		reactions.POST("", reactionHandler.React)
		reactions.DELETE("", reactionHandler.Remove)
		reactions.POST("/toggle", reactionHandler.Toggle)
		reactions.GET("/summary", reactionHandler.Summary)
		reactions.GET("/count", reactionHandler.Count)
		reactions.GET("/users", reactionHandler.Users)
		reactions.GET("/me", reactionHandler.Mine)
	}

	return r
}
