package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/madprep/madprep-backend/internal/handlers"
	"github.com/madprep/madprep-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName     string
	AllowOrigins    []string
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	ConceptsHandler *handlers.ConceptsHandler
	RoadmapHandler  *handlers.RoadmapHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth", cfg.UserHandler.CreateOrUpdate)
		api.GET("/auth/:user_id", cfg.UserHandler.Get)
		api.POST("/concepts", cfg.ConceptsHandler.Generate)
		api.GET("/roadmap", cfg.RoadmapHandler.List)
	}

	protected := api.Group("/roadmap")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/generate", cfg.RoadmapHandler.Generate)
		protected.POST("/save", cfg.RoadmapHandler.Save)
		protected.POST("/getitem", cfg.RoadmapHandler.GetItem)
		protected.POST("/putitem", cfg.RoadmapHandler.PutItem)
	}

	return router
}
