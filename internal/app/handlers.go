package app

import (
	"github.com/gin-gonic/gin"

	"github.com/madprep/madprep-backend/internal/handlers"
	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/middleware"
	"github.com/madprep/madprep-backend/internal/server"
)

type Handlers struct {
	User     *handlers.UserHandler
	Concepts *handlers.ConceptsHandler
	Roadmap  *handlers.RoadmapHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		User:     handlers.NewUserHandler(serviceset.User),
		Concepts: handlers.NewConceptsHandler(serviceset.Concepts),
		Roadmap:  handlers.NewRoadmapHandler(serviceset.Roadmap, serviceset.Concepts),
	}
}

func wireRouter(cfg Config, log *logger.Logger, handlerset Handlers, serviceset Services) *gin.Engine {
	log.Info("Wiring router...")
	authMiddleware := middleware.NewAuthMiddleware(log, serviceset.Auth)
	return server.NewRouter(server.RouterConfig{
		ServiceName:     cfg.ServiceName,
		AllowOrigins:    cfg.AllowOrigins,
		AuthMiddleware:  authMiddleware,
		UserHandler:     handlerset.User,
		ConceptsHandler: handlerset.Concepts,
		RoadmapHandler:  handlerset.Roadmap,
	})
}
