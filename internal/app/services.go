package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/prompt"
	"github.com/madprep/madprep-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Roadmap  services.RoadmapService
	Concepts services.ConceptsService
	Gateway  services.GenerationGateway
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	templates, err := prompt.Load(cfg.PromptsPath)
	if err != nil {
		return Services{}, fmt.Errorf("load prompt templates: %w", err)
	}

	gateway, err := services.NewGeminiClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init generation gateway: %w", err)
	}

	return Services{
		Auth:     services.NewAuthService(log, cfg.JWTSecretKey),
		User:     services.NewUserService(db, log, reposet.User),
		Roadmap:  services.NewRoadmapService(db, log, reposet.User, reposet.Roadmap, reposet.URLStatus),
		Concepts: services.NewConceptsService(log, gateway, templates),
		Gateway:  gateway,
	}, nil
}
