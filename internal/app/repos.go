package app

import (
	"gorm.io/gorm"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	Roadmap   repos.RoadmapRepo
	URLStatus repos.URLStatusRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		Roadmap:   repos.NewRoadmapRepo(db, log),
		URLStatus: repos.NewURLStatusRepo(db, log),
	}
}
