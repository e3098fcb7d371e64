package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/types"
)

type RoadmapRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.Roadmap) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Roadmap, error)
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	repoLog := baseLog.With("repo", "RoadmapRepo")
	return &roadmapRepo{db: db, log: repoLog}
}

func (r *roadmapRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert replaces the whole payload for the (user, company) key. Rows for
// other companies are untouched.
func (r *roadmapRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Roadmap) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(row).Error
}

func (r *roadmapRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Roadmap, error) {
	var results []*types.Roadmap
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("company_name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
