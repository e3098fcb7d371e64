package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/types"
)

type URLStatusRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.URLStatus, error)
	GetByUserAndURL(ctx context.Context, tx *gorm.DB, userID, url string) (*types.URLStatus, error)
	InsertMissing(ctx context.Context, tx *gorm.DB, rows []*types.URLStatus) error
	Upsert(ctx context.Context, tx *gorm.DB, row *types.URLStatus) error
}

type urlStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewURLStatusRepo(db *gorm.DB, baseLog *logger.Logger) URLStatusRepo {
	repoLog := baseLog.With("repo", "URLStatusRepo")
	return &urlStatusRepo{db: db, log: repoLog}
}

func (r *urlStatusRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *urlStatusRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.URLStatus, error) {
	var results []*types.URLStatus
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndURL returns (nil, nil) for an unknown url. Callers treat
// "unknown" distinctly from "known and unchecked".
func (r *urlStatusRepo) GetByUserAndURL(ctx context.Context, tx *gorm.DB, userID, url string) (*types.URLStatus, error) {
	var row types.URLStatus
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND url = ?", userID, url).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// InsertMissing registers new urls without touching rows that already exist,
// so previously recorded checked state survives every merge. The conflict
// target makes the merge additive: two concurrent calls cannot clobber each
// other the way a full-list rewrite would.
func (r *urlStatusRepo) InsertMissing(ctx context.Context, tx *gorm.DB, rows []*types.URLStatus) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "url"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// Upsert sets the checked flag for one (user, url) key. Idempotent.
func (r *urlStatusRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.URLStatus) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"checked", "updated_at"}),
		}).
		Create(row).Error
}
