package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/types"
)

type UserRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, userID string) (*types.User, error)
	Exists(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetByID returns (nil, nil) when no such user exists. Read paths treat an
// absent record as an empty default, not an error.
func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID string) (*types.User, error) {
	var user types.User
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Exists(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	if err := r.conn(tx).WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Upsert creates the user row on first write and refreshes name/email on
// later ones, keeping the original created_at.
func (r *userRepo) Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_name", "user_email", "updated_at"}),
		}).
		Create(user).Error
}
