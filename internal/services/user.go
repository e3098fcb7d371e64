package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/repos"
	"github.com/madprep/madprep-backend/internal/types"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	CreateOrUpdate(ctx context.Context, userID, userName, userEmail string) (*types.User, error)
	Get(ctx context.Context, userID string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

// CreateOrUpdate registers the profile handed over by the identity provider.
// First write creates the row; later writes refresh name and email only, so
// created_at always reflects the first registration.
func (us *userService) CreateOrUpdate(ctx context.Context, userID, userName, userEmail string) (*types.User, error) {
	userID = strings.TrimSpace(userID)
	userName = strings.TrimSpace(userName)
	userEmail = strings.TrimSpace(userEmail)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if userName == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if userEmail == "" {
		return nil, fmt.Errorf("user email is required")
	}

	if err := us.userRepo.Upsert(ctx, nil, &types.User{
		UserID:    userID,
		UserName:  userName,
		UserEmail: userEmail,
	}); err != nil {
		return nil, fmt.Errorf("upsert user profile: %w", err)
	}

	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user profile missing after upsert")
	}
	return user, nil
}

func (us *userService) Get(ctx context.Context, userID string) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
