package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
  return &userService{
    db:       db,
    log:      baseLog.With("service", "UserService"),
    userRepo: userRepo,
  }
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load user: %w", err))
  }
  if len(users) == 0 || users[0] == nil {
    return nil, apierr.NotFound(fmt.Errorf("user not found"))
  }
  return users[0], nil
}
