package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
)

type RoadmapRepo interface {
  Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Roadmap, error)
  GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Roadmap, error)
  ArchiveActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type roadmapRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
  repoLog := baseLog.With("repo", "RoadmapRepo")
  return &roadmapRepo{db: db, log: repoLog}
}

func (rr *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if len(roadmaps) == 0 {
    return []*types.Roadmap{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&roadmaps).Error; err != nil {
    return nil, err
  }
  return roadmaps, nil
}

func (rr *roadmapRepo) GetByIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Roadmap
  if len(roadmapIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", roadmapIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *roadmapRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if userID == uuid.Nil {
    return nil, nil
  }

  var roadmap types.Roadmap
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND status = ?", userID, types.RoadmapStatusActive).
    Order("created_at DESC").
    Limit(1).
    Find(&roadmap).Error
  if err != nil {
    return nil, err
  }
  if roadmap.ID == uuid.Nil {
    return nil, nil
  }
  return &roadmap, nil
}

func (rr *roadmapRepo) ArchiveActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if userID == uuid.Nil {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Roadmap{}).
    Where("user_id = ? AND status = ?", userID, types.RoadmapStatusActive).
    Update("status", types.RoadmapStatusArchived).Error
}

func (rr *roadmapRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if id == uuid.Nil || len(updates) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Roadmap{}).
    Where("id = ?", id).
    Updates(updates).Error
}
