package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
)

type MilestoneRepo interface {
  Create(ctx context.Context, tx *gorm.DB, milestones []*types.Milestone) ([]*types.Milestone, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) ([]*types.Milestone, error)
  GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Milestone, error)
}

type milestoneRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
  repoLog := baseLog.With("repo", "MilestoneRepo")
  return &milestoneRepo{db: db, log: repoLog}
}

func (mr *milestoneRepo) Create(ctx context.Context, tx *gorm.DB, milestones []*types.Milestone) ([]*types.Milestone, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if len(milestones) == 0 {
    return []*types.Milestone{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&milestones).Error; err != nil {
    return nil, err
  }
  return milestones, nil
}

func (mr *milestoneRepo) GetByIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) ([]*types.Milestone, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.Milestone
  if len(milestoneIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", milestoneIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *milestoneRepo) GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Milestone, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.Milestone
  if len(roadmapIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("roadmap_id IN ?", roadmapIDs).
    Order("sequence_order ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
