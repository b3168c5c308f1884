package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
)

type TaskDependencyRepo interface {
  // Create inserts edges as given. The edge set is not checked for cycles;
  // templates produce acyclic sets by construction.
  Create(ctx context.Context, tx *gorm.DB, deps []*types.TaskDependency) ([]*types.TaskDependency, error)
  GetByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.TaskDependency, error)
  GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.TaskDependency, error)
  FullDeleteByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error
}

type taskDependencyRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTaskDependencyRepo(db *gorm.DB, baseLog *logger.Logger) TaskDependencyRepo {
  repoLog := baseLog.With("repo", "TaskDependencyRepo")
  return &taskDependencyRepo{db: db, log: repoLog}
}

func (tdr *taskDependencyRepo) Create(ctx context.Context, tx *gorm.DB, deps []*types.TaskDependency) ([]*types.TaskDependency, error) {
  transaction := tx
  if transaction == nil {
    transaction = tdr.db
  }

  if len(deps) == 0 {
    return []*types.TaskDependency{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&deps).Error; err != nil {
    return nil, err
  }
  return deps, nil
}

func (tdr *taskDependencyRepo) GetByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.TaskDependency, error) {
  transaction := tx
  if transaction == nil {
    transaction = tdr.db
  }

  var results []*types.TaskDependency
  if len(taskIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("task_id IN ?", taskIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tdr *taskDependencyRepo) GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.TaskDependency, error) {
  transaction := tx
  if transaction == nil {
    transaction = tdr.db
  }

  var results []*types.TaskDependency
  if len(roadmapIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("roadmap_id IN ?", roadmapIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tdr *taskDependencyRepo) FullDeleteByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tdr.db
  }

  if len(taskIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("task_id IN ? OR depends_on_task_id IN ?", taskIDs, taskIDs).
    Delete(&types.TaskDependency{}).Error
}
