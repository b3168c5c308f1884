package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
)

// StatusCount is one row of a tasks-by-status aggregation.
type StatusCount struct {
  MilestoneID uuid.UUID `gorm:"column:milestone_id"`
  Status      string    `gorm:"column:status"`
  Count       int64     `gorm:"column:count"`
}

type TaskRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error)
  // GetByIDsForUpdate loads task rows under FOR UPDATE so a move transaction
  // can linearize its prerequisite check against concurrent moves.
  GetByIDsForUpdate(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error)
  GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Task, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error
  // MaxSequenceOrder returns the highest sequence_order among the roadmap's
  // tasks, or -1 when the roadmap has none.
  MaxSequenceOrder(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) (int, error)
  StatusCountsByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]StatusCount, error)
  StatusCountsByMilestone(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]StatusCount, error)
}

type taskRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
  repoLog := baseLog.With("repo", "TaskRepo")
  return &taskRepo{db: db, log: repoLog}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if len(tasks) == 0 {
    return []*types.Task{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
    return nil, err
  }
  return tasks, nil
}

func (tr *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Task
  if len(taskIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", taskIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *taskRepo) GetByIDsForUpdate(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Task
  if len(taskIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.Locking{Strength: "UPDATE"}).
    Where("id IN ?", taskIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *taskRepo) GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Task
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

func (tr *taskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if id == uuid.Nil || len(updates) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Task{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (tr *taskRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if len(taskIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", taskIDs).
    Delete(&types.Task{}).Error
}

func (tr *taskRepo) MaxSequenceOrder(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if roadmapID == uuid.Nil {
    return -1, nil
  }

  var highest int
  if err := transaction.WithContext(ctx).
    Model(&types.Task{}).
    Select("COALESCE(MAX(sequence_order), -1)").
    Where("roadmap_id = ?", roadmapID).
    Scan(&highest).Error; err != nil {
    return -1, err
  }
  return highest, nil
}

func (tr *taskRepo) StatusCountsByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]StatusCount, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []StatusCount
  if roadmapID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Task{}).
    Select("status, COUNT(*) AS count").
    Where("roadmap_id = ?", roadmapID).
    Group("status").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *taskRepo) StatusCountsByMilestone(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]StatusCount, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []StatusCount
  if roadmapID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Task{}).
    Select("milestone_id, status, COUNT(*) AS count").
    Where("roadmap_id = ?", roadmapID).
    Group("milestone_id, status").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
