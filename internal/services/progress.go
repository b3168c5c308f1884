package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

// ProgressSummary is the live tasks-by-status aggregate for a roadmap.
type ProgressSummary struct {
  RoadmapID  uuid.UUID `json:"roadmap_id"`
  Total      int       `json:"total"`
  Completed  int       `json:"completed"`
  InProgress int       `json:"in_progress"`
  Todo       int       `json:"todo"`
  Percentage int       `json:"percentage"`
}

type ProgressService interface {
  // Refresh recomputes the aggregate from live task rows and writes it back
  // into the roadmap's cached counters. The cache is a read optimization
  // only; this recomputation is the authoritative answer. Returns nil when
  // the user has no active roadmap.
  Refresh(ctx context.Context) (*ProgressSummary, error)
}

type progressService struct {
  db          *gorm.DB
  log         *logger.Logger
  roadmapRepo repos.RoadmapRepo
  taskRepo    repos.TaskRepo
}

func NewProgressService(
  db *gorm.DB,
  baseLog *logger.Logger,
  roadmapRepo repos.RoadmapRepo,
  taskRepo repos.TaskRepo,
) ProgressService {
  return &progressService{
    db:          db,
    log:         baseLog.With("service", "ProgressService"),
    roadmapRepo: roadmapRepo,
    taskRepo:    taskRepo,
  }
}

func (s *progressService) Refresh(ctx context.Context) (*ProgressSummary, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }

  roadmap, err := s.roadmapRepo.GetActiveByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load active roadmap: %w", err))
  }
  if roadmap == nil {
    return nil, nil
  }

  counts, err := s.taskRepo.StatusCountsByRoadmapID(ctx, nil, roadmap.ID)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("count tasks: %w", err))
  }

  summary := &ProgressSummary{RoadmapID: roadmap.ID}
  for _, c := range counts {
    n := int(c.Count)
    summary.Total += n
    switch c.Status {
    case types.TaskStatusCompleted:
      summary.Completed += n
    case types.TaskStatusInProgress:
      summary.InProgress += n
    case types.TaskStatusTodo:
      summary.Todo += n
    }
  }
  summary.Percentage = progressPercentage(summary.Completed, summary.Total)

  // Best-effort cache write-back; a failed write leaves stale counters that
  // the next refresh overwrites.
  if err := s.roadmapRepo.UpdateFields(ctx, nil, roadmap.ID, map[string]interface{}{
    "total_tasks":         summary.Total,
    "completed_tasks":     summary.Completed,
    "progress_percentage": summary.Percentage,
    "updated_at":          time.Now(),
  }); err != nil {
    s.log.Warn("Progress cache write-back failed", "error", err, "roadmap_id", roadmap.ID)
  }

  return summary, nil
}
