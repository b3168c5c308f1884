package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

type CreateTaskInput struct {
  MilestoneID    uuid.UUID  `json:"milestone_id"`
  Title          string     `json:"title"`
  Description    string     `json:"description"`
  Category       string     `json:"category"`
  Priority       string     `json:"priority"`
  Difficulty     string     `json:"difficulty"`
  EstimatedHours int        `json:"estimated_hours"`
  Deadline       *time.Time `json:"deadline"`
  Resources      []string   `json:"resources"`
}

type UpdateTaskInput struct {
  Title       *string    `json:"title"`
  Description *string    `json:"description"`
  Priority    *string    `json:"priority"`
  Deadline    *time.Time `json:"deadline"`
  ActualHours *float64   `json:"actual_hours"`
  Resources   []string   `json:"resources"`
}

type TaskService interface {
  // Move applies a kanban transition. Forward moves (into in-progress or
  // completed) are rejected while any prerequisite is not completed; the
  // check and the write share one transaction with the task and its
  // prerequisite rows locked, so a prerequisite cannot be un-completed in
  // between. Moving to the current status is a no-op success.
  Move(ctx context.Context, taskID uuid.UUID, targetStatus string) (*types.Task, error)
  Update(ctx context.Context, taskID uuid.UUID, input UpdateTaskInput) (*types.Task, error)
  Create(ctx context.Context, input CreateTaskInput) (*types.Task, error)
  Delete(ctx context.Context, taskID uuid.UUID) error
}

type taskService struct {
  db            *gorm.DB
  log           *logger.Logger
  roadmapRepo   repos.RoadmapRepo
  milestoneRepo repos.MilestoneRepo
  taskRepo      repos.TaskRepo
  depRepo       repos.TaskDependencyRepo
}

func NewTaskService(
  db *gorm.DB,
  baseLog *logger.Logger,
  roadmapRepo repos.RoadmapRepo,
  milestoneRepo repos.MilestoneRepo,
  taskRepo repos.TaskRepo,
  depRepo repos.TaskDependencyRepo,
) TaskService {
  return &taskService{
    db:            db,
    log:           baseLog.With("service", "TaskService"),
    roadmapRepo:   roadmapRepo,
    milestoneRepo: milestoneRepo,
    taskRepo:      taskRepo,
    depRepo:       depRepo,
  }
}

func (s *taskService) Move(ctx context.Context, taskID uuid.UUID, targetStatus string) (*types.Task, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  if !types.ValidTaskStatus(targetStatus) {
    return nil, apierr.Invalid(fmt.Errorf("invalid status %q", targetStatus))
  }

  var result *types.Task
  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    task, err := s.loadOwnedTaskForUpdate(ctx, tx, rd.UserID, taskID)
    if err != nil {
      return err
    }

    if task.Status == targetStatus {
      result = task
      return nil
    }

    if targetStatus == types.TaskStatusInProgress || targetStatus == types.TaskStatusCompleted {
      edges, err := s.depRepo.GetByTaskIDs(ctx, tx, []uuid.UUID{task.ID})
      if err != nil {
        return apierr.Internal(fmt.Errorf("load dependencies: %w", err))
      }
      prereqIDs := make([]uuid.UUID, 0, len(edges))
      for _, e := range edges {
        prereqIDs = append(prereqIDs, e.DependsOnTaskID)
      }
      prereqs, err := s.taskRepo.GetByIDsForUpdate(ctx, tx, prereqIDs)
      if err != nil {
        return apierr.Internal(fmt.Errorf("load prerequisites: %w", err))
      }
      if blocked := incompletePrereqs(prereqs); len(blocked) > 0 {
        return apierr.Blocked(fmt.Errorf("prerequisites not completed"))
      }
    }

    now := time.Now()
    updates := map[string]interface{}{
      "status":     targetStatus,
      "updated_at": now,
    }
    if targetStatus == types.TaskStatusCompleted {
      updates["completed_at"] = now
    }
    if err := s.taskRepo.UpdateFields(ctx, tx, task.ID, updates); err != nil {
      return apierr.Internal(fmt.Errorf("update task status: %w", err))
    }

    task.Status = targetStatus
    task.UpdatedAt = now
    if targetStatus == types.TaskStatusCompleted {
      task.CompletedAt = &now
    }
    result = task
    return nil
  })
  if err != nil {
    return nil, err
  }
  return result, nil
}

func (s *taskService) Update(ctx context.Context, taskID uuid.UUID, input UpdateTaskInput) (*types.Task, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
    return nil, apierr.Invalid(fmt.Errorf("title cannot be empty"))
  }

  var result *types.Task
  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    task, err := s.loadOwnedTaskForUpdate(ctx, tx, rd.UserID, taskID)
    if err != nil {
      return err
    }

    updates := map[string]interface{}{"updated_at": time.Now()}
    if input.Title != nil {
      updates["title"] = strings.TrimSpace(*input.Title)
      task.Title = strings.TrimSpace(*input.Title)
    }
    if input.Description != nil {
      updates["description"] = *input.Description
      task.Description = *input.Description
    }
    if input.Priority != nil {
      updates["priority"] = *input.Priority
      task.Priority = *input.Priority
    }
    if input.Deadline != nil {
      updates["deadline"] = *input.Deadline
      task.Deadline = input.Deadline
    }
    if input.ActualHours != nil {
      updates["actual_hours"] = *input.ActualHours
      task.ActualHours = input.ActualHours
    }
    if input.Resources != nil {
      raw, mErr := json.Marshal(input.Resources)
      if mErr != nil {
        return apierr.Invalid(fmt.Errorf("encode resources: %w", mErr))
      }
      updates["resources"] = datatypes.JSON(raw)
      task.Resources = datatypes.JSON(raw)
    }

    if err := s.taskRepo.UpdateFields(ctx, tx, task.ID, updates); err != nil {
      return apierr.Internal(fmt.Errorf("update task: %w", err))
    }
    result = task
    return nil
  })
  if err != nil {
    return nil, err
  }
  return result, nil
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput) (*types.Task, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  if strings.TrimSpace(input.Title) == "" {
    return nil, apierr.Invalid(fmt.Errorf("title required"))
  }

  var result *types.Task
  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    roadmap, err := s.roadmapRepo.GetActiveByUserID(ctx, tx, rd.UserID)
    if err != nil {
      return apierr.Internal(fmt.Errorf("load active roadmap: %w", err))
    }
    if roadmap == nil {
      return apierr.NotFound(fmt.Errorf("no active roadmap"))
    }

    milestones, err := s.milestoneRepo.GetByIDs(ctx, tx, []uuid.UUID{input.MilestoneID})
    if err != nil {
      return apierr.Internal(fmt.Errorf("load milestone: %w", err))
    }
    if len(milestones) == 0 || milestones[0] == nil || milestones[0].RoadmapID != roadmap.ID {
      return apierr.NotFound(fmt.Errorf("milestone not found"))
    }

    resources := datatypes.JSON([]byte("[]"))
    if len(input.Resources) > 0 {
      raw, mErr := json.Marshal(input.Resources)
      if mErr != nil {
        return apierr.Invalid(fmt.Errorf("encode resources: %w", mErr))
      }
      resources = datatypes.JSON(raw)
    }

    // Derived from the live rows, not the cached counter, so orders stay
    // unique after deletes.
    maxOrder, err := s.taskRepo.MaxSequenceOrder(ctx, tx, roadmap.ID)
    if err != nil {
      return apierr.Internal(fmt.Errorf("next sequence order: %w", err))
    }

    task := &types.Task{
      ID:             uuid.New(),
      RoadmapID:      roadmap.ID,
      MilestoneID:    input.MilestoneID,
      Title:          strings.TrimSpace(input.Title),
      Description:    input.Description,
      Category:       defaultString(input.Category, types.TaskCategoryLearning),
      Priority:       defaultString(input.Priority, "medium"),
      Difficulty:     defaultString(input.Difficulty, "beginner"),
      EstimatedHours: input.EstimatedHours,
      Deadline:       input.Deadline,
      SequenceOrder:  maxOrder + 1,
      Resources:      resources,
      Status:         types.TaskStatusTodo,
    }
    if _, err := s.taskRepo.Create(ctx, tx, []*types.Task{task}); err != nil {
      return apierr.Internal(fmt.Errorf("create task: %w", err))
    }

    if err := s.roadmapRepo.UpdateFields(ctx, tx, roadmap.ID, map[string]interface{}{
      "total_tasks": gorm.Expr("total_tasks + ?", 1),
    }); err != nil {
      return apierr.Internal(fmt.Errorf("bump roadmap totals: %w", err))
    }

    result = task
    return nil
  })
  if err != nil {
    return nil, err
  }
  return result, nil
}

func (s *taskService) Delete(ctx context.Context, taskID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }

  return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    task, err := s.loadOwnedTaskForUpdate(ctx, tx, rd.UserID, taskID)
    if err != nil {
      return err
    }

    // Edges referencing the task in either direction go with it; dependents
    // simply lose the prerequisite.
    if err := s.depRepo.FullDeleteByTaskIDs(ctx, tx, []uuid.UUID{task.ID}); err != nil {
      return apierr.Internal(fmt.Errorf("delete dependency edges: %w", err))
    }
    if err := s.taskRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{task.ID}); err != nil {
      return apierr.Internal(fmt.Errorf("delete task: %w", err))
    }
    if err := s.roadmapRepo.UpdateFields(ctx, tx, task.RoadmapID, map[string]interface{}{
      "total_tasks": gorm.Expr("GREATEST(total_tasks - ?, 0)", 1),
    }); err != nil {
      return apierr.Internal(fmt.Errorf("decrement roadmap totals: %w", err))
    }
    return nil
  })
}

// loadOwnedTaskForUpdate locks the task row and verifies transitive ownership
// through its roadmap. Missing and not-owned are indistinguishable to the
// caller.
func (s *taskService) loadOwnedTaskForUpdate(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Task, error) {
  tasks, err := s.taskRepo.GetByIDsForUpdate(ctx, tx, []uuid.UUID{taskID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load task: %w", err))
  }
  if len(tasks) == 0 || tasks[0] == nil {
    return nil, apierr.NotFound(fmt.Errorf("task not found"))
  }
  task := tasks[0]

  roadmaps, err := s.roadmapRepo.GetByIDs(ctx, tx, []uuid.UUID{task.RoadmapID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load roadmap: %w", err))
  }
  if len(roadmaps) == 0 || roadmaps[0] == nil || roadmaps[0].UserID != userID {
    return nil, apierr.NotFound(fmt.Errorf("task not found"))
  }
  return task, nil
}
