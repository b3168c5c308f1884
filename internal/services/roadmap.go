package services

import (
  "context"
  "encoding/json"
  "fmt"
  "hash/fnv"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

// MilestoneProgress is a milestone decorated with live task counts.
type MilestoneProgress struct {
  *types.Milestone
  TotalTasks         int `json:"total_tasks"`
  CompletedTasks     int `json:"completed_tasks"`
  InProgressTasks    int `json:"in_progress_tasks"`
  ProgressPercentage int `json:"progress_percentage"`
}

// TaskView is a task decorated with its prerequisite IDs and the derived
// blocked flag. IsBlocked is computed at read time and never stored.
type TaskView struct {
  *types.Task
  Dependencies []uuid.UUID `json:"dependencies"`
  IsBlocked    bool        `json:"is_blocked"`
}

// DependencyView is a raw edge annotated with both endpoints for display.
type DependencyView struct {
  ID              uuid.UUID `json:"id"`
  TaskID          uuid.UUID `json:"task_id"`
  TaskTitle       string    `json:"task_title"`
  TaskStatus      string    `json:"task_status"`
  DependsOnTaskID uuid.UUID `json:"depends_on_task_id"`
  DependsOnTitle  string    `json:"depends_on_title"`
  DependsOnStatus string    `json:"depends_on_status"`
}

type RoadmapService interface {
  GenerateForUser(ctx context.Context) (*types.Roadmap, int, error)
  GetActiveRoadmap(ctx context.Context) (*types.Roadmap, error)
  ListMilestones(ctx context.Context) ([]*MilestoneProgress, error)
  ListTasks(ctx context.Context) ([]*TaskView, error)
  ListDependencies(ctx context.Context) ([]*DependencyView, error)
}

type roadmapService struct {
  db            *gorm.DB
  log           *logger.Logger
  generator     RoadmapGeneratorService
  profileRepo   repos.ProfileRepo
  roadmapRepo   repos.RoadmapRepo
  milestoneRepo repos.MilestoneRepo
  taskRepo      repos.TaskRepo
  depRepo       repos.TaskDependencyRepo
}

func NewRoadmapService(
  db *gorm.DB,
  baseLog *logger.Logger,
  generator RoadmapGeneratorService,
  profileRepo repos.ProfileRepo,
  roadmapRepo repos.RoadmapRepo,
  milestoneRepo repos.MilestoneRepo,
  taskRepo repos.TaskRepo,
  depRepo repos.TaskDependencyRepo,
) RoadmapService {
  return &roadmapService{
    db:            db,
    log:           baseLog.With("service", "RoadmapService"),
    generator:     generator,
    profileRepo:   profileRepo,
    roadmapRepo:   roadmapRepo,
    milestoneRepo: milestoneRepo,
    taskRepo:      taskRepo,
    depRepo:       depRepo,
  }
}

func (s *roadmapService) GenerateForUser(ctx context.Context) (*types.Roadmap, int, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, 0, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }

  profiles, err := s.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, 0, apierr.Internal(fmt.Errorf("load profile: %w", err))
  }
  if len(profiles) == 0 || profiles[0] == nil {
    return nil, 0, apierr.NotFound(fmt.Errorf("profile not found"))
  }

  tpl, err := s.generator.Generate(ctx, profiles[0])
  if err != nil {
    return nil, 0, apierr.Upstream(fmt.Errorf("generate roadmap: %w", err))
  }

  roadmap, inserted, err := s.materialize(ctx, rd.UserID, tpl)
  if err != nil {
    s.log.Error("Roadmap materialization failed", "error", err, "user_id", rd.UserID)
    return nil, 0, apierr.Internal(fmt.Errorf("materialize roadmap: %w", err))
  }
  return roadmap, inserted, nil
}

// materialize writes the template into the graph store as one atomic unit:
// archive the current active roadmap, insert the new graph, remap local
// prerequisite indices to persisted task IDs. The per-user advisory lock
// serializes concurrent generations so the archive-then-create pair cannot
// race into two active roadmaps.
func (s *roadmapService) materialize(ctx context.Context, userID uuid.UUID, tpl *RoadmapTemplate) (*types.Roadmap, int, error) {
  var roadmap *types.Roadmap
  inserted := 0

  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := advisoryXactLock(tx, "roadmap_generate", userID); err != nil {
      return fmt.Errorf("acquire generation lock: %w", err)
    }

    if err := s.roadmapRepo.ArchiveActiveByUserID(ctx, tx, userID); err != nil {
      return fmt.Errorf("archive active roadmap: %w", err)
    }

    roadmap = &types.Roadmap{
      ID:             uuid.New(),
      UserID:         userID,
      Title:          tpl.Title,
      Description:    tpl.Description,
      EstimatedHours: tpl.EstimatedHours,
      Status:         types.RoadmapStatusActive,
    }
    if _, err := s.roadmapRepo.Create(ctx, tx, []*types.Roadmap{roadmap}); err != nil {
      return fmt.Errorf("create roadmap: %w", err)
    }

    // Insert milestones and tasks, assigning each task a global generation
    // index and remembering index -> persisted ID for edge resolution.
    idByIndex := map[int]uuid.UUID{}
    var orderedTemplates []TaskTemplate
    genIndex := 0

    for mi, mt := range tpl.Milestones {
      milestone := &types.Milestone{
        ID:            uuid.New(),
        RoadmapID:     roadmap.ID,
        Title:         mt.Title,
        Description:   mt.Description,
        SequenceOrder: mi,
      }
      if _, err := s.milestoneRepo.Create(ctx, tx, []*types.Milestone{milestone}); err != nil {
        return fmt.Errorf("create milestone %d: %w", mi, err)
      }

      tasks := make([]*types.Task, 0, len(mt.Tasks))
      for _, tt := range mt.Tasks {
        resources := datatypes.JSON([]byte("[]"))
        if len(tt.Resources) > 0 {
          if raw, mErr := json.Marshal(tt.Resources); mErr == nil {
            resources = datatypes.JSON(raw)
          }
        }
        task := &types.Task{
          ID:             uuid.New(),
          RoadmapID:      roadmap.ID,
          MilestoneID:    milestone.ID,
          Title:          tt.Title,
          Description:    tt.Description,
          Category:       defaultString(tt.Category, types.TaskCategoryLearning),
          Priority:       defaultString(tt.Priority, "medium"),
          Difficulty:     defaultString(tt.Difficulty, "beginner"),
          EstimatedHours: tt.EstimatedHours,
          SequenceOrder:  genIndex,
          Resources:      resources,
          Status:         types.TaskStatusTodo,
        }
        tasks = append(tasks, task)
        idByIndex[genIndex] = task.ID
        orderedTemplates = append(orderedTemplates, tt)
        genIndex++
      }
      if _, err := s.taskRepo.Create(ctx, tx, tasks); err != nil {
        return fmt.Errorf("create tasks for milestone %d: %w", mi, err)
      }
      inserted += len(tasks)
    }

    // Resolve local prerequisite indices. An index that is out of range or
    // does not refer to an earlier task is skipped, not an error.
    var edges []*types.TaskDependency
    for idx, tt := range orderedTemplates {
      for _, dep := range tt.DependsOn {
        if dep < 0 || dep >= idx {
          s.log.Debug("Skipping unresolvable prerequisite index", "task_index", idx, "depends_on", dep)
          continue
        }
        edges = append(edges, &types.TaskDependency{
          ID:              uuid.New(),
          RoadmapID:       roadmap.ID,
          TaskID:          idByIndex[idx],
          DependsOnTaskID: idByIndex[dep],
        })
      }
    }
    if _, err := s.depRepo.Create(ctx, tx, edges); err != nil {
      return fmt.Errorf("create dependency edges: %w", err)
    }

    if err := s.roadmapRepo.UpdateFields(ctx, tx, roadmap.ID, map[string]interface{}{
      "total_tasks": inserted,
    }); err != nil {
      return fmt.Errorf("update roadmap totals: %w", err)
    }
    roadmap.TotalTasks = inserted

    return nil
  })
  if err != nil {
    return nil, 0, err
  }

  s.log.Info("Roadmap materialized", "roadmap_id", roadmap.ID, "user_id", userID, "tasks", inserted)
  return roadmap, inserted, nil
}

func (s *roadmapService) GetActiveRoadmap(ctx context.Context) (*types.Roadmap, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  roadmap, err := s.roadmapRepo.GetActiveByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load active roadmap: %w", err))
  }
  return roadmap, nil
}

func (s *roadmapService) ListMilestones(ctx context.Context) ([]*MilestoneProgress, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }

  roadmap, err := s.roadmapRepo.GetActiveByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, apierr.Internal(err)
  }
  if roadmap == nil {
    return []*MilestoneProgress{}, nil
  }

  milestones, err := s.milestoneRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load milestones: %w", err))
  }
  counts, err := s.taskRepo.StatusCountsByMilestone(ctx, nil, roadmap.ID)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("count tasks: %w", err))
  }

  totals := map[uuid.UUID]int{}
  completed := map[uuid.UUID]int{}
  inProgress := map[uuid.UUID]int{}
  for _, c := range counts {
    totals[c.MilestoneID] += int(c.Count)
    switch c.Status {
    case types.TaskStatusCompleted:
      completed[c.MilestoneID] += int(c.Count)
    case types.TaskStatusInProgress:
      inProgress[c.MilestoneID] += int(c.Count)
    }
  }

  results := make([]*MilestoneProgress, 0, len(milestones))
  for _, m := range milestones {
    results = append(results, &MilestoneProgress{
      Milestone:          m,
      TotalTasks:         totals[m.ID],
      CompletedTasks:     completed[m.ID],
      InProgressTasks:    inProgress[m.ID],
      ProgressPercentage: progressPercentage(completed[m.ID], totals[m.ID]),
    })
  }
  return results, nil
}

func (s *roadmapService) ListTasks(ctx context.Context) ([]*TaskView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }

  roadmap, err := s.roadmapRepo.GetActiveByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, apierr.Internal(err)
  }
  if roadmap == nil {
    return []*TaskView{}, nil
  }

  tasks, err := s.taskRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load tasks: %w", err))
  }
  edges, err := s.depRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load dependencies: %w", err))
  }

  statusByID := make(map[uuid.UUID]string, len(tasks))
  for _, t := range tasks {
    statusByID[t.ID] = t.Status
  }
  prereqsByTask := map[uuid.UUID][]uuid.UUID{}
  for _, e := range edges {
    prereqsByTask[e.TaskID] = append(prereqsByTask[e.TaskID], e.DependsOnTaskID)
  }

  results := make([]*TaskView, 0, len(tasks))
  for _, t := range tasks {
    deps := prereqsByTask[t.ID]
    if deps == nil {
      deps = []uuid.UUID{}
    }
    results = append(results, &TaskView{
      Task:         t,
      Dependencies: deps,
      IsBlocked:    isBlocked(t.Status, deps, statusByID),
    })
  }
  return results, nil
}

func (s *roadmapService) ListDependencies(ctx context.Context) ([]*DependencyView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }

  roadmap, err := s.roadmapRepo.GetActiveByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, apierr.Internal(err)
  }
  if roadmap == nil {
    return []*DependencyView{}, nil
  }

  edges, err := s.depRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load dependencies: %w", err))
  }
  tasks, err := s.taskRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load tasks: %w", err))
  }

  taskByID := make(map[uuid.UUID]*types.Task, len(tasks))
  for _, t := range tasks {
    taskByID[t.ID] = t
  }

  results := make([]*DependencyView, 0, len(edges))
  for _, e := range edges {
    view := &DependencyView{
      ID:              e.ID,
      TaskID:          e.TaskID,
      DependsOnTaskID: e.DependsOnTaskID,
    }
    if t := taskByID[e.TaskID]; t != nil {
      view.TaskTitle = t.Title
      view.TaskStatus = t.Status
    }
    if t := taskByID[e.DependsOnTaskID]; t != nil {
      view.DependsOnTitle = t.Title
      view.DependsOnStatus = t.Status
    }
    results = append(results, view)
  }
  return results, nil
}

func defaultString(s, fallback string) string {
  if s == "" {
    return fallback
  }
  return s
}

func advisoryXactLock(tx *gorm.DB, namespace string, id uuid.UUID) error {
  if tx == nil || namespace == "" || id == uuid.Nil {
    return nil
  }
  key := advisoryKey64(namespace, id)
  return tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error
}

func advisoryKey64(namespace string, id uuid.UUID) int64 {
  h := fnv.New64a()
  _, _ = h.Write([]byte(namespace))
  _, _ = h.Write([]byte{':'})
  _, _ = h.Write([]byte(id.String()))
  return int64(h.Sum64())
}
