package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/careerpilot/backend/internal/repos/testutil"
  "github.com/careerpilot/backend/internal/types"
)

func TestTaskDependencyRepo_CreateAndGet(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  repo := NewTaskDependencyRepo(db, log)
  ctx := context.Background()

  user := seedUser(t, tx)
  roadmap := seedRoadmap(t, tx, user.ID, types.RoadmapStatusActive)
  milestone := seedMilestone(t, tx, roadmap.ID, 0)
  a := seedTask(t, tx, roadmap.ID, milestone.ID, 0, types.TaskStatusTodo)
  b := seedTask(t, tx, roadmap.ID, milestone.ID, 1, types.TaskStatusTodo)

  created, err := repo.Create(ctx, tx, []*types.TaskDependency{
    {RoadmapID: roadmap.ID, TaskID: b.ID, DependsOnTaskID: a.ID},
  })
  if err != nil {
    t.Fatalf("Create: %v", err)
  }
  if len(created) != 1 {
    t.Fatalf("expected 1 edge, got %d", len(created))
  }

  byTask, err := repo.GetByTaskIDs(ctx, tx, []uuid.UUID{b.ID})
  if err != nil {
    t.Fatalf("GetByTaskIDs: %v", err)
  }
  if len(byTask) != 1 || byTask[0].DependsOnTaskID != a.ID {
    t.Fatalf("edge not found by task id")
  }

  byRoadmap, err := repo.GetByRoadmapIDs(ctx, tx, []uuid.UUID{roadmap.ID})
  if err != nil {
    t.Fatalf("GetByRoadmapIDs: %v", err)
  }
  if len(byRoadmap) != 1 {
    t.Fatalf("edge not found by roadmap id")
  }
}

func TestTaskDependencyRepo_FullDeleteByTaskIDs_RemovesBothDirections(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  repo := NewTaskDependencyRepo(db, log)
  ctx := context.Background()

  user := seedUser(t, tx)
  roadmap := seedRoadmap(t, tx, user.ID, types.RoadmapStatusActive)
  milestone := seedMilestone(t, tx, roadmap.ID, 0)
  a := seedTask(t, tx, roadmap.ID, milestone.ID, 0, types.TaskStatusTodo)
  b := seedTask(t, tx, roadmap.ID, milestone.ID, 1, types.TaskStatusTodo)
  c := seedTask(t, tx, roadmap.ID, milestone.ID, 2, types.TaskStatusTodo)

  // b depends on a, c depends on b: deleting b must remove both edges.
  if _, err := repo.Create(ctx, tx, []*types.TaskDependency{
    {RoadmapID: roadmap.ID, TaskID: b.ID, DependsOnTaskID: a.ID},
    {RoadmapID: roadmap.ID, TaskID: c.ID, DependsOnTaskID: b.ID},
  }); err != nil {
    t.Fatalf("Create: %v", err)
  }

  if err := repo.FullDeleteByTaskIDs(ctx, tx, []uuid.UUID{b.ID}); err != nil {
    t.Fatalf("FullDeleteByTaskIDs: %v", err)
  }

  remaining, err := repo.GetByRoadmapIDs(ctx, tx, []uuid.UUID{roadmap.ID})
  if err != nil {
    t.Fatalf("GetByRoadmapIDs: %v", err)
  }
  if len(remaining) != 0 {
    t.Fatalf("expected no edges after delete, got %d", len(remaining))
  }
}

func TestTaskDependencyRepo_EmptyInputs(t *testing.T) {
  db := testutil.DB(t)
  log := testutil.Logger(t)
  repo := NewTaskDependencyRepo(db, log)
  ctx := context.Background()

  created, err := repo.Create(ctx, nil, nil)
  if err != nil || len(created) != 0 {
    t.Fatalf("empty create should return empty slice, got %v %v", created, err)
  }
  if err := repo.FullDeleteByTaskIDs(ctx, nil, nil); err != nil {
    t.Fatalf("empty delete should be a no-op: %v", err)
  }
}
