package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/careerpilot/backend/internal/repos/testutil"
  "github.com/careerpilot/backend/internal/types"
)

func TestTaskRepo_GetByRoadmapIDs_OrdersBySequence(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  repo := NewTaskRepo(db, log)
  ctx := context.Background()

  user := seedUser(t, tx)
  roadmap := seedRoadmap(t, tx, user.ID, types.RoadmapStatusActive)
  milestone := seedMilestone(t, tx, roadmap.ID, 0)
  seedTask(t, tx, roadmap.ID, milestone.ID, 2, types.TaskStatusTodo)
  seedTask(t, tx, roadmap.ID, milestone.ID, 0, types.TaskStatusTodo)
  seedTask(t, tx, roadmap.ID, milestone.ID, 1, types.TaskStatusTodo)

  tasks, err := repo.GetByRoadmapIDs(ctx, tx, []uuid.UUID{roadmap.ID})
  if err != nil {
    t.Fatalf("GetByRoadmapIDs: %v", err)
  }
  if len(tasks) != 3 {
    t.Fatalf("expected 3 tasks, got %d", len(tasks))
  }
  for i, task := range tasks {
    if task.SequenceOrder != i {
      t.Fatalf("tasks out of order at %d: sequence_order=%d", i, task.SequenceOrder)
    }
  }
}

func TestTaskRepo_StatusCountsByRoadmapID(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  repo := NewTaskRepo(db, log)
  ctx := context.Background()

  user := seedUser(t, tx)
  roadmap := seedRoadmap(t, tx, user.ID, types.RoadmapStatusActive)
  milestone := seedMilestone(t, tx, roadmap.ID, 0)
  seedTask(t, tx, roadmap.ID, milestone.ID, 0, types.TaskStatusCompleted)
  seedTask(t, tx, roadmap.ID, milestone.ID, 1, types.TaskStatusCompleted)
  seedTask(t, tx, roadmap.ID, milestone.ID, 2, types.TaskStatusInProgress)
  seedTask(t, tx, roadmap.ID, milestone.ID, 3, types.TaskStatusTodo)

  counts, err := repo.StatusCountsByRoadmapID(ctx, tx, roadmap.ID)
  if err != nil {
    t.Fatalf("StatusCountsByRoadmapID: %v", err)
  }

  byStatus := map[string]int64{}
  for _, c := range counts {
    byStatus[c.Status] = c.Count
  }
  if byStatus[types.TaskStatusCompleted] != 2 {
    t.Fatalf("expected 2 completed, got %d", byStatus[types.TaskStatusCompleted])
  }
  if byStatus[types.TaskStatusInProgress] != 1 {
    t.Fatalf("expected 1 in-progress, got %d", byStatus[types.TaskStatusInProgress])
  }
  if byStatus[types.TaskStatusTodo] != 1 {
    t.Fatalf("expected 1 todo, got %d", byStatus[types.TaskStatusTodo])
  }
}

func TestTaskRepo_StatusCountsByMilestone(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  repo := NewTaskRepo(db, log)
  ctx := context.Background()

  user := seedUser(t, tx)
  roadmap := seedRoadmap(t, tx, user.ID, types.RoadmapStatusActive)
  m1 := seedMilestone(t, tx, roadmap.ID, 0)
  m2 := seedMilestone(t, tx, roadmap.ID, 1)
  seedTask(t, tx, roadmap.ID, m1.ID, 0, types.TaskStatusCompleted)
  seedTask(t, tx, roadmap.ID, m1.ID, 1, types.TaskStatusTodo)
  seedTask(t, tx, roadmap.ID, m2.ID, 2, types.TaskStatusTodo)

  counts, err := repo.StatusCountsByMilestone(ctx, tx, roadmap.ID)
  if err != nil {
    t.Fatalf("StatusCountsByMilestone: %v", err)
  }

  type key struct {
    milestone uuid.UUID
    status    string
  }
  byKey := map[key]int64{}
  for _, c := range counts {
    byKey[key{c.MilestoneID, c.Status}] = c.Count
  }
  if byKey[key{m1.ID, types.TaskStatusCompleted}] != 1 {
    t.Fatalf("m1 completed count wrong")
  }
  if byKey[key{m1.ID, types.TaskStatusTodo}] != 1 {
    t.Fatalf("m1 todo count wrong")
  }
  if byKey[key{m2.ID, types.TaskStatusTodo}] != 1 {
    t.Fatalf("m2 todo count wrong")
  }
}

func TestTaskRepo_UpdateFields_NoopOnEmpty(t *testing.T) {
  db := testutil.DB(t)
  log := testutil.Logger(t)
  repo := NewTaskRepo(db, log)

  if err := repo.UpdateFields(context.Background(), nil, uuid.Nil, nil); err != nil {
    t.Fatalf("empty update should be a no-op: %v", err)
  }
}

func TestTaskRepo_FullDeleteByIDs(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  repo := NewTaskRepo(db, log)
  ctx := context.Background()

  user := seedUser(t, tx)
  roadmap := seedRoadmap(t, tx, user.ID, types.RoadmapStatusActive)
  milestone := seedMilestone(t, tx, roadmap.ID, 0)
  task := seedTask(t, tx, roadmap.ID, milestone.ID, 0, types.TaskStatusTodo)
  keep := seedTask(t, tx, roadmap.ID, milestone.ID, 1, types.TaskStatusTodo)

  if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{task.ID}); err != nil {
    t.Fatalf("FullDeleteByIDs: %v", err)
  }

  remaining, err := repo.GetByRoadmapIDs(ctx, tx, []uuid.UUID{roadmap.ID})
  if err != nil {
    t.Fatalf("GetByRoadmapIDs: %v", err)
  }
  if len(remaining) != 1 || remaining[0].ID != keep.ID {
    t.Fatalf("expected only task %s to remain", keep.ID)
  }
}
