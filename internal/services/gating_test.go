package services

import (
  "testing"

  "github.com/google/uuid"

  "github.com/careerpilot/backend/internal/types"
)

func TestIsBlocked_TodoWithIncompletePrereq(t *testing.T) {
  prereq := uuid.New()
  statusByID := map[uuid.UUID]string{prereq: types.TaskStatusInProgress}

  if !isBlocked(types.TaskStatusTodo, []uuid.UUID{prereq}, statusByID) {
    t.Fatalf("todo task with in-progress prerequisite should be blocked")
  }
}

func TestIsBlocked_TodoWithCompletedPrereqs(t *testing.T) {
  a, b := uuid.New(), uuid.New()
  statusByID := map[uuid.UUID]string{
    a: types.TaskStatusCompleted,
    b: types.TaskStatusCompleted,
  }

  if isBlocked(types.TaskStatusTodo, []uuid.UUID{a, b}, statusByID) {
    t.Fatalf("todo task with all prerequisites completed should not be blocked")
  }
}

func TestIsBlocked_OnlyTodoCanBeBlocked(t *testing.T) {
  prereq := uuid.New()
  statusByID := map[uuid.UUID]string{prereq: types.TaskStatusTodo}

  if isBlocked(types.TaskStatusInProgress, []uuid.UUID{prereq}, statusByID) {
    t.Fatalf("in-progress task should never report blocked")
  }
  if isBlocked(types.TaskStatusCompleted, []uuid.UUID{prereq}, statusByID) {
    t.Fatalf("completed task should never report blocked")
  }
}

func TestIsBlocked_UnknownPrereqDoesNotBlock(t *testing.T) {
  if isBlocked(types.TaskStatusTodo, []uuid.UUID{uuid.New()}, map[uuid.UUID]string{}) {
    t.Fatalf("prerequisite with no known status should not block")
  }
}

func TestIsBlocked_NoPrereqs(t *testing.T) {
  if isBlocked(types.TaskStatusTodo, nil, map[uuid.UUID]string{}) {
    t.Fatalf("task without prerequisites should not be blocked")
  }
}

func TestIncompletePrereqs(t *testing.T) {
  done := &types.Task{Status: types.TaskStatusCompleted}
  todo := &types.Task{Status: types.TaskStatusTodo}
  doing := &types.Task{Status: types.TaskStatusInProgress}

  out := incompletePrereqs([]*types.Task{done, todo, nil, doing})
  if len(out) != 2 {
    t.Fatalf("expected 2 incomplete prerequisites, got %d", len(out))
  }
  if out[0] != todo || out[1] != doing {
    t.Fatalf("unexpected incomplete set")
  }
}

func TestProgressPercentage(t *testing.T) {
  cases := []struct {
    completed, total, want int
  }{
    {0, 0, 0},
    {5, 0, 0},
    {0, 10, 0},
    {10, 10, 100},
    {1, 3, 33},
    {2, 3, 67},
    {1, 8, 13},
    {1, 2, 50},
  }
  for _, c := range cases {
    if got := progressPercentage(c.completed, c.total); got != c.want {
      t.Fatalf("progressPercentage(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
    }
  }
}
