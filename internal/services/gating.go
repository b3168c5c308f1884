package services

import (
  "math"

  "github.com/google/uuid"

  "github.com/careerpilot/backend/internal/types"
)

// isBlocked reports whether a task is gated by incomplete prerequisites. Only
// todo tasks can be blocked; a task already in progress or completed has
// passed the gate. Prerequisite IDs with no known status (edge pointing at a
// task deleted in the same read window) do not block.
func isBlocked(status string, prereqIDs []uuid.UUID, statusByID map[uuid.UUID]string) bool {
  if status != types.TaskStatusTodo {
    return false
  }
  for _, id := range prereqIDs {
    st, ok := statusByID[id]
    if !ok {
      continue
    }
    if st != types.TaskStatusCompleted {
      return true
    }
  }
  return false
}

// incompletePrereqs returns the prerequisite tasks that are not completed.
func incompletePrereqs(prereqs []*types.Task) []*types.Task {
  var out []*types.Task
  for _, p := range prereqs {
    if p != nil && p.Status != types.TaskStatusCompleted {
      out = append(out, p)
    }
  }
  return out
}

// progressPercentage rounds completed/total to a whole percent; 0 when there
// are no tasks.
func progressPercentage(completed, total int) int {
  if total <= 0 {
    return 0
  }
  return int(math.Round(float64(completed) / float64(total) * 100))
}
