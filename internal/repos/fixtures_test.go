package repos

import (
  "fmt"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/types"
)

func seedUser(t *testing.T, tx *gorm.DB) *types.User {
  t.Helper()
  user := &types.User{
    Email:     fmt.Sprintf("%s@test.local", uuid.NewString()),
    Password:  "hashed",
    FirstName: "Test",
    LastName:  "User",
  }
  if err := tx.Create(user).Error; err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return user
}

func seedRoadmap(t *testing.T, tx *gorm.DB, userID uuid.UUID, status string) *types.Roadmap {
  t.Helper()
  roadmap := &types.Roadmap{
    UserID: userID,
    Title:  "Test Roadmap",
    Status: status,
  }
  if err := tx.Create(roadmap).Error; err != nil {
    t.Fatalf("seed roadmap: %v", err)
  }
  return roadmap
}

func seedMilestone(t *testing.T, tx *gorm.DB, roadmapID uuid.UUID, order int) *types.Milestone {
  t.Helper()
  milestone := &types.Milestone{
    RoadmapID:     roadmapID,
    Title:         fmt.Sprintf("Milestone %d", order),
    SequenceOrder: order,
  }
  if err := tx.Create(milestone).Error; err != nil {
    t.Fatalf("seed milestone: %v", err)
  }
  return milestone
}

func seedTask(t *testing.T, tx *gorm.DB, roadmapID, milestoneID uuid.UUID, order int, status string) *types.Task {
  t.Helper()
  task := &types.Task{
    RoadmapID:     roadmapID,
    MilestoneID:   milestoneID,
    Title:         fmt.Sprintf("Task %d", order),
    Category:      types.TaskCategoryLearning,
    Priority:      "medium",
    Difficulty:    "beginner",
    SequenceOrder: order,
    Status:        status,
  }
  if err := tx.Create(task).Error; err != nil {
    t.Fatalf("seed task: %v", err)
  }
  return task
}
