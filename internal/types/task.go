package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  TaskStatusTodo       = "todo"
  TaskStatusInProgress = "in-progress"
  TaskStatusCompleted  = "completed"
)

const (
  TaskCategoryLearning = "learning"
  TaskCategoryProject  = "project"
  TaskCategoryPractice = "practice"
  TaskCategoryReading  = "reading"
)

// Task is the atomic unit of work on the kanban board. CompletedAt is stamped
// when status enters completed; moving the task back out of completed leaves
// the stamp in place.
type Task struct {
  ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  RoadmapID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"roadmap_id"`
  Roadmap        *Roadmap       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
  MilestoneID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"milestone_id"`
  Milestone      *Milestone     `gorm:"constraint:OnDelete:CASCADE;foreignKey:MilestoneID;references:ID" json:"milestone,omitempty"`
  Title          string         `gorm:"column:title;not null" json:"title"`
  Description    string         `gorm:"column:description" json:"description"`
  Category       string         `gorm:"column:category;not null;default:'learning'" json:"category"`
  Priority       string         `gorm:"column:priority;not null;default:'medium'" json:"priority"`
  Difficulty     string         `gorm:"column:difficulty;not null;default:'beginner'" json:"difficulty"`
  EstimatedHours int            `gorm:"column:estimated_hours;not null;default:0" json:"estimated_hours"`
  ActualHours    *float64       `gorm:"column:actual_hours" json:"actual_hours,omitempty"`
  Deadline       *time.Time     `gorm:"column:deadline" json:"deadline,omitempty"`
  SequenceOrder  int            `gorm:"column:sequence_order;not null;default:0" json:"sequence_order"`
  Resources      datatypes.JSON `gorm:"column:resources;type:jsonb" json:"resources"`
  Status         string         `gorm:"column:status;not null;default:'todo';index" json:"status"`
  CompletedAt    *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
  CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Task) TableName() string { return "task" }

func ValidTaskStatus(s string) bool {
  switch s {
  case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
    return true
  }
  return false
}
