package types

import (
  "time"

  "github.com/google/uuid"
)

// TaskDependency is a directed must-complete-before edge: TaskID cannot move
// forward until DependsOnTaskID is completed. Multiple prerequisites per task
// combine with AND semantics. The edge set is acyclic by construction but is
// not validated; a cycle would leave every member blocked.
type TaskDependency struct {
  ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  RoadmapID       uuid.UUID `gorm:"type:uuid;not null;index" json:"roadmap_id"`
  Roadmap         *Roadmap  `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
  TaskID          uuid.UUID `gorm:"type:uuid;not null;index:idx_task_depends,unique" json:"task_id"`
  Task            *Task     `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
  DependsOnTaskID uuid.UUID `gorm:"type:uuid;not null;index:idx_task_depends,unique" json:"depends_on_task_id"`
  DependsOnTask   *Task     `gorm:"constraint:OnDelete:CASCADE;foreignKey:DependsOnTaskID;references:ID" json:"depends_on_task,omitempty"`
  CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (TaskDependency) TableName() string { return "task_dependency" }
