package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  RoadmapStatusActive   = "active"
  RoadmapStatusArchived = "archived"
)

// Roadmap is the top-level learning plan. At most one roadmap per user is
// active at any instant; regeneration archives the previous one instead of
// deleting it. TotalTasks/CompletedTasks/ProgressPercentage are cached
// counters refreshed by the progress service; live task rows stay the source
// of truth.
type Roadmap struct {
  ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
  User               *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Title              string    `gorm:"column:title;not null" json:"title"`
  Description        string    `gorm:"column:description" json:"description"`
  EstimatedHours     int       `gorm:"column:estimated_hours;not null;default:0" json:"estimated_hours"`
  Status             string    `gorm:"column:status;not null;default:'active';index" json:"status"`
  TotalTasks         int       `gorm:"column:total_tasks;not null;default:0" json:"total_tasks"`
  CompletedTasks     int       `gorm:"column:completed_tasks;not null;default:0" json:"completed_tasks"`
  ProgressPercentage int       `gorm:"column:progress_percentage;not null;default:0" json:"progress_percentage"`
  CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Roadmap) TableName() string { return "roadmap" }
