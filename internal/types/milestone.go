package types

import (
  "time"

  "github.com/google/uuid"
)

// Milestone is an ordered phase of a roadmap. SequenceOrder is an ordering
// hint for display, not a scheduling constraint.
type Milestone struct {
  ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  RoadmapID     uuid.UUID `gorm:"type:uuid;not null;index" json:"roadmap_id"`
  Roadmap       *Roadmap  `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
  Title         string    `gorm:"column:title;not null" json:"title"`
  Description   string    `gorm:"column:description" json:"description"`
  SequenceOrder int       `gorm:"column:sequence_order;not null;default:0" json:"sequence_order"`
  CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Milestone) TableName() string { return "milestone" }
