package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Profile is the career profile the roadmap generator reads: target role,
// experience level, and current skills drive the generated template.
type Profile struct {
  ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
  User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  TargetRole      string         `gorm:"column:target_role;not null" json:"target_role"`
  ExperienceLevel string         `gorm:"column:experience_level;not null;default:'beginner'" json:"experience_level"`
  CurrentSkills   datatypes.JSON `gorm:"column:current_skills;type:jsonb" json:"current_skills"`
  WeeklyHours     int            `gorm:"column:weekly_hours;not null;default:10" json:"weekly_hours"`
  CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }

const (
  ExperienceBeginner     = "beginner"
  ExperienceIntermediate = "intermediate"
  ExperienceAdvanced     = "advanced"
)
