package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

type UpsertProfileInput struct {
  TargetRole      string   `json:"target_role"`
  ExperienceLevel string   `json:"experience_level"`
  CurrentSkills   []string `json:"current_skills"`
  WeeklyHours     int      `json:"weekly_hours"`
}

type ProfileService interface {
  Get(ctx context.Context) (*types.Profile, error)
  Upsert(ctx context.Context, input UpsertProfileInput) (*types.Profile, error)
}

type profileService struct {
  db          *gorm.DB
  log         *logger.Logger
  profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
  return &profileService{
    db:          db,
    log:         baseLog.With("service", "ProfileService"),
    profileRepo: profileRepo,
  }
}

func (s *profileService) Get(ctx context.Context) (*types.Profile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  profiles, err := s.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load profile: %w", err))
  }
  if len(profiles) == 0 {
    return nil, nil
  }
  return profiles[0], nil
}

func (s *profileService) Upsert(ctx context.Context, input UpsertProfileInput) (*types.Profile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  if strings.TrimSpace(input.TargetRole) == "" {
    return nil, apierr.Invalid(fmt.Errorf("target_role required"))
  }
  level := input.ExperienceLevel
  switch level {
  case types.ExperienceBeginner, types.ExperienceIntermediate, types.ExperienceAdvanced:
  case "":
    level = types.ExperienceBeginner
  default:
    return nil, apierr.Invalid(fmt.Errorf("invalid experience_level %q", level))
  }

  skills := datatypes.JSON([]byte("[]"))
  if len(input.CurrentSkills) > 0 {
    raw, mErr := json.Marshal(input.CurrentSkills)
    if mErr != nil {
      return nil, apierr.Invalid(fmt.Errorf("encode skills: %w", mErr))
    }
    skills = datatypes.JSON(raw)
  }

  weeklyHours := input.WeeklyHours
  if weeklyHours <= 0 {
    weeklyHours = 10
  }

  var result *types.Profile
  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    profiles, err := s.profileRepo.GetByUserIDs(ctx, tx, []uuid.UUID{rd.UserID})
    if err != nil {
      return apierr.Internal(fmt.Errorf("load profile: %w", err))
    }

    if len(profiles) > 0 && profiles[0] != nil {
      existing := profiles[0]
      if err := s.profileRepo.UpdateFields(ctx, tx, existing.ID, map[string]interface{}{
        "target_role":      strings.TrimSpace(input.TargetRole),
        "experience_level": level,
        "current_skills":   skills,
        "weekly_hours":     weeklyHours,
        "updated_at":       time.Now(),
      }); err != nil {
        return apierr.Internal(fmt.Errorf("update profile: %w", err))
      }
      existing.TargetRole = strings.TrimSpace(input.TargetRole)
      existing.ExperienceLevel = level
      existing.CurrentSkills = skills
      existing.WeeklyHours = weeklyHours
      result = existing
      return nil
    }

    profile := &types.Profile{
      ID:              uuid.New(),
      UserID:          rd.UserID,
      TargetRole:      strings.TrimSpace(input.TargetRole),
      ExperienceLevel: level,
      CurrentSkills:   skills,
      WeeklyHours:     weeklyHours,
    }
    if _, err := s.profileRepo.Create(ctx, tx, []*types.Profile{profile}); err != nil {
      return apierr.Internal(fmt.Errorf("create profile: %w", err))
    }
    result = profile
    return nil
  })
  if err != nil {
    return nil, err
  }
  return result, nil
}
