package services

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/repos/testutil"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

func newProfileService(t *testing.T) (ProfileService, *gorm.DB) {
  t.Helper()
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  svc := NewProfileService(tx, log, repos.NewProfileRepo(tx, log))
  return svc, tx
}

func profileTestUser(t *testing.T, tx *gorm.DB) context.Context {
  t.Helper()
  user := &types.User{
    Email:     fmt.Sprintf("%s@test.local", uuid.NewString()),
    Password:  "hashed",
    FirstName: "Profile",
    LastName:  "Tester",
  }
  if err := tx.Create(user).Error; err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: user.ID})
}

func TestProfileService_UpsertCreatesThenUpdates(t *testing.T) {
  svc, tx := newProfileService(t)
  ctx := profileTestUser(t, tx)

  created, err := svc.Upsert(ctx, UpsertProfileInput{
    TargetRole:      "Data Engineer",
    ExperienceLevel: types.ExperienceIntermediate,
    CurrentSkills:   []string{"sql", "python"},
    WeeklyHours:     15,
  })
  if err != nil {
    t.Fatalf("Upsert create: %v", err)
  }
  if created.TargetRole != "Data Engineer" || created.WeeklyHours != 15 {
    t.Fatalf("unexpected created profile: %+v", created)
  }

  var skills []string
  if err := json.Unmarshal(created.CurrentSkills, &skills); err != nil || len(skills) != 2 {
    t.Fatalf("skills not stored as JSON array: %v %v", skills, err)
  }

  updated, err := svc.Upsert(ctx, UpsertProfileInput{
    TargetRole:      "Platform Engineer",
    ExperienceLevel: types.ExperienceAdvanced,
    WeeklyHours:     20,
  })
  if err != nil {
    t.Fatalf("Upsert update: %v", err)
  }
  if updated.ID != created.ID {
    t.Fatalf("update must reuse the existing row")
  }
  if updated.TargetRole != "Platform Engineer" || updated.ExperienceLevel != types.ExperienceAdvanced {
    t.Fatalf("fields not updated: %+v", updated)
  }

  got, err := svc.Get(ctx)
  if err != nil {
    t.Fatalf("Get: %v", err)
  }
  if got == nil || got.TargetRole != "Platform Engineer" {
    t.Fatalf("Get returned stale profile: %+v", got)
  }
}

func TestProfileService_UpsertDefaults(t *testing.T) {
  svc, tx := newProfileService(t)
  ctx := profileTestUser(t, tx)

  profile, err := svc.Upsert(ctx, UpsertProfileInput{TargetRole: "QA Engineer"})
  if err != nil {
    t.Fatalf("Upsert: %v", err)
  }
  if profile.ExperienceLevel != types.ExperienceBeginner {
    t.Fatalf("empty level should default to beginner, got %q", profile.ExperienceLevel)
  }
  if profile.WeeklyHours != 10 {
    t.Fatalf("weekly hours should default to 10, got %d", profile.WeeklyHours)
  }
}

func TestProfileService_UpsertValidation(t *testing.T) {
  svc, tx := newProfileService(t)
  ctx := profileTestUser(t, tx)

  _, err := svc.Upsert(ctx, UpsertProfileInput{TargetRole: "  "})
  if err == nil {
    t.Fatalf("blank target_role should be rejected")
  }
  if status, _ := apierr.StatusOf(err); status != http.StatusBadRequest {
    t.Fatalf("expected 400, got %d", status)
  }

  _, err = svc.Upsert(ctx, UpsertProfileInput{TargetRole: "Dev", ExperienceLevel: "wizard"})
  if err == nil {
    t.Fatalf("unknown experience level should be rejected")
  }
}

func TestProfileService_GetWithoutProfile(t *testing.T) {
  svc, tx := newProfileService(t)
  ctx := profileTestUser(t, tx)

  got, err := svc.Get(ctx)
  if err != nil {
    t.Fatalf("Get: %v", err)
  }
  if got != nil {
    t.Fatalf("expected nil profile before upsert, got %+v", got)
  }
}
