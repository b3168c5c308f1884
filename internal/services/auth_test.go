package services

import (
  "context"
  "fmt"
  "net/http"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/repos/testutil"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
  t.Helper()
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  userRepo := repos.NewUserRepo(tx, log)
  userTokenRepo := repos.NewUserTokenRepo(tx, log)
  svc := NewAuthService(tx, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
  return svc, tx
}

func registeredUser(t *testing.T, svc AuthService) (*types.User, string) {
  t.Helper()
  password := "supersecret"
  user := &types.User{
    Email:     fmt.Sprintf("%s@test.local", uuid.NewString()),
    Password:  password,
    FirstName: "Auth",
    LastName:  "Tester",
  }
  if err := svc.RegisterUser(context.Background(), user); err != nil {
    t.Fatalf("RegisterUser: %v", err)
  }
  return user, password
}

func TestRegisterUser_HashesPasswordAndRejectsDuplicates(t *testing.T) {
  svc, _ := newAuthService(t)
  user, password := registeredUser(t, svc)

  if user.Password == password {
    t.Fatalf("password stored in plaintext")
  }

  dup := &types.User{
    Email:     user.Email,
    Password:  "anotherpass",
    FirstName: "Dup",
    LastName:  "User",
  }
  err := svc.RegisterUser(context.Background(), dup)
  if err == nil {
    t.Fatalf("duplicate email should be rejected")
  }
  if status, _ := apierr.StatusOf(err); status != http.StatusBadRequest {
    t.Fatalf("expected 400, got %d", status)
  }
}

func TestLoginUser_IssuesVerifiableToken(t *testing.T) {
  svc, _ := newAuthService(t)
  user, password := registeredUser(t, svc)
  ctx := context.Background()

  access, refresh, err := svc.LoginUser(ctx, user.Email, password)
  if err != nil {
    t.Fatalf("LoginUser: %v", err)
  }
  if access == "" || refresh == "" {
    t.Fatalf("expected both tokens")
  }

  authedCtx, err := svc.SetContextFromToken(ctx, access)
  if err != nil {
    t.Fatalf("SetContextFromToken: %v", err)
  }
  rd := requestdata.GetRequestData(authedCtx)
  if rd == nil || rd.UserID != user.ID {
    t.Fatalf("request data not attached for token")
  }
}

func TestLoginUser_WrongPassword(t *testing.T) {
  svc, _ := newAuthService(t)
  user, _ := registeredUser(t, svc)

  _, _, err := svc.LoginUser(context.Background(), user.Email, "wrongpass")
  if err == nil {
    t.Fatalf("wrong password should fail")
  }
  if status, code := apierr.StatusOf(err); status != http.StatusUnauthorized || code != "unauthorized" {
    t.Fatalf("expected 401 unauthorized, got %d %q", status, code)
  }
}

func TestRefreshUser_RotatesTokens(t *testing.T) {
  svc, _ := newAuthService(t)
  user, password := registeredUser(t, svc)
  ctx := context.Background()

  oldAccess, oldRefresh, err := svc.LoginUser(ctx, user.Email, password)
  if err != nil {
    t.Fatalf("LoginUser: %v", err)
  }

  newAccess, newRefresh, err := svc.RefreshUser(ctx, oldRefresh)
  if err != nil {
    t.Fatalf("RefreshUser: %v", err)
  }
  if newRefresh == oldRefresh {
    t.Fatalf("refresh token not rotated")
  }

  // The rotated-out pair is dead: old refresh cannot be replayed and the old
  // access token no longer resolves.
  if _, _, err := svc.RefreshUser(ctx, oldRefresh); err == nil {
    t.Fatalf("old refresh token should be rejected after rotation")
  }
  if _, err := svc.SetContextFromToken(ctx, oldAccess); err == nil {
    t.Fatalf("old access token should be revoked after rotation")
  }
  if _, err := svc.SetContextFromToken(ctx, newAccess); err != nil {
    t.Fatalf("new access token should resolve: %v", err)
  }
}

func TestLogoutUser_RevokesAllTokens(t *testing.T) {
  svc, _ := newAuthService(t)
  user, password := registeredUser(t, svc)
  ctx := context.Background()

  access, _, err := svc.LoginUser(ctx, user.Email, password)
  if err != nil {
    t.Fatalf("LoginUser: %v", err)
  }

  authedCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: user.ID, TokenString: access})
  if err := svc.LogoutUser(authedCtx); err != nil {
    t.Fatalf("LogoutUser: %v", err)
  }

  if _, err := svc.SetContextFromToken(ctx, access); err == nil {
    t.Fatalf("access token should be revoked after logout")
  }
}

func TestSetContextFromToken_GarbageToken(t *testing.T) {
  svc, _ := newAuthService(t)

  _, err := svc.SetContextFromToken(context.Background(), "not.a.jwt")
  if err == nil {
    t.Fatalf("garbage token should be rejected")
  }
  if status, _ := apierr.StatusOf(err); status != http.StatusUnauthorized {
    t.Fatalf("expected 401, got %d", status)
  }
}
