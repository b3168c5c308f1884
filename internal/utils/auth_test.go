package utils

import (
  "testing"

  "golang.org/x/crypto/bcrypt"

  "github.com/careerpilot/backend/internal/types"
)

func TestNormalizeUserFields(t *testing.T) {
  user := &types.User{
    Email:     "  Jordan@Example.COM ",
    FirstName: " Jordan ",
    LastName:  " Lee ",
  }
  NormalizeUserFields(user)
  if user.Email != "jordan@example.com" {
    t.Fatalf("email not normalized: %q", user.Email)
  }
  if user.FirstName != "Jordan" || user.LastName != "Lee" {
    t.Fatalf("names not trimmed: %q %q", user.FirstName, user.LastName)
  }
}

func TestValidateRegistration(t *testing.T) {
  valid := func() *types.User {
    return &types.User{Email: "a@b.com", Password: "longenough", FirstName: "A", LastName: "B"}
  }

  if err := ValidateRegistration(valid()); err != nil {
    t.Fatalf("valid user rejected: %v", err)
  }

  u := valid()
  u.Email = "not-an-email"
  if err := ValidateRegistration(u); err == nil {
    t.Fatalf("email without @ should be rejected")
  }

  u = valid()
  u.Password = "short"
  if err := ValidateRegistration(u); err == nil {
    t.Fatalf("short password should be rejected")
  }

  u = valid()
  u.FirstName = ""
  if err := ValidateRegistration(u); err == nil {
    t.Fatalf("missing first name should be rejected")
  }
}

func TestHashPassword(t *testing.T) {
  user := &types.User{Password: "supersecret"}
  if err := HashPassword(user); err != nil {
    t.Fatalf("HashPassword: %v", err)
  }
  if user.Password == "supersecret" {
    t.Fatalf("password not hashed")
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")); err != nil {
    t.Fatalf("hash does not verify: %v", err)
  }
}
