package utils

import (
  "fmt"
  "strings"

  "golang.org/x/crypto/bcrypt"

  "github.com/careerpilot/backend/internal/types"
)

func NormalizeUserFields(user *types.User) {
  if user == nil {
    return
  }
  user.Email = strings.ToLower(strings.TrimSpace(user.Email))
  user.FirstName = strings.TrimSpace(user.FirstName)
  user.LastName = strings.TrimSpace(user.LastName)
}

func ValidateRegistration(user *types.User) error {
  if user == nil {
    return fmt.Errorf("user required")
  }
  if user.Email == "" || !strings.Contains(user.Email, "@") {
    return fmt.Errorf("valid email required")
  }
  if len(user.Password) < 8 {
    return fmt.Errorf("password must be at least 8 characters")
  }
  if user.FirstName == "" || user.LastName == "" {
    return fmt.Errorf("first and last name required")
  }
  return nil
}

func HashPassword(user *types.User) error {
  hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("hash password: %w", err)
  }
  user.Password = string(hashed)
  return nil
}
