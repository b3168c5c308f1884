// Package testutil provides shared helpers for repository and service
// tests that need a real Postgres database. Tests are skipped unless
// TEST_POSTGRES_DSN is set.
package testutil

import (
  "os"
  "testing"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
)

func Logger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("dev")
  if err != nil {
    t.Fatalf("init logger: %v", err)
  }
  t.Cleanup(log.Sync)
  return log
}

// DB opens the test database and runs migrations. Callers get the raw
// handle; use Tx for per-test isolation.
func DB(t *testing.T) *gorm.DB {
  t.Helper()
  dsn := os.Getenv("TEST_POSTGRES_DSN")
  if dsn == "" {
    t.Skip("TEST_POSTGRES_DSN not set")
  }

  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    t.Fatalf("connect postgres: %v", err)
  }
  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    t.Fatalf("enable uuid-ossp: %v", err)
  }
  if err := db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Profile{},
    &types.Roadmap{},
    &types.Milestone{},
    &types.Task{},
    &types.TaskDependency{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return db
}

// Tx begins a transaction that is rolled back when the test finishes,
// so tests never leak rows into each other.
func Tx(t *testing.T, db *gorm.DB) *gorm.DB {
  t.Helper()
  tx := db.Begin()
  if tx.Error != nil {
    t.Fatalf("begin tx: %v", tx.Error)
  }
  t.Cleanup(func() {
    _ = tx.Rollback()
  })
  return tx
}
