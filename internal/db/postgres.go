package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
  "github.com/careerpilot/backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "careerpilot", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Profile{},
    &types.Roadmap{},
    &types.Milestone{},
    &types.Task{},
    &types.TaskDependency{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name string
    ddl  string
  }{
    {"fk_user_token_user_id", `
      ALTER TABLE "user_token"
      ADD CONSTRAINT "fk_user_token_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_profile_user_id", `
      ALTER TABLE "profile"
      ADD CONSTRAINT "fk_profile_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_roadmap_user_id", `
      ALTER TABLE "roadmap"
      ADD CONSTRAINT "fk_roadmap_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_milestone_roadmap_id", `
      ALTER TABLE "milestone"
      ADD CONSTRAINT "fk_milestone_roadmap_id"
      FOREIGN KEY ("roadmap_id") REFERENCES "roadmap"("id")
      ON DELETE CASCADE`},
    {"fk_task_roadmap_id", `
      ALTER TABLE "task"
      ADD CONSTRAINT "fk_task_roadmap_id"
      FOREIGN KEY ("roadmap_id") REFERENCES "roadmap"("id")
      ON DELETE CASCADE`},
    {"fk_task_milestone_id", `
      ALTER TABLE "task"
      ADD CONSTRAINT "fk_task_milestone_id"
      FOREIGN KEY ("milestone_id") REFERENCES "milestone"("id")
      ON DELETE CASCADE`},
    {"fk_task_dependency_task_id", `
      ALTER TABLE "task_dependency"
      ADD CONSTRAINT "fk_task_dependency_task_id"
      FOREIGN KEY ("task_id") REFERENCES "task"("id")
      ON DELETE CASCADE`},
    {"fk_task_dependency_depends_on_task_id", `
      ALTER TABLE "task_dependency"
      ADD CONSTRAINT "fk_task_dependency_depends_on_task_id"
      FOREIGN KEY ("depends_on_task_id") REFERENCES "task"("id")
      ON DELETE CASCADE`},
  }
  for _, c := range constraints {
    if err := s.db.Exec(fmt.Sprintf(`
      DO $$ BEGIN
        IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
          %s;
        END IF;
      END $$;`, c.name, c.ddl)).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
