package main

import (
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/careerpilot/backend/internal/db"
  "github.com/careerpilot/backend/internal/handlers"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/middleware"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/server"
  "github.com/careerpilot/backend/internal/services"
  "github.com/careerpilot/backend/internal/utils"
)

func main() {
  mode := os.Getenv("APP_MODE")
  log, err := logger.New(mode)
  if err != nil {
    fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
  if jwtSecretKey == "" {
    log.Fatal("JWT_SECRET_KEY is required")
  }
  accessTTL := time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second
  refreshTTL := time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second
  port := utils.GetEnv("PORT", "8080", log)
  allowedOrigins := strings.Split(utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000", log), ",")

  pg, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Failed to initialize postgres", "error", err)
  }
  if err := pg.AutoMigrateAll(); err != nil {
    log.Fatal("Failed to migrate postgres tables", "error", err)
  }
  gormDB := pg.DB()

  userRepo := repos.NewUserRepo(gormDB, log)
  userTokenRepo := repos.NewUserTokenRepo(gormDB, log)
  profileRepo := repos.NewProfileRepo(gormDB, log)
  roadmapRepo := repos.NewRoadmapRepo(gormDB, log)
  milestoneRepo := repos.NewMilestoneRepo(gormDB, log)
  taskRepo := repos.NewTaskRepo(gormDB, log)
  depRepo := repos.NewTaskDependencyRepo(gormDB, log)

  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Warn("AI client unavailable, roadmap generation will use fallback templates", "error", err)
    aiClient = nil
  }

  authSvc := services.NewAuthService(gormDB, log, userRepo, userTokenRepo, jwtSecretKey, accessTTL, refreshTTL)
  userSvc := services.NewUserService(gormDB, log, userRepo)
  profileSvc := services.NewProfileService(gormDB, log, profileRepo)
  generatorSvc := services.NewRoadmapGeneratorService(log, aiClient)
  roadmapSvc := services.NewRoadmapService(gormDB, log, generatorSvc, profileRepo, roadmapRepo, milestoneRepo, taskRepo, depRepo)
  taskSvc := services.NewTaskService(gormDB, log, roadmapRepo, milestoneRepo, taskRepo, depRepo)
  progressSvc := services.NewProgressService(gormDB, log, roadmapRepo, taskRepo)

  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    handlers.NewAuthHandler(authSvc),
    UserHandler:    handlers.NewUserHandler(userSvc),
    ProfileHandler: handlers.NewProfileHandler(profileSvc),
    RoadmapHandler: handlers.NewRoadmapHandler(roadmapSvc, progressSvc),
    TaskHandler:    handlers.NewTaskHandler(taskSvc),
    AuthMiddleware: middleware.NewAuthMiddleware(log, authSvc),
    AllowedOrigins: allowedOrigins,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
