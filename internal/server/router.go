package server

import (
  "time"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/careerpilot/backend/internal/handlers"
  "github.com/careerpilot/backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler    *handlers.AuthHandler
  UserHandler    *handlers.UserHandler
  ProfileHandler *handlers.ProfileHandler
  RoadmapHandler *handlers.RoadmapHandler
  TaskHandler    *handlers.TaskHandler
  AuthMiddleware *middleware.AuthMiddleware
  AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(cors.New(cors.Config{
    AllowOrigins:     cfg.AllowedOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
    AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
    ExposeHeaders:    []string{"Content-Length"},
    AllowCredentials: true,
    MaxAge:           12 * time.Hour,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  {
    api.POST("/refresh", cfg.AuthHandler.Refresh)
    api.POST("/logout", cfg.AuthHandler.Logout)

    api.GET("/user", cfg.UserHandler.GetMe)

    api.GET("/profile", cfg.ProfileHandler.GetProfile)
    api.PUT("/profile", cfg.ProfileHandler.UpsertProfile)

    api.POST("/roadmap/generate", cfg.RoadmapHandler.Generate)
    api.GET("/roadmap", cfg.RoadmapHandler.GetRoadmap)
    api.GET("/milestones", cfg.RoadmapHandler.ListMilestones)
    api.GET("/tasks", cfg.RoadmapHandler.ListTasks)
    api.GET("/dependencies", cfg.RoadmapHandler.ListDependencies)
    api.GET("/progress", cfg.RoadmapHandler.GetProgress)

    api.POST("/tasks", cfg.TaskHandler.Create)
    api.PUT("/tasks/:id/move", cfg.TaskHandler.Move)
    api.PUT("/tasks/:id", cfg.TaskHandler.Update)
    api.DELETE("/tasks/:id", cfg.TaskHandler.Delete)
  }

  return router
}
