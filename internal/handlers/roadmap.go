package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/careerpilot/backend/internal/services"
)

type RoadmapHandler struct {
  roadmapSvc  services.RoadmapService
  progressSvc services.ProgressService
}

func NewRoadmapHandler(roadmapSvc services.RoadmapService, progressSvc services.ProgressService) *RoadmapHandler {
  return &RoadmapHandler{roadmapSvc: roadmapSvc, progressSvc: progressSvc}
}

// POST /api/roadmap/generate
func (h *RoadmapHandler) Generate(c *gin.Context) {
  roadmap, totalTasks, err := h.roadmapSvc.GenerateForUser(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"roadmap_id": roadmap.ID, "total_tasks": totalTasks})
}

// GET /api/roadmap
func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
  roadmap, err := h.roadmapSvc.GetActiveRoadmap(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"roadmap": roadmap})
}

// GET /api/milestones
func (h *RoadmapHandler) ListMilestones(c *gin.Context) {
  milestones, err := h.roadmapSvc.ListMilestones(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"milestones": milestones})
}

// GET /api/tasks
func (h *RoadmapHandler) ListTasks(c *gin.Context) {
  tasks, err := h.roadmapSvc.ListTasks(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"tasks": tasks})
}

// GET /api/dependencies
func (h *RoadmapHandler) ListDependencies(c *gin.Context) {
  deps, err := h.roadmapSvc.ListDependencies(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"dependencies": deps})
}

// GET /api/progress
func (h *RoadmapHandler) GetProgress(c *gin.Context) {
  summary, err := h.progressSvc.Refresh(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"progress": summary})
}
