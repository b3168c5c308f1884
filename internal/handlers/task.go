package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/careerpilot/backend/internal/services"
)

type TaskHandler struct {
  svc services.TaskService
}

func NewTaskHandler(svc services.TaskService) *TaskHandler {
  return &TaskHandler{svc: svc}
}

// PUT /api/tasks/:id/move
func (h *TaskHandler) Move(c *gin.Context) {
  taskID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  var body struct {
    Status string `json:"status"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  task, err := h.svc.Move(c.Request.Context(), taskID, body.Status)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"task": task})
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
  taskID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  var body services.UpdateTaskInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  task, err := h.svc.Update(c.Request.Context(), taskID, body)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"task": task})
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
  var body services.CreateTaskInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  task, err := h.svc.Create(c.Request.Context(), body)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"task": task})
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
  taskID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  if err := h.svc.Delete(c.Request.Context(), taskID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"status": "deleted"})
}
