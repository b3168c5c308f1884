package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/careerpilot/backend/internal/services"
)

type UserHandler struct {
  svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
  return &UserHandler{svc: svc}
}

// GET /api/user
func (h *UserHandler) GetMe(c *gin.Context) {
  user, err := h.svc.GetMe(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}
