package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/careerpilot/backend/internal/services"
)

type ProfileHandler struct {
  svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
  return &ProfileHandler{svc: svc}
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
  profile, err := h.svc.Get(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}

// PUT /api/profile
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
  var body services.UpsertProfileInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  profile, err := h.svc.Upsert(c.Request.Context(), body)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}
