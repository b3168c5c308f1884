package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/careerpilot/backend/internal/services"
  "github.com/careerpilot/backend/internal/types"
)

type AuthHandler struct {
  svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
  return &AuthHandler{svc: svc}
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
  var body struct {
    Email     string `json:"email"`
    Password  string `json:"password"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  user := &types.User{
    Email:     body.Email,
    Password:  body.Password,
    FirstName: body.FirstName,
    LastName:  body.LastName,
  }
  if err := h.svc.RegisterUser(c.Request.Context(), user); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
  var body struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  access, refresh, err := h.svc.LoginUser(c.Request.Context(), body.Email, body.Password)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"access_token": access, "refresh_token": refresh})
}

// POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
  var body struct {
    RefreshToken string `json:"refresh_token"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  access, refresh, err := h.svc.RefreshUser(c.Request.Context(), body.RefreshToken)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"access_token": access, "refresh_token": refresh})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
  if err := h.svc.LogoutUser(c.Request.Context()); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"status": "logged out"})
}
