package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/services"
)

type AuthMiddleware struct {
  log     *logger.Logger
  authSvc services.AuthService
}

func NewAuthMiddleware(baseLog *logger.Logger, authSvc services.AuthService) *AuthMiddleware {
  return &AuthMiddleware{
    log:     baseLog.With("middleware", "AuthMiddleware"),
    authSvc: authSvc,
  }
}

// RequireAuth extracts the bearer token, validates it against the token
// store and attaches request data to the context. Requests without a
// valid token are rejected with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "unauthorized", "message": "missing token"}})
      return
    }

    ctx, err := m.authSvc.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      m.log.Debug("token rejected", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "unauthorized", "message": "invalid token"}})
      return
    }

    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "unauthorized", "message": "invalid token"}})
      return
    }

    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func extractToken(c *gin.Context) string {
  header := c.GetHeader("Authorization")
  if strings.HasPrefix(header, "Bearer ") {
    return strings.TrimPrefix(header, "Bearer ")
  }
  return c.Query("token")
}
