package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/careerpilot/backend/internal/apierr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondServiceError maps a service error onto the HTTP taxonomy. Blocked
// moves keep their human-readable reason; unrecognized errors surface as a
// generic retryable failure.
func RespondServiceError(c *gin.Context, err error) {
  status, code := apierr.StatusOf(err)
  RespondError(c, status, code, err)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
