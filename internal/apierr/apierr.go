package apierr

import (
  "errors"
  "fmt"
  "net/http"
)

type Error struct {
  Status int
  Code   string
  Err    error
}

func (e *Error) Error() string {
  if e == nil {
    return ""
  }
  if e.Err != nil {
    return e.Err.Error()
  }
  if e.Code != "" {
    return e.Code
  }
  if e.Status != 0 {
    return fmt.Sprintf("api error (%d)", e.Status)
  }
  return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
  return &Error{Status: status, Code: code, Err: err}
}

func Invalid(err error) *Error {
  return New(http.StatusBadRequest, "invalid_request", err)
}

func NotFound(err error) *Error {
  return New(http.StatusNotFound, "not_found", err)
}

func Blocked(err error) *Error {
  return New(http.StatusBadRequest, "blocked", err)
}

func Unauthorized(err error) *Error {
  return New(http.StatusUnauthorized, "unauthorized", err)
}

func Upstream(err error) *Error {
  return New(http.StatusInternalServerError, "upstream_error", err)
}

func Internal(err error) *Error {
  return New(http.StatusInternalServerError, "internal_error", err)
}

// StatusOf maps any error to an HTTP status and code. Unrecognized errors are
// treated as retryable internal failures.
func StatusOf(err error) (int, string) {
  var ae *Error
  if errors.As(err, &ae) {
    status := ae.Status
    if status == 0 {
      status = http.StatusInternalServerError
    }
    return status, ae.Code
  }
  return http.StatusInternalServerError, "internal_error"
}
