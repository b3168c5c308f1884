package apierr

import (
  "fmt"
  "net/http"
  "testing"
)

func TestStatusOf_MapsTaggedErrors(t *testing.T) {
  cases := []struct {
    err        error
    wantStatus int
    wantCode   string
  }{
    {Invalid(fmt.Errorf("bad")), http.StatusBadRequest, "invalid_request"},
    {NotFound(fmt.Errorf("missing")), http.StatusNotFound, "not_found"},
    {Blocked(fmt.Errorf("gated")), http.StatusBadRequest, "blocked"},
    {Unauthorized(fmt.Errorf("nope")), http.StatusUnauthorized, "unauthorized"},
    {Upstream(fmt.Errorf("ai down")), http.StatusInternalServerError, "upstream_error"},
    {Internal(fmt.Errorf("boom")), http.StatusInternalServerError, "internal_error"},
  }
  for _, c := range cases {
    status, code := StatusOf(c.err)
    if status != c.wantStatus || code != c.wantCode {
      t.Fatalf("StatusOf(%v) = (%d, %q), want (%d, %q)", c.err, status, code, c.wantStatus, c.wantCode)
    }
  }
}

func TestStatusOf_UnwrapsWrappedErrors(t *testing.T) {
  wrapped := fmt.Errorf("service layer: %w", NotFound(fmt.Errorf("task not found")))
  status, code := StatusOf(wrapped)
  if status != http.StatusNotFound || code != "not_found" {
    t.Fatalf("wrapped error lost its tag: (%d, %q)", status, code)
  }
}

func TestStatusOf_PlainErrorIsInternal(t *testing.T) {
  status, code := StatusOf(fmt.Errorf("plain"))
  if status != http.StatusInternalServerError || code != "internal_error" {
    t.Fatalf("plain error should map to internal: (%d, %q)", status, code)
  }
}

func TestErrorString(t *testing.T) {
  if got := Invalid(fmt.Errorf("bad field")).Error(); got != "bad field" {
    t.Fatalf("expected underlying message, got %q", got)
  }
}
