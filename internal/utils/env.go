package utils

import (
  "os"
  "strconv"

  "github.com/careerpilot/backend/internal/logger"
)

// GetEnv reads a string setting, logging whether the environment or the
// default won. All server configuration (POSTGRES_*, JWT_SECRET_KEY, PORT,
// ALLOWED_ORIGINS, OPENAI_*) flows through here so startup logs show the
// effective config.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
  if log != nil {
    log = log.With("env_var", key)
  }
  val, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default", "default", defaultVal)
    }
    return defaultVal
  }
  if log != nil {
    log.Debug("Environment variable found, using environment", "environment", val)
  }
  return val
}

// GetEnvAsInt is GetEnv for integer settings (token TTLs, retry counts).
// Unparseable values fall back to the default rather than failing startup.
func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
  if log != nil {
    log = log.With("env_var", key)
  }
  valStr, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default", "default", defaultVal)
    }
    return defaultVal
  }
  i, err := strconv.Atoi(valStr)
  if err != nil {
    if log != nil {
      log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
    }
    return defaultVal
  }
  if log != nil {
    log.Debug("Environment variable found, using it", "value", i)
  }
  return i
}
