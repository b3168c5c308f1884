package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/careerpilot/backend/internal/apierr"
  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/repos"
  "github.com/careerpilot/backend/internal/requestdata"
  "github.com/careerpilot/backend/internal/types"
  "github.com/careerpilot/backend/internal/utils"
)

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, email, password string) (string, string, error)
  RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  return &authService{
    db:            db,
    log:           baseLog.With("service", "AuthService"),
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  utils.NormalizeUserFields(user)
  if err := utils.ValidateRegistration(user); err != nil {
    return apierr.Invalid(err)
  }

  exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return apierr.Internal(fmt.Errorf("check email: %w", err))
  }
  if exists {
    return apierr.Invalid(fmt.Errorf("email already registered"))
  }

  if err := utils.HashPassword(user); err != nil {
    return apierr.Internal(err)
  }

  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user.ID = uuid.New()
    if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
      return apierr.Internal(fmt.Errorf("create user: %w", err))
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return "", "", apierr.Internal(fmt.Errorf("load user: %w", err))
  }
  if len(users) == 0 || users[0] == nil {
    return "", "", apierr.Unauthorized(fmt.Errorf("invalid credentials"))
  }
  user := users[0]

  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return "", "", apierr.Unauthorized(fmt.Errorf("invalid credentials"))
  }

  var accessToken, refreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    tokens, err := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if err != nil {
      return apierr.Internal(fmt.Errorf("check user tokens: %w", err))
    }
    for _, t := range tokens {
      if t != nil && t.ExpiresAt.Before(time.Now()) {
        if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{t.ID}); err != nil {
          return apierr.Internal(fmt.Errorf("delete expired token: %w", err))
        }
      }
    }

    tok, err := as.generateAccessToken(user)
    if err != nil {
      return apierr.Internal(fmt.Errorf("generate access token: %w", err))
    }
    accessToken = tok
    refreshToken = uuid.New().String()

    userToken := &types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
      return apierr.Internal(fmt.Errorf("create user token: %w", err))
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
  if refreshToken == "" {
    return "", "", apierr.Unauthorized(fmt.Errorf("missing refresh token"))
  }

  var newAccess, newRefresh string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    tokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{refreshToken})
    if err != nil {
      return apierr.Internal(fmt.Errorf("load token: %w", err))
    }
    if len(tokens) == 0 || tokens[0] == nil || tokens[0].ExpiresAt.Before(time.Now()) {
      return apierr.Unauthorized(fmt.Errorf("invalid refresh token"))
    }
    existing := tokens[0]

    users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
    if err != nil || len(users) == 0 || users[0] == nil {
      return apierr.Unauthorized(fmt.Errorf("invalid refresh token"))
    }

    if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
      return apierr.Internal(fmt.Errorf("rotate token: %w", err))
    }

    tok, err := as.generateAccessToken(users[0])
    if err != nil {
      return apierr.Internal(fmt.Errorf("generate access token: %w", err))
    }
    newAccess = tok
    newRefresh = uuid.New().String()

    userToken := &types.UserToken{
      ID:           uuid.New(),
      UserID:       existing.UserID,
      AccessToken:  newAccess,
      RefreshToken: newRefresh,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
      return apierr.Internal(fmt.Errorf("create user token: %w", err))
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return newAccess, newRefresh, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return apierr.Unauthorized(fmt.Errorf("not authenticated"))
  }
  if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID}); err != nil {
    return apierr.Internal(fmt.Errorf("delete tokens: %w", err))
  }
  return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := jwt.MapClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return ctx, apierr.Unauthorized(fmt.Errorf("invalid token"))
  }

  sub, err := claims.GetSubject()
  if err != nil {
    return ctx, apierr.Unauthorized(fmt.Errorf("invalid token subject"))
  }
  userID, err := uuid.Parse(sub)
  if err != nil {
    return ctx, apierr.Unauthorized(fmt.Errorf("invalid token subject"))
  }

  tokens, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
  if err != nil {
    return ctx, apierr.Internal(fmt.Errorf("load token: %w", err))
  }
  if len(tokens) == 0 || tokens[0] == nil || tokens[0].UserID != userID {
    return ctx, apierr.Unauthorized(fmt.Errorf("token revoked"))
  }

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub": user.ID.String(),
    "iat": now.Unix(),
    "exp": now.Add(as.accessTTL).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}
