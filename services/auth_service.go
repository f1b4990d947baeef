package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/repositories"
	"github.com/Dosada05/team-manager/utils"
)

const (
	claimUserID   = "user_id"
	claimUsername = "username"
	claimRole     = "role"
	claimTokenID  = "jti"
	claimExpires  = "exp"
	claimIssuedAt = "iat"

	DefaultTokenTTL = 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	// Authenticate проверяет bearer-токен и строит сессию запроса.
	Authenticate(ctx context.Context, token string) (models.Session, error)
	Logout(ctx context.Context, session models.Session) error
}

type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=64"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"required"`
	RealName  string `json:"real_name" validate:"required,max=100"`
	StudentID string `json:"student_id" validate:"required,max=50"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type authService struct {
	tx       repositories.Transactor
	userRepo repositories.UserRepository
	sessions repositories.SessionRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(
	tx repositories.Transactor,
	userRepo repositories.UserRepository,
	sessions repositories.SessionRepository,
	secret string,
	tokenTTL time.Duration,
) AuthService {
	if tokenTTL == 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &authService{
		tx:       tx,
		userRepo: userRepo,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.RealName = strings.TrimSpace(input.RealName)
	input.StudentID = strings.TrimSpace(input.StudentID)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, ErrUnknownRole
	}
	if len(input.Password) < utils.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         role,
		RealName:     input.RealName,
		StudentID:    input.StudentID,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.userRepo.Create(ctx, exec, user)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrDuplicateUsername
		}
		return nil, storageError("create user", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("find user by username", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) issueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		claimUserID:   user.ID,
		claimUsername: user.Username,
		claimRole:     string(user.Role),
		claimTokenID:  uuid.NewString(),
		claimIssuedAt: now.Unix(),
		claimExpires:  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (models.Session, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return models.Session{}, ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Session{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Session{}, ErrTokenInvalid
	}

	session, err := sessionFromClaims(claims)
	if err != nil {
		return models.Session{}, ErrTokenInvalid
	}

	revoked, err := s.sessions.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return models.Session{}, storageError("check token revocation", err)
	}
	if revoked {
		return models.Session{}, ErrTokenRevoked
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context, session models.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return storageError("revoke token", err)
	}
	return nil
}

func sessionFromClaims(claims jwt.MapClaims) (models.Session, error) {
	userIDFloat, ok := claims[claimUserID].(float64)
	if !ok || userIDFloat != float64(int(userIDFloat)) || userIDFloat <= 0 {
		return models.Session{}, fmt.Errorf("invalid '%s' claim", claimUserID)
	}

	roleStr, ok := claims[claimRole].(string)
	if !ok {
		return models.Session{}, fmt.Errorf("missing '%s' claim", claimRole)
	}
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return models.Session{}, err
	}

	tokenID, ok := claims[claimTokenID].(string)
	if !ok || tokenID == "" {
		return models.Session{}, fmt.Errorf("missing '%s' claim", claimTokenID)
	}

	expFloat, ok := claims[claimExpires].(float64)
	if !ok {
		return models.Session{}, fmt.Errorf("missing '%s' claim", claimExpires)
	}

	username, _ := claims[claimUsername].(string)

	return models.Session{
		UserID:    int(userIDFloat),
		Username:  username,
		Role:      role,
		TokenID:   tokenID,
		ExpiresAt: time.Unix(int64(expFloat), 0),
	}, nil
}
