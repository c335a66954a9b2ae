package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ykps/feedback-portal/internal/models"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
	"github.com/ykps/feedback-portal/pkg/gateway"
)

// studentIDPattern matches the school's student identifier shape: a
// lowercase "s" followed by exactly five digits. Anything else is staff.
var studentIDPattern = regexp.MustCompile(`^s\d{5}$`)

type authUserRepository interface {
	FindBySchoolID(ctx context.Context, schoolID string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type identityGateway interface {
	Authenticate(ctx context.Context, username, password string) (gateway.Result, error)
}

type sessionStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthConfig defines configuration for session issuance.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
}

// LoginRequest carries the raw login form values.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AuthService resolves credentials against the local store first and the
// school identity gateway for accounts the portal has never seen.
type AuthService struct {
	users     authUserRepository
	gateway   identityGateway
	sessions  sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, gw identityGateway, sessions sessionStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, gateway: gw, sessions: sessions, validator: validate, logger: logger, config: config}
}

// Login authenticates a credential pair. An existing local account is
// checked against its stored hash only; the gateway is consulted solely
// for school IDs the portal has never stored, and a gateway success
// creates the account with a locally hashed password so later logins
// short-circuit. Every failure collapses to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	user, err := s.users.FindBySchoolID(ctx, req.Username)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	result, err := s.gateway.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Warn("identity gateway unreachable", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if result.Code != gateway.StatusOK {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user = &models.User{
		SchoolID:     req.Username,
		Name:         result.Name,
		PasswordHash: string(hash),
		IsTeacher:    !studentIDPattern.MatchString(req.Username),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("account created from gateway login",
		zap.String("school_id", user.SchoolID),
		zap.Bool("is_teacher", user.IsTeacher))

	return user, nil
}

// IssueSession signs a session token for the user.
func (s *AuthService) IssueSession(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session")
	}
	return signed, nil
}

// ResolvePrincipal validates a session token, checks it has not been
// revoked by a logout, and reloads the user row so role and teacher link
// are current.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (models.Principal, error) {
	claims, err := s.parseSession(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		// A store outage should not lock everyone out.
		s.logger.Warn("session revocation check failed", zap.Error(err))
	} else if revoked {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session revoked")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	return models.PrincipalFromUser(user), nil
}

// RevokeSession invalidates the session token server-side for its
// remaining lifetime.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	claims, err := s.parseSession(token)
	if err != nil {
		return err
	}

	ttl := s.config.SessionTTL
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

func (s *AuthService) parseSession(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}
	return claims, nil
}
