package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/careerredefine/admissions-service/internal/auth"
	"github.com/careerredefine/admissions-service/internal/config"
	"github.com/careerredefine/admissions-service/internal/domain"
	"github.com/careerredefine/admissions-service/internal/repository"
	"github.com/careerredefine/admissions-service/internal/validation"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

// AuthService coordinates staff login, session resolution and sign-out.
type AuthService struct {
	staff      repository.StaffRepository
	sessions   repository.SessionRepository
	tokenMgr   *auth.TokenManager
	validator  *validation.Validator
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StaffRepo   repository.StaffRepository
	SessionRepo repository.SessionRepository
	Validator   *validation.Validator
	Logger      *zap.Logger
	Clock       func() time.Time
}

// LoginInput is the staff sign-in form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the signed token and the session it represents.
type LoginResult struct {
	Staff   *domain.StaffMember
	Session *domain.Session
	Token   string
}

var _ auth.Authenticator = (*AuthService)(nil)

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	svc := &AuthService{
		staff:      deps.StaffRepo,
		sessions:   deps.SessionRepo,
		validator:  deps.Validator,
		bcryptCost: cfg.BcryptCost,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if svc.validator == nil {
		svc.validator = validation.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	svc.tokenMgr = auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()).WithClock(svc.now)
	return svc
}

// Login authenticates staff and returns a role-bearing token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	staff, err := s.staff.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("staff login rejected", zap.String("reason", "unknown email"))
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStoreError(err)
	}
	if !auth.PasswordMatches(staff.PasswordHash, input.Password) {
		s.logger.Info("staff login rejected", zap.String("staff_id", staff.ID), zap.String("reason", "bad password"))
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !staff.Active {
		return nil, apperrors.NewForbidden("staff account disabled")
	}

	token, claims, err := s.tokenMgr.GenerateToken(staff)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	session := domain.NewSession(staff, claims.ID, claims.ExpiresAtTime())
	s.logger.Info("staff signed in", zap.String("staff_id", staff.ID), zap.String("role", string(staff.Role)))
	return &LoginResult{Staff: staff, Session: session, Token: token}, nil
}

// Authenticate resolves a bearer token to the current session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if revoked {
		return nil, apperrors.NewUnauthorized("session signed out")
	}

	staff, err := s.staff.GetByID(ctx, claims.StaffID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("staff not found")
		}
		return nil, apperrors.NewStoreError(err)
	}
	if !staff.Active {
		return nil, apperrors.NewUnauthorized("staff account disabled")
	}
	return domain.NewSession(staff, claims.ID, claims.ExpiresAtTime()), nil
}

// Logout revokes the session's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if !session.Valid(s.now()) {
		return apperrors.NewUnauthorized("staff session required")
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if err := s.sessions.Revoke(ctx, session.TokenID, ttl); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("staff signed out", zap.String("staff_id", session.StaffID))
	return nil
}

// Profile returns the staff member behind the session.
func (s *AuthService) Profile(ctx context.Context, session *domain.Session) (*domain.StaffMember, error) {
	if !session.Valid(s.now()) {
		return nil, apperrors.NewUnauthorized("staff session required")
	}
	staff, err := s.staff.GetByID(ctx, session.StaffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("staff not found")
		}
		return nil, apperrors.NewStoreError(err)
	}
	return staff, nil
}

// SeedAdmin creates the configured admin account when it does not exist yet.
// It reports whether an account was created.
func (s *AuthService) SeedAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.staff.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, err
	}
	admin := &domain.StaffMember{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.StaffRoleAdmin,
		Active:       true,
	}
	if err := s.staff.Create(ctx, admin); err != nil {
		return false, err
	}
	s.logger.Info("seeded admin account", zap.String("staff_id", admin.ID))
	return true, nil
}

