package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/careerredefine/admissions-service/internal/config"
	"github.com/careerredefine/admissions-service/internal/domain"
	"github.com/careerredefine/admissions-service/internal/repository"
	"github.com/careerredefine/admissions-service/internal/service"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

type AuthServiceSuite struct {
	suite.Suite

	ctx   context.Context
	now   time.Time
	mr    *miniredis.Miniredis
	staff *repository.MemoryStaffRepository
	svc   *service.AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Now().Truncate(time.Second)
	s.mr = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })

	s.staff = repository.NewMemoryStaffRepository()
	s.svc = service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            4,
	}, service.AuthDependencies{
		StaffRepo:   s.staff,
		SessionRepo: repository.NewRedisSessionRepository(client),
		Clock:       func() time.Time { return s.now },
	})

	created, err := s.svc.SeedAdmin(s.ctx, "Admin", "Admin@Example.com", "s3cret-pass")
	s.Require().NoError(err)
	s.Require().True(created)
}

func (s *AuthServiceSuite) TestSeedAdminIsIdempotent() {
	created, err := s.svc.SeedAdmin(s.ctx, "Admin", "admin@example.com", "other")
	s.Require().NoError(err)
	s.False(created)

	created, err = s.svc.SeedAdmin(s.ctx, "Nobody", "", "")
	s.Require().NoError(err)
	s.False(created)
}

func (s *AuthServiceSuite) TestLoginIssuesSession() {
	result, err := s.svc.Login(s.ctx, service.LoginInput{Email: "admin@example.com", Password: "s3cret-pass"})
	s.Require().NoError(err)

	s.NotEmpty(result.Token)
	s.Equal(domain.StaffRoleAdmin, result.Session.Role)
	s.Equal(result.Staff.ID, result.Session.StaffID)
	s.NotEmpty(result.Session.TokenID)
	s.True(s.now.Add(30*time.Minute).Equal(result.Session.ExpiresAt))

	session, err := s.svc.Authenticate(s.ctx, result.Token)
	s.Require().NoError(err)
	s.Equal(result.Session.TokenID, session.TokenID)
	s.Equal("admin@example.com", session.Email)
}

func (s *AuthServiceSuite) TestLoginRejectsBadCredentials() {
	_, err := s.svc.Login(s.ctx, service.LoginInput{Email: "admin@example.com", Password: "wrong"})
	s.True(apperrors.IsUnauthorized(err))

	_, err = s.svc.Login(s.ctx, service.LoginInput{Email: "ghost@example.com", Password: "s3cret-pass"})
	s.True(apperrors.IsUnauthorized(err))

	_, err = s.svc.Login(s.ctx, service.LoginInput{Email: "not-an-email", Password: "x"})
	s.True(apperrors.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogoutRevokesToken() {
	result, err := s.svc.Login(s.ctx, service.LoginInput{Email: "admin@example.com", Password: "s3cret-pass"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Logout(s.ctx, result.Session))
	s.True(s.mr.Exists("admissions:revoked:" + result.Session.TokenID))
	s.InDelta(30*time.Minute, s.mr.TTL("admissions:revoked:"+result.Session.TokenID), float64(time.Second))

	_, err = s.svc.Authenticate(s.ctx, result.Token)
	s.True(apperrors.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestAuthenticateRejectsExpiredAndForgedTokens() {
	result, err := s.svc.Login(s.ctx, service.LoginInput{Email: "admin@example.com", Password: "s3cret-pass"})
	s.Require().NoError(err)

	_, err = s.svc.Authenticate(s.ctx, result.Token+"x")
	s.True(apperrors.IsUnauthorized(err))

	s.now = s.now.Add(31 * time.Minute)
	_, err = s.svc.Authenticate(s.ctx, result.Token)
	s.True(apperrors.IsUnauthorized(err))
}
