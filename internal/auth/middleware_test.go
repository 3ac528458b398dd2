package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerredefine/admissions-service/internal/domain"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

type stubAuthenticator map[string]*domain.Session

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.Session, error) {
	if session, ok := s[token]; ok {
		return session, nil
	}
	return nil, apperrors.NewUnauthorized("invalid token")
}

func newTestApp(allowed ...domain.StaffRole) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var domainErr *apperrors.DomainError
			if errors.As(err, &domainErr) {
				return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	mw := NewAuthMiddleware(stubAuthenticator{
		"admin-token":    {StaffID: "a", Role: domain.StaffRoleAdmin},
		"reviewer-token": {StaffID: "r", Role: domain.StaffRoleReviewer},
	})
	app.Get("/", mw.Handle, RequireStaffRole(allowed...), func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return errors.New("missing session")
		}
		return c.SendString(session.StaffID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer  ", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer admin-token", status: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer admin-token", status: http.StatusOK},
	}

	app := newTestApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireStaffRole(t *testing.T) {
	app := newTestApp(domain.StaffRoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer reviewer-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer admin-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
