package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careerredefine/admissions-service/internal/api/dto"
	"github.com/careerredefine/admissions-service/internal/auth"
	"github.com/careerredefine/admissions-service/internal/service"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

// AuthHandler exposes staff sign-in endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.authService.Login(c.UserContext(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff": dto.NewStaff(result.Staff),
			"auth":  dto.AuthResponse{Token: result.Token, ExpiresAt: result.Session.ExpiresAt},
		},
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := h.authService.Logout(c.UserContext(), session); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "signed_out"}})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	staff, err := h.authService.Profile(c.UserContext(), session)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff":      dto.NewStaff(staff),
			"expires_at": session.ExpiresAt,
		},
	})
}
