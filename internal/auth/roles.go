package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careerredefine/admissions-service/internal/domain"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

// RequireStaffRole ensures the session has one of the allowed roles. No roles allows any staff.
func RequireStaffRole(allowed ...domain.StaffRole) fiber.Handler {
	allowedSet := make(map[domain.StaffRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok || session == nil {
			return apperrors.NewUnauthorized("staff session required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[session.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
