package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careerredefine/admissions-service/internal/api/dto"
	"github.com/careerredefine/admissions-service/internal/domain"
	"github.com/careerredefine/admissions-service/internal/service"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

// RegistrationsHandler serves the public application form.
type RegistrationsHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(registrations *service.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{registrations: registrations}
}

// Submit handles POST /api/v1/registrations.
func (h *RegistrationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reg, err := h.registrations.Submit(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.SubmissionResponse{ID: reg.ID, Status: reg.Status},
	})
}

// EducationOptions handles GET /api/v1/education-options.
func (h *RegistrationsHandler) EducationOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.EducationOptions})
}
