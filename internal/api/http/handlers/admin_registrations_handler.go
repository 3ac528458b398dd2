package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/careerredefine/admissions-service/internal/api/dto"
	"github.com/careerredefine/admissions-service/internal/auth"
	"github.com/careerredefine/admissions-service/internal/export"
	"github.com/careerredefine/admissions-service/internal/service"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

// AdminRegistrationsHandler exposes the back-office registration operations.
type AdminRegistrationsHandler struct {
	registrations *service.RegistrationService
}

// NewAdminRegistrationsHandler constructs handler.
func NewAdminRegistrationsHandler(registrations *service.RegistrationService) *AdminRegistrationsHandler {
	return &AdminRegistrationsHandler{registrations: registrations}
}

// List handles GET /api/v1/admin/registrations.
func (h *AdminRegistrationsHandler) List(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	seq, err := h.registrations.List(c.UserContext(), session, listFilter(c))
	if err != nil {
		return err
	}
	resp := []dto.Registration{}
	for reg := range seq {
		resp = append(resp, dto.NewRegistration(reg))
	}
	return c.JSON(fiber.Map{
		"data": resp,
		"meta": fiber.Map{"count": len(resp)},
	})
}

// Get handles GET /api/v1/admin/registrations/:id.
func (h *AdminRegistrationsHandler) Get(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	reg, err := h.registrations.Get(c.UserContext(), session, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistration(*reg)})
}

// Stats handles GET /api/v1/admin/registrations/stats.
func (h *AdminRegistrationsHandler) Stats(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	stats, err := h.registrations.Stats(c.UserContext(), session)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStats(stats)})
}

// Export handles GET /api/v1/admin/registrations/export.
func (h *AdminRegistrationsHandler) Export(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return apperrors.NewValidationError("invalid input", map[string]any{"format": "format must be csv or xlsx"})
	}
	session, _ := auth.SessionFromContext(c)
	file, err := h.registrations.Export(c.UserContext(), session, listFilter(c), format)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Body)
}

// UpdateStatus handles PATCH /api/v1/admin/registrations/:id/status.
func (h *AdminRegistrationsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, _ := auth.SessionFromContext(c)
	reg, err := h.registrations.UpdateStatus(c.UserContext(), session, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistration(*reg)})
}

// ScheduleInterview handles POST /api/v1/admin/registrations/:id/interview.
func (h *AdminRegistrationsHandler) ScheduleInterview(c *fiber.Ctx) error {
	var req dto.ScheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, _ := auth.SessionFromContext(c)
	result, err := h.registrations.ScheduleInterview(c.UserContext(), session, c.Params("id"), service.ScheduleInput{
		Link: req.InterviewLink,
		Date: req.InterviewDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ScheduleResponse{
		Registration: dto.NewRegistration(*result.Registration),
		Notification: dto.NewNotification(result.Notification),
	}})
}

// SendReminder handles POST /api/v1/admin/registrations/:id/reminder.
func (h *AdminRegistrationsHandler) SendReminder(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	report, err := h.registrations.SendReminder(c.UserContext(), session, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"notification": dto.NewNotification(report)}})
}

// UpdateNotes handles PUT /api/v1/admin/registrations/:id/notes.
func (h *AdminRegistrationsHandler) UpdateNotes(c *fiber.Ctx) error {
	var req dto.UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, _ := auth.SessionFromContext(c)
	reg, err := h.registrations.UpdateNotes(c.UserContext(), session, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistration(*reg)})
}

func listFilter(c *fiber.Ctx) service.ListFilter {
	return service.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
}
