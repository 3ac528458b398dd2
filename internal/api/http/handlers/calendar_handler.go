package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/careerredefine/admissions-service/internal/api/dto"
	"github.com/careerredefine/admissions-service/internal/auth"
	"github.com/careerredefine/admissions-service/internal/service"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// CalendarHandler lists scheduled interviews.
type CalendarHandler struct {
	registrations *service.RegistrationService
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(registrations *service.RegistrationService) *CalendarHandler {
	return &CalendarHandler{registrations: registrations}
}

// List handles GET /api/v1/admin/calendar?from=&to=.
func (h *CalendarHandler) List(c *fiber.Ctx) error {
	from, err := parseBound(c.Query("from"), false)
	if err != nil {
		return apperrors.NewValidationError("invalid input", map[string]any{"from": "from must be a date or RFC3339 timestamp"})
	}
	to, err := parseBound(c.Query("to"), true)
	if err != nil {
		return apperrors.NewValidationError("invalid input", map[string]any{"to": "to must be a date or RFC3339 timestamp"})
	}

	session, _ := auth.SessionFromContext(c)
	entries, err := h.registrations.Calendar(c.UserContext(), session, from, to)
	if err != nil {
		return err
	}
	resp := make([]dto.CalendarEvent, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.NewCalendarEvent(entry))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// parseBound reads an RFC3339 timestamp or a bare date. A bare upper bound covers the whole day.
func parseBound(raw string, upper bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
