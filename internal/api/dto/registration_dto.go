package dto

import (
	"time"

	"github.com/careerredefine/admissions-service/internal/domain"
	"github.com/careerredefine/admissions-service/internal/service"
)

// SubmitRegistrationRequest is the public application form payload.
type SubmitRegistrationRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Education string `json:"education"`
}

// Input converts the payload for the registration service.
func (r SubmitRegistrationRequest) Input() service.SubmissionInput {
	return service.SubmissionInput{
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		Education: r.Education,
	}
}

// SubmissionResponse acknowledges a stored application.
type SubmissionResponse struct {
	ID     string                    `json:"id"`
	Status domain.RegistrationStatus `json:"status"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.RegistrationStatus `json:"status"`
}

// ScheduleInterviewRequest payload. InterviewDate accepts RFC3339 or datetime-local values.
type ScheduleInterviewRequest struct {
	InterviewLink string `json:"interview_link"`
	InterviewDate string `json:"interview_date"`
}

// UpdateNotesRequest payload.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// Registration is the back-office view of a registration.
type Registration struct {
	ID            string                    `json:"id"`
	CreatedAt     time.Time                 `json:"created_at"`
	FullName      string                    `json:"full_name"`
	Email         string                    `json:"email"`
	Phone         string                    `json:"phone"`
	Education     string                    `json:"education"`
	Status        domain.RegistrationStatus `json:"status"`
	InterviewLink *string                   `json:"interview_link"`
	InterviewDate *time.Time                `json:"interview_date"`
	Notes         *string                   `json:"notes"`
}

// NewRegistration maps the domain record.
func NewRegistration(reg domain.Registration) Registration {
	return Registration{
		ID:            reg.ID,
		CreatedAt:     reg.CreatedAt,
		FullName:      reg.FullName,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Education:     reg.Education,
		Status:        reg.Status,
		InterviewLink: reg.InterviewLink,
		InterviewDate: reg.InterviewDate,
		Notes:         reg.Notes,
	}
}

// NotificationResponse mirrors service.NotificationReport.
type NotificationResponse struct {
	Outcome string `json:"outcome"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewNotification maps a notification report.
func NewNotification(report service.NotificationReport) NotificationResponse {
	return NotificationResponse{
		Outcome: string(report.Outcome),
		Level:   string(report.Level),
		Message: report.Message,
	}
}

// ScheduleResponse is returned after scheduling an interview.
type ScheduleResponse struct {
	Registration Registration         `json:"registration"`
	Notification NotificationResponse `json:"notification"`
}

// StatsResponse counts registrations by status.
type StatsResponse struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Approved    int `json:"approved"`
	Interviewed int `json:"interviewed"`
	Rejected    int `json:"rejected"`
}

// NewStats maps registration stats.
func NewStats(stats domain.RegistrationStats) StatsResponse {
	return StatsResponse(stats)
}

// CalendarEvent is one interview on the admin calendar.
type CalendarEvent struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Start        time.Time    `json:"start"`
	Registration Registration `json:"registration"`
}

// NewCalendarEvent maps a calendar entry.
func NewCalendarEvent(event service.CalendarEvent) CalendarEvent {
	return CalendarEvent{
		ID:           event.ID,
		Title:        event.Title,
		Start:        event.Start,
		Registration: NewRegistration(event.Registration),
	}
}
