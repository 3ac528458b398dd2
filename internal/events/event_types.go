package events

import (
	"time"

	"github.com/careerredefine/admissions-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRegistrationSubmitted     EventType = "registration_submitted"
	EventRegistrationStatusChanged EventType = "registration_status_changed"
	EventInterviewScheduled        EventType = "interview_scheduled"
	EventRegistrationNotesUpdated  EventType = "registration_notes_updated"
	EventInterviewReminderSent     EventType = "interview_reminder_sent"
)

// EventTypes lists every lifecycle event.
var EventTypes = []EventType{
	EventRegistrationSubmitted,
	EventRegistrationStatusChanged,
	EventInterviewScheduled,
	EventRegistrationNotesUpdated,
	EventInterviewReminderSent,
}

// Actor identifies who triggered an event. Empty StaffID means a public applicant.
type Actor struct {
	StaffID string `json:"staff_id,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Event represents a domain event emitted after a committed write.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	RegistrationID string      `json:"registration_id"`
	Actor          Actor       `json:"actor"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// RegistrationSubmittedPayload payload.
type RegistrationSubmittedPayload struct {
	Education string `json:"education"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.RegistrationStatus `json:"old_status"`
	NewStatus domain.RegistrationStatus `json:"new_status"`
}

// InterviewScheduledPayload payload.
type InterviewScheduledPayload struct {
	OldStatus          domain.RegistrationStatus `json:"old_status"`
	InterviewLink      string                    `json:"interview_link"`
	InterviewDate      time.Time                 `json:"interview_date"`
	NotificationResult string                    `json:"notification_result"`
}

// NotesUpdatedPayload payload.
type NotesUpdatedPayload struct {
	Length int `json:"length"`
}

// ReminderSentPayload payload.
type ReminderSentPayload struct {
	NotificationResult string `json:"notification_result"`
}
