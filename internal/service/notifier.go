package service

import (
	"context"
	"errors"
)

// NotificationResult is what a Notifier reports when it does not fail.
type NotificationResult struct {
	Simulated bool
	Message   string
}

// Notifier sends applicant emails for a registration.
type Notifier interface {
	SendInterviewConfirmation(ctx context.Context, registrationID string) (NotificationResult, error)
	SendReminder(ctx context.Context, registrationID string) (NotificationResult, error)
}

// ErrNoInterview is returned when a notification needs an interview that was never scheduled.
var ErrNoInterview = errors.New("registration has no interview scheduled")

// NotificationOutcome classifies a notifier call.
type NotificationOutcome string

const (
	OutcomeSent      NotificationOutcome = "sent"
	OutcomeSimulated NotificationOutcome = "simulated"
	OutcomeFailed    NotificationOutcome = "failed"
)

// NotificationLevel is the severity the presentation layer shows the outcome with.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
)

// NotificationReport is the secondary result attached to scheduling and reminder operations.
type NotificationReport struct {
	Outcome NotificationOutcome `json:"outcome"`
	Level   NotificationLevel   `json:"level"`
	Message string              `json:"message"`
}

type notificationKind string

const (
	kindInterviewConfirmation notificationKind = "interview_confirmation"
	kindReminder              notificationKind = "reminder"
)

func (k notificationKind) failurePrefix() string {
	if k == kindReminder {
		return "Failed to send reminder: "
	}
	return "Interview scheduled, but failed to send email: "
}

func (k notificationKind) defaultSuccess() string {
	if k == kindReminder {
		return "Reminder sent successfully!"
	}
	return "Confirmation email sent."
}

// reportNotification folds a notifier call into a report. A notifier error never escapes.
func reportNotification(kind notificationKind, result NotificationResult, err error) NotificationReport {
	switch {
	case err != nil:
		return NotificationReport{
			Outcome: OutcomeFailed,
			Level:   LevelWarning,
			Message: kind.failurePrefix() + err.Error(),
		}
	case result.Simulated:
		return NotificationReport{Outcome: OutcomeSimulated, Level: LevelInfo, Message: result.Message}
	default:
		msg := result.Message
		if msg == "" {
			msg = kind.defaultSuccess()
		}
		return NotificationReport{Outcome: OutcomeSent, Level: LevelSuccess, Message: msg}
	}
}
