package service

import (
	"context"
	"fmt"
	stdmail "net/mail"
	"time"

	"go.uber.org/zap"

	"github.com/careerredefine/admissions-service/internal/config"
	"github.com/careerredefine/admissions-service/internal/mail"
	"github.com/careerredefine/admissions-service/internal/repository"
)

// SimulationMessage is reported when no mail transport is configured.
const SimulationMessage = "Email sending is in simulation mode. Configure SMTP credentials to send real emails."

// NotificationService renders and delivers interview emails. It implements Notifier.
type NotificationService struct {
	registrations repository.RegistrationRepository
	mailer        mail.Mailer
	renderer      *mail.Renderer
	from          stdmail.Address
	brand         string
	location      *time.Location
	logger        *zap.Logger
}

var _ Notifier = (*NotificationService)(nil)

type emailSpec struct {
	kind     notificationKind
	template string
	subject  string
	success  string
}

// NewNotificationService creates the service. A nil mailer puts it in simulation mode.
func NewNotificationService(cfg config.NotificationConfig, registrations repository.RegistrationRepository, mailer mail.Mailer, logger *zap.Logger) (*NotificationService, error) {
	renderer, err := mail.NewRenderer()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		registrations: registrations,
		mailer:        mailer,
		renderer:      renderer,
		from:          stdmail.Address{Name: cfg.FromName, Address: cfg.Sender()},
		brand:         cfg.FromName,
		location:      cfg.Location(),
		logger:        logger,
	}, nil
}

// SendInterviewConfirmation emails the applicant their interview date and link.
func (n *NotificationService) SendInterviewConfirmation(ctx context.Context, registrationID string) (NotificationResult, error) {
	return n.send(ctx, registrationID, emailSpec{
		kind:     kindInterviewConfirmation,
		template: mail.TemplateInterviewConfirmation,
		subject:  "Interview Scheduled with " + n.brand,
		success:  "Interview confirmation email sent successfully.",
	})
}

// SendReminder re-sends the interview details as a reminder.
func (n *NotificationService) SendReminder(ctx context.Context, registrationID string) (NotificationResult, error) {
	return n.send(ctx, registrationID, emailSpec{
		kind:     kindReminder,
		template: mail.TemplateInterviewReminder,
		subject:  "Interview Reminder from " + n.brand,
		success:  "Interview reminder email sent successfully.",
	})
}

func (n *NotificationService) send(ctx context.Context, registrationID string, spec emailSpec) (NotificationResult, error) {
	reg, err := n.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return NotificationResult{}, fmt.Errorf("load registration %s: %w", registrationID, err)
	}
	if !reg.HasInterview() {
		return NotificationResult{}, ErrNoInterview
	}

	if n.mailer == nil {
		n.logger.Warn("mail transport not configured",
			zap.String("registration_id", reg.ID),
			zap.String("kind", string(spec.kind)))
		return NotificationResult{Simulated: true, Message: SimulationMessage}, nil
	}

	data := mail.NewInterviewData(n.brand, reg.FullName, *reg.InterviewLink, *reg.InterviewDate, n.location)
	text, html, err := n.renderer.Render(spec.template, data)
	if err != nil {
		return NotificationResult{}, err
	}

	n.logger.Info("sending interview email",
		zap.String("registration_id", reg.ID),
		zap.String("kind", string(spec.kind)))

	msg := mail.Message{
		From:    n.from,
		To:      stdmail.Address{Name: reg.FullName, Address: reg.Email},
		Subject: spec.subject,
		Text:    text,
		HTML:    html,
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return NotificationResult{}, fmt.Errorf("send %s: %w", spec.kind, err)
	}
	return NotificationResult{Message: spec.success}, nil
}
