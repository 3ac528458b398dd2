package mail

import (
	"github.com/careerredefine/admissions-service/internal/config"
)

// FromConfig picks a transport from the configuration. SendGrid wins over SMTP.
// A nil Mailer means no transport is configured and sends are simulated.
func FromConfig(cfg config.NotificationConfig) Mailer {
	switch {
	case cfg.SendGridConfigured():
		return NewSendGridMailer(cfg.SendGridAPIKey)
	case cfg.SMTPConfigured():
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	default:
		return nil
	}
}
