package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridMailer posts messages to the SendGrid v3 mail API.
type SendGridMailer struct {
	key  string
	host string
}

var _ Mailer = (*SendGridMailer)(nil)

// NewSendGridMailer builds a mailer for the public SendGrid API.
func NewSendGridMailer(key string) *SendGridMailer {
	return &SendGridMailer{key: key, host: sendGridHost}
}

// WithHost overrides the API host, used against local fakes.
func (m *SendGridMailer) WithHost(host string) *SendGridMailer {
	m.host = host
	return m
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(m.key, sendGridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(buildSendGridMail(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func buildSendGridMail(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(msg.From.Name, msg.From.Address))
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)
	return m
}
