package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer delivers over implicit TLS with PLAIN auth.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	now      func() time.Time
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, password: password, now: time.Now}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSSL(),
		gomail.WithTLSConfig(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.user),
		gomail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, newMessage(msg, m.now())); err != nil {
		return fmt.Errorf("smtp send via %s:%d: %w", m.host, m.port, err)
	}
	return nil
}

// newMessage builds a multipart/alternative message with the text body first.
func newMessage(msg Message, now time.Time) *gomail.Msg {
	from, to := msg.From, msg.To

	out := gomail.NewMsg()
	out.SetAddrHeaderFromMailAddress(gomail.HeaderFrom, &from)
	out.SetAddrHeaderFromMailAddress(gomail.HeaderTo, &to)
	out.Subject(msg.Subject)
	out.SetDateWithValue(now)
	out.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		out.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}
	return out
}
