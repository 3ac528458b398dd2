package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	netmail "net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerredefine/admissions-service/internal/config"
)

func testMessage() Message {
	return Message{
		From:    netmail.Address{Name: "Career Redefine", Address: "hello@example.com"},
		To:      netmail.Address{Name: "Ada Lovelace", Address: "ada@example.com"},
		Subject: "Interview Scheduled with Career Redefine",
		Text:    "Hi Ada",
		HTML:    "<p>Hi Ada</p>",
	}
}

func TestRenderInterviewTemplates(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	date := time.Date(2030, 3, 4, 15, 0, 0, 0, time.UTC)
	data := NewInterviewData("Career Redefine", "Ada <Admin>", "https://meet.example.com/abc", date, nil)
	assert.Equal(t, "Monday, March 4, 2030 at 3:00 PM UTC", data.InterviewDate)

	text, html, err := r.Render(TemplateInterviewConfirmation, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Ada <Admin>")
	assert.Contains(t, text, "https://meet.example.com/abc")
	assert.Contains(t, html, "Interview Confirmation")
	assert.Contains(t, html, "Ada &lt;Admin&gt;")
	assert.NotContains(t, html, "<Admin>")

	_, html, err = r.Render(TemplateInterviewReminder, data)
	require.NoError(t, err)
	assert.Contains(t, html, "Interview Reminder")

	_, _, err = r.Render("missing", data)
	assert.Error(t, err)
}

func TestNewInterviewDataUsesLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	date := time.Date(2030, 3, 4, 15, 0, 0, 0, time.UTC)
	data := NewInterviewData("b", "n", "l", date, loc)
	assert.Equal(t, "Monday, March 4, 2030 at 10:00 AM EST", data.InterviewDate)
}

func TestNewMessageIsMultipartAlternative(t *testing.T) {
	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	var raw bytes.Buffer
	_, err := newMessage(testMessage(), now).WriteTo(&raw)
	require.NoError(t, err)

	parsed, err := netmail.ReadMessage(&raw)
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Interview Scheduled with Career Redefine", subject)

	to, err := parsed.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "Ada Lovelace", to[0].Name)
	assert.Equal(t, "ada@example.com", to[0].Address)
	assert.Equal(t, now.Format(time.RFC1123Z), parsed.Header.Get("Date"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var bodies []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(part)
		require.NoError(t, err)
		bodies = append(bodies, strings.TrimSpace(string(body)))
	}
	assert.Equal(t, []string{"Hi Ada", "<p>Hi Ada</p>"}, bodies)
}

func TestSMTPMailerSendFailures(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	m := NewSMTPMailer("127.0.0.1", port, "user", "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, testMessage()), context.Canceled)

	err = m.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("smtp send via 127.0.0.1:%d", port))
}

func TestSendGridMailerPostsV3Payload(t *testing.T) {
	var got struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type string `json:"type"`
		} `json:"content"`
	}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewSendGridMailer("sg-key").WithHost(srv.URL).Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "Bearer sg-key", auth)
	assert.Equal(t, "hello@example.com", got.From.Email)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "Interview Scheduled with Career Redefine", got.Personalizations[0].Subject)
	assert.Equal(t, "ada@example.com", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 2)
	assert.Equal(t, "text/plain", got.Content[0].Type)
}

func TestSendGridMailerReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	err := NewSendGridMailer("bad").WithHost(srv.URL).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSendGridMailerHonorsContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := NewSendGridMailer("sg-key").WithHost(srv.URL).Send(ctx, testMessage())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFromConfig(t *testing.T) {
	assert.Nil(t, FromConfig(config.NotificationConfig{}))
	assert.Nil(t, FromConfig(config.NotificationConfig{SMTPHost: "YOUR_SMTP_HOST", SMTPPort: 465, SMTPUser: "u", SMTPPassword: "p"}))

	assert.IsType(t, &SMTPMailer{}, FromConfig(config.NotificationConfig{
		SMTPHost: "smtp.example.com", SMTPPort: 465, SMTPUser: "u", SMTPPassword: "p",
	}))
	assert.IsType(t, &SendGridMailer{}, FromConfig(config.NotificationConfig{
		SendGridAPIKey: "key", SMTPHost: "smtp.example.com", SMTPPort: 465, SMTPUser: "u", SMTPPassword: "p",
	}))
}
