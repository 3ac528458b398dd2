// Package mail renders applicant emails and delivers them over SMTP or SendGrid.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

// Template names without extension.
const (
	TemplateInterviewConfirmation = "interview_confirmation"
	TemplateInterviewReminder     = "interview_reminder"
)

// interviewDateLayout matches the long "full date, short time" rendering used in applicant emails.
const interviewDateLayout = "Monday, January 2, 2006 at 3:04 PM MST"

// Message is one outgoing email.
type Message struct {
	From    mail.Address
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// InterviewData feeds the interview templates.
type InterviewData struct {
	Brand         string
	FullName      string
	InterviewLink string
	InterviewDate string
}

// NewInterviewData formats date in loc for display.
func NewInterviewData(brand, fullName, link string, date time.Time, loc *time.Location) InterviewData {
	if loc == nil {
		loc = time.UTC
	}
	return InterviewData{
		Brand:         brand,
		FullName:      fullName,
		InterviewLink: link,
		InterviewDate: date.In(loc).Format(interviewDateLayout),
	}
}

// Renderer executes the embedded text and HTML templates.
type Renderer struct {
	text *texttmpl.Template
	html *htmltmpl.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	text, err := texttmpl.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	html, err := htmltmpl.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	return &Renderer{text: text, html: html}, nil
}

// Render returns the text and HTML bodies of the named template.
func (r *Renderer) Render(name string, data any) (string, string, error) {
	var text, html bytes.Buffer
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("render %s.txt: %w", name, err)
	}
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", name, err)
	}
	return text.String(), html.String(), nil
}
