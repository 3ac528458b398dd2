package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerredefine/admissions-service/internal/domain"
	"github.com/careerredefine/admissions-service/internal/events"
	"github.com/careerredefine/admissions-service/internal/export"
	"github.com/careerredefine/admissions-service/internal/observability"
	"github.com/careerredefine/admissions-service/internal/repository"
	"github.com/careerredefine/admissions-service/internal/validation"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

// Submission results recorded in metrics.
const (
	submissionCreated        = "created"
	submissionDuplicateEmail = "duplicate_email"
	submissionDuplicatePhone = "duplicate_phone"
	submissionInvalid        = "invalid"
	submissionStoreError     = "store_error"
)

// interviewDateLayouts are accepted in addition to RFC3339. They carry no zone.
var interviewDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// RegistrationService owns the registration lifecycle.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	notifier      Notifier
	dispatcher    events.Dispatcher
	validator     *validation.Validator
	metrics       *observability.Metrics
	logger        *zap.Logger
	location      *time.Location
	now           func() time.Time
}

// RegistrationDependencies bundles collaborators for the registration service.
type RegistrationDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	Notifier         Notifier
	Dispatcher       events.Dispatcher
	Validator        *validation.Validator
	Metrics          *observability.Metrics
	Logger           *zap.Logger
	// Location interprets interview dates submitted without a zone. Defaults to UTC.
	Location *time.Location
	Clock    func() time.Time
}

// SubmissionInput is the public application form.
type SubmissionInput struct {
	FullName  string `json:"full_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10"`
	Education string `json:"education" validate:"required,education"`
}

func (in *SubmissionInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Education = strings.TrimSpace(in.Education)
}

// ScheduleInput carries the interview details entered by staff.
type ScheduleInput struct {
	Link string `json:"interview_link" validate:"required,interview_link"`
	Date string `json:"interview_date" validate:"required"`
}

// ScheduleResult is the committed registration plus the confirmation email outcome.
type ScheduleResult struct {
	Registration *domain.Registration
	Notification NotificationReport
}

type statusInput struct {
	Status string `json:"status" validate:"required,registration_status"`
}

// ListFilter narrows the registration list. Both conditions must hold.
type ListFilter struct {
	Search string
	Status string
}

// Matches reports whether reg passes the filter. Search is a case-insensitive substring
// of the full name or email; Status is exact unless empty or "all".
func (f ListFilter) Matches(reg domain.Registration) bool {
	if f.Status != "" && f.Status != domain.StatusFilterAll && string(reg.Status) != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(reg.FullName), term) ||
		strings.Contains(strings.ToLower(reg.Email), term)
}

func (f ListFilter) validate() error {
	if f.Status == "" || f.Status == domain.StatusFilterAll || domain.RegistrationStatus(f.Status).Valid() {
		return nil
	}
	return apperrors.NewValidationError("invalid input", map[string]any{
		"status": "status must be all, pending, approved, interviewed, or rejected",
	})
}

// CalendarEvent is one scheduled interview.
type CalendarEvent struct {
	ID           string
	Title        string
	Start        time.Time
	Registration domain.Registration
}

// ExportFile is a rendered spreadsheet ready to download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	svc := &RegistrationService{
		registrations: deps.RegistrationRepo,
		notifier:      deps.Notifier,
		dispatcher:    deps.Dispatcher,
		validator:     deps.Validator,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		location:      deps.Location,
		now:           deps.Clock,
	}
	if svc.validator == nil {
		svc.validator = validation.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.location == nil {
		svc.location = time.UTC
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Submit validates and stores a new application. Email duplicates win over phone duplicates.
func (s *RegistrationService) Submit(ctx context.Context, input SubmissionInput) (*domain.Registration, error) {
	input.normalize()
	if err := s.validator.Struct(input); err != nil {
		s.metrics.RecordSubmission(submissionInvalid)
		return nil, err
	}

	existing, err := s.registrations.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		s.metrics.RecordSubmission(submissionStoreError)
		return nil, apperrors.NewStoreError(err)
	}
	if err := duplicateOf(existing, input); err != nil {
		s.recordDuplicate(err)
		return nil, err
	}

	reg := &domain.Registration{
		FullName:  input.FullName,
		Email:     input.Email,
		Phone:     input.Phone,
		Education: input.Education,
		Status:    domain.StatusPending,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			err = apperrors.NewDuplicateEmail(input.Email)
		case errors.Is(err, repository.ErrDuplicatePhone):
			err = apperrors.NewDuplicatePhone(input.Phone)
		default:
			s.metrics.RecordSubmission(submissionStoreError)
			return nil, apperrors.NewStoreError(err)
		}
		s.recordDuplicate(err)
		return nil, err
	}

	s.metrics.RecordSubmission(submissionCreated)
	s.logger.Info("registration submitted",
		zap.String("registration_id", reg.ID),
		zap.String("education", reg.Education))
	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationSubmitted,
		RegistrationID: reg.ID,
		Payload:        events.RegistrationSubmittedPayload{Education: reg.Education},
	})
	return reg, nil
}

// UpdateStatus moves a registration to any status.
func (s *RegistrationService) UpdateStatus(ctx context.Context, session *domain.Session, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(statusInput{Status: string(status)}); err != nil {
		return nil, err
	}

	reg, previous, err := s.apply(ctx, id, domain.RegistrationUpdate{Status: &status})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordStatusChange(string(status))
	s.logger.Info("registration status changed",
		zap.String("registration_id", id),
		zap.String("from", string(previous.Status)),
		zap.String("status", string(status)),
		zap.String("staff_id", session.StaffID))
	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationStatusChanged,
		RegistrationID: id,
		Actor:          sessionActor(session),
		Payload:        events.StatusChangedPayload{OldStatus: previous.Status, NewStatus: status},
	})
	return reg, nil
}

// ScheduleInterview stores the interview, approves the registration and then sends the
// confirmation email. The write is never undone by a notification failure.
func (s *RegistrationService) ScheduleInterview(ctx context.Context, session *domain.Session, id string, input ScheduleInput) (*ScheduleResult, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	input.Link = strings.TrimSpace(input.Link)
	input.Date = strings.TrimSpace(input.Date)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	date, err := s.parseInterviewDate(input.Date)
	if err != nil {
		return nil, err
	}

	approved := domain.StatusApproved
	reg, previous, err := s.apply(ctx, id, domain.RegistrationUpdate{
		Status:        &approved,
		InterviewLink: &input.Link,
		InterviewDate: &date,
	})
	if err != nil {
		return nil, err
	}

	report := s.notify(ctx, kindInterviewConfirmation, id)
	if previous.Status != approved {
		s.metrics.RecordStatusChange(string(approved))
	}
	s.logger.Info("interview scheduled",
		zap.String("registration_id", id),
		zap.Time("interview_date", date),
		zap.String("staff_id", session.StaffID),
		zap.String("outcome", string(report.Outcome)))
	s.publishEvent(ctx, events.Event{
		Type:           events.EventInterviewScheduled,
		RegistrationID: id,
		Actor:          sessionActor(session),
		Payload: events.InterviewScheduledPayload{
			OldStatus:          previous.Status,
			InterviewLink:      input.Link,
			InterviewDate:      date,
			NotificationResult: string(report.Outcome),
		},
	})
	return &ScheduleResult{Registration: reg, Notification: report}, nil
}

// SendReminder re-sends the interview details. The registration is not modified.
func (s *RegistrationService) SendReminder(ctx context.Context, session *domain.Session, id string) (NotificationReport, error) {
	if err := s.authorize(session); err != nil {
		return NotificationReport{}, err
	}
	reg, err := s.fetch(ctx, id)
	if err != nil {
		return NotificationReport{}, err
	}
	if reg.InterviewLink == nil || *reg.InterviewLink == "" {
		return NotificationReport{}, apperrors.NewValidationError("no interview scheduled", map[string]any{
			"interview_link": "Schedule an interview before sending a reminder",
		})
	}

	report := s.notify(ctx, kindReminder, id)
	s.logger.Info("interview reminder dispatched",
		zap.String("registration_id", id),
		zap.String("staff_id", session.StaffID),
		zap.String("outcome", string(report.Outcome)))
	s.publishEvent(ctx, events.Event{
		Type:           events.EventInterviewReminderSent,
		RegistrationID: id,
		Actor:          sessionActor(session),
		Payload:        events.ReminderSentPayload{NotificationResult: string(report.Outcome)},
	})
	return report, nil
}

// UpdateNotes overwrites the staff notes. An empty string is stored as is.
func (s *RegistrationService) UpdateNotes(ctx context.Context, session *domain.Session, id, notes string) (*domain.Registration, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	reg, _, err := s.apply(ctx, id, domain.RegistrationUpdate{Notes: &notes})
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationNotesUpdated,
		RegistrationID: id,
		Actor:          sessionActor(session),
		Payload:        events.NotesUpdatedPayload{Length: len(notes)},
	})
	return reg, nil
}

// List reads every registration newest first and returns a sequence filtered on demand.
func (s *RegistrationService) List(ctx context.Context, session *domain.Session, filter ListFilter) (iter.Seq[domain.Registration], error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}
	all, err := s.registrations.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return func(yield func(domain.Registration) bool) {
		for _, reg := range all {
			if !filter.Matches(reg) {
				continue
			}
			if !yield(reg) {
				return
			}
		}
	}, nil
}

// Get returns one registration.
func (s *RegistrationService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Registration, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	return s.fetch(ctx, id)
}

// Stats counts registrations per status.
func (s *RegistrationService) Stats(ctx context.Context, session *domain.Session) (domain.RegistrationStats, error) {
	if err := s.authorize(session); err != nil {
		return domain.RegistrationStats{}, err
	}
	all, err := s.registrations.ListAll(ctx)
	if err != nil {
		return domain.RegistrationStats{}, apperrors.NewStoreError(err)
	}
	var stats domain.RegistrationStats
	for _, reg := range all {
		stats.Add(reg.Status)
	}
	return stats, nil
}

// Calendar lists scheduled interviews between from and to, both optional, soonest first.
func (s *RegistrationService) Calendar(ctx context.Context, session *domain.Session, from, to *time.Time) ([]CalendarEvent, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperrors.NewValidationError("invalid input", map[string]any{
			"to": "to must not be before from",
		})
	}
	scheduled, err := s.registrations.ListScheduled(ctx, repository.ScheduleFilter{From: from, To: to})
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	calendar := make([]CalendarEvent, 0, len(scheduled))
	for _, reg := range scheduled {
		if reg.InterviewDate == nil {
			continue
		}
		calendar = append(calendar, CalendarEvent{
			ID:           reg.ID,
			Title:        reg.FullName,
			Start:        *reg.InterviewDate,
			Registration: reg,
		})
	}
	return calendar, nil
}

// Export renders the filtered list as a CSV or XLSX file.
func (s *RegistrationService) Export(ctx context.Context, session *domain.Session, filter ListFilter, format export.Format) (*ExportFile, error) {
	regs, err := s.List(ctx, session, filter)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, format, regs); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("registrations-%s.%s", s.now().UTC().Format("20060102"), format.Extension()),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (s *RegistrationService) authorize(session *domain.Session) error {
	if !session.Valid(s.now()) {
		return apperrors.NewUnauthorized("staff session required")
	}
	return nil
}

func (s *RegistrationService) fetch(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(id, err)
	}
	return reg, nil
}

// apply writes update in one store call and returns the new and previous state.
func (s *RegistrationService) apply(ctx context.Context, id string, update domain.RegistrationUpdate) (*domain.Registration, domain.Registration, error) {
	current, err := s.fetch(ctx, id)
	if err != nil {
		return nil, domain.Registration{}, err
	}
	previous := *current
	if err := s.registrations.UpdateFields(ctx, id, update); err != nil {
		return nil, domain.Registration{}, s.storeError(id, err)
	}
	update.Apply(current)
	return current, previous, nil
}

func (s *RegistrationService) storeError(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("registration", map[string]any{"id": id})
	}
	return apperrors.NewStoreError(err)
}

func (s *RegistrationService) notify(ctx context.Context, kind notificationKind, id string) NotificationReport {
	var (
		result NotificationResult
		err    error
	)
	switch {
	case s.notifier == nil:
		result = NotificationResult{Simulated: true, Message: SimulationMessage}
	case kind == kindReminder:
		result, err = s.notifier.SendReminder(ctx, id)
	default:
		result, err = s.notifier.SendInterviewConfirmation(ctx, id)
	}
	if err != nil {
		s.logger.Warn("notification failed",
			zap.String("registration_id", id),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
	report := reportNotification(kind, result, err)
	s.metrics.RecordNotification(string(kind), string(report.Outcome))
	return report
}

func (s *RegistrationService) parseInterviewDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range interviewDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.location); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("invalid input", map[string]any{
		"interview_date": "Interview date must be a valid date and time",
	})
}

func (s *RegistrationService) recordDuplicate(err error) {
	if apperrors.IsDuplicateEmail(err) {
		s.metrics.RecordSubmission(submissionDuplicateEmail)
		return
	}
	s.metrics.RecordSubmission(submissionDuplicatePhone)
}

func (s *RegistrationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("registration_id", event.RegistrationID),
			zap.Error(err))
	}
}

// duplicateOf reports the duplicate error for the first conflicting field, email first.
func duplicateOf(existing []domain.Registration, input SubmissionInput) error {
	for _, reg := range existing {
		if reg.Email == input.Email {
			return apperrors.NewDuplicateEmail(input.Email)
		}
	}
	for _, reg := range existing {
		if reg.Phone == input.Phone {
			return apperrors.NewDuplicatePhone(input.Phone)
		}
	}
	return nil
}

func sessionActor(session *domain.Session) events.Actor {
	return events.Actor{StaffID: session.StaffID, Email: session.Email}
}
