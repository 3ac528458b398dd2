package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/careerredefine/admissions-service/internal/config"
	"github.com/careerredefine/admissions-service/internal/domain"
	"github.com/careerredefine/admissions-service/internal/mail"
	mailmocks "github.com/careerredefine/admissions-service/internal/mail/mocks"
	"github.com/careerredefine/admissions-service/internal/repository"
	"github.com/careerredefine/admissions-service/internal/service"
)

var notificationConfig = config.NotificationConfig{
	FromName:    "Career Redefine",
	FromAddress: "hello@careerredefine.example",
	TimeZone:    "UTC",
}

func scheduledRegistration(t *testing.T, repo *repository.MemoryRegistrationRepository) *domain.Registration {
	t.Helper()
	ctx := context.Background()
	reg := &domain.Registration{
		FullName:  "Asha <K>",
		Email:     "asha@x.com",
		Phone:     "9999999999",
		Education: "bachelors-degree",
		Status:    domain.StatusPending,
	}
	require.NoError(t, repo.Create(ctx, reg))

	link := "https://meet.example/abc"
	date := time.Date(2026, 11, 2, 15, 30, 0, 0, time.UTC)
	status := domain.StatusApproved
	require.NoError(t, repo.UpdateFields(ctx, reg.ID, domain.RegistrationUpdate{
		Status:        &status,
		InterviewLink: &link,
		InterviewDate: &date,
	}))
	return reg
}

func TestNotificationServiceSendsConfirmation(t *testing.T) {
	repo := repository.NewMemoryRegistrationRepository()
	reg := scheduledRegistration(t, repo)
	mailer := mailmocks.NewMockMailer(gomock.NewController(t))

	var sent mail.Message
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mail.Message) error {
		sent = msg
		return nil
	})

	notifier, err := service.NewNotificationService(notificationConfig, repo, mailer, nil)
	require.NoError(t, err)

	result, err := notifier.SendInterviewConfirmation(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.False(t, result.Simulated)
	assert.Equal(t, "Interview confirmation email sent successfully.", result.Message)

	assert.Equal(t, "Interview Scheduled with Career Redefine", sent.Subject)
	assert.Equal(t, "Career Redefine", sent.From.Name)
	assert.Equal(t, "hello@careerredefine.example", sent.From.Address)
	assert.Equal(t, "asha@x.com", sent.To.Address)
	assert.Contains(t, sent.Text, "Monday, November 2, 2026 at 3:30 PM UTC")
	assert.Contains(t, sent.Text, "https://meet.example/abc")
	assert.Contains(t, sent.HTML, "Hi Asha &lt;K&gt;,")
	assert.Contains(t, sent.HTML, `<a href="https://meet.example/abc">`)
}

func TestNotificationServiceSendsReminder(t *testing.T) {
	repo := repository.NewMemoryRegistrationRepository()
	reg := scheduledRegistration(t, repo)
	mailer := mailmocks.NewMockMailer(gomock.NewController(t))
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mail.Message) error {
		assert.Equal(t, "Interview Reminder from Career Redefine", msg.Subject)
		assert.True(t, strings.Contains(msg.HTML, "Interview Reminder"))
		return nil
	})

	notifier, err := service.NewNotificationService(notificationConfig, repo, mailer, nil)
	require.NoError(t, err)

	result, err := notifier.SendReminder(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Interview reminder email sent successfully.", result.Message)
}

func TestNotificationServiceSimulatesWithoutTransport(t *testing.T) {
	repo := repository.NewMemoryRegistrationRepository()
	reg := scheduledRegistration(t, repo)

	notifier, err := service.NewNotificationService(notificationConfig, repo, nil, nil)
	require.NoError(t, err)

	result, err := notifier.SendInterviewConfirmation(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.True(t, result.Simulated)
	assert.Equal(t, service.SimulationMessage, result.Message)
}

func TestNotificationServiceFailures(t *testing.T) {
	repo := repository.NewMemoryRegistrationRepository()
	reg := scheduledRegistration(t, repo)

	t.Run("unknown registration", func(t *testing.T) {
		notifier, err := service.NewNotificationService(notificationConfig, repo, nil, nil)
		require.NoError(t, err)
		_, err = notifier.SendInterviewConfirmation(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("no interview", func(t *testing.T) {
		pending := &domain.Registration{
			FullName:  "Ravi",
			Email:     "ravi@x.com",
			Phone:     "8888888888",
			Education: "phd",
			Status:    domain.StatusPending,
		}
		require.NoError(t, repo.Create(context.Background(), pending))
		notifier, err := service.NewNotificationService(notificationConfig, repo, nil, nil)
		require.NoError(t, err)
		_, err = notifier.SendReminder(context.Background(), pending.ID)
		assert.ErrorIs(t, err, service.ErrNoInterview)
	})

	t.Run("transport error", func(t *testing.T) {
		mailer := mailmocks.NewMockMailer(gomock.NewController(t))
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		notifier, err := service.NewNotificationService(notificationConfig, repo, mailer, nil)
		require.NoError(t, err)
		_, err = notifier.SendInterviewConfirmation(context.Background(), reg.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
