package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerredefine/admissions-service/internal/domain"
)

func newRegistration(email, phone string) *domain.Registration {
	return &domain.Registration{
		FullName:  "Ada Lovelace",
		Email:     email,
		Phone:     phone,
		Education: "phd",
		Status:    domain.StatusPending,
	}
}

func TestMemoryRegistrationCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRegistrationRepository()

	reg := newRegistration("ada@example.com", "5551234567")
	require.NoError(t, repo.Create(ctx, reg))
	assert.NotEmpty(t, reg.ID)
	assert.False(t, reg.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.Email, got.Email)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistrationUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRegistrationRepository()
	require.NoError(t, repo.Create(ctx, newRegistration("ada@example.com", "5551234567")))

	err := repo.Create(ctx, newRegistration("ada@example.com", "5550000000"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = repo.Create(ctx, newRegistration("other@example.com", "5551234567"))
	assert.ErrorIs(t, err, ErrDuplicatePhone)

	matches, err := repo.FindByEmailOrPhone(ctx, "nobody@example.com", "5551234567")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestMemoryRegistrationListNewestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRegistrationRepository().WithClock(func() time.Time { return now })

	first := newRegistration("a@example.com", "5550000001")
	second := newRegistration("b@example.com", "5550000002")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "equal timestamps fall back to insertion order")
	assert.Equal(t, first.ID, all[1].ID)
}

func TestMemoryRegistrationUpdateIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRegistrationRepository()
	reg := newRegistration("ada@example.com", "5551234567")
	require.NoError(t, repo.Create(ctx, reg))

	link := "https://meet.example.com/abc"
	date := time.Date(2030, 3, 4, 15, 0, 0, 0, time.UTC)
	approved := domain.StatusApproved
	require.NoError(t, repo.UpdateFields(ctx, reg.ID, domain.RegistrationUpdate{
		Status:        &approved,
		InterviewLink: &link,
		InterviewDate: &date,
	}))

	got, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.True(t, got.HasInterview())

	*got.InterviewLink = "mutated"
	again, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, link, *again.InterviewLink)

	err = repo.UpdateFields(ctx, "missing", domain.RegistrationUpdate{Status: &approved})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistrationListScheduled(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRegistrationRepository()

	dates := []time.Time{
		time.Date(2030, 3, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC),
	}
	for i, date := range dates {
		reg := newRegistration(string(rune('a'+i))+"@example.com", "555000000"+string(rune('1'+i)))
		require.NoError(t, repo.Create(ctx, reg))
		link := "https://meet.example.com"
		require.NoError(t, repo.UpdateFields(ctx, reg.ID, domain.RegistrationUpdate{InterviewLink: &link, InterviewDate: &date}))
	}
	require.NoError(t, repo.Create(ctx, newRegistration("unscheduled@example.com", "5550000009")))

	all, err := repo.ListScheduled(ctx, ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].InterviewDate.Before(*all[1].InterviewDate))

	from := time.Date(2030, 3, 5, 0, 0, 0, 0, time.UTC)
	later, err := repo.ListScheduled(ctx, ScheduleFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.True(t, later[0].InterviewDate.Equal(dates[0]))
}

func TestMemoryStaffRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()

	staff := &domain.StaffMember{Name: "Admin", Email: "Admin@Example.com", Role: domain.StaffRoleAdmin, Active: true}
	require.NoError(t, repo.Create(ctx, staff))
	assert.Equal(t, "admin@example.com", staff.Email)

	got, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, got.ID)

	assert.ErrorIs(t, repo.Create(ctx, &domain.StaffMember{Email: "admin@example.com"}), ErrDuplicateEmail)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepositories(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Now()
	memory := NewMemorySessionRepository()
	memory.now = func() time.Time { return now }

	repos := map[string]SessionRepository{
		"redis":  NewRedisSessionRepository(client),
		"memory": memory,
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			revoked, err := repo.IsRevoked(ctx, "jti-1")
			require.NoError(t, err)
			assert.False(t, revoked)

			require.NoError(t, repo.Revoke(ctx, "jti-1", time.Minute))
			require.NoError(t, repo.Revoke(ctx, "jti-2", 0))

			revoked, err = repo.IsRevoked(ctx, "jti-1")
			require.NoError(t, err)
			assert.True(t, revoked)

			revoked, err = repo.IsRevoked(ctx, "jti-2")
			require.NoError(t, err)
			assert.False(t, revoked, "already expired tokens are not stored")
		})
	}

	mr.FastForward(2 * time.Minute)
	now = now.Add(2 * time.Minute)
	for name, repo := range repos {
		revoked, err := repo.IsRevoked(context.Background(), "jti-1")
		require.NoError(t, err, name)
		assert.False(t, revoked, name)
	}
}
