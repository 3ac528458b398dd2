package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerredefine/admissions-service/internal/domain"
)

// MemoryRegistrationRepository keeps registrations in process memory.
// It is used when no Postgres DSN is configured and in tests.
type MemoryRegistrationRepository struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	seq     int64
	now     func() time.Time
}

type memoryRecord struct {
	reg domain.Registration
	seq int64
}

var _ RegistrationRepository = (*MemoryRegistrationRepository)(nil)

// NewMemoryRegistrationRepository creates an empty store.
func NewMemoryRegistrationRepository() *MemoryRegistrationRepository {
	return &MemoryRegistrationRepository{
		records: make(map[string]*memoryRecord),
		now:     time.Now,
	}
}

// WithClock overrides the creation timestamp source.
func (r *MemoryRegistrationRepository) WithClock(now func() time.Time) *MemoryRegistrationRepository {
	r.now = now
	return r
}

func (r *MemoryRegistrationRepository) Create(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.reg.Email == reg.Email {
			return ErrDuplicateEmail
		}
	}
	for _, rec := range r.records {
		if rec.reg.Phone == reg.Phone {
			return ErrDuplicatePhone
		}
	}

	reg.ID = uuid.NewString()
	reg.CreatedAt = r.now().UTC()
	r.seq++
	r.records[reg.ID] = &memoryRecord{reg: cloneRegistration(*reg), seq: r.seq}
	return nil
}

func (r *MemoryRegistrationRepository) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	reg := cloneRegistration(rec.reg)
	return &reg, nil
}

func (r *MemoryRegistrationRepository) FindByEmailOrPhone(_ context.Context, email, phone string) ([]domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Registration
	for _, rec := range r.sorted() {
		if rec.reg.Email == email || rec.reg.Phone == phone {
			out = append(out, cloneRegistration(rec.reg))
		}
	}
	return out, nil
}

func (r *MemoryRegistrationRepository) UpdateFields(_ context.Context, id string, update domain.RegistrationUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	update.Apply(&rec.reg)
	return nil
}

func (r *MemoryRegistrationRepository) ListAll(_ context.Context) ([]domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := r.sorted()
	out := make([]domain.Registration, 0, len(records))
	for _, rec := range records {
		out = append(out, cloneRegistration(rec.reg))
	}
	return out, nil
}

func (r *MemoryRegistrationRepository) ListScheduled(_ context.Context, filter ScheduleFilter) ([]domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Registration
	for _, rec := range r.records {
		if rec.reg.InterviewDate == nil || !filter.Matches(*rec.reg.InterviewDate) {
			continue
		}
		out = append(out, cloneRegistration(rec.reg))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InterviewDate.Before(*out[j].InterviewDate)
	})
	return out, nil
}

// sorted returns records newest first. Caller holds the lock.
func (r *MemoryRegistrationRepository) sorted() []*memoryRecord {
	records := make([]*memoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.reg.CreatedAt.Equal(b.reg.CreatedAt) {
			return a.reg.CreatedAt.After(b.reg.CreatedAt)
		}
		return a.seq > b.seq
	})
	return records
}

func cloneRegistration(reg domain.Registration) domain.Registration {
	out := reg
	out.InterviewLink = nil
	out.InterviewDate = nil
	out.Notes = nil
	domain.RegistrationUpdate{
		InterviewLink: reg.InterviewLink,
		InterviewDate: reg.InterviewDate,
		Notes:         reg.Notes,
	}.Apply(&out)
	return out
}
