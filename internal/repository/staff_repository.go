package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerredefine/admissions-service/internal/domain"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (name, email, password_hash, role, active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.Name,
		strings.ToLower(staff.Email),
		staff.PasswordHash,
		staff.Role,
		staff.Active,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	return translatePgError(err)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, name, email, password_hash, role, active, created_at, updated_at
        FROM staff_members WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, name, email, password_hash, role, active, created_at, updated_at
        FROM staff_members WHERE email=$1`
	return r.fetchSingle(ctx, query, strings.ToLower(email))
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.Active,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, translatePgError(err)
	}
	return &staff, nil
}

// MemoryStaffRepository keeps staff accounts in process memory.
type MemoryStaffRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.StaffMember
	byEmail map[string]string
}

var _ StaffRepository = (*MemoryStaffRepository)(nil)

// NewMemoryStaffRepository creates an empty store.
func NewMemoryStaffRepository() *MemoryStaffRepository {
	return &MemoryStaffRepository{
		byID:    make(map[string]domain.StaffMember),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryStaffRepository) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(staff.Email)
	if _, exists := r.byEmail[email]; exists {
		return ErrDuplicateEmail
	}
	now := time.Now().UTC()
	staff.ID = uuid.NewString()
	staff.Email = email
	staff.CreatedAt = now
	staff.UpdatedAt = now
	r.byID[staff.ID] = *staff
	r.byEmail[email] = staff.ID
	return nil
}

func (r *MemoryStaffRepository) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staff, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &staff, nil
}

func (r *MemoryStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	r.mu.RLock()
	id, ok := r.byEmail[strings.ToLower(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
