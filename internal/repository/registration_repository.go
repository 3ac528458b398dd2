package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerredefine/admissions-service/internal/domain"
)

// ScheduleFilter narrows calendar queries. Nil bounds are open.
type ScheduleFilter struct {
	From *time.Time
	To   *time.Time
}

// Matches reports whether at falls inside the filter bounds.
func (f ScheduleFilter) Matches(at time.Time) bool {
	if f.From != nil && at.Before(*f.From) {
		return false
	}
	if f.To != nil && at.After(*f.To) {
		return false
	}
	return true
}

// RegistrationRepository is the registration store.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) ([]domain.Registration, error)
	UpdateFields(ctx context.Context, id string, update domain.RegistrationUpdate) error
	ListAll(ctx context.Context) ([]domain.Registration, error)
	ListScheduled(ctx context.Context, filter ScheduleFilter) ([]domain.Registration, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository returns a Postgres-backed implementation.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

const registrationColumns = `id, created_at, full_name, email, phone, education, status,
               interview_link, interview_date, notes`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (full_name, email, phone, education, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		reg.FullName,
		reg.Email,
		reg.Phone,
		reg.Education,
		reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt)
	return translatePgError(err)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()
	list, err := scanRegistrations(rows)
	if err != nil {
		return nil, translatePgError(err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

func (r *registrationRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE email=$1 OR phone=$2`
	return r.query(ctx, query, email, phone)
}

// UpdateFields writes every set field of update in a single statement.
func (r *registrationRepository) UpdateFields(ctx context.Context, id string, update domain.RegistrationUpdate) error {
	if update.Empty() {
		return nil
	}
	sets := []string{}
	args := []any{}

	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if update.InterviewLink != nil {
		args = append(args, *update.InterviewLink)
		sets = append(sets, fmt.Sprintf("interview_link=$%d", len(args)))
	}
	if update.InterviewDate != nil {
		args = append(args, *update.InterviewDate)
		sets = append(sets, fmt.Sprintf("interview_date=$%d", len(args)))
	}
	if update.Notes != nil {
		args = append(args, *update.Notes)
		sets = append(sets, fmt.Sprintf("notes=$%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE registrations SET %s WHERE id=$%d`, strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translatePgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *registrationRepository) ListScheduled(ctx context.Context, filter ScheduleFilter) ([]domain.Registration, error) {
	clauses := []string{"interview_date IS NOT NULL"}
	args := []any{}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("interview_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("interview_date <= $%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE %s ORDER BY interview_date ASC`,
		registrationColumns, strings.Join(clauses, " AND "))
	return r.query(ctx, query, args...)
}

func (r *registrationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()
	list, err := scanRegistrations(rows)
	return list, translatePgError(err)
}

func scanRegistrations(rows pgx.Rows) ([]domain.Registration, error) {
	var result []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.CreatedAt,
			&reg.FullName,
			&reg.Email,
			&reg.Phone,
			&reg.Education,
			&reg.Status,
			&reg.InterviewLink,
			&reg.InterviewDate,
			&reg.Notes,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
