package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by every store implementation.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrDuplicatePhone = errors.New("duplicate phone")
)

const (
	pgUniqueViolation       = "23505"
	pgInvalidTextRepresent  = "22P02"
	registrationsEmailIndex = "registrations_email_key"
	registrationsPhoneIndex = "registrations_phone_key"
)

// translatePgError maps driver errors onto the sentinels above.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresent:
			// malformed uuid in a lookup can never match a row
			return ErrNotFound
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case registrationsEmailIndex:
				return ErrDuplicateEmail
			case registrationsPhoneIndex:
				return ErrDuplicatePhone
			}
		}
	}
	return err
}
