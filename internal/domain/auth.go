package domain

import "time"

// Session identifies the staff member performing back-office operations.
type Session struct {
	StaffID   string
	Email     string
	Name      string
	Role      StaffRole
	TokenID   string
	ExpiresAt time.Time
}

// Valid reports whether the session exists and has not expired at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.StaffID == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// NewSession builds a session for staff.
func NewSession(staff *StaffMember, tokenID string, expiresAt time.Time) *Session {
	return &Session{
		StaffID:   staff.ID,
		Email:     staff.Email,
		Name:      staff.Name,
		Role:      staff.Role,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}
}
