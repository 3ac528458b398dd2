package domain

import "time"

// StaffRole enumerates back-office roles.
type StaffRole string

const (
	StaffRoleReviewer StaffRole = "REVIEWER"
	StaffRoleAdmin    StaffRole = "ADMIN"
)

// StaffMember models a back-office operator who reviews registrations.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
