package dto

import (
	"time"

	"github.com/careerredefine/admissions-service/internal/domain"
)

// StaffLoginRequest payload.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StaffResponse describes the signed-in staff member.
type StaffResponse struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  domain.StaffRole `json:"role"`
}

// NewStaff maps a staff member.
func NewStaff(staff *domain.StaffMember) StaffResponse {
	return StaffResponse{ID: staff.ID, Name: staff.Name, Email: staff.Email, Role: staff.Role}
}
