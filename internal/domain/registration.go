package domain

import "time"

// RegistrationStatus enumerates the review pipeline states. Values are persisted.
type RegistrationStatus string

const (
	StatusPending     RegistrationStatus = "pending"
	StatusApproved    RegistrationStatus = "approved"
	StatusInterviewed RegistrationStatus = "interviewed"
	StatusRejected    RegistrationStatus = "rejected"
)

// StatusFilterAll matches every status when listing.
const StatusFilterAll = "all"

// RegistrationStatuses lists every status in display order.
var RegistrationStatuses = []RegistrationStatus{
	StatusPending,
	StatusApproved,
	StatusInterviewed,
	StatusRejected,
}

// Valid reports whether s is a known status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInterviewed, StatusRejected:
		return true
	}
	return false
}

// EducationOption is one selectable highest-education value.
type EducationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EducationOptions is the fixed option set offered on the application form.
var EducationOptions = []EducationOption{
	{Value: "bachelors-degree", Label: "Bachelor's Degree"},
	{Value: "masters-degree", Label: "Master's Degree"},
	{Value: "phd", Label: "PhD"},
	{Value: "diploma", Label: "Diploma"},
	{Value: "other", Label: "Other"},
}

// legacyEducationValues were written by the first form, which kept the apostrophe.
var legacyEducationValues = map[string]struct{}{
	"bachelor's-degree": {},
	"master's-degree":   {},
}

// ValidEducation reports whether value belongs to the option set.
func ValidEducation(value string) bool {
	for _, opt := range EducationOptions {
		if opt.Value == value {
			return true
		}
	}
	_, ok := legacyEducationValues[value]
	return ok
}

// Registration is an applicant's record moving through the interview pipeline.
type Registration struct {
	ID            string
	CreatedAt     time.Time
	FullName      string
	Email         string
	Phone         string
	Education     string
	Status        RegistrationStatus
	InterviewLink *string
	InterviewDate *time.Time
	Notes         *string
}

// HasInterview reports whether an interview has been scheduled.
func (r *Registration) HasInterview() bool {
	return r.InterviewLink != nil && *r.InterviewLink != "" && r.InterviewDate != nil
}

// RegistrationUpdate lists the fields changed by one atomic update. Nil fields are left as is.
type RegistrationUpdate struct {
	Status        *RegistrationStatus
	InterviewLink *string
	InterviewDate *time.Time
	Notes         *string
}

// Empty reports whether the update changes nothing.
func (u RegistrationUpdate) Empty() bool {
	return u.Status == nil && u.InterviewLink == nil && u.InterviewDate == nil && u.Notes == nil
}

// Apply copies the set fields onto r.
func (u RegistrationUpdate) Apply(r *Registration) {
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.InterviewLink != nil {
		link := *u.InterviewLink
		r.InterviewLink = &link
	}
	if u.InterviewDate != nil {
		date := *u.InterviewDate
		r.InterviewDate = &date
	}
	if u.Notes != nil {
		notes := *u.Notes
		r.Notes = &notes
	}
}

// RegistrationStats summarizes registrations by status.
type RegistrationStats struct {
	Total       int
	Pending     int
	Approved    int
	Interviewed int
	Rejected    int
}

// Add counts one registration.
func (s *RegistrationStats) Add(status RegistrationStatus) {
	s.Total++
	switch status {
	case StatusPending:
		s.Pending++
	case StatusApproved:
		s.Approved++
	case StatusInterviewed:
		s.Interviewed++
	case StatusRejected:
		s.Rejected++
	}
}
