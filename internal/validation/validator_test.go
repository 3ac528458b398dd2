package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

type form struct {
	FullName  string `json:"full_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Education string `json:"education" validate:"required,education"`
	Status    string `json:"status" validate:"omitempty,registration_status"`
	Link      string `json:"interview_link" validate:"omitempty,interview_link"`
	Nickname  string `json:"nickname" validate:"max=3"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	v := New()
	err := v.Struct(form{
		FullName:  "Ada",
		Email:     "ada@example.com",
		Education: "bachelor's-degree",
		Status:    "approved",
		Link:      "https://meet.example.com/x",
	})
	assert.NoError(t, err)
}

func TestStructReportsEveryField(t *testing.T) {
	v := New()
	err := v.Struct(form{
		FullName:  "A",
		Email:     "nope",
		Education: "kindergarten",
		Status:    "archived",
		Link:      "mailto:a@b.c",
		Nickname:  "toolong",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	assert.Equal(t, map[string]any{
		"full_name":      "Full name must be at least 2 characters",
		"email":          "Invalid email address",
		"education":      "Please select your education level",
		"status":         "status must be pending, approved, interviewed, or rejected",
		"interview_link": "Interview link must be an http(s) URL",
		"nickname":       "nickname must be a maximum of 3 characters in length",
	}, domainErr.Details)
}

func TestIsHTTPURL(t *testing.T) {
	cases := map[string]bool{
		"https://meet.example.com/abc": true,
		"http://localhost:8080":        true,
		"  https://zoom.us/j/1  ":      true,
		"":                             false,
		"meet.example.com":             false,
		"ftp://files.example.com":      false,
		"https://":                     false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, IsHTTPURL(raw), raw)
	}
}
