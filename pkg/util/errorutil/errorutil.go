package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes exposed to API clients.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeDuplicatePhone   = "DUPLICATE_PHONE"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeRateLimited      = "RATE_LIMITED"
	CodeStoreError       = "STORE_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// NewDuplicateEmail reports a submission whose email is already registered.
func NewDuplicateEmail(email string) error {
	return NewDomainError(CodeDuplicateEmail, "Email already registered.", http.StatusConflict,
		map[string]any{"email": email})
}

// NewDuplicatePhone reports a submission whose phone is already registered.
func NewDuplicatePhone(phone string) error {
	return NewDomainError(CodeDuplicatePhone, "Phone number already registered.", http.StatusConflict,
		map[string]any{"phone": phone})
}

// NewStoreError wraps a failure of the registration store.
func NewStoreError(err error) error {
	return &DomainError{
		Code:       CodeStoreError,
		Message:    "registration store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewRateLimited(message string) error {
	return NewDomainError(CodeRateLimited, message, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err carries a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

func IsValidation(err error) bool     { return HasCode(err, CodeValidationFailed) }
func IsDuplicateEmail(err error) bool { return HasCode(err, CodeDuplicateEmail) }
func IsDuplicatePhone(err error) bool { return HasCode(err, CodeDuplicatePhone) }
func IsStoreError(err error) bool     { return HasCode(err, CodeStoreError) }
func IsNotFound(err error) bool       { return HasCode(err, CodeNotFound) }
func IsUnauthorized(err error) bool   { return HasCode(err, CodeUnauthorized) }

// IsDuplicate reports either duplicate kind.
func IsDuplicate(err error) bool {
	return IsDuplicateEmail(err) || IsDuplicatePhone(err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
