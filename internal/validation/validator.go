package validation

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/careerredefine/admissions-service/internal/domain"
	apperrors "github.com/careerredefine/admissions-service/pkg/util/errorutil"
)

const (
	educationTag     = "education"
	regStatusTag     = "registration_status"
	interviewLinkTag = "interview_link"
)

// fieldMessages mirror the copy shown on the public application form.
var fieldMessages = map[string]string{
	"full_name.min":                 "Full name must be at least 2 characters",
	"full_name.required":            "Full name must be at least 2 characters",
	"email.email":                   "Invalid email address",
	"email.required":                "Invalid email address",
	"phone.min":                     "Phone number must be at least 10 digits",
	"phone.required":                "Phone number must be at least 10 digits",
	"education.required":            "Please select your education level",
	"education.education":           "Please select your education level",
	"status.required":               "status must be pending, approved, interviewed, or rejected",
	"status.registration_status":    "status must be pending, approved, interviewed, or rejected",
	"interview_link.required":       "Interview link is required",
	"interview_link.interview_link": "Interview link must be an http(s) URL",
	"interview_date.required":       "Interview date is required",
}

// Validator wraps go-playground/validator with the service's rules and messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with custom tags registered.
func New() *Validator {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(educationTag, func(fl validator.FieldLevel) bool {
		return domain.ValidEducation(fl.Field().String())
	})
	_ = validate.RegisterValidation(regStatusTag, func(fl validator.FieldLevel) bool {
		return domain.RegistrationStatus(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation(interviewLinkTag, func(fl validator.FieldLevel) bool {
		return IsHTTPURL(fl.Field().String())
	})

	return &Validator{validate: validate, translator: translator}
}

// Struct validates s and returns a VALIDATION_FAILED DomainError listing every bad field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid input", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := details[fe.Field()]; seen {
			continue
		}
		details[fe.Field()] = v.message(fe)
	}
	return apperrors.NewValidationError("invalid input", details)
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Translate(v.translator)
}

// IsHTTPURL reports whether raw is an absolute http or https URL with a host.
func IsHTTPURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
