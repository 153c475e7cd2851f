package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsInvalid reports whether err came from record validation rather than the
// database.
func IsInvalid(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) || errors.Is(err, ErrMissingDate) || errors.Is(err, ErrSalaryRange)
}

func opt(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// Ptr returns a pointer to s, or nil when s is empty.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
