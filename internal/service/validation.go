package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/license-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// fieldErrors accumulates field to message violations surfaced to clients.
type fieldErrors map[string]any

func (f fieldErrors) requireRange(field, value, label string, min, max int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		f[field] = fmt.Sprintf("%s is required", label)
		return
	}
	// length limits count characters, not bytes
	if n := utf8.RuneCountInString(trimmed); n < min || n > max {
		f[field] = fmt.Sprintf("%s must be between %d and %d characters", label, min, max)
	}
}

func (f fieldErrors) requirePresent(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		f[field] = fmt.Sprintf("%s is required", label)
	}
}

func (f fieldErrors) requireEmail(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "Email is required"
		return
	}
	if !emailPattern.MatchString(value) {
		f[field] = "Invalid email format"
	}
}

func (f fieldErrors) requireMinLen(field, value, label string, min int) {
	if value == "" {
		f[field] = fmt.Sprintf("%s is required", label)
		return
	}
	if utf8.RuneCountInString(value) < min {
		f[field] = fmt.Sprintf("%s must be at least %d characters", label, min)
	}
}

// asError converts accumulated violations into a validation error, or nil
// when every constraint held.
func (f fieldErrors) asError() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("Validation failed", f)
}
