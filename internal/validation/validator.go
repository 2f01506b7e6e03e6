// Package validation collects per-field messages for forms before they are
// submitted. A form with any message never reaches the backend.
package validation

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	apperr "orusweb/internal/errors"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

const MinPasswordLength = 8

// Errors maps a field name to its message.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return apperr.ErrValidation.Error()
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", fields[0], e[fields[0]])
}

func (e Errors) Unwrap() error {
	return apperr.ErrValidation
}

// Prefix renames every field to prefix+field.
func (e Errors) Prefix(prefix string) Errors {
	out := make(Errors, len(e))
	for f, m := range e {
		out[prefix+f] = m
	}
	return out
}

// Validator accumulates field messages. The first message for a field wins.
type Validator struct {
	Errors Errors
}

func New() *Validator {
	return &Validator{Errors: make(Errors)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Err returns the collected messages as an error, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.Errors
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required rejects empty and whitespace-only values.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "this field is required")
}

func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

func (v *Validator) Phone(field, phone string) {
	v.Check(phoneRegex.MatchString(phone), field, "must be a valid phone number")
}

func (v *Validator) MinLength(field, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// Password enforces the strength rules the registration form shows.
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	v.Check(hasUpper, field, "must contain at least one uppercase letter")
	v.Check(hasLower, field, "must contain at least one lowercase letter")
	v.Check(hasNumber, field, "must contain at least one number")
}

// Merge copies messages from err when it carries field errors and reports
// whether it did.
func (v *Validator) Merge(err error) bool {
	fe, ok := err.(Errors)
	if !ok {
		return false
	}
	for f, m := range fe {
		v.AddError(f, m)
	}
	return true
}

// Field attaches a domain error to one form field so the form shows it
// inline. Other errors are returned unchanged.
func Field(field string, err error) error {
	if _, ok := err.(Errors); ok {
		return err
	}
	var de *apperr.DomainError
	if err == nil || !stderrors.As(err, &de) {
		return err
	}
	if stderrors.Is(err, apperr.ErrSessionExpired) || stderrors.Is(err, apperr.ErrMissingToken) {
		return err
	}
	return Errors{field: de.Message}
}
