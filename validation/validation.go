// Package validation holds the field checks request handlers run before
// handing input to the domain packages. Each check appends a human readable
// message to Errors instead of failing fast, so callers get every problem at
// once.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors accumulates field error messages
type Errors []string

func (e *Errors) Add(format string, args ...any) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Required reports whether value is non-blank, recording an error when it is not
func (e *Errors) Required(field, value string) bool {
	if validate.Var(strings.TrimSpace(value), "required") != nil {
		e.Add("%s should not be empty", field)
		return false
	}
	return true
}

func (e *Errors) Email(field, value string) {
	if validate.Var(value, "required,email") != nil {
		e.Add("%s must be an email", field)
	}
}

// MinLength and MaxLength count runes, not bytes
func (e *Errors) MinLength(field, value string, n int) {
	if validate.Var(value, fmt.Sprintf("min=%d", n)) != nil {
		e.Add("%s must be longer than or equal to %d characters", field, n)
	}
}

func (e *Errors) MaxLength(field, value string, n int) {
	if validate.Var(value, fmt.Sprintf("max=%d", n)) != nil {
		e.Add("%s must be shorter than or equal to %d characters", field, n)
	}
}

func (e *Errors) OneOf(field, value string, allowed ...string) {
	if validate.Var(value, "oneof="+strings.Join(allowed, " ")) != nil {
		e.Add("%s must be one of the following values: %s", field, strings.Join(allowed, ", "))
	}
}

func (e *Errors) IntRange(field string, value *int, min, max int) {
	switch {
	case value == nil:
		e.Add("%s must be a number", field)
	case validate.Var(*value, fmt.Sprintf("min=%d", min)) != nil:
		e.Add("%s must not be less than %d", field, min)
	case validate.Var(*value, fmt.Sprintf("max=%d", max)) != nil:
		e.Add("%s must not be greater than %d", field, max)
	}
}

// DateTime parses an RFC 3339 timestamp, recording an error if it is invalid
func (e *Errors) DateTime(field, value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		e.Add("%s must be a valid ISO 8601 date string", field)
		return time.Time{}
	}
	return t
}
