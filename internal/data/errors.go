package data

import (
	"errors"
	"sort"
	"strings"

	"github.com/hafizmfadli/go-vidly/internal/validator"
)

var (
	// ErrRecordNotFound is returned when a genre or movie lookup by ID
	// comes up empty.
	ErrRecordNotFound = errors.New("record not found")
)

// ValidationError reports input that failed one of the catalog's rules.
// Errors maps the machine-readable rule code (for example "too_long" or
// "date_future") to the message shown to the user. The operation that
// returned it changed no state.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	codes := make([]string, 0, len(e.Errors))
	for code := range e.Errors {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return "invalid input: " + strings.Join(codes, ", ")
}

// Has reports whether the rule identified by code is among the failures.
func (e *ValidationError) Has(code string) bool {
	_, ok := e.Errors[code]
	return ok
}

// failedValidation converts the collected validator state into the
// error returned to callers.
func failedValidation(v *validator.Validator) *ValidationError {
	return &ValidationError{Errors: v.Errors}
}

// ConflictError reports an operation that would violate genre name
// uniqueness ("duplicate") or genre→movie referential integrity
// ("in_use"). The operation that returned it changed no state.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
