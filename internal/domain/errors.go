package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrReferenceNotFound  = errors.New("referenced object does not exist")
	ErrDuplicateSeat      = errors.New("seat is already booked for this flight")
	ErrSeatBusy           = errors.New("seat is being booked by another request")
	ErrRangeViolation     = errors.New("value outside available range")
	ErrInvalidField       = errors.New("invalid field")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages. Kind is one of ErrRangeViolation
// or ErrInvalidField and is what errors.Is matches against.
type ValidationError struct {
	Kind   error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "this field may not be blank")
	}
}

func (f fieldErrors) maxLen(field, value string, n int) {
	if len([]rune(value)) > n {
		f.add(field, fmt.Sprintf("ensure this field has no more than %d characters", n))
	}
}

func (f fieldErrors) err(kind error) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Fields: f}
}
