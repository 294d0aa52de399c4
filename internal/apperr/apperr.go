// Package apperr defines the error taxonomy shared by the ledger, the target
// store, the document generator and the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermission is returned when the caller (or the store credentials) lack
	// the identity class required for an operation.
	ErrPermission = errors.New("permission denied")
)

// ValidationError carries one message per rejected field. It is caller
// correctable and never retried.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field. The first message per field wins.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}

	e.Fields[field] = msg
}

// Empty reports whether no field was rejected.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e as an error, or nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}

	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// IntegrationError wraps a failure of the underlying store that is not a
// permission problem. It is surfaced as a transient notice; callers resubmit.
type IntegrationError struct {
	Op  string
	Err error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// GenerationError reports a document that could not be assembled.
type GenerationError struct {
	Document string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s: %v", e.Document, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Integration wraps err as an IntegrationError unless it already carries a
// permission or not-found meaning.
func Integration(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPermission) || errors.Is(err, ErrNotFound) {
		return err
	}

	return &IntegrationError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsIntegration(err error) bool {
	var ie *IntegrationError
	return errors.As(err, &ie)
}

func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
