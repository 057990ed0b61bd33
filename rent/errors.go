/*
errors.go - Centralized error types for the rent engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  The HTTP layer maps these to status codes without inspecting messages.

ERROR CATEGORIES:
  1. NotFound - a referenced unit, tenant, or payment id does not exist
  2. Validation - a value fails a structural constraint; nothing is persisted
  3. Business rule - a domain rule is violated after structural validation
     passes; nothing is persisted
  4. Internal - unexpected store failures, wrapped generically

USAGE:
  Callers classify with the helpers:

    if rent.IsNotFound(err) { ... 404 ... }
    var verr *rent.ValidationError
    if errors.As(err, &verr) { ... verr.Violations ... }
*/
package rent

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnitNotFound is returned when a referenced property unit doesn't exist.
	ErrUnitNotFound = errors.New("property unit not found")

	// ErrTenantNotFound is returned when a referenced tenant doesn't exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrPaymentNotFound is returned when a referenced payment doesn't exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInternal marks unexpected store failures. The engine performs no
	// retries; the store is assumed local and reliable.
	ErrInternal = errors.New("internal error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldViolation is a single failed structural constraint on a named field.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError reports every violated field, not just the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a violation. Returns the receiver for chaining in guards.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
	return e
}

// OrNil returns nil when no violations were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// BusinessRuleError is a domain rule violation: structurally valid input that
// the business rules reject (e.g. a payment above the per-payment ceiling).
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NotFoundError wraps a sentinel with the offending id for diagnostics.
type NotFoundError struct {
	Kind ResourceKind
	ID   string
}

type ResourceKind string

const (
	KindUnit    ResourceKind = "property unit"
	KindTenant  ResourceKind = "tenant"
	KindPayment ResourceKind = "payment"
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case KindTenant:
		return ErrTenantNotFound
	case KindPayment:
		return ErrPaymentNotFound
	default:
		return ErrUnitNotFound
	}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnitNotFound) ||
		errors.Is(err, ErrTenantNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}

// IsValidation returns true for structural constraint failures.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsBusinessRule returns true for domain rule violations.
func IsBusinessRule(err error) bool {
	var berr *BusinessRuleError
	return errors.As(err, &berr)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return IsNotFound(err) || IsValidation(err) || IsBusinessRule(err)
}
