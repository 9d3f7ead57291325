// Package apierror provides the typed failure taxonomy of the ledger core and
// the standardized error envelope for the API. Services return the typed
// errors; handlers translate them to HTTP statuses without leaking internal
// details (stack traces, DB errors, etc.).
package apierror

import (
	"fmt"

	"github.com/google/uuid"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps per-field validation failures from request binding.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "validation failed", Fields: fields}
}

// ── Domain error taxonomy ────────────────────────────────────────────────────

// ValidationError reports malformed or out-of-range input that survived
// request binding (e.g. a non-positive restock delta).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return e.Entity + " " + e.ID + " not found" }

func NotFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

// ConflictError reports a uniqueness violation (duplicate barcode or brand
// name) detected at the storage boundary.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflictf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError rejects a sale that would overdraw an item. The
// ledger guarantees the failed sale left quantity, movements, and sales
// untouched.
type InsufficientStockError struct {
	ItemID    uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}
