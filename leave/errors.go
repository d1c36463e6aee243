/*
errors.go - Caller-visible error taxonomy for the accounting engine

PURPOSE:
  Every business-rule violation surfaces as one of the sentinel errors
  below, usually wrapped in a structured error carrying context. None of
  them is process-fatal; the transport layer maps them uniformly to a
  client error. Storage failures are not classified here and propagate
  as plain I/O errors.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, leave.ErrInsufficientBalance) { ... }

  or pull details with errors.As:

    var ib *leave.InsufficientBalanceError
    if errors.As(err, &ib) { ... ib.Requested ... }
*/
package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned for an unknown employee or application id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmployee is returned when a supplied employee id collides.
	ErrDuplicateEmployee = errors.New("employee already exists")

	// ErrInvalidLeaveType is returned for an unrecognized leave type.
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// ErrInvalidDate is returned when a date does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDecision is returned for a decision other than approved/rejected.
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrInvalidState is returned when deciding an application that is not pending.
	ErrInvalidState = errors.New("only pending applications can be processed")

	// ErrInsufficientBalance is returned when an approval would exceed the
	// remaining entitlement. The decision attempt commits nothing.
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)

// =============================================================================
// STRUCTURED ERRORS - carry additional context
// =============================================================================

// NotFoundError identifies which kind of record was missing.
type NotFoundError struct {
	Kind string // "employee" or "application"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' was not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateEmployeeError reports an id collision on employee creation.
type DuplicateEmployeeError struct {
	ID string
}

func (e *DuplicateEmployeeError) Error() string {
	return fmt.Sprintf("employee with id '%s' already exists", e.ID)
}

func (e *DuplicateEmployeeError) Unwrap() error { return ErrDuplicateEmployee }

// InvalidLeaveTypeError reports an unrecognized leave type value.
type InvalidLeaveTypeError struct {
	Value string
}

func (e *InvalidLeaveTypeError) Error() string {
	return fmt.Sprintf("leave_type %q must be one of 'full', 'first_half', or 'second_half'", e.Value)
}

func (e *InvalidLeaveTypeError) Unwrap() error { return ErrInvalidLeaveType }

// InvalidDateError reports an unparsable leave date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date %q must be in YYYY-MM-DD format", e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// InvalidDecisionError reports a decision value outside approved/rejected.
type InvalidDecisionError struct {
	Value string
}

func (e *InvalidDecisionError) Error() string {
	return fmt.Sprintf("decision %q must be either 'approved' or 'rejected'", e.Value)
}

func (e *InvalidDecisionError) Unwrap() error { return ErrInvalidDecision }

// InvalidStateError reports a decision attempted on a non-pending application.
type InvalidStateError struct {
	ApplicationID string
	Status        Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("application '%s' is already %s; only pending applications can be processed",
		e.ApplicationID, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// InsufficientBalanceError details the shortfall behind a failed approval.
type InsufficientBalanceError struct {
	EmployeeID           string
	Year                 int
	Requested            decimal.Decimal
	RemainingCarryOver   decimal.Decimal
	RemainingCurrentYear decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance to approve the request: requested %s, remaining %s carry-over + %s current-year",
		e.Requested, e.RemainingCarryOver, e.RemainingCurrentYear)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError reports whether the error is a recoverable business-rule
// violation rather than a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateEmployee) ||
		errors.Is(err, ErrInvalidLeaveType) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrInsufficientBalance)
}
