/*
dto.go - Request types for the JSON API

PURPOSE:
  Request bodies clients send in. Responses reuse the domain types
  directly: the persisted document layout is the one externally visible
  contract, so there is nothing to decouple on the way out.

VALIDATION:
  Struct tags drive go-playground/validator; handlers call it before
  touching the engine so malformed payloads never reach business logic.
*/
package api

// CreateEmployeeRequest creates an employee. EmployeeID is optional; the
// engine generates one when it is absent.
type CreateEmployeeRequest struct {
	Name       string `json:"name" validate:"required"`
	EmployeeID string `json:"employee_id"`
}

// ApplyLeaveRequest files a leave application.
type ApplyLeaveRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	LeaveType   string `json:"leave_type" validate:"required"`
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by"`
}

// DecisionRequest records an approval or rejection.
type DecisionRequest struct {
	Approver string `json:"approver" validate:"required"`
	Decision string `json:"decision" validate:"required"`
	Comment  string `json:"comment"`
}

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
