/*
service.go - Engine operations over the accounting document

PURPOSE:
  Service exposes the leave-accounting operations: employee registry,
  request creation, decisions with the allocation split, and balance
  summaries. Every operation runs its entire load-compute-save sequence
  inside one store critical section, so two concurrent approvals against
  the same yearly record can never both observe the same remaining
  balance and double-spend it.

TRANSACTION DISCIPLINE:
  - Update(fn): lock, load, run fn on the in-memory document, save only
    when fn returns nil. An error discards the mutation entirely; the
    stored document is untouched (all-or-nothing decisions).
  - View(fn): lock, load, run fn. Never saves.

  GetBalance uses Update, not View: reading a balance for a year the
  employee has no record of yet materializes that record (with its
  memoized carry-over) and persists the creation. Callers must tolerate
  this one read side effect.

SEE ALSO:
  - allocation.go: the algorithms the decisions lean on
  - store/jsonfile: the Store implementation
*/
package leave

import (
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Store serializes access to the accounting document. Implementations must
// hold a single process-wide lock for the whole duration of fn, and Update
// must persist atomically on nil and discard everything on error.
// A single data file backs exactly one running process; separate processes
// sharing the file are not coordinated.
type Store interface {
	View(fn func(*Document) error) error
	Update(fn func(*Document) error) error
}

// Service is the accounting engine. The zero value is not usable; create
// one with NewService. Now is swappable for tests that pin the clock.
type Service struct {
	Store Store
	Log   *slog.Logger
	Now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		Store: store,
		Log:   slog.Default(),
		Now:   time.Now,
	}
}

func (s *Service) today() Date {
	return DateOf(s.Now())
}

// =============================================================================
// EMPLOYEE REGISTRY
// =============================================================================

// CreateEmployee registers an employee and immediately materializes the
// current calendar year's record. An empty id is generated; a supplied id
// that collides fails with ErrDuplicateEmployee.
func (s *Service) CreateEmployee(name, id string) (*Employee, error) {
	if id == "" {
		id = NewEmployeeID()
	}
	var created *Employee
	err := s.Store.Update(func(doc *Document) error {
		if _, exists := doc.Employees[id]; exists {
			return &DuplicateEmployeeError{ID: id}
		}
		emp := &Employee{
			ID:            id,
			Name:          name,
			CreatedAt:     s.today(),
			YearlyRecords: make(map[string]*YearlyRecord),
		}
		doc.Employees[id] = emp
		materializeRecord(emp, s.today().Year())
		created = emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("employee created", slog.String("employee_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// GetEmployee returns the employee or ErrNotFound.
func (s *Service) GetEmployee(id string) (*Employee, error) {
	var found *Employee
	err := s.Store.View(func(doc *Document) error {
		emp, ok := doc.Employees[id]
		if !ok {
			return &NotFoundError{Kind: "employee", ID: id}
		}
		found = emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListEmployees returns every employee in no particular order.
func (s *Service) ListEmployees() ([]*Employee, error) {
	var out []*Employee
	err := s.Store.View(func(doc *Document) error {
		out = make([]*Employee, 0, len(doc.Employees))
		for _, emp := range doc.Employees {
			out = append(out, emp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================

// ApplyForLeave files a pending application against the year of the given
// date, materializing that year's record on first access. Balance is not
// checked here; sufficiency is only enforced at approval time. An empty
// requestedBy defaults to the employee's display name.
func (s *Service) ApplyForLeave(employeeID, date string, leaveType LeaveType, reason, requestedBy string) (*Application, error) {
	if !leaveType.Valid() {
		return nil, &InvalidLeaveTypeError{Value: string(leaveType)}
	}
	leaveDate, err := ParseDate(date)
	if err != nil {
		return nil, &InvalidDateError{Value: date}
	}

	var created *Application
	err = s.Store.Update(func(doc *Document) error {
		emp, ok := doc.Employees[employeeID]
		if !ok {
			return &NotFoundError{Kind: "employee", ID: employeeID}
		}
		rec := materializeRecord(emp, leaveDate.Year())

		requester := requestedBy
		if requester == "" {
			requester = emp.Name
		}
		app := &Application{
			ID:          NewApplicationID(),
			EmployeeID:  employeeID,
			Year:        leaveDate.Year(),
			Date:        leaveDate,
			LeaveType:   leaveType,
			Duration:    leaveType.Duration(),
			Reason:      optional(reason),
			RequestedBy: requester,
			Status:      StatusPending,
			CreatedAt:   s.Now().UTC(),
			History:     []HistoryEntry{},
		}
		rec.Applications = append(rec.Applications, app)
		doc.Applications[app.ID] = app
		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("leave requested",
		slog.String("application_id", created.ID),
		slog.String("employee_id", created.EmployeeID),
		slog.String("date", created.Date.String()),
		slog.String("leave_type", string(created.LeaveType)))
	return created, nil
}

// DecideLeave records a terminal decision on a pending application.
// Approval runs the allocation split and fails with ErrInsufficientBalance
// when the split cannot be satisfied; in that case the application stays
// pending and the stored document is untouched. Rejection consumes nothing
// and records a zero/zero breakdown. Decision matching is case-insensitive.
func (s *Service) DecideLeave(applicationID, approver, decision, comment string) (*Application, error) {
	verdict := Status(strings.ToLower(decision))
	if verdict != StatusApproved && verdict != StatusRejected {
		return nil, &InvalidDecisionError{Value: decision}
	}

	var decided *Application
	err := s.Store.Update(func(doc *Document) error {
		app, ok := doc.Applications[applicationID]
		if !ok {
			return &NotFoundError{Kind: "application", ID: applicationID}
		}
		if app.Status != StatusPending {
			return &InvalidStateError{ApplicationID: app.ID, Status: app.Status}
		}
		emp, ok := doc.Employees[app.EmployeeID]
		if !ok {
			return &NotFoundError{Kind: "employee", ID: app.EmployeeID}
		}
		rec := materializeRecord(emp, app.Year)

		breakdown := Breakdown{}
		if verdict == StatusApproved {
			split, err := allocate(rec, app.Date, app.Duration, emp.ID)
			if err != nil {
				return err
			}
			breakdown = split
		}

		app.Status = verdict
		app.AllocationBreakdown = &breakdown
		app.History = append(app.History, HistoryEntry{
			ActedBy:  approver,
			Decision: verdict,
			Comment:  optional(comment),
			ActedAt:  s.Now().UTC(),
		})
		decided = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("leave decided",
		slog.String("application_id", decided.ID),
		slog.String("decision", string(verdict)),
		slog.String("acted_by", approver))
	return decided, nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// GetApplications returns applications matching the optional filters
// (AND-combined), newest first. Empty filter values match everything.
func (s *Service) GetApplications(employeeID string, status Status) ([]*Application, error) {
	var out []*Application
	err := s.Store.View(func(doc *Document) error {
		for _, app := range doc.Applications {
			if employeeID != "" && app.EmployeeID != employeeID {
				continue
			}
			if status != "" && app.Status != status {
				continue
			}
			out = append(out, app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetBalance summarizes an employee's entitlement for the year (current
// calendar year when year <= 0). A first read of a year materializes and
// persists that year's record.
func (s *Service) GetBalance(employeeID string, year int) (*BalanceSummary, error) {
	if year <= 0 {
		year = s.today().Year()
	}
	var summary *BalanceSummary
	err := s.Store.Update(func(doc *Document) error {
		emp, ok := doc.Employees[employeeID]
		if !ok {
			return &NotFoundError{Kind: "employee", ID: employeeID}
		}
		rec := materializeRecord(emp, year)

		usedCarry, usedCurrent := usage(rec)
		remCarry, remCurrent := remaining(rec)
		summary = &BalanceSummary{
			EmployeeID:           emp.ID,
			EmployeeName:         emp.Name,
			Year:                 year,
			Allocation:           rec.Allocation,
			CarryOver:            rec.CarryOver,
			CarryOverExpiry:      rec.CarryOverExpiry,
			UsedCurrentYear:      usedCurrent,
			UsedCarryOver:        usedCarry,
			RemainingCurrentYear: remCurrent,
			RemainingCarryOver:   remCarry,
			Applications:         rec.Applications,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
