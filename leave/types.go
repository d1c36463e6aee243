/*
Package leave implements the paid-leave accounting engine.

PURPOSE:
  Tracks per-employee annual leave entitlement: a fixed yearly allocation,
  a capped carry-over from the previous year that expires part-way through
  the new year, and a request/approval workflow that only debits the
  entitlement when a request is approved.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: owns one YearlyRecord per calendar year it has been active in
  - YearlyRecord: allocation, carry-over, expiry, and the year's applications
  - Application: a single leave request with its decision history
  - Breakdown: how an approved request was split between the two buckets
  - Date: a calendar day serialized as YYYY-MM-DD

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every leave quantity, never float64
  2. Immutability: carry-over is computed once at record creation and
     never recomputed; application history is append-only
  3. One document: the whole accounting state serializes as a single
     JSON document (see Document), the only durable artifact

SEE ALSO:
  - service.go: engine operations over the document
  - allocation.go: carry-over and allocation-split algorithms
  - errors.go: the caller-visible error taxonomy
*/
package leave

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Balances must appear as plain JSON numbers in the stored document.
	decimal.MarshalJSONWithoutQuotes = true
}

// =============================================================================
// POLICY CONSTANTS
// =============================================================================

var (
	// AnnualAllocation is the fixed grant credited to every yearly record.
	AnnualAllocation = decimal.NewFromFloat(25)

	// MaxCarryOver caps how much unused allocation survives into the next year.
	MaxCarryOver = decimal.NewFromFloat(5)
)

// Carry-over may only be spent on leave dated on or before March 31
// of the record's year.
const (
	CarryOverExpiryMonth = time.March
	CarryOverExpiryDay   = 31
)

// =============================================================================
// LEAVE TYPES
// =============================================================================

type LeaveType string

const (
	LeaveFull       LeaveType = "full"
	LeaveFirstHalf  LeaveType = "first_half"
	LeaveSecondHalf LeaveType = "second_half"
)

var leaveDurations = map[LeaveType]decimal.Decimal{
	LeaveFull:       decimal.NewFromFloat(1),
	LeaveFirstHalf:  decimal.NewFromFloat(0.5),
	LeaveSecondHalf: decimal.NewFromFloat(0.5),
}

func (lt LeaveType) Valid() bool {
	_, ok := leaveDurations[lt]
	return ok
}

// Duration returns how many leave units the type consumes.
func (lt LeaveType) Duration() decimal.Decimal {
	return leaveDurations[lt]
}

// =============================================================================
// APPLICATION STATUS
// =============================================================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// =============================================================================
// DATE - calendar day, serialized as YYYY-MM-DD
// =============================================================================

const dateLayout = "2006-01-02"

type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(at time.Time) Date {
	at = at.UTC()
	return NewDate(at.Year(), at.Month(), at.Day())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

func (d Date) Year() int          { return d.t.Year() }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) String() string     { return d.t.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// =============================================================================
// DOMAIN RECORDS
// =============================================================================

// Employee owns zero or more yearly records, keyed by the calendar year
// as a string (JSON object keys are strings). An employee is created once
// and never deleted; records materialize lazily on first access to a year.
type Employee struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	CreatedAt     Date                     `json:"created_at"`
	YearlyRecords map[string]*YearlyRecord `json:"yearly_records"`
}

// YearlyRecord is the per-year ledger for one employee.
// CarryOver is computed exactly once when the record is created and is
// never recomputed, even if the previous year's applications change later.
type YearlyRecord struct {
	Year            int             `json:"year"`
	Allocation      decimal.Decimal `json:"allocation"`
	CarryOver       decimal.Decimal `json:"carry_over"`
	CarryOverExpiry Date            `json:"carry_over_expiry"`
	Applications    []*Application  `json:"applications"`
}

// Application is a single leave request. It transitions status at most
// once (pending to approved or rejected); history is append-only and the
// breakdown is attached only when the request is decided.
type Application struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	Year                int             `json:"year"`
	Date                Date            `json:"date"`
	LeaveType           LeaveType       `json:"leave_type"`
	Duration            decimal.Decimal `json:"duration"`
	Reason              *string         `json:"reason"`
	RequestedBy         string          `json:"requested_by"`
	Status              Status          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
	History             []HistoryEntry  `json:"history"`
	AllocationBreakdown *Breakdown      `json:"allocation_breakdown,omitempty"`
}

// HistoryEntry records one decision taken on an application.
type HistoryEntry struct {
	ActedBy  string    `json:"acted_by"`
	Decision Status    `json:"decision"`
	Comment  *string   `json:"comment"`
	ActedAt  time.Time `json:"acted_at"`
}

// Breakdown is the split of an approved duration between the carry-over
// bucket and the current-year bucket. Rejections record zero/zero.
type Breakdown struct {
	CarryOver   decimal.Decimal `json:"carry_over"`
	CurrentYear decimal.Decimal `json:"current_year"`
}

// =============================================================================
// DOCUMENT - the entire accounting state
// =============================================================================

// Document is the whole accounting state as persisted: every employee plus
// a global application index. Each application is held both in the index
// and inside its yearly record; in memory those are the same pointer.
type Document struct {
	Employees    map[string]*Employee    `json:"employees"`
	Applications map[string]*Application `json:"applications"`
}

func NewDocument() *Document {
	return &Document{
		Employees:    make(map[string]*Employee),
		Applications: make(map[string]*Application),
	}
}

// Link restores pointer identity between the global application index and
// the per-record application lists after a JSON round trip. The lists are
// authoritative; every listed application replaces its index entry.
func (d *Document) Link() {
	if d.Employees == nil {
		d.Employees = make(map[string]*Employee)
	}
	if d.Applications == nil {
		d.Applications = make(map[string]*Application)
	}
	for _, emp := range d.Employees {
		if emp.YearlyRecords == nil {
			emp.YearlyRecords = make(map[string]*YearlyRecord)
		}
		for _, rec := range emp.YearlyRecords {
			for _, app := range rec.Applications {
				d.Applications[app.ID] = app
			}
		}
	}
}

// =============================================================================
// BALANCE SUMMARY - computed, never persisted
// =============================================================================

// BalanceSummary is the read projection returned by Service.GetBalance.
type BalanceSummary struct {
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	Year                 int             `json:"year"`
	Allocation           decimal.Decimal `json:"allocation"`
	CarryOver            decimal.Decimal `json:"carry_over"`
	CarryOverExpiry      Date            `json:"carry_over_expiry"`
	UsedCurrentYear      decimal.Decimal `json:"used_current_year"`
	UsedCarryOver        decimal.Decimal `json:"used_carry_over"`
	RemainingCurrentYear decimal.Decimal `json:"remaining_current_year"`
	RemainingCarryOver   decimal.Decimal `json:"remaining_carry_over"`
	Applications         []*Application  `json:"applications"`
}
