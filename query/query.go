// Package query provides read-only projections over engine output for the
// transport layer: ordering, truncation, and dashboard grouping. It holds
// no business rules and never mutates state (beyond the engine's own lazy
// record materialization during balance reads).
package query

import (
	"sort"
	"strings"

	"github.com/novellusaahmad/HolidayDashboard/leave"
)

// Engine is the read surface of the accounting engine the façade consumes.
type Engine interface {
	ListEmployees() ([]*leave.Employee, error)
	GetBalance(employeeID string, year int) (*leave.BalanceSummary, error)
	GetApplications(employeeID string, status leave.Status) ([]*leave.Application, error)
}

// SortedByName returns the employees ordered by display name,
// case-insensitively. The input slice is not modified.
func SortedByName(employees []*leave.Employee) []*leave.Employee {
	out := make([]*leave.Employee, len(employees))
	copy(out, employees)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// SortedByID returns the employees ordered by id. The input slice is not
// modified.
func SortedByID(employees []*leave.Employee) []*leave.Employee {
	out := make([]*leave.Employee, len(employees))
	copy(out, employees)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindApplication locates an application by id within engine output.
// Returns nil when absent.
func FindApplication(apps []*leave.Application, id string) *leave.Application {
	for _, app := range apps {
		if app.ID == id {
			return app
		}
	}
	return nil
}

// Recent truncates an already newest-first application list to n entries.
func Recent(apps []*leave.Application, n int) []*leave.Application {
	if n < 0 {
		n = 0
	}
	if len(apps) <= n {
		return apps
	}
	return apps[:n]
}

// Dashboard is the summary the landing page renders: every employee's
// balance for the year, the pending queue, and the latest activity.
type Dashboard struct {
	Year           int                     `json:"year"`
	Employees      []*leave.Employee       `json:"employees"`
	Balances       []*leave.BalanceSummary `json:"balances"`
	Pending        []*leave.Application    `json:"pending"`
	RecentActivity []*leave.Application    `json:"recent_activity"`
}

// BuildDashboard assembles the dashboard from engine read operations.
// Employees whose balance cannot be computed are skipped rather than
// failing the whole page.
func BuildDashboard(engine Engine, year, recent int) (*Dashboard, error) {
	employees, err := engine.ListEmployees()
	if err != nil {
		return nil, err
	}
	employees = SortedByName(employees)

	balances := make([]*leave.BalanceSummary, 0, len(employees))
	for _, emp := range employees {
		balance, err := engine.GetBalance(emp.ID, year)
		if err != nil {
			continue
		}
		balances = append(balances, balance)
	}

	pending, err := engine.GetApplications("", leave.StatusPending)
	if err != nil {
		return nil, err
	}
	activity, err := engine.GetApplications("", "")
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Year:           year,
		Employees:      employees,
		Balances:       balances,
		Pending:        pending,
		RecentActivity: Recent(activity, recent),
	}, nil
}
