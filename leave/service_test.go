package leave_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellusaahmad/HolidayDashboard/leave"
	"github.com/novellusaahmad/HolidayDashboard/store/jsonfile"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// newTestService pins "today" to 2024-06-15 and ticks the clock one second
// per call so creation timestamps are strictly increasing.
func newTestService(t *testing.T) (*leave.Service, *jsonfile.Store) {
	t.Helper()
	store := jsonfile.New(filepath.Join(t.TempDir(), "state.json"))
	svc := leave.NewService(store)
	svc.Log = slog.New(slog.NewTextHandler(io.Discard, nil))

	clock := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	svc.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, store
}

func requireUnits(t *testing.T, want float64, got decimal.Decimal, context ...string) {
	t.Helper()
	msg := fmt.Sprintf("want %v units, got %s", want, got)
	if len(context) > 0 {
		msg = context[0] + ": " + msg
	}
	require.True(t, decimal.NewFromFloat(want).Equal(got), msg)
}

// approveFullDays files and approves one full-day application per date.
func approveFullDays(t *testing.T, svc *leave.Service, employeeID string, dates ...string) {
	t.Helper()
	for _, date := range dates {
		app, err := svc.ApplyForLeave(employeeID, date, leave.LeaveFull, "", "")
		require.NoError(t, err)
		_, err = svc.DecideLeave(app.ID, "manager", "approved", "")
		require.NoError(t, err)
	}
}

func mayDates(n int) []string {
	dates := make([]string, n)
	for i := range dates {
		dates[i] = fmt.Sprintf("2024-05-%02d", i+1)
	}
	return dates
}

// =============================================================================
// EMPLOYEE REGISTRY
// =============================================================================

func TestCreateEmployee_MaterializesCurrentYearRecord(t *testing.T) {
	// GIVEN: A fresh service with today pinned to 2024
	// WHEN: An employee is created
	// THEN: The 2024 record exists with full allocation and zero carry-over

	svc, _ := newTestService(t)

	emp, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", emp.ID)
	assert.Equal(t, "2024-06-15", emp.CreatedAt.String())

	rec, ok := emp.YearlyRecords["2024"]
	require.True(t, ok, "current year record should be materialized at creation")
	assert.Equal(t, 2024, rec.Year)
	requireUnits(t, 25, rec.Allocation)
	requireUnits(t, 0, rec.CarryOver)
	assert.Equal(t, "2024-03-31", rec.CarryOverExpiry.String())
	assert.Empty(t, rec.Applications)
}

func TestCreateEmployee_GeneratesIDWhenAbsent(t *testing.T) {
	svc, _ := newTestService(t)

	emp, err := svc.CreateEmployee("Bob", "")
	require.NoError(t, err)
	assert.Len(t, emp.ID, 8)

	fetched, err := svc.GetEmployee(emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", fetched.Name)
}

func TestCreateEmployee_DuplicateIDRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	_, err = svc.CreateEmployee("Impostor", "alice")
	assert.ErrorIs(t, err, leave.ErrDuplicateEmployee)

	var dup *leave.DuplicateEmployeeError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "alice", dup.ID)
}

func TestGetEmployee_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetEmployee("ghost")
	assert.ErrorIs(t, err, leave.ErrNotFound)
}

func TestListEmployees(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	_, err = svc.CreateEmployee("Bob", "bob")
	require.NoError(t, err)

	employees, err := svc.ListEmployees()
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

// =============================================================================
// REQUEST CREATION
// =============================================================================

func TestApplyForLeave_CreatesPendingApplication(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	app, err := svc.ApplyForLeave("alice", "2024-07-01", leave.LeaveFirstHalf, "dentist", "")
	require.NoError(t, err)

	assert.Len(t, app.ID, 32)
	assert.Equal(t, "alice", app.EmployeeID)
	assert.Equal(t, 2024, app.Year)
	assert.Equal(t, "2024-07-01", app.Date.String())
	requireUnits(t, 0.5, app.Duration)
	require.NotNil(t, app.Reason)
	assert.Equal(t, "dentist", *app.Reason)
	assert.Equal(t, "Alice", app.RequestedBy, "requester defaults to the employee name")
	assert.Equal(t, leave.StatusPending, app.Status)
	assert.Empty(t, app.History)
	assert.Nil(t, app.AllocationBreakdown)

	// Linked into both the global index and the year record.
	apps, err := svc.GetApplications("", "")
	require.NoError(t, err)
	require.Len(t, apps, 1)

	balance, err := svc.GetBalance("alice", 2024)
	require.NoError(t, err)
	require.Len(t, balance.Applications, 1)
	assert.Equal(t, app.ID, balance.Applications[0].ID)
}

func TestApplyForLeave_InvalidLeaveType(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	_, err = svc.ApplyForLeave("alice", "2024-07-01", "sabbatical", "", "")
	assert.ErrorIs(t, err, leave.ErrInvalidLeaveType)
}

func TestApplyForLeave_InvalidDate(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	for _, bad := range []string{"07/01/2024", "2024-13-40", "tomorrow", ""} {
		_, err = svc.ApplyForLeave("alice", bad, leave.LeaveFull, "", "")
		assert.ErrorIs(t, err, leave.ErrInvalidDate, "date %q", bad)
	}
}

func TestApplyForLeave_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ApplyForLeave("ghost", "2024-07-01", leave.LeaveFull, "", "")
	assert.ErrorIs(t, err, leave.ErrNotFound)
}

func TestApplyForLeave_NoBalanceCheckAtRequestTime(t *testing.T) {
	// GIVEN: An employee with a fully spent allocation
	// WHEN: Another application is filed
	// THEN: It is accepted as pending; sufficiency is enforced at approval only

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(25)...)

	app, err := svc.ApplyForLeave("alice", "2024-06-03", leave.LeaveFull, "", "")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, app.Status)
}

// =============================================================================
// DECISIONS
// =============================================================================

func TestDecideLeave_ApproveDebitsCurrentYear(t *testing.T) {
	// GIVEN: Fresh employee alice in 2024 (25.0 allocation, 0 carry-over)
	// WHEN: A full day on 2024-01-10 is approved
	// THEN: Breakdown is {0, 1} and the balance shows 24 remaining

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	balance, err := svc.GetBalance("alice", 2024)
	require.NoError(t, err)
	requireUnits(t, 25, balance.Allocation)
	requireUnits(t, 0, balance.CarryOver)
	requireUnits(t, 25, balance.RemainingCurrentYear)

	app, err := svc.ApplyForLeave("alice", "2024-01-10", leave.LeaveFull, "", "")
	require.NoError(t, err)

	decided, err := svc.DecideLeave(app.ID, "manager", "approved", "enjoy")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
	require.NotNil(t, decided.AllocationBreakdown)
	requireUnits(t, 0, decided.AllocationBreakdown.CarryOver)
	requireUnits(t, 1, decided.AllocationBreakdown.CurrentYear)

	require.Len(t, decided.History, 1)
	assert.Equal(t, "manager", decided.History[0].ActedBy)
	assert.Equal(t, leave.StatusApproved, decided.History[0].Decision)
	require.NotNil(t, decided.History[0].Comment)
	assert.Equal(t, "enjoy", *decided.History[0].Comment)

	balance, err = svc.GetBalance("alice", 2024)
	require.NoError(t, err)
	requireUnits(t, 1, balance.UsedCurrentYear)
	requireUnits(t, 24, balance.RemainingCurrentYear)
}

func TestDecideLeave_RejectRecordsZeroBreakdown(t *testing.T) {
	// GIVEN: A pending application
	// WHEN: It is rejected
	// THEN: Breakdown is zero/zero and no balance moves

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	app, err := svc.ApplyForLeave("alice", "2024-07-01", leave.LeaveFull, "", "")
	require.NoError(t, err)

	decided, err := svc.DecideLeave(app.ID, "manager", "rejected", "coverage gap")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, decided.Status)
	require.NotNil(t, decided.AllocationBreakdown)
	requireUnits(t, 0, decided.AllocationBreakdown.CarryOver)
	requireUnits(t, 0, decided.AllocationBreakdown.CurrentYear)

	balance, err := svc.GetBalance("alice", 2024)
	require.NoError(t, err)
	requireUnits(t, 0, balance.UsedCurrentYear)
	requireUnits(t, 25, balance.RemainingCurrentYear)
}

func TestDecideLeave_TerminalStatesAreFinal(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	app, err := svc.ApplyForLeave("alice", "2024-07-01", leave.LeaveFull, "", "")
	require.NoError(t, err)
	_, err = svc.DecideLeave(app.ID, "manager", "rejected", "")
	require.NoError(t, err)

	_, err = svc.DecideLeave(app.ID, "manager", "approved", "changed my mind")
	assert.ErrorIs(t, err, leave.ErrInvalidState)

	apps, err := svc.GetApplications("alice", "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, leave.StatusRejected, apps[0].Status)
	assert.Len(t, apps[0].History, 1, "failed re-decision must not append history")
}

func TestDecideLeave_UnknownApplication(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.DecideLeave("missing", "manager", "approved", "")
	assert.ErrorIs(t, err, leave.ErrNotFound)
}

func TestDecideLeave_InvalidDecisionValue(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	app, err := svc.ApplyForLeave("alice", "2024-07-01", leave.LeaveFull, "", "")
	require.NoError(t, err)

	_, err = svc.DecideLeave(app.ID, "manager", "maybe", "")
	assert.ErrorIs(t, err, leave.ErrInvalidDecision)

	// Matching is case-insensitive.
	decided, err := svc.DecideLeave(app.ID, "manager", "APPROVED", "")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
}

func TestDecideLeave_InsufficientBalanceLeavesNothingBehind(t *testing.T) {
	// GIVEN: The 25-unit allocation fully consumed
	// WHEN: Approving one more full day
	// THEN: The approval fails, the application stays pending, and the
	//       stored document carries no trace of the attempt

	svc, store := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(25)...)

	app, err := svc.ApplyForLeave("alice", "2024-06-03", leave.LeaveFull, "", "")
	require.NoError(t, err)

	_, err = svc.DecideLeave(app.ID, "manager", "approved", "")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	var short *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, "alice", short.EmployeeID)
	assert.Equal(t, 2024, short.Year)
	requireUnits(t, 1, short.Requested)
	requireUnits(t, 0, short.RemainingCurrentYear)

	doc, err := store.Load()
	require.NoError(t, err)
	stored := doc.Applications[app.ID]
	require.NotNil(t, stored)
	assert.Equal(t, leave.StatusPending, stored.Status)
	assert.Empty(t, stored.History)
	assert.Nil(t, stored.AllocationBreakdown)

	balance, err := svc.GetBalance("alice", 2024)
	require.NoError(t, err)
	requireUnits(t, 25, balance.UsedCurrentYear)
	requireUnits(t, 0, balance.RemainingCurrentYear)
}

// =============================================================================
// CARRY-OVER
// =============================================================================

func TestCarryOver_UnusedAllocationRollsForward(t *testing.T) {
	// GIVEN: 22 of 25 units approved in 2024, leaving 3 unused
	// WHEN: The 2025 record materializes
	// THEN: carry_over == 3, and leave before the expiry spends it first

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(22)...)

	balance, err := svc.GetBalance("alice", 2025)
	require.NoError(t, err)
	requireUnits(t, 3, balance.CarryOver)
	assert.Equal(t, "2025-03-31", balance.CarryOverExpiry.String())

	app, err := svc.ApplyForLeave("alice", "2025-02-10", leave.LeaveFull, "", "")
	require.NoError(t, err)
	decided, err := svc.DecideLeave(app.ID, "manager", "approved", "")
	require.NoError(t, err)
	requireUnits(t, 1, decided.AllocationBreakdown.CarryOver)
	requireUnits(t, 0, decided.AllocationBreakdown.CurrentYear)

	app, err = svc.ApplyForLeave("alice", "2025-02-11", leave.LeaveFull, "", "")
	require.NoError(t, err)
	decided, err = svc.DecideLeave(app.ID, "manager", "approved", "")
	require.NoError(t, err)
	requireUnits(t, 1, decided.AllocationBreakdown.CarryOver)
	requireUnits(t, 0, decided.AllocationBreakdown.CurrentYear)

	balance, err = svc.GetBalance("alice", 2025)
	require.NoError(t, err)
	requireUnits(t, 2, balance.UsedCarryOver)
	requireUnits(t, 1, balance.RemainingCarryOver)
	requireUnits(t, 0, balance.UsedCurrentYear)
	requireUnits(t, 25, balance.RemainingCurrentYear)
}

func TestCarryOver_CappedAtMaximum(t *testing.T) {
	// 15 unused units in 2024 still carry only 5 into 2025.

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Bob", "bob")
	require.NoError(t, err)
	approveFullDays(t, svc, "bob", mayDates(10)...)

	balance, err := svc.GetBalance("bob", 2025)
	require.NoError(t, err)
	requireUnits(t, 5, balance.CarryOver)
}

func TestCarryOver_ZeroWithoutPreviousRecord(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	// 2030 has no 2029 record to draw from.
	balance, err := svc.GetBalance("alice", 2030)
	require.NoError(t, err)
	requireUnits(t, 0, balance.CarryOver)
}

func TestCarryOver_ExpiredDrawsNothing(t *testing.T) {
	// GIVEN: 3 units of carry-over in 2025, entirely unused
	// WHEN: A request dated after March 31 is approved
	// THEN: The split draws zero carry-over and one current-year unit

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(22)...)

	app, err := svc.ApplyForLeave("alice", "2025-04-01", leave.LeaveFull, "", "")
	require.NoError(t, err)
	decided, err := svc.DecideLeave(app.ID, "manager", "approved", "")
	require.NoError(t, err)
	requireUnits(t, 0, decided.AllocationBreakdown.CarryOver)
	requireUnits(t, 1, decided.AllocationBreakdown.CurrentYear)

	balance, err := svc.GetBalance("alice", 2025)
	require.NoError(t, err)
	requireUnits(t, 3, balance.RemainingCarryOver, "valid-window carry-over is reported even when unspendable")
}

func TestCarryOver_SnapshotNeverRecomputed(t *testing.T) {
	// GIVEN: The 2025 record materialized while 2024 had 3 unused units
	// WHEN: More 2024 leave is approved afterwards
	// THEN: The 2025 carry-over keeps its creation-time value

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(22)...)

	balance, err := svc.GetBalance("alice", 2025)
	require.NoError(t, err)
	requireUnits(t, 3, balance.CarryOver)

	approveFullDays(t, svc, "alice", "2024-06-03", "2024-06-04", "2024-06-05")

	balance, err = svc.GetBalance("alice", 2025)
	require.NoError(t, err)
	requireUnits(t, 3, balance.CarryOver, "carry-over is immutable once computed")
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestConcurrentApprovals_NeverDoubleSpend(t *testing.T) {
	// GIVEN: One remaining unit and two pending full-day applications
	// WHEN: Both are approved concurrently
	// THEN: Exactly one succeeds and stored usage never exceeds the cap

	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(24)...)

	first, err := svc.ApplyForLeave("alice", "2024-06-03", leave.LeaveFull, "", "")
	require.NoError(t, err)
	second, err := svc.ApplyForLeave("alice", "2024-06-04", leave.LeaveFull, "", "")
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(applicationID string) {
			defer wg.Done()
			_, err := svc.DecideLeave(applicationID, "manager", "approved", "")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, leave.ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one approval should win")
	assert.Equal(t, 1, insufficient, "the loser must fail with insufficient balance")

	balance, err := svc.GetBalance("alice", 2024)
	require.NoError(t, err)
	requireUnits(t, 25, balance.UsedCurrentYear)
	requireUnits(t, 0, balance.RemainingCurrentYear)
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

func TestGetApplications_FiltersAndOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	_, err = svc.CreateEmployee("Bob", "bob")
	require.NoError(t, err)

	a1, err := svc.ApplyForLeave("alice", "2024-07-01", leave.LeaveFull, "", "")
	require.NoError(t, err)
	b1, err := svc.ApplyForLeave("bob", "2024-07-02", leave.LeaveFull, "", "")
	require.NoError(t, err)
	a2, err := svc.ApplyForLeave("alice", "2024-07-03", leave.LeaveFirstHalf, "", "")
	require.NoError(t, err)

	_, err = svc.DecideLeave(b1.ID, "manager", "approved", "")
	require.NoError(t, err)

	all, err := svc.GetApplications("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, a2.ID, all[0].ID, "most recent first")
	assert.Equal(t, b1.ID, all[1].ID)
	assert.Equal(t, a1.ID, all[2].ID)

	alices, err := svc.GetApplications("alice", "")
	require.NoError(t, err)
	assert.Len(t, alices, 2)

	pending, err := svc.GetApplications("", leave.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	bobApproved, err := svc.GetApplications("bob", leave.StatusApproved)
	require.NoError(t, err)
	require.Len(t, bobApproved, 1)
	assert.Equal(t, b1.ID, bobApproved[0].ID)
}

func TestGetBalance_DefaultsToCurrentYear(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	balance, err := svc.GetBalance("alice", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, "Alice", balance.EmployeeName)
}

func TestGetBalance_LazyMaterializationPersists(t *testing.T) {
	// A balance read for an unseen year creates and persists the record.

	svc, store := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)

	_, err = svc.GetBalance("alice", 2026)
	require.NoError(t, err)

	doc, err := store.Load()
	require.NoError(t, err)
	rec, ok := doc.Employees["alice"].YearlyRecords["2026"]
	require.True(t, ok, "record creation must be persisted")
	assert.Equal(t, 2026, rec.Year)
}

func TestGetBalance_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBalance("ghost", 2024)
	assert.ErrorIs(t, err, leave.ErrNotFound)
}

// =============================================================================
// INVARIANT SWEEP
// =============================================================================

func TestApprovedUsageNeverExceedsBuckets(t *testing.T) {
	// Approve a mix of requests across the carry-over window and beyond,
	// then check the aggregate invariants on the stored document.

	svc, store := newTestService(t)
	_, err := svc.CreateEmployee("Alice", "alice")
	require.NoError(t, err)
	approveFullDays(t, svc, "alice", mayDates(21)...)

	dates := []string{"2025-01-10", "2025-02-10", "2025-03-31", "2025-04-01", "2025-05-01"}
	for _, date := range dates {
		app, err := svc.ApplyForLeave("alice", date, leave.LeaveFull, "", "")
		require.NoError(t, err)
		_, err = svc.DecideLeave(app.ID, "manager", "approved", "")
		require.NoError(t, err)
	}

	doc, err := store.Load()
	require.NoError(t, err)
	for _, emp := range doc.Employees {
		for _, rec := range emp.YearlyRecords {
			var usedCarry, usedCurrent decimal.Decimal
			for _, app := range rec.Applications {
				if app.Status != leave.StatusApproved {
					continue
				}
				require.NotNil(t, app.AllocationBreakdown)
				usedCarry = usedCarry.Add(app.AllocationBreakdown.CarryOver)
				usedCurrent = usedCurrent.Add(app.AllocationBreakdown.CurrentYear)
			}
			assert.False(t, usedCarry.GreaterThan(rec.CarryOver),
				"year %d: carry-over usage %s exceeds %s", rec.Year, usedCarry, rec.CarryOver)
			assert.False(t, usedCurrent.GreaterThan(rec.Allocation),
				"year %d: current-year usage %s exceeds %s", rec.Year, usedCurrent, rec.Allocation)
		}
	}
}
