/*
allocation.go - Carry-over computation and the allocation-split algorithm

PURPOSE:
  The two load-bearing calculations of the engine:

  1. Carry-over: when a yearly record is first materialized, how much of
     the previous year's allocation rolls into it. Computed from the
     previous record's approved current-year usage, capped at MaxCarryOver,
     and stored immutably on the new record.

  2. Allocation split: when an application is approved, how its duration
     divides between the carry-over bucket and the current-year bucket.
     Carry-over is spent first, but only while the leave date is on or
     before the record's expiry. The residual must fit in the current-year
     bucket or the whole approval fails.

  Remaining balances are always derived from the record's approved
  applications, never stored, so they cannot drift from the ledger.
*/
package leave

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// USAGE AND REMAINING BALANCES
// =============================================================================

// usage sums the breakdowns of a record's approved applications.
func usage(rec *YearlyRecord) (usedCarry, usedCurrent decimal.Decimal) {
	for _, app := range rec.Applications {
		if app.Status != StatusApproved || app.AllocationBreakdown == nil {
			continue
		}
		usedCarry = usedCarry.Add(app.AllocationBreakdown.CarryOver)
		usedCurrent = usedCurrent.Add(app.AllocationBreakdown.CurrentYear)
	}
	return usedCarry, usedCurrent
}

// remaining returns what is left in each bucket, floored at zero.
func remaining(rec *YearlyRecord) (carry, current decimal.Decimal) {
	usedCarry, usedCurrent := usage(rec)
	carry = decimal.Max(decimal.Zero, rec.CarryOver.Sub(usedCarry))
	current = decimal.Max(decimal.Zero, rec.Allocation.Sub(usedCurrent))
	return carry, current
}

// =============================================================================
// ALLOCATION SPLIT
// =============================================================================

// allocate splits duration units requested on a given date across the
// record's buckets. Carry-over goes first while the date is within its
// validity window; the residual draws from the current-year allocation.
// If the residual does not fit, nothing is consumed and the caller must
// abandon the whole decision attempt.
func allocate(rec *YearlyRecord, on Date, duration decimal.Decimal, employeeID string) (Breakdown, error) {
	requested := duration
	remCarry, remCurrent := remaining(rec)
	breakdown := Breakdown{CarryOver: decimal.Zero, CurrentYear: decimal.Zero}

	if !on.After(rec.CarryOverExpiry) {
		fromCarry := decimal.Min(duration, remCarry)
		breakdown.CarryOver = fromCarry
		duration = duration.Sub(fromCarry)
	}

	if duration.GreaterThan(remCurrent) {
		return Breakdown{}, &InsufficientBalanceError{
			EmployeeID:           employeeID,
			Year:                 rec.Year,
			Requested:            requested,
			RemainingCarryOver:   remCarry,
			RemainingCurrentYear: remCurrent,
		}
	}

	breakdown.CurrentYear = duration
	return breakdown, nil
}

// =============================================================================
// YEARLY RECORD MATERIALIZATION
// =============================================================================

// carryOverInto computes the carry-over credited to a newly created record
// for the given year: the previous year's allocation minus its approved
// current-year usage, floored at zero and capped at MaxCarryOver. Without
// a previous record there is nothing to carry.
func carryOverInto(emp *Employee, year int) decimal.Decimal {
	prev, ok := emp.YearlyRecords[strconv.Itoa(year-1)]
	if !ok {
		return decimal.Zero
	}
	_, usedCurrent := usage(prev)
	unused := decimal.Max(decimal.Zero, prev.Allocation.Sub(usedCurrent))
	return decimal.Min(MaxCarryOver, unused)
}

// materializeRecord returns the employee's record for the year, creating
// it on first access. Creation snapshots the carry-over once; the value is
// never revisited even if the previous year's applications change later.
// Callers must hold the store's critical section.
func materializeRecord(emp *Employee, year int) *YearlyRecord {
	key := strconv.Itoa(year)
	if rec, ok := emp.YearlyRecords[key]; ok {
		return rec
	}
	rec := &YearlyRecord{
		Year:            year,
		Allocation:      AnnualAllocation,
		CarryOver:       carryOverInto(emp, year),
		CarryOverExpiry: NewDate(year, CarryOverExpiryMonth, CarryOverExpiryDay),
		Applications:    []*Application{},
	}
	emp.YearlyRecords[key] = rec
	return rec
}
