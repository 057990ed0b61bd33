/*
adjust.go - Rent adjustment calculation

PURPOSE:
  Computes the rent due at a given date from a unit's base rent and lease
  start date. Rent compounds annually at a fixed 3% rate for each whole
  calendar year elapsed since the lease start.

CALCULATION:
  k        = whole years elapsed between leaseStart and effectiveDate
  adjusted = baseRent * (1.03)^k, rounded half-up to 2 decimal places

  Before the lease begins (or when the start date is absent) the base rent
  is returned unchanged. k = 0 yields the base rent exactly.

This is a pure function: no store access, no side effects.
*/
package rent

import (
	"github.com/shopspring/decimal"
)

// annualAdjustmentRate is the fixed yearly compounding rate (3%).
var annualAdjustmentRate = decimal.New(3, -2)

var one = decimal.NewFromInt(1)

// AdjustedRent returns the rent due at effectiveDate for a lease that began
// at leaseStart with the given base rent.
func AdjustedRent(baseRent decimal.Decimal, leaseStart, effectiveDate Date) decimal.Decimal {
	if leaseStart.IsZero() || effectiveDate.Before(leaseStart) {
		return baseRent
	}

	years := WholeYearsBetween(leaseStart, effectiveDate)
	if years == 0 {
		return baseRent
	}

	factor := one.Add(annualAdjustmentRate).Pow(decimal.NewFromInt(int64(years)))
	return baseRent.Mul(factor).Round(2)
}
