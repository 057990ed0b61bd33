/*
outstanding.go - Outstanding balance calculation

PURPOSE:
  Computes the cumulative balance owed on a unit as of a date: expected
  rent over the elapsed whole months minus total recorded RENT payments,
  floored at zero. Read-only aggregation over the store.

FORMULA:
  monthsElapsed = whole calendar months from leaseStart to asOf
  expected      = adjustedRent(asOf) * monthsElapsed
  outstanding   = max(expected - sum(RENT payments, any status), 0)

  The final adjusted rent is applied uniformly across all elapsed months
  rather than escalating month by month. Kept as-is for compatibility with
  existing statements; a month-by-month schedule would change every
  historical balance.
*/
package rent

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdjustedRentForUnit resolves the unit and returns its rent due at
// effectiveDate. Fails with ErrUnitNotFound when the id does not exist.
func (s *PaymentService) AdjustedRentForUnit(ctx context.Context, unitID UnitID, effectiveDate Date) (decimal.Decimal, error) {
	unit, err := s.store.GetUnit(ctx, unitID)
	if err != nil {
		return decimal.Zero, err
	}
	return AdjustedRent(unit.BaseRentAmount, unit.LeaseStartDate, effectiveDate), nil
}

// OutstandingAmount computes the balance owed on a unit as of asOf. Never
// negative. Zero before the lease begins or when the start date is absent.
func (s *PaymentService) OutstandingAmount(ctx context.Context, unitID UnitID, asOf Date) (decimal.Decimal, error) {
	unit, err := s.store.GetUnit(ctx, unitID)
	if err != nil {
		return decimal.Zero, err
	}

	if unit.LeaseStartDate.IsZero() || asOf.Before(unit.LeaseStartDate) {
		return decimal.Zero, nil
	}

	monthsElapsed := WholeMonthsBetween(unit.LeaseStartDate, asOf)
	currentAdjustedRent := AdjustedRent(unit.BaseRentAmount, unit.LeaseStartDate, asOf)
	expectedTotal := currentAdjustedRent.Mul(decimal.NewFromInt(int64(monthsElapsed)))

	totalPaidRent, err := s.store.SumPaymentsByUnitAndType(ctx, unitID, PaymentRent)
	if err != nil {
		return decimal.Zero, err
	}

	outstanding := expectedTotal.Sub(totalPaidRent)
	if outstanding.IsNegative() {
		return decimal.Zero, nil
	}
	return outstanding, nil
}
