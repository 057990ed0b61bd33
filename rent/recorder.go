/*
recorder.go - Payment recording

PURPOSE:
  Validates and appends payment records. Recording is read-then-validate-
  then-write: resolve the unit, enforce the per-payment ceiling, persist.
  On any failure nothing is persisted.

CEILING RULE:
  A single payment may not exceed 3x the owning unit's base rent at
  creation time. Exactly 3x is allowed.
*/
package rent

import (
	"context"

	"github.com/shopspring/decimal"
)

// paymentCeilingMultiplier caps a single payment at this many months of rent.
var paymentCeilingMultiplier = decimal.NewFromInt(3)

// RecordPayment validates and persists a new payment, returning the stored
// record with its assigned identity.
//
// Failure modes, in order:
//   - ValidationError when a field fails a structural constraint
//   - ErrUnitNotFound when the referenced unit does not resolve
//   - BusinessRuleError when the amount exceeds the ceiling
func (s *PaymentService) RecordPayment(ctx context.Context, p Payment) (Payment, error) {
	applyPaymentDefaults(&p)

	if err := ValidatePayment(p, Today()); err != nil {
		return Payment{}, err
	}

	unit, err := s.store.GetUnit(ctx, p.UnitID)
	if err != nil {
		return Payment{}, err
	}

	if err := checkPaymentCeiling(p.Amount, unit); err != nil {
		return Payment{}, err
	}

	p.ID = "" // store assigns identity
	p.CreatedAt = Today()
	return s.store.SavePayment(ctx, p)
}

func checkPaymentCeiling(amount decimal.Decimal, unit PropertyUnit) error {
	max := unit.BaseRentAmount.Mul(paymentCeilingMultiplier)
	if amount.GreaterThan(max) {
		return &BusinessRuleError{
			Rule:    "payment_ceiling",
			Message: "payment amount cannot exceed 3 months of rent in a single payment",
		}
	}
	return nil
}
