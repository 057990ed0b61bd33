/*
payments.go - Payment service: queries and lifecycle

PURPOSE:
  Read and mutate payment records through the Store. The calculation
  methods live in their own files:
    recorder.go:    RecordPayment (the only mutating path into the store
                    from the engine's perspective)
    outstanding.go: OutstandingAmount and AdjustedRentForUnit

QUERY SEMANTICS:
  The per-unit filter, sum, and history queries do not check that the unit
  exists: an unknown unit id yields empty lists or a zero sum. Point
  lookups by payment id do fail with NotFound.
*/
package rent

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentService exposes the payment side of the engine. All operations run
// synchronously to completion within the caller's invocation.
type PaymentService struct {
	store Store
}

func NewPaymentService(store Store) *PaymentService {
	return &PaymentService{store: store}
}

// Payment returns a payment by id.
func (s *PaymentService) Payment(ctx context.Context, id PaymentID) (Payment, error) {
	return s.store.GetPayment(ctx, id)
}

// Payments returns all payments.
func (s *PaymentService) Payments(ctx context.Context) ([]Payment, error) {
	return s.store.ListPayments(ctx)
}

// PaymentsForUnit returns a unit's payments in store order.
func (s *PaymentService) PaymentsForUnit(ctx context.Context, unitID UnitID) ([]Payment, error) {
	return s.store.ListPaymentsByUnit(ctx, unitID)
}

// OutstandingPayments returns a unit's payments still in PENDING status.
func (s *PaymentService) OutstandingPayments(ctx context.Context, unitID UnitID) ([]Payment, error) {
	return s.store.ListPaymentsByUnitAndStatus(ctx, unitID, StatusPending)
}

// TotalPaid sums a unit's payment amounts for one payment type. Zero when no
// matching payments exist.
func (s *PaymentService) TotalPaid(ctx context.Context, unitID UnitID, paymentType PaymentType) (decimal.Decimal, error) {
	return s.store.SumPaymentsByUnitAndType(ctx, unitID, paymentType)
}

// PaymentHistory returns a unit's payments with payment dates inside
// [from, to], inclusive on both ends.
func (s *PaymentService) PaymentHistory(ctx context.Context, unitID UnitID, from, to Date) ([]Payment, error) {
	return s.store.ListPaymentsByUnitInRange(ctx, unitID, from, to)
}

// UpdatePayment copies the mutable fields (amount, payment date, type,
// status, description) onto an existing payment. The ownership link to the
// unit is immutable. The updated record is re-validated and the per-payment
// ceiling is re-enforced against the owning unit's current base rent.
func (s *PaymentService) UpdatePayment(ctx context.Context, id PaymentID, update Payment) (Payment, error) {
	existing, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return Payment{}, err
	}

	existing.Amount = update.Amount
	existing.PaymentDate = update.PaymentDate
	existing.PaymentType = update.PaymentType
	existing.Status = update.Status
	existing.Description = update.Description
	applyPaymentDefaults(&existing)

	if err := ValidatePayment(existing, Today()); err != nil {
		return Payment{}, err
	}

	unit, err := s.store.GetUnit(ctx, existing.UnitID)
	if err != nil {
		return Payment{}, err
	}
	if err := checkPaymentCeiling(existing.Amount, unit); err != nil {
		return Payment{}, err
	}

	return s.store.SavePayment(ctx, existing)
}

// DeletePayment removes a payment independently of its unit.
func (s *PaymentService) DeletePayment(ctx context.Context, id PaymentID) error {
	return s.store.DeletePayment(ctx, id)
}

// applyPaymentDefaults fills the enum defaults: RENT and PAID.
func applyPaymentDefaults(p *Payment) {
	if p.PaymentType == "" {
		p.PaymentType = PaymentRent
	}
	if p.Status == "" {
		p.Status = StatusPaid
	}
}
