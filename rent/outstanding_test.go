package rent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop-pilot/rent-engine/rent"
)

// =============================================================================
// OUTSTANDING BALANCE
// =============================================================================

func TestOutstandingAmount_NoPayments(t *testing.T) {
	// GIVEN: base rent 1000.00, lease started 2020-01-01, no payments
	// WHEN: computing the balance as of 2023-01-01
	// THEN: 36 months * adjusted rent 1092.73 = 39338.28 owed

	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, d("39338.28").Equal(got), "got %s", got)
}

func TestOutstandingAmount_SubtractsRentPayments(t *testing.T) {
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	seedPayment(t, mem, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent, rent.StatusPaid)
	seedPayment(t, mem, unit.ID, "1000.00", rent.NewDate(2020, time.March, 1), rent.PaymentRent, rent.StatusPaid)

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, d("37338.28").Equal(got), "got %s", got)
}

func TestOutstandingAmount_CountsPendingRentToo(t *testing.T) {
	// The paid sum includes every RENT payment regardless of status.
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	seedPayment(t, mem, unit.ID, "500.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent, rent.StatusPending)

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, d("38838.28").Equal(got), "got %s", got)
}

func TestOutstandingAmount_IgnoresNonRentPayments(t *testing.T) {
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	seedPayment(t, mem, unit.ID, "2000.00", rent.NewDate(2020, time.February, 1), rent.PaymentDeposit, rent.StatusPaid)
	seedPayment(t, mem, unit.ID, "300.00", rent.NewDate(2020, time.March, 1), rent.PaymentUtility, rent.StatusPaid)

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, d("39338.28").Equal(got), "deposit and utility must not reduce the balance")
}

func TestOutstandingAmount_NeverNegative(t *testing.T) {
	// GIVEN: an overpaying tenant
	// THEN: the balance floors at zero, no credit is reported

	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	seedPayment(t, mem, unit.ID, "2500.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent, rent.StatusPaid)

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, rent.NewDate(2020, time.March, 1))
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestOutstandingAmount_BeforeLeaseStart(t *testing.T) {
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2022))

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2021))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestOutstandingAmount_AbsentLeaseStart(t *testing.T) {
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", rent.Date{})

	got, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestOutstandingAmount_UnknownUnit(t *testing.T) {
	_, payments, _ := newTestEngine(t)

	_, err := payments.OutstandingAmount(context.Background(), "missing", jan(2023))
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
}

func TestOutstandingAmount_Idempotent(t *testing.T) {
	// Two reads with no intervening writes yield identical results.
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))
	seedPayment(t, mem, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent, rent.StatusPaid)

	first, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	second, err := payments.OutstandingAmount(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

// =============================================================================
// ADJUSTED RENT FOR UNIT
// =============================================================================

func TestAdjustedRentForUnit(t *testing.T) {
	_, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	got, err := payments.AdjustedRentForUnit(context.Background(), unit.ID, jan(2023))
	require.NoError(t, err)
	assert.True(t, d("1092.73").Equal(got))
}

func TestAdjustedRentForUnit_UnknownUnit(t *testing.T) {
	_, payments, _ := newTestEngine(t)

	_, err := payments.AdjustedRentForUnit(context.Background(), "missing", jan(2023))
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
}
