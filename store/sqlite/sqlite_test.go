/*
sqlite_test.go - Persistence tests against an in-memory database

Exercises the behaviors the engine leans on: upsert identity handling,
foreign-key cascades, the zero-default sum, inclusive range queries and
case-insensitive address search.
*/
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop-pilot/rent-engine/rent"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func saveTestUnit(t *testing.T, s *Store, address string) rent.PropertyUnit {
	t.Helper()
	unit, err := s.SaveUnit(context.Background(), rent.PropertyUnit{
		Address:        address,
		Type:           "apartment",
		BaseRentAmount: rent.MustParseDecimal("1000.00"),
		LeaseStartDate: rent.NewDate(2020, time.January, 1),
		CreatedAt:      rent.NewDate(2020, time.January, 1),
	})
	require.NoError(t, err)
	return unit
}

func saveTestPayment(t *testing.T, s *Store, unitID rent.UnitID, amount string, date rent.Date, ptype rent.PaymentType) rent.Payment {
	t.Helper()
	p, err := s.SavePayment(context.Background(), rent.Payment{
		UnitID:      unitID,
		Amount:      rent.MustParseDecimal(amount),
		PaymentDate: date,
		PaymentType: ptype,
		Status:      rent.StatusPaid,
		CreatedAt:   date,
	})
	require.NoError(t, err)
	return p
}

// =============================================================================
// UNITS
// =============================================================================

func TestSaveUnit_AssignsIDAndUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")
	require.NotEmpty(t, unit.ID)

	unit.Address = "14 Vitosha Blvd, Sofia"
	updated, err := s.SaveUnit(ctx, unit)
	require.NoError(t, err)
	assert.Equal(t, unit.ID, updated.ID)

	got, err := s.GetUnit(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "14 Vitosha Blvd, Sofia", got.Address)

	all, err := s.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not create a second row")
}

func TestGetUnit_RoundTripsFields(t *testing.T) {
	s := newTestStore(t)
	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")

	got, err := s.GetUnit(context.Background(), unit.ID)
	require.NoError(t, err)
	assert.Equal(t, unit.Address, got.Address)
	assert.Equal(t, unit.Type, got.Type)
	assert.True(t, unit.BaseRentAmount.Equal(got.BaseRentAmount))
	assert.True(t, unit.LeaseStartDate.Equal(got.LeaseStartDate))
}

func TestGetUnit_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUnit(context.Background(), "missing")
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
}

func TestSearchUnitsByAddress_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")
	saveTestUnit(t, s, "4 Shipka St, Plovdiv")

	got, err := s.SearchUnitsByAddress(context.Background(), "VITOSHA")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12 Vitosha Blvd, Sofia", got[0].Address)
}

func TestDeleteUnit_CascadesPayments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")
	p := saveTestPayment(t, s, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent)

	require.NoError(t, s.DeleteUnit(ctx, unit.ID))

	_, err := s.GetPayment(ctx, p.ID)
	assert.ErrorIs(t, err, rent.ErrPaymentNotFound)

	err = s.DeleteUnit(ctx, unit.ID)
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
}

// =============================================================================
// TENANTS
// =============================================================================

func TestTenant_UniqueNationalIDAndCascade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenant, err := s.SaveTenant(ctx, rent.Tenant{
		FullName:   "Maria Petrova",
		NationalID: "8802124516",
		Email:      "maria.petrova@example.com",
		Phone:      "+359 88 123 4567",
		CreatedAt:  rent.NewDate(2020, time.January, 1),
	})
	require.NoError(t, err)

	found, err := s.GetTenantByNationalID(ctx, "8802124516")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, found.ID)

	_, err = s.GetTenantByNationalID(ctx, "0000000000")
	assert.ErrorIs(t, err, rent.ErrTenantNotFound)

	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")
	unit.TenantID = tenant.ID
	unit, err = s.SaveUnit(ctx, unit)
	require.NoError(t, err)
	p := saveTestPayment(t, s, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent)

	require.NoError(t, s.DeleteTenant(ctx, tenant.ID))

	_, err = s.GetUnit(ctx, unit.ID)
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
	_, err = s.GetPayment(ctx, p.ID)
	assert.ErrorIs(t, err, rent.ErrPaymentNotFound)
}

// =============================================================================
// PAYMENTS
// =============================================================================

func TestSumPaymentsByUnitAndType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")

	// No rows yet: the sum must come back as zero, not an error.
	total, err := s.SumPaymentsByUnitAndType(ctx, unit.ID, rent.PaymentRent)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	saveTestPayment(t, s, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent)
	saveTestPayment(t, s, unit.ID, "950.50", rent.NewDate(2020, time.March, 1), rent.PaymentRent)
	saveTestPayment(t, s, unit.ID, "2000.00", rent.NewDate(2020, time.February, 1), rent.PaymentDeposit)

	total, err = s.SumPaymentsByUnitAndType(ctx, unit.ID, rent.PaymentRent)
	require.NoError(t, err)
	assert.True(t, rent.MustParseDecimal("1950.50").Equal(total), "got %s", total)
}

func TestListPaymentsByUnitInRange_Inclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")

	saveTestPayment(t, s, unit.ID, "100.00", rent.NewDate(2020, time.January, 31), rent.PaymentRent)
	saveTestPayment(t, s, unit.ID, "200.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent)
	saveTestPayment(t, s, unit.ID, "300.00", rent.NewDate(2020, time.February, 29), rent.PaymentRent)
	saveTestPayment(t, s, unit.ID, "400.00", rent.NewDate(2020, time.March, 1), rent.PaymentRent)

	got, err := s.ListPaymentsByUnitInRange(ctx, unit.ID,
		rent.NewDate(2020, time.February, 1), rent.NewDate(2020, time.February, 29))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].PaymentDate.Equal(rent.NewDate(2020, time.February, 1)))
	assert.True(t, got[1].PaymentDate.Equal(rent.NewDate(2020, time.February, 29)))
}

func TestListPaymentsByUnitAndStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")

	paid := saveTestPayment(t, s, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent)
	pending, err := s.SavePayment(ctx, rent.Payment{
		UnitID:      unit.ID,
		Amount:      rent.MustParseDecimal("1000.00"),
		PaymentDate: rent.NewDate(2020, time.March, 1),
		PaymentType: rent.PaymentRent,
		Status:      rent.StatusPending,
		CreatedAt:   rent.NewDate(2020, time.March, 1),
	})
	require.NoError(t, err)

	got, err := s.ListPaymentsByUnitAndStatus(ctx, unit.ID, rent.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
	assert.NotEqual(t, paid.ID, got[0].ID)
}

func TestDeletePayment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unit := saveTestUnit(t, s, "12 Vitosha Blvd, Sofia")
	p := saveTestPayment(t, s, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent)

	require.NoError(t, s.DeletePayment(ctx, p.ID))
	err := s.DeletePayment(ctx, p.ID)
	assert.ErrorIs(t, err, rent.ErrPaymentNotFound)
}
