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
// UNIT LIFECYCLE
// =============================================================================

func TestCreateUnit(t *testing.T) {
	units, _, _ := newTestEngine(t)

	created, err := units.CreateUnit(context.Background(), rent.PropertyUnit{
		Address:        "12 Vitosha Blvd, Sofia",
		Type:           "apartment",
		BaseRentAmount: d("1000.00"),
		LeaseStartDate: rent.Today().AddDays(-30),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateUnit_ReportsAllViolations(t *testing.T) {
	units, _, _ := newTestEngine(t)

	_, err := units.CreateUnit(context.Background(), rent.PropertyUnit{
		Address:        "abc",
		Type:           "x",
		BaseRentAmount: d("0"),
		LeaseStartDate: rent.Today().AddDays(10),
	})

	var verr *rent.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]bool)
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["address"])
	assert.True(t, fields["type"])
	assert.True(t, fields["baseRentAmount"])
	assert.True(t, fields["leaseStartDate"])
}

func TestCreateUnit_UnknownTenant(t *testing.T) {
	units, _, _ := newTestEngine(t)

	_, err := units.CreateUnit(context.Background(), rent.PropertyUnit{
		Address:        "12 Vitosha Blvd, Sofia",
		Type:           "apartment",
		BaseRentAmount: d("1000.00"),
		LeaseStartDate: rent.Today().AddDays(-30),
		TenantID:       "missing",
	})
	assert.ErrorIs(t, err, rent.ErrTenantNotFound)
}

// =============================================================================
// UNIT UPDATE
// =============================================================================

func TestUpdateUnit_RentNeverDecreases(t *testing.T) {
	// GIVEN: unit with base rent 1000.00
	// WHEN: update sets base rent to 900.00
	// THEN: rejected as a validation failure, stored record unchanged

	units, _, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))
	ctx := context.Background()

	_, err := units.UpdateUnit(ctx, unit.ID, rent.PropertyUnit{
		Address:        unit.Address,
		Type:           unit.Type,
		BaseRentAmount: d("900.00"),
		LeaseStartDate: unit.LeaseStartDate,
	})
	require.Error(t, err)
	assert.True(t, rent.IsValidation(err), "should be a validation failure, got %v", err)

	stored, err := units.Unit(ctx, unit.ID)
	require.NoError(t, err)
	assert.True(t, d("1000.00").Equal(stored.BaseRentAmount), "record must be unchanged")
}

func TestUpdateUnit_EqualRentAllowed(t *testing.T) {
	units, _, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	updated, err := units.UpdateUnit(context.Background(), unit.ID, rent.PropertyUnit{
		Address:        "14 Vitosha Blvd, Sofia",
		Type:           unit.Type,
		BaseRentAmount: d("1000.00"),
		LeaseStartDate: unit.LeaseStartDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "14 Vitosha Blvd, Sofia", updated.Address)
}

func TestUpdateUnit_WhitelistOnly(t *testing.T) {
	// Tenant link, identity and creation date cannot be altered through update.
	units, _, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))

	updated, err := units.UpdateUnit(context.Background(), unit.ID, rent.PropertyUnit{
		ID:             "forged",
		TenantID:       "forged-tenant",
		Address:        "4 Shipka St, Plovdiv",
		Type:           "office",
		BaseRentAmount: d("1200.00"),
		LeaseStartDate: unit.LeaseStartDate,
	})
	require.NoError(t, err)
	assert.Equal(t, unit.ID, updated.ID)
	assert.Equal(t, unit.TenantID, updated.TenantID)
	assert.Equal(t, "4 Shipka St, Plovdiv", updated.Address)
	assert.Equal(t, "office", updated.Type)
	assert.True(t, d("1200.00").Equal(updated.BaseRentAmount))
}

func TestUpdateUnit_Unknown(t *testing.T) {
	units, _, _ := newTestEngine(t)

	_, err := units.UpdateUnit(context.Background(), "missing", rent.PropertyUnit{
		Address:        "12 Vitosha Blvd, Sofia",
		Type:           "apartment",
		BaseRentAmount: d("1000.00"),
		LeaseStartDate: jan(2020),
	})
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
}

// =============================================================================
// UNIT QUERIES AND DELETE
// =============================================================================

func TestSearchUnits_CaseInsensitiveSubstring(t *testing.T) {
	units, _, mem := newTestEngine(t)
	seedUnit(t, mem, "1000.00", jan(2020))

	got, err := units.SearchUnits(context.Background(), "baker street")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = units.SearchUnits(context.Background(), "elm street")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteUnit_CascadesPayments(t *testing.T) {
	units, payments, mem := newTestEngine(t)
	unit := seedUnit(t, mem, "1000.00", jan(2020))
	p := seedPayment(t, mem, unit.ID, "1000.00", rent.NewDate(2020, time.February, 1), rent.PaymentRent, rent.StatusPaid)
	ctx := context.Background()

	require.NoError(t, units.DeleteUnit(ctx, unit.ID))

	_, err := units.Unit(ctx, unit.ID)
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)

	_, err = payments.Payment(ctx, p.ID)
	assert.ErrorIs(t, err, rent.ErrPaymentNotFound)
}

func TestDeleteUnit_Unknown(t *testing.T) {
	units, _, _ := newTestEngine(t)
	err := units.DeleteUnit(context.Background(), "missing")
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
}
