package rent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop-pilot/rent-engine/rent"
	"github.com/prop-pilot/rent-engine/rent/store"
)

func newTenantService(t *testing.T) (*rent.TenantService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return rent.NewTenantService(mem), mem
}

func validTenant() rent.Tenant {
	return rent.Tenant{
		FullName:   "Maria Petrova",
		NationalID: "8802124516",
		Email:      "maria.petrova@example.com",
		Phone:      "+359 88 123 4567",
	}
}

// =============================================================================
// TENANT LIFECYCLE
// =============================================================================

func TestCreateTenant(t *testing.T) {
	tenants, _ := newTenantService(t)

	created, err := tenants.CreateTenant(context.Background(), validTenant())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Maria Petrova", created.FullName)
}

func TestCreateTenant_DuplicateNationalID(t *testing.T) {
	tenants, _ := newTenantService(t)
	ctx := context.Background()

	_, err := tenants.CreateTenant(ctx, validTenant())
	require.NoError(t, err)

	dup := validTenant()
	dup.FullName = "Georgi Petrov"
	_, err = tenants.CreateTenant(ctx, dup)
	assert.True(t, rent.IsBusinessRule(err), "duplicate national id should be rejected, got %v", err)
}

func TestCreateTenant_ReportsAllViolations(t *testing.T) {
	tenants, _ := newTenantService(t)

	_, err := tenants.CreateTenant(context.Background(), rent.Tenant{})

	var verr *rent.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 4)
}

func TestTenantByNationalID(t *testing.T) {
	tenants, _ := newTenantService(t)
	ctx := context.Background()

	created, err := tenants.CreateTenant(ctx, validTenant())
	require.NoError(t, err)

	found, err := tenants.TenantByNationalID(ctx, created.NationalID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = tenants.TenantByNationalID(ctx, "0000000000")
	assert.ErrorIs(t, err, rent.ErrTenantNotFound)
}

func TestDeleteTenant_CascadesUnitsAndPayments(t *testing.T) {
	tenants, mem := newTenantService(t)
	ctx := context.Background()

	tenant, err := tenants.CreateTenant(ctx, validTenant())
	require.NoError(t, err)

	unit := seedUnit(t, mem, "1000.00", jan(2020))
	unit.TenantID = tenant.ID
	unit, err = mem.SaveUnit(ctx, unit)
	require.NoError(t, err)
	p := seedPayment(t, mem, unit.ID, "1000.00", jan(2020).AddMonths(1), rent.PaymentRent, rent.StatusPaid)

	require.NoError(t, tenants.DeleteTenant(ctx, tenant.ID))

	_, err = mem.GetUnit(ctx, unit.ID)
	assert.ErrorIs(t, err, rent.ErrUnitNotFound)
	_, err = mem.GetPayment(ctx, p.ID)
	assert.ErrorIs(t, err, rent.ErrPaymentNotFound)
}

func TestDeleteTenant_Unknown(t *testing.T) {
	tenants, _ := newTenantService(t)
	err := tenants.DeleteTenant(context.Background(), "missing")
	assert.ErrorIs(t, err, rent.ErrTenantNotFound)
}
