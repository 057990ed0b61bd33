package rent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prop-pilot/rent-engine/rent"
	"github.com/prop-pilot/rent-engine/rent/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestEngine(t *testing.T) (*rent.UnitService, *rent.PaymentService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return rent.NewUnitService(mem), rent.NewPaymentService(mem), mem
}

// seedUnit persists a unit directly through the store, bypassing service
// validation, so tests can pin lease start dates far in the past.
func seedUnit(t *testing.T, mem *store.Memory, baseRent string, leaseStart rent.Date) rent.PropertyUnit {
	t.Helper()
	unit, err := mem.SaveUnit(context.Background(), rent.PropertyUnit{
		Address:        "221B Baker Street, London",
		Type:           "apartment",
		BaseRentAmount: d(baseRent),
		LeaseStartDate: leaseStart,
	})
	require.NoError(t, err)
	return unit
}

func seedPayment(t *testing.T, mem *store.Memory, unitID rent.UnitID, amount string, date rent.Date, ptype rent.PaymentType, status rent.PaymentStatus) rent.Payment {
	t.Helper()
	p, err := mem.SavePayment(context.Background(), rent.Payment{
		UnitID:      unitID,
		Amount:      d(amount),
		PaymentDate: date,
		PaymentType: ptype,
		Status:      status,
	})
	require.NoError(t, err)
	return p
}

func jan(year int) rent.Date {
	return rent.NewDate(year, time.January, 1)
}
