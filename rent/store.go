/*
store.go - Persistence interface for units, tenants, and payments

PURPOSE:
  Defines the interface between the engine and the database. The engine
  depends only on this capability set, never on a concrete storage
  technology, so an in-memory double can stand in for SQLite in tests.

KEY INTERFACES:
  UnitStore:    Property unit persistence and address search
  TenantStore:  Tenant persistence with national-id uniqueness
  PaymentStore: Payment persistence, filters, and the sum aggregate
  Store:        The full capability set

IDENTITY:
  The store assigns identities on create. Save* with an empty id inserts
  and returns the stored record with its new id; a non-empty id upserts.

CASCADE:
  DeleteUnit removes every payment owned by the unit. DeleteTenant removes
  the tenant's units and, transitively, their payments. No payment may
  outlive its unit.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - rent/store/memory.go:   In-memory for testing

SEE ALSO:
  - outstanding.go, recorder.go, units.go: Engine code using these interfaces
*/
package rent

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UNIT STORE
// =============================================================================

type UnitStore interface {
	// SaveUnit inserts (empty id) or updates (existing id) a unit and
	// returns the stored record.
	SaveUnit(ctx context.Context, unit PropertyUnit) (PropertyUnit, error)

	// GetUnit returns ErrUnitNotFound when the id does not exist.
	GetUnit(ctx context.Context, id UnitID) (PropertyUnit, error)

	// ListUnits returns all units in insertion order.
	ListUnits(ctx context.Context) ([]PropertyUnit, error)

	// ListUnitsByTenant returns the units owned by a tenant.
	ListUnitsByTenant(ctx context.Context, tenantID TenantID) ([]PropertyUnit, error)

	// SearchUnitsByAddress performs a case-insensitive substring match.
	SearchUnitsByAddress(ctx context.Context, fragment string) ([]PropertyUnit, error)

	// DeleteUnit removes the unit and cascades to its payments.
	// Returns ErrUnitNotFound when the id does not exist.
	DeleteUnit(ctx context.Context, id UnitID) error
}

// =============================================================================
// TENANT STORE
// =============================================================================

type TenantStore interface {
	SaveTenant(ctx context.Context, tenant Tenant) (Tenant, error)

	// GetTenant returns ErrTenantNotFound when the id does not exist.
	GetTenant(ctx context.Context, id TenantID) (Tenant, error)

	// GetTenantByNationalID returns ErrTenantNotFound when no tenant
	// carries the national id.
	GetTenantByNationalID(ctx context.Context, nationalID string) (Tenant, error)

	ListTenants(ctx context.Context) ([]Tenant, error)

	// DeleteTenant removes the tenant and cascades to its units and their
	// payments.
	DeleteTenant(ctx context.Context, id TenantID) error
}

// =============================================================================
// PAYMENT STORE
// =============================================================================

type PaymentStore interface {
	SavePayment(ctx context.Context, p Payment) (Payment, error)

	// GetPayment returns ErrPaymentNotFound when the id does not exist.
	GetPayment(ctx context.Context, id PaymentID) (Payment, error)

	ListPayments(ctx context.Context) ([]Payment, error)

	// ListPaymentsByUnit returns a unit's payments in insertion order.
	// An unknown unit id yields an empty result, not an error.
	ListPaymentsByUnit(ctx context.Context, unitID UnitID) ([]Payment, error)

	ListPaymentsByUnitAndStatus(ctx context.Context, unitID UnitID, status PaymentStatus) ([]Payment, error)

	ListPaymentsByUnitAndType(ctx context.Context, unitID UnitID, paymentType PaymentType) ([]Payment, error)

	// SumPaymentsByUnitAndType aggregates amounts. Zero, not an error, when
	// no matching rows exist.
	SumPaymentsByUnitAndType(ctx context.Context, unitID UnitID, paymentType PaymentType) (decimal.Decimal, error)

	// ListPaymentsByUnitInRange filters by payment date, inclusive on both
	// ends.
	ListPaymentsByUnitInRange(ctx context.Context, unitID UnitID, from, to Date) ([]Payment, error)

	// DeletePayment returns ErrPaymentNotFound when the id does not exist.
	DeletePayment(ctx context.Context, id PaymentID) error
}

// =============================================================================
// FULL STORE
// =============================================================================

// Store is the complete capability set the engine requires.
type Store interface {
	UnitStore
	TenantStore
	PaymentStore
}
