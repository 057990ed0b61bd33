/*
Package rent provides the core rent accounting engine.

PURPOSE:
  This package contains the domain types and algorithms for tracking rental
  property units, tenants, and payments, and for computing the derived
  financial figures: tenure-adjusted rent and the outstanding balance owed
  on a unit as of a given date.

KEY CONCEPTS IN THIS FILE (types.go):
  - PropertyUnit: A rentable property with a base rent and a lease start date
  - Tenant: The party that owns one or more units
  - Payment: An immutable monetary record against a unit, typed and statused
  - UnitID/TenantID/PaymentID: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Ownership by id: units reference tenants and payments reference units
     by foreign-key-style ids, never by object pointers
  3. Type Safety: Strong typing for ids prevents mixing unit/tenant/payment ids

SEE ALSO:
  - adjust.go: Rent adjustment calculation
  - outstanding.go: Outstanding balance calculation
  - recorder.go: Payment recording with the per-payment ceiling rule
  - store.go: Persistence interface
*/
package rent

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UnitID string
type TenantID string
type PaymentID string

// =============================================================================
// PAYMENT ENUMS
// =============================================================================

type PaymentType string

const (
	PaymentRent        PaymentType = "RENT"
	PaymentDeposit     PaymentType = "DEPOSIT"
	PaymentMaintenance PaymentType = "MAINTENANCE"
	PaymentUtility     PaymentType = "UTILITY"
	PaymentOther       PaymentType = "OTHER"
)

// ValidPaymentType reports whether t is one of the closed payment type set.
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentRent, PaymentDeposit, PaymentMaintenance, PaymentUtility, PaymentOther:
		return true
	}
	return false
}

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPending PaymentStatus = "PENDING"
)

// ValidPaymentStatus reports whether s is one of the closed status set.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == StatusPaid || s == StatusPending
}

// =============================================================================
// DOMAIN RECORDS
// =============================================================================

// PropertyUnit is a rentable property. A unit exclusively owns its payments:
// deleting the unit cascades to every payment that references it.
type PropertyUnit struct {
	ID             UnitID
	Address        string
	Type           string
	TenantID       TenantID // empty when the unit has no tenant yet
	BaseRentAmount decimal.Decimal
	LeaseStartDate Date
	CreatedAt      Date
}

// Tenant is the owning party for units. A tenant exclusively owns its units
// under the same cascade rule.
type Tenant struct {
	ID         TenantID
	FullName   string
	NationalID string
	Email      string
	Phone      string
	CreatedAt  Date
}

// Payment is a recorded monetary transaction against a unit. The ownership
// link to its unit is immutable once created.
type Payment struct {
	ID          PaymentID
	UnitID      UnitID
	Amount      decimal.Decimal
	PaymentDate Date
	PaymentType PaymentType
	Status      PaymentStatus
	Description string

	// Legacy fields retained for backward compatibility. Not used by any
	// current calculation.
	MonthYear    string
	AppliedIndex string

	CreatedAt Date
}

// MustParseDecimal parses s as a decimal, returning zero on failure.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
