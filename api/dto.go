/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Monetary amounts cross the wire as strings ("1250.00") so that clients
  never see float artifacts and the engine never parses one. Dates are ISO
  (YYYY-MM-DD).

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Router setup
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/prop-pilot/rent-engine/rent"
)

// =============================================================================
// UNIT TYPES
// =============================================================================

// UnitDTO represents a property unit in API responses.
type UnitDTO struct {
	ID             string `json:"id"`
	Address        string `json:"address"`
	Type           string `json:"type"`
	TenantID       string `json:"tenant_id,omitempty"`
	BaseRentAmount string `json:"base_rent_amount"`
	LeaseStartDate string `json:"lease_start_date"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// UnitRequest is the request body to create or update a unit.
type UnitRequest struct {
	Address        string `json:"address"`
	Type           string `json:"type"`
	TenantID       string `json:"tenant_id,omitempty"`
	BaseRentAmount string `json:"base_rent_amount"`
	LeaseStartDate string `json:"lease_start_date"`
}

// =============================================================================
// TENANT TYPES
// =============================================================================

// TenantDTO represents a tenant in API responses.
type TenantDTO struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// TenantRequest is the request body to create a tenant.
type TenantRequest struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// =============================================================================
// PAYMENT TYPES
// =============================================================================

// PaymentDTO represents a payment in API responses.
type PaymentDTO struct {
	ID          string `json:"id"`
	UnitID      string `json:"unit_id"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	PaymentType string `json:"payment_type"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// PaymentRequest is the request body to record or update a payment.
type PaymentRequest struct {
	UnitID      string `json:"unit_id"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	PaymentType string `json:"payment_type,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// =============================================================================
// CALCULATION TYPES
// =============================================================================

// AdjustedRentDTO is the response of the adjusted-rent calculation.
type AdjustedRentDTO struct {
	UnitID        string `json:"unit_id"`
	EffectiveDate string `json:"effective_date"`
	AdjustedRent  string `json:"adjusted_rent"`
}

// OutstandingAmountDTO is the response of the outstanding-balance calculation.
type OutstandingAmountDTO struct {
	UnitID      string `json:"unit_id"`
	AsOf        string `json:"as_of"`
	Outstanding string `json:"outstanding"`
}

// TotalPaidDTO is the response of the per-type payment sum.
type TotalPaidDTO struct {
	UnitID      string `json:"unit_id"`
	PaymentType string `json:"payment_type"`
	TotalPaid   string `json:"total_paid"`
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorResponse is the standard error response. Path carries the request
// path for diagnostics.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Code    string              `json:"code,omitempty"`
	Path    string              `json:"path,omitempty"`
	Details []FieldViolationDTO `json:"details,omitempty"`
}

// FieldViolationDTO is one violated field in a validation failure.
type FieldViolationDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toUnitDTO(u rent.PropertyUnit) UnitDTO {
	return UnitDTO{
		ID:             string(u.ID),
		Address:        u.Address,
		Type:           u.Type,
		TenantID:       string(u.TenantID),
		BaseRentAmount: money(u.BaseRentAmount),
		LeaseStartDate: u.LeaseStartDate.String(),
		CreatedAt:      u.CreatedAt.String(),
	}
}

func toUnitDTOs(units []rent.PropertyUnit) []UnitDTO {
	dtos := make([]UnitDTO, len(units))
	for i, u := range units {
		dtos[i] = toUnitDTO(u)
	}
	return dtos
}

func toTenantDTO(t rent.Tenant) TenantDTO {
	return TenantDTO{
		ID:         string(t.ID),
		FullName:   t.FullName,
		NationalID: t.NationalID,
		Email:      t.Email,
		Phone:      t.Phone,
		CreatedAt:  t.CreatedAt.String(),
	}
}

func toTenantDTOs(tenants []rent.Tenant) []TenantDTO {
	dtos := make([]TenantDTO, len(tenants))
	for i, t := range tenants {
		dtos[i] = toTenantDTO(t)
	}
	return dtos
}

func toPaymentDTO(p rent.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          string(p.ID),
		UnitID:      string(p.UnitID),
		Amount:      money(p.Amount),
		PaymentDate: p.PaymentDate.String(),
		PaymentType: string(p.PaymentType),
		Status:      string(p.Status),
		Description: p.Description,
		CreatedAt:   p.CreatedAt.String(),
	}
}

func toPaymentDTOs(payments []rent.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
