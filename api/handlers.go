/*
handlers.go - HTTP API handlers for the rent accounting engine

PURPOSE:
  Exposes the engine via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to the domain services.

ENDPOINTS:
  Units:
    POST   /api/units                     Create unit
    GET    /api/units                     List all units
    GET    /api/units/search              Search by address fragment
    GET    /api/units/{id}                Get unit
    PUT    /api/units/{id}                Update unit (whitelisted fields)
    DELETE /api/units/{id}                Delete unit (cascades payments)
    GET    /api/units/tenant/{tenantID}   Units owned by a tenant

  Tenants:
    POST   /api/tenants                   Create tenant
    GET    /api/tenants                   List all tenants
    GET    /api/tenants/{id}              Get tenant
    DELETE /api/tenants/{id}              Delete tenant (cascades units)

  Payments:
    POST   /api/payments                  Record payment
    GET    /api/payments                  List all payments
    GET    /api/payments/{id}             Get payment
    PUT    /api/payments/{id}             Update payment
    DELETE /api/payments/{id}             Delete payment
    GET    /api/payments/unit/{unitID}                     Payments for unit
    GET    /api/payments/unit/{unitID}/adjusted-rent       Rent due at a date
    GET    /api/payments/unit/{unitID}/outstanding         PENDING payments
    GET    /api/payments/unit/{unitID}/outstanding-amount  Balance owed
    GET    /api/payments/unit/{unitID}/total-paid          Sum by type
    GET    /api/payments/unit/{unitID}/history             Date-range filter

ERROR HANDLING:
  Domain errors map to HTTP status without string matching:
  - 400: validation failures (every violated field listed), bad input
  - 404: unit/tenant/payment not found
  - 422: business rule violations (payment ceiling, duplicate national id)
  - 500: anything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/prop-pilot/rent-engine/rent"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Units    *rent.UnitService
	Tenants  *rent.TenantService
	Payments *rent.PaymentService

	log *logrus.Logger
}

// NewHandler creates a new handler over the given store.
func NewHandler(store rent.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Units:    rent.NewUnitService(store),
		Tenants:  rent.NewTenantService(store),
		Payments: rent.NewPaymentService(store),
		log:      log,
	}
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

// CreateUnit creates a new property unit.
func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	unit, err := unitFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	created, err := h.Units.CreateUnit(r.Context(), unit)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUnitDTO(created))
}

// ListUnits returns all property units.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Units.Units(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTOs(units))
}

// GetUnit returns a single property unit.
func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id := rent.UnitID(chi.URLParam(r, "id"))

	unit, err := h.Units.Unit(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTO(unit))
}

// UpdateUnit copies the whitelisted fields onto an existing unit.
func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id := rent.UnitID(chi.URLParam(r, "id"))

	var req UnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	unit, err := unitFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	updated, err := h.Units.UpdateUnit(r.Context(), id, unit)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTO(updated))
}

// DeleteUnit removes a unit and all of its payments.
func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id := rent.UnitID(chi.URLParam(r, "id"))

	if err := h.Units.DeleteUnit(r.Context(), id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnitsByTenant returns the units owned by a tenant.
func (h *Handler) UnitsByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := rent.TenantID(chi.URLParam(r, "tenantID"))

	units, err := h.Units.UnitsByTenant(r.Context(), tenantID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTOs(units))
}

// SearchUnits finds units by address fragment, case-insensitively.
func (h *Handler) SearchUnits(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")

	units, err := h.Units.SearchUnits(r.Context(), address)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTOs(units))
}

// =============================================================================
// TENANT HANDLERS
// =============================================================================

// CreateTenant creates a new tenant.
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req TenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := h.Tenants.CreateTenant(r.Context(), rent.Tenant{
		FullName:   req.FullName,
		NationalID: req.NationalID,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTenantDTO(created))
}

// ListTenants returns all tenants.
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.Tenants.Tenants(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantDTOs(tenants))
}

// GetTenant returns a single tenant.
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id := rent.TenantID(chi.URLParam(r, "id"))

	tenant, err := h.Tenants.Tenant(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantDTO(tenant))
}

// DeleteTenant removes a tenant, its units, and their payments.
func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id := rent.TenantID(chi.URLParam(r, "id"))

	if err := h.Tenants.DeleteTenant(r.Context(), id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// RecordPayment validates and records a new payment.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	payment, ok := h.decodePayment(w, r)
	if !ok {
		return
	}

	created, err := h.Payments.RecordPayment(r.Context(), payment)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(created))
}

// ListPayments returns all payments.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Payments.Payments(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

// GetPayment returns a single payment.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := rent.PaymentID(chi.URLParam(r, "id"))

	payment, err := h.Payments.Payment(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(payment))
}

// UpdatePayment copies the mutable fields onto an existing payment.
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := rent.PaymentID(chi.URLParam(r, "id"))

	payment, ok := h.decodePayment(w, r)
	if !ok {
		return
	}

	updated, err := h.Payments.UpdatePayment(r.Context(), id, payment)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(updated))
}

// DeletePayment removes a payment.
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := rent.PaymentID(chi.URLParam(r, "id"))

	if err := h.Payments.DeletePayment(r.Context(), id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PaymentsForUnit returns all payments for a unit.
func (h *Handler) PaymentsForUnit(w http.ResponseWriter, r *http.Request) {
	unitID := rent.UnitID(chi.URLParam(r, "unitID"))

	payments, err := h.Payments.PaymentsForUnit(r.Context(), unitID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

// AdjustedRent computes the rent due for a unit at a date. The effective
// date defaults to today when omitted.
func (h *Handler) AdjustedRent(w http.ResponseWriter, r *http.Request) {
	unitID := rent.UnitID(chi.URLParam(r, "unitID"))

	effective, ok := dateQueryParam(w, r, "effective_date", rent.Today())
	if !ok {
		return
	}

	amount, err := h.Payments.AdjustedRentForUnit(r.Context(), unitID, effective)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AdjustedRentDTO{
		UnitID:        string(unitID),
		EffectiveDate: effective.String(),
		AdjustedRent:  money(amount),
	})
}

// OutstandingPayments returns a unit's PENDING payments.
func (h *Handler) OutstandingPayments(w http.ResponseWriter, r *http.Request) {
	unitID := rent.UnitID(chi.URLParam(r, "unitID"))

	payments, err := h.Payments.OutstandingPayments(r.Context(), unitID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

// OutstandingAmount computes the balance owed on a unit. The as-of date
// defaults to today when omitted.
func (h *Handler) OutstandingAmount(w http.ResponseWriter, r *http.Request) {
	unitID := rent.UnitID(chi.URLParam(r, "unitID"))

	asOf, ok := dateQueryParam(w, r, "as_of", rent.Today())
	if !ok {
		return
	}

	amount, err := h.Payments.OutstandingAmount(r.Context(), unitID, asOf)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OutstandingAmountDTO{
		UnitID:      string(unitID),
		AsOf:        asOf.String(),
		Outstanding: money(amount),
	})
}

// TotalPaid sums a unit's payments for one payment type.
func (h *Handler) TotalPaid(w http.ResponseWriter, r *http.Request) {
	unitID := rent.UnitID(chi.URLParam(r, "unitID"))

	paymentType := rent.PaymentType(r.URL.Query().Get("payment_type"))
	if !rent.ValidPaymentType(paymentType) {
		writeError(w, r, http.StatusBadRequest, "Unknown payment_type", nil)
		return
	}

	total, err := h.Payments.TotalPaid(r.Context(), unitID, paymentType)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TotalPaidDTO{
		UnitID:      string(unitID),
		PaymentType: string(paymentType),
		TotalPaid:   money(total),
	})
}

// PaymentHistory returns a unit's payments inside an inclusive date range.
func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	unitID := rent.UnitID(chi.URLParam(r, "unitID"))

	from, err := rent.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	to, err := rent.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	payments, err := h.Payments.PaymentHistory(r.Context(), unitID, from, to)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

// =============================================================================
// REQUEST PARSING
// =============================================================================

func unitFromRequest(req UnitRequest) (rent.PropertyUnit, error) {
	unit := rent.PropertyUnit{
		Address:  req.Address,
		Type:     req.Type,
		TenantID: rent.TenantID(req.TenantID),
	}

	if req.BaseRentAmount != "" {
		amount, err := decimal.NewFromString(req.BaseRentAmount)
		if err != nil {
			return rent.PropertyUnit{}, errors.New("invalid base_rent_amount")
		}
		unit.BaseRentAmount = amount
	}
	if req.LeaseStartDate != "" {
		d, err := rent.ParseDate(req.LeaseStartDate)
		if err != nil {
			return rent.PropertyUnit{}, errors.New("invalid lease_start_date (use YYYY-MM-DD)")
		}
		unit.LeaseStartDate = d
	}

	return unit, nil
}

func (h *Handler) decodePayment(w http.ResponseWriter, r *http.Request) (rent.Payment, bool) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return rent.Payment{}, false
	}

	payment := rent.Payment{
		UnitID:      rent.UnitID(req.UnitID),
		PaymentType: rent.PaymentType(req.PaymentType),
		Status:      rent.PaymentStatus(req.Status),
		Description: req.Description,
	}

	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "Invalid amount", err)
			return rent.Payment{}, false
		}
		payment.Amount = amount
	}
	if req.PaymentDate != "" {
		d, err := rent.ParseDate(req.PaymentDate)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "Invalid payment_date (use YYYY-MM-DD)", err)
			return rent.Payment{}, false
		}
		payment.PaymentDate = d
	}

	return payment, true
}

func dateQueryParam(w http.ResponseWriter, r *http.Request, name string, fallback rent.Date) (rent.Date, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	d, err := rent.ParseDate(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid "+name+" (use YYYY-MM-DD)", err)
		return rent.Date{}, false
	}
	return d, true
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	resp := ErrorResponse{Error: message, Path: r.URL.Path}
	if err != nil {
		resp.Code = "bad_request"
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case rent.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: err.Error(),
			Code:  "not_found",
			Path:  r.URL.Path,
		})

	case rent.IsValidation(err):
		var verr *rent.ValidationError
		errors.As(err, &verr)
		details := make([]FieldViolationDTO, len(verr.Violations))
		for i, v := range verr.Violations {
			details[i] = FieldViolationDTO{Field: v.Field, Message: v.Message}
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Code:    "validation_failed",
			Path:    r.URL.Path,
			Details: details,
		})

	case rent.IsBusinessRule(err):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Code:  "business_rule_violation",
			Path:  r.URL.Path,
		})

	default:
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Internal error",
			Code:  "internal",
			Path:  r.URL.Path,
		})
	}
}
