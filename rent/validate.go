/*
validate.go - Structural precondition checks

PURPOSE:
  Explicit guard checks executed before any engine entry that mutates
  state. Every violated field is reported, not just the first, so a
  caller can surface the complete list in one round trip.

CONSTRAINTS:
  PropertyUnit:
    address        non-blank, 5-255 chars
    type           non-blank, 2-50 chars
    baseRentAmount positive, at most 8 integer digits and 2 fraction digits
    leaseStartDate required, not in the future
  Payment:
    unitId         required
    amount         positive, same precision rule as rent
    paymentDate    required, not in the future
    paymentType    one of the closed type set
    status         one of the closed status set
    description    at most 500 chars
*/
package rent

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	minAddressLen     = 5
	maxAddressLen     = 255
	minTypeLen        = 2
	maxTypeLen        = 50
	maxDescriptionLen = 500
	maxIntegerDigits  = 8
)

// maxAmount is exclusive: amounts must stay below 10^8.
var maxAmount = decimal.New(1, maxIntegerDigits)

// ValidateUnit checks every structural constraint on a unit and reports all
// violations. 'now' bounds the lease start date.
func ValidateUnit(u PropertyUnit, now Date) error {
	verr := &ValidationError{}

	addr := strings.TrimSpace(u.Address)
	if addr == "" {
		verr.Add("address", "address is required")
	} else if n := utf8.RuneCountInString(u.Address); n < minAddressLen || n > maxAddressLen {
		verr.Add("address", "address must be between 5 and 255 characters")
	}

	typ := strings.TrimSpace(u.Type)
	if typ == "" {
		verr.Add("type", "property type is required")
	} else if n := utf8.RuneCountInString(u.Type); n < minTypeLen || n > maxTypeLen {
		verr.Add("type", "property type must be between 2 and 50 characters")
	}

	checkAmount(verr, "baseRentAmount", u.BaseRentAmount)

	if u.LeaseStartDate.IsZero() {
		verr.Add("leaseStartDate", "lease start date is required")
	} else if u.LeaseStartDate.After(now) {
		verr.Add("leaseStartDate", "lease start date cannot be in the future")
	}

	return verr.OrNil()
}

// ValidatePayment checks every structural constraint on a payment and reports
// all violations. 'now' bounds the payment date.
func ValidatePayment(p Payment, now Date) error {
	verr := &ValidationError{}

	if p.UnitID == "" {
		verr.Add("unitId", "payment must reference a property unit")
	}

	checkAmount(verr, "amount", p.Amount)

	if p.PaymentDate.IsZero() {
		verr.Add("paymentDate", "payment date is required")
	} else if p.PaymentDate.After(now) {
		verr.Add("paymentDate", "payment date cannot be in the future")
	}

	if !ValidPaymentType(p.PaymentType) {
		verr.Add("paymentType", "unknown payment type")
	}
	if !ValidPaymentStatus(p.Status) {
		verr.Add("status", "unknown payment status")
	}

	if utf8.RuneCountInString(p.Description) > maxDescriptionLen {
		verr.Add("description", "description cannot exceed 500 characters")
	}

	return verr.OrNil()
}

// ValidateTenant checks the structural constraints on a tenant.
func ValidateTenant(t Tenant) error {
	verr := &ValidationError{}

	if strings.TrimSpace(t.FullName) == "" {
		verr.Add("fullName", "full name is required")
	}
	if strings.TrimSpace(t.NationalID) == "" {
		verr.Add("nationalId", "national id is required")
	}
	if strings.TrimSpace(t.Email) == "" {
		verr.Add("email", "email is required")
	}
	if strings.TrimSpace(t.Phone) == "" {
		verr.Add("phone", "phone is required")
	}

	return verr.OrNil()
}

// checkAmount enforces the shared fixed-point rule: positive, at most 8
// integer digits, at most 2 fraction digits.
func checkAmount(verr *ValidationError, field string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		verr.Add(field, "amount must be greater than 0")
		return
	}
	if !amount.Equal(amount.Truncate(2)) {
		verr.Add(field, "amount must have at most 2 decimal places")
	}
	if !amount.LessThan(maxAmount) {
		verr.Add(field, "amount must have at most 8 integer digits")
	}
}
