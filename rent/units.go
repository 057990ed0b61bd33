/*
units.go - Property unit lifecycle

PURPOSE:
  Create, read, update, and delete property units. Updates copy a
  whitelist of fields onto the stored record; everything else on the
  record is left untouched.

INVARIANT:
  Base rent never decreases through an update. A lower amount is rejected
  before any state change.
*/
package rent

import (
	"context"
)

// UnitService exposes the property unit side of the engine.
type UnitService struct {
	store Store
}

func NewUnitService(store Store) *UnitService {
	return &UnitService{store: store}
}

// CreateUnit validates and persists a new unit.
func (s *UnitService) CreateUnit(ctx context.Context, unit PropertyUnit) (PropertyUnit, error) {
	if err := ValidateUnit(unit, Today()); err != nil {
		return PropertyUnit{}, err
	}
	if unit.TenantID != "" {
		if _, err := s.store.GetTenant(ctx, unit.TenantID); err != nil {
			return PropertyUnit{}, err
		}
	}

	unit.ID = "" // store assigns identity
	unit.CreatedAt = Today()
	return s.store.SaveUnit(ctx, unit)
}

// Unit returns a unit by id.
func (s *UnitService) Unit(ctx context.Context, id UnitID) (PropertyUnit, error) {
	return s.store.GetUnit(ctx, id)
}

// Units returns all units.
func (s *UnitService) Units(ctx context.Context) ([]PropertyUnit, error) {
	return s.store.ListUnits(ctx)
}

// UnitsByTenant returns the units owned by a tenant.
func (s *UnitService) UnitsByTenant(ctx context.Context, tenantID TenantID) ([]PropertyUnit, error) {
	return s.store.ListUnitsByTenant(ctx, tenantID)
}

// SearchUnits finds units whose address contains the fragment,
// case-insensitively.
func (s *UnitService) SearchUnits(ctx context.Context, address string) ([]PropertyUnit, error) {
	return s.store.SearchUnitsByAddress(ctx, address)
}

// UpdateUnit copies address, type, base rent, and lease start onto the
// existing record. Rejects the update when the new base rent is lower than
// the current one; nothing is persisted in that case.
func (s *UnitService) UpdateUnit(ctx context.Context, id UnitID, update PropertyUnit) (PropertyUnit, error) {
	existing, err := s.store.GetUnit(ctx, id)
	if err != nil {
		return PropertyUnit{}, err
	}

	if update.BaseRentAmount.LessThan(existing.BaseRentAmount) {
		verr := &ValidationError{}
		verr.Add("baseRentAmount", "new rent amount cannot be lower than current rent amount")
		return PropertyUnit{}, verr
	}

	existing.Address = update.Address
	existing.Type = update.Type
	existing.BaseRentAmount = update.BaseRentAmount
	existing.LeaseStartDate = update.LeaseStartDate

	if err := ValidateUnit(existing, Today()); err != nil {
		return PropertyUnit{}, err
	}

	return s.store.SaveUnit(ctx, existing)
}

// DeleteUnit removes the unit and all payments it owns.
func (s *UnitService) DeleteUnit(ctx context.Context, id UnitID) error {
	return s.store.DeleteUnit(ctx, id)
}
