package rent

import (
	"context"
	"errors"
)

// TenantService manages tenants. Tenants are not touched by the accounting
// calculations; they exist as the owning side of the unit cascade.
type TenantService struct {
	store Store
}

func NewTenantService(store Store) *TenantService {
	return &TenantService{store: store}
}

// CreateTenant validates and persists a new tenant. The national id must be
// unique across all tenants.
func (s *TenantService) CreateTenant(ctx context.Context, tenant Tenant) (Tenant, error) {
	if err := ValidateTenant(tenant); err != nil {
		return Tenant{}, err
	}

	existing, err := s.store.GetTenantByNationalID(ctx, tenant.NationalID)
	if err != nil && !errors.Is(err, ErrTenantNotFound) {
		return Tenant{}, err
	}
	if err == nil && existing.ID != "" {
		return Tenant{}, &BusinessRuleError{
			Rule:    "unique_national_id",
			Message: "a tenant with this national id already exists",
		}
	}

	tenant.ID = "" // store assigns identity
	tenant.CreatedAt = Today()
	return s.store.SaveTenant(ctx, tenant)
}

// Tenant returns a tenant by id.
func (s *TenantService) Tenant(ctx context.Context, id TenantID) (Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// Tenants returns all tenants.
func (s *TenantService) Tenants(ctx context.Context) ([]Tenant, error) {
	return s.store.ListTenants(ctx)
}

// TenantByNationalID looks a tenant up by its unique national id.
func (s *TenantService) TenantByNationalID(ctx context.Context, nationalID string) (Tenant, error) {
	return s.store.GetTenantByNationalID(ctx, nationalID)
}

// DeleteTenant removes the tenant, its units, and their payments.
func (s *TenantService) DeleteTenant(ctx context.Context, id TenantID) error {
	return s.store.DeleteTenant(ctx, id)
}
