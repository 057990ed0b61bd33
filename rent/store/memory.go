// Package store provides Store implementations.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prop-pilot/rent-engine/rent"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	tenants  map[rent.TenantID]rent.Tenant
	units    map[rent.UnitID]rent.PropertyUnit
	payments map[rent.PaymentID]rent.Payment

	// insertion order, so list queries are deterministic
	tenantOrder  []rent.TenantID
	unitOrder    []rent.UnitID
	paymentOrder []rent.PaymentID
}

func NewMemory() *Memory {
	return &Memory{
		tenants:  make(map[rent.TenantID]rent.Tenant),
		units:    make(map[rent.UnitID]rent.PropertyUnit),
		payments: make(map[rent.PaymentID]rent.Payment),
	}
}

// =============================================================================
// UNIT STORE
// =============================================================================

func (m *Memory) SaveUnit(_ context.Context, unit rent.PropertyUnit) (rent.PropertyUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if unit.ID == "" {
		unit.ID = rent.UnitID(uuid.NewString())
		m.unitOrder = append(m.unitOrder, unit.ID)
	} else if _, ok := m.units[unit.ID]; !ok {
		m.unitOrder = append(m.unitOrder, unit.ID)
	}
	m.units[unit.ID] = unit
	return unit, nil
}

func (m *Memory) GetUnit(_ context.Context, id rent.UnitID) (rent.PropertyUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	unit, ok := m.units[id]
	if !ok {
		return rent.PropertyUnit{}, &rent.NotFoundError{Kind: rent.KindUnit, ID: string(id)}
	}
	return unit, nil
}

func (m *Memory) ListUnits(_ context.Context) ([]rent.PropertyUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	units := make([]rent.PropertyUnit, 0, len(m.unitOrder))
	for _, id := range m.unitOrder {
		if u, ok := m.units[id]; ok {
			units = append(units, u)
		}
	}
	return units, nil
}

func (m *Memory) ListUnitsByTenant(_ context.Context, tenantID rent.TenantID) ([]rent.PropertyUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var units []rent.PropertyUnit
	for _, id := range m.unitOrder {
		if u, ok := m.units[id]; ok && u.TenantID == tenantID {
			units = append(units, u)
		}
	}
	return units, nil
}

func (m *Memory) SearchUnitsByAddress(_ context.Context, fragment string) ([]rent.PropertyUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(fragment)
	var units []rent.PropertyUnit
	for _, id := range m.unitOrder {
		if u, ok := m.units[id]; ok && strings.Contains(strings.ToLower(u.Address), needle) {
			units = append(units, u)
		}
	}
	return units, nil
}

func (m *Memory) DeleteUnit(_ context.Context, id rent.UnitID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.deleteUnitLocked(id)
}

func (m *Memory) deleteUnitLocked(id rent.UnitID) error {
	if _, ok := m.units[id]; !ok {
		return &rent.NotFoundError{Kind: rent.KindUnit, ID: string(id)}
	}
	delete(m.units, id)

	// Cascade: no payment may outlive its unit.
	for pid, p := range m.payments {
		if p.UnitID == id {
			delete(m.payments, pid)
		}
	}
	return nil
}

// =============================================================================
// TENANT STORE
// =============================================================================

func (m *Memory) SaveTenant(_ context.Context, tenant rent.Tenant) (rent.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tenant.ID == "" {
		tenant.ID = rent.TenantID(uuid.NewString())
		m.tenantOrder = append(m.tenantOrder, tenant.ID)
	} else if _, ok := m.tenants[tenant.ID]; !ok {
		m.tenantOrder = append(m.tenantOrder, tenant.ID)
	}
	m.tenants[tenant.ID] = tenant
	return tenant, nil
}

func (m *Memory) GetTenant(_ context.Context, id rent.TenantID) (rent.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tenant, ok := m.tenants[id]
	if !ok {
		return rent.Tenant{}, &rent.NotFoundError{Kind: rent.KindTenant, ID: string(id)}
	}
	return tenant, nil
}

func (m *Memory) GetTenantByNationalID(_ context.Context, nationalID string) (rent.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tenants {
		if t.NationalID == nationalID {
			return t, nil
		}
	}
	return rent.Tenant{}, &rent.NotFoundError{Kind: rent.KindTenant, ID: nationalID}
}

func (m *Memory) ListTenants(_ context.Context) ([]rent.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tenants := make([]rent.Tenant, 0, len(m.tenantOrder))
	for _, id := range m.tenantOrder {
		if t, ok := m.tenants[id]; ok {
			tenants = append(tenants, t)
		}
	}
	return tenants, nil
}

func (m *Memory) DeleteTenant(_ context.Context, id rent.TenantID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tenants[id]; !ok {
		return &rent.NotFoundError{Kind: rent.KindTenant, ID: string(id)}
	}
	delete(m.tenants, id)

	// Cascade through units to payments.
	for uid, u := range m.units {
		if u.TenantID == id {
			_ = m.deleteUnitLocked(uid)
		}
	}
	return nil
}

// =============================================================================
// PAYMENT STORE
// =============================================================================

func (m *Memory) SavePayment(_ context.Context, p rent.Payment) (rent.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == "" {
		p.ID = rent.PaymentID(uuid.NewString())
		m.paymentOrder = append(m.paymentOrder, p.ID)
	} else if _, ok := m.payments[p.ID]; !ok {
		m.paymentOrder = append(m.paymentOrder, p.ID)
	}
	m.payments[p.ID] = p
	return p, nil
}

func (m *Memory) GetPayment(_ context.Context, id rent.PaymentID) (rent.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.payments[id]
	if !ok {
		return rent.Payment{}, &rent.NotFoundError{Kind: rent.KindPayment, ID: string(id)}
	}
	return p, nil
}

func (m *Memory) ListPayments(_ context.Context) ([]rent.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collectPayments(func(rent.Payment) bool { return true }), nil
}

func (m *Memory) ListPaymentsByUnit(_ context.Context, unitID rent.UnitID) ([]rent.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collectPayments(func(p rent.Payment) bool { return p.UnitID == unitID }), nil
}

func (m *Memory) ListPaymentsByUnitAndStatus(_ context.Context, unitID rent.UnitID, status rent.PaymentStatus) ([]rent.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collectPayments(func(p rent.Payment) bool {
		return p.UnitID == unitID && p.Status == status
	}), nil
}

func (m *Memory) ListPaymentsByUnitAndType(_ context.Context, unitID rent.UnitID, paymentType rent.PaymentType) ([]rent.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collectPayments(func(p rent.Payment) bool {
		return p.UnitID == unitID && p.PaymentType == paymentType
	}), nil
}

func (m *Memory) SumPaymentsByUnitAndType(_ context.Context, unitID rent.UnitID, paymentType rent.PaymentType) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := decimal.Zero
	for _, p := range m.payments {
		if p.UnitID == unitID && p.PaymentType == paymentType {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (m *Memory) ListPaymentsByUnitInRange(_ context.Context, unitID rent.UnitID, from, to rent.Date) ([]rent.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collectPayments(func(p rent.Payment) bool {
		return p.UnitID == unitID &&
			from.BeforeOrEqual(p.PaymentDate) && p.PaymentDate.BeforeOrEqual(to)
	}), nil
}

func (m *Memory) DeletePayment(_ context.Context, id rent.PaymentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.payments[id]; !ok {
		return &rent.NotFoundError{Kind: rent.KindPayment, ID: string(id)}
	}
	delete(m.payments, id)
	return nil
}

func (m *Memory) collectPayments(keep func(rent.Payment) bool) []rent.Payment {
	var payments []rent.Payment
	for _, id := range m.paymentOrder {
		if p, ok := m.payments[id]; ok && keep(p) {
			payments = append(payments, p)
		}
	}
	return payments
}
