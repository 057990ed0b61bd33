/*
Package sqlite provides a SQLite-backed implementation of rent.Store.

PURPOSE:
  Implements unit, tenant, and payment persistence using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  tenants:        Tenant records, national_id unique
  property_units: Unit records, FK to tenants with ON DELETE CASCADE
  payments:       Payment records, FK to property_units with ON DELETE CASCADE

CASCADE:
  Ownership is enforced in the schema: deleting a unit removes its
  payments, deleting a tenant removes its units and, transitively, their
  payments. No payment can outlive its unit.

AMOUNTS AND DATES:
  Decimal amounts are stored as TEXT to preserve exact fixed-point values.
  Dates are stored as ISO text (YYYY-MM-DD); the engine has no time
  component to lose.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL for
  better read concurrency and crash recovery.

USAGE:
  st, err := sqlite.New("./data/rent.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - rent/store.go: Interface definitions
  - rent/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/prop-pilot/rent-engine/rent"
)

const dateLayout = "2006-01-02"

// Store implements rent.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		national_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS property_units (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		type TEXT NOT NULL,
		tenant_id TEXT REFERENCES tenants(id) ON DELETE CASCADE,
		base_rent_amount TEXT NOT NULL,
		lease_start_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_units_tenant
		ON property_units(tenant_id);
	CREATE INDEX IF NOT EXISTS idx_units_address
		ON property_units(address COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		property_unit_id TEXT NOT NULL
			REFERENCES property_units(id) ON DELETE CASCADE,
		amount TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		payment_type TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		month_year TEXT,
		applied_index TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payments_unit
		ON payments(property_unit_id);
	CREATE INDEX IF NOT EXISTS idx_payments_unit_status
		ON payments(property_unit_id, status);
	CREATE INDEX IF NOT EXISTS idx_payments_unit_type
		ON payments(property_unit_id, payment_type);

	-- Hot path for the history range filter
	CREATE INDEX IF NOT EXISTS idx_payments_unit_date
		ON payments(property_unit_id, payment_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// UNIT STORE (rent.UnitStore interface)
// =============================================================================

func (s *Store) SaveUnit(ctx context.Context, unit rent.PropertyUnit) (rent.PropertyUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if unit.ID == "" {
		unit.ID = rent.UnitID(uuid.NewString())
	}

	query := `
		INSERT INTO property_units
		(id, address, type, tenant_id, base_rent_amount, lease_start_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			address = excluded.address,
			type = excluded.type,
			tenant_id = excluded.tenant_id,
			base_rent_amount = excluded.base_rent_amount,
			lease_start_date = excluded.lease_start_date
	`

	_, err := s.db.ExecContext(ctx, query,
		unit.ID,
		unit.Address,
		unit.Type,
		nullString(string(unit.TenantID)),
		unit.BaseRentAmount.String(),
		unit.LeaseStartDate.String(),
		unit.CreatedAt.String(),
	)
	if err != nil {
		return rent.PropertyUnit{}, fmt.Errorf("failed to save unit: %w", err)
	}
	return unit, nil
}

func (s *Store) GetUnit(ctx context.Context, id rent.UnitID) (rent.PropertyUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, type, tenant_id, base_rent_amount, lease_start_date, created_at
		 FROM property_units WHERE id = ?`, id)

	unit, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return rent.PropertyUnit{}, &rent.NotFoundError{Kind: rent.KindUnit, ID: string(id)}
	}
	if err != nil {
		return rent.PropertyUnit{}, fmt.Errorf("failed to get unit: %w", err)
	}
	return unit, nil
}

func (s *Store) ListUnits(ctx context.Context) ([]rent.PropertyUnit, error) {
	return s.queryUnits(ctx,
		`SELECT id, address, type, tenant_id, base_rent_amount, lease_start_date, created_at
		 FROM property_units ORDER BY rowid`)
}

func (s *Store) ListUnitsByTenant(ctx context.Context, tenantID rent.TenantID) ([]rent.PropertyUnit, error) {
	return s.queryUnits(ctx,
		`SELECT id, address, type, tenant_id, base_rent_amount, lease_start_date, created_at
		 FROM property_units WHERE tenant_id = ? ORDER BY rowid`, tenantID)
}

func (s *Store) SearchUnitsByAddress(ctx context.Context, fragment string) ([]rent.PropertyUnit, error) {
	return s.queryUnits(ctx,
		`SELECT id, address, type, tenant_id, base_rent_amount, lease_start_date, created_at
		 FROM property_units
		 WHERE address LIKE '%' || ? || '%' COLLATE NOCASE
		 ORDER BY rowid`, fragment)
}

func (s *Store) DeleteUnit(ctx context.Context, id rent.UnitID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM property_units WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &rent.NotFoundError{Kind: rent.KindUnit, ID: string(id)}
	}
	return nil
}

func (s *Store) queryUnits(ctx context.Context, query string, args ...any) ([]rent.PropertyUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []rent.PropertyUnit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (rent.PropertyUnit, error) {
	var (
		unit       rent.PropertyUnit
		tenantID   sql.NullString
		baseRent   string
		leaseStart string
		createdAt  string
	)

	err := row.Scan(&unit.ID, &unit.Address, &unit.Type, &tenantID,
		&baseRent, &leaseStart, &createdAt)
	if err != nil {
		return unit, err
	}

	unit.TenantID = rent.TenantID(tenantID.String)
	unit.BaseRentAmount = rent.MustParseDecimal(baseRent)
	unit.LeaseStartDate = parseDate(leaseStart)
	unit.CreatedAt = parseDate(createdAt)
	return unit, nil
}

// =============================================================================
// TENANT STORE (rent.TenantStore interface)
// =============================================================================

func (s *Store) SaveTenant(ctx context.Context, tenant rent.Tenant) (rent.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tenant.ID == "" {
		tenant.ID = rent.TenantID(uuid.NewString())
	}

	query := `
		INSERT INTO tenants (id, full_name, national_id, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			national_id = excluded.national_id,
			email = excluded.email,
			phone = excluded.phone
	`

	_, err := s.db.ExecContext(ctx, query,
		tenant.ID, tenant.FullName, tenant.NationalID,
		tenant.Email, tenant.Phone, tenant.CreatedAt.String(),
	)
	if err != nil {
		return rent.Tenant{}, fmt.Errorf("failed to save tenant: %w", err)
	}
	return tenant, nil
}

func (s *Store) GetTenant(ctx context.Context, id rent.TenantID) (rent.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getTenantWhere(ctx, "id = ?", string(id))
}

func (s *Store) GetTenantByNationalID(ctx context.Context, nationalID string) (rent.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getTenantWhere(ctx, "national_id = ?", nationalID)
}

func (s *Store) getTenantWhere(ctx context.Context, where, arg string) (rent.Tenant, error) {
	var (
		tenant    rent.Tenant
		createdAt string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, full_name, national_id, email, phone, created_at FROM tenants WHERE "+where,
		arg,
	).Scan(&tenant.ID, &tenant.FullName, &tenant.NationalID, &tenant.Email, &tenant.Phone, &createdAt)

	if err == sql.ErrNoRows {
		return rent.Tenant{}, &rent.NotFoundError{Kind: rent.KindTenant, ID: arg}
	}
	if err != nil {
		return rent.Tenant{}, fmt.Errorf("failed to get tenant: %w", err)
	}

	tenant.CreatedAt = parseDate(createdAt)
	return tenant, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]rent.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, full_name, national_id, email, phone, created_at FROM tenants ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []rent.Tenant
	for rows.Next() {
		var (
			tenant    rent.Tenant
			createdAt string
		)
		if err := rows.Scan(&tenant.ID, &tenant.FullName, &tenant.NationalID,
			&tenant.Email, &tenant.Phone, &createdAt); err != nil {
			return nil, err
		}
		tenant.CreatedAt = parseDate(createdAt)
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (s *Store) DeleteTenant(ctx context.Context, id rent.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM tenants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &rent.NotFoundError{Kind: rent.KindTenant, ID: string(id)}
	}
	return nil
}

// =============================================================================
// PAYMENT STORE (rent.PaymentStore interface)
// =============================================================================

const paymentColumns = `id, property_unit_id, amount, payment_date, payment_type,
	status, description, month_year, applied_index, created_at`

func (s *Store) SavePayment(ctx context.Context, p rent.Payment) (rent.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = rent.PaymentID(uuid.NewString())
	}

	query := `
		INSERT INTO payments
		(id, property_unit_id, amount, payment_date, payment_type, status,
		 description, month_year, applied_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			amount = excluded.amount,
			payment_date = excluded.payment_date,
			payment_type = excluded.payment_type,
			status = excluded.status,
			description = excluded.description,
			month_year = excluded.month_year,
			applied_index = excluded.applied_index
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.UnitID,
		p.Amount.String(),
		p.PaymentDate.String(),
		p.PaymentType,
		p.Status,
		nullString(p.Description),
		nullString(p.MonthYear),
		nullString(p.AppliedIndex),
		p.CreatedAt.String(),
	)
	if err != nil {
		return rent.Payment{}, fmt.Errorf("failed to save payment: %w", err)
	}
	return p, nil
}

func (s *Store) GetPayment(ctx context.Context, id rent.PaymentID) (rent.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id = ?", id)

	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return rent.Payment{}, &rent.NotFoundError{Kind: rent.KindPayment, ID: string(id)}
	}
	if err != nil {
		return rent.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]rent.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments ORDER BY rowid")
}

func (s *Store) ListPaymentsByUnit(ctx context.Context, unitID rent.UnitID) ([]rent.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE property_unit_id = ? ORDER BY rowid",
		unitID)
}

func (s *Store) ListPaymentsByUnitAndStatus(ctx context.Context, unitID rent.UnitID, status rent.PaymentStatus) ([]rent.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE property_unit_id = ? AND status = ? ORDER BY rowid",
		unitID, status)
}

func (s *Store) ListPaymentsByUnitAndType(ctx context.Context, unitID rent.UnitID, paymentType rent.PaymentType) ([]rent.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE property_unit_id = ? AND payment_type = ? ORDER BY rowid",
		unitID, paymentType)
}

// SumPaymentsByUnitAndType aggregates in SQL. COALESCE turns the NULL sum of
// an empty row set into zero.
func (s *Store) SumPaymentsByUnitAndType(ctx context.Context, unitID rent.UnitID, paymentType rent.PaymentType) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CAST(amount AS REAL)), 0)
		 FROM payments WHERE property_unit_id = ? AND payment_type = ?`,
		unitID, paymentType,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}

	// Amounts carry at most 2 fraction digits; rounding removes the float
	// noise the REAL accumulation introduces.
	return decimal.NewFromFloat(total).Round(2), nil
}

func (s *Store) ListPaymentsByUnitInRange(ctx context.Context, unitID rent.UnitID, from, to rent.Date) ([]rent.Payment, error) {
	return s.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE property_unit_id = ? AND payment_date >= ? AND payment_date <= ?
		 ORDER BY rowid`,
		unitID, from.String(), to.String())
}

func (s *Store) DeletePayment(ctx context.Context, id rent.PaymentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &rent.NotFoundError{Kind: rent.KindPayment, ID: string(id)}
	}
	return nil
}

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]rent.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []rent.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (rent.Payment, error) {
	var (
		p            rent.Payment
		amount       string
		paymentDate  string
		description  sql.NullString
		monthYear    sql.NullString
		appliedIndex sql.NullString
		createdAt    string
	)

	err := row.Scan(&p.ID, &p.UnitID, &amount, &paymentDate, &p.PaymentType,
		&p.Status, &description, &monthYear, &appliedIndex, &createdAt)
	if err != nil {
		return p, err
	}

	p.Amount = rent.MustParseDecimal(amount)
	p.PaymentDate = parseDate(paymentDate)
	p.Description = description.String
	p.MonthYear = monthYear.String
	p.AppliedIndex = appliedIndex.String
	p.CreatedAt = parseDate(createdAt)
	return p, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDate(s string) rent.Date {
	d, err := rent.ParseDate(s)
	if err != nil {
		return rent.Date{}
	}
	return d
}
