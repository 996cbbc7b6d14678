package store

import (
	"context"

	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/metrics"
	"tenant-admin-backend/internal/tenant"
)

// Provisioner creates a tenant's tables
type Provisioner interface {
	EnsureTables(ctx context.Context, tables tenant.TableSet) error
}

// TenantStore hands out queriers bound to a single tenant's tables
type TenantStore struct {
	querier     Querier
	provisioner Provisioner
	metrics     *metrics.Metrics
}

// NewTenantStore creates a new tenant store
func NewTenantStore(querier Querier, provisioner Provisioner, m *metrics.Metrics) *TenantStore {
	return &TenantStore{
		querier:     querier,
		provisioner: provisioner,
		metrics:     m,
	}
}

// ForTenant derives the tenant's tables and returns a querier for them. No
// statement is issued; an invalid tenant id fails here.
func (s *TenantStore) ForTenant(tenantID string) (*TenantQuerier, error) {
	tables, err := tenant.TablesFor(tenantID)
	if err != nil {
		return nil, err
	}
	return &TenantQuerier{Tables: tables, store: s}, nil
}

// Ensure provisions the tenant's tables explicitly
func (s *TenantStore) Ensure(ctx context.Context, tenantID string) error {
	tq, err := s.ForTenant(tenantID)
	if err != nil {
		return err
	}
	return s.provisioner.EnsureTables(ctx, tq.Tables)
}

// Querier exposes the untenanted querier for identity and catalog reads
func (s *TenantStore) Querier() Querier {
	return s.querier
}

// TenantQuerier runs statements against one tenant's tables. When a
// statement fails because a table is missing, the tables are provisioned
// and the statement is retried exactly once.
type TenantQuerier struct {
	Tables tenant.TableSet
	store  *TenantStore
}

// FetchMany runs sql and returns all rows
func (t *TenantQuerier) FetchMany(ctx context.Context, sql string, args ...any) ([]Row, error) {
	var rows []Row
	err := t.withProvisioning(ctx, func() error {
		var err error
		rows, err = t.store.querier.FetchMany(ctx, sql, args...)
		return err
	})
	return rows, err
}

// FetchOne runs sql and returns the first row or nil
func (t *TenantQuerier) FetchOne(ctx context.Context, sql string, args ...any) (Row, error) {
	var row Row
	err := t.withProvisioning(ctx, func() error {
		var err error
		row, err = t.store.querier.FetchOne(ctx, sql, args...)
		return err
	})
	return row, err
}

// Execute runs sql and returns the affected row count
func (t *TenantQuerier) Execute(ctx context.Context, sql string, args ...any) (int64, error) {
	var affected int64
	err := t.withProvisioning(ctx, func() error {
		var err error
		affected, err = t.store.querier.Execute(ctx, sql, args...)
		return err
	})
	return affected, err
}

// ExecuteReturning runs a write and returns the first RETURNING row
func (t *TenantQuerier) ExecuteReturning(ctx context.Context, sql string, args ...any) (Row, error) {
	var row Row
	err := t.withProvisioning(ctx, func() error {
		var err error
		row, err = t.store.querier.ExecuteReturning(ctx, sql, args...)
		return err
	})
	return row, err
}

func (t *TenantQuerier) withProvisioning(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !IsMissingTable(err) {
		return err
	}

	logger.WithContext(ctx).WithField("tenant", t.Tables.TenantID).Info("tenant tables missing, provisioning")
	t.store.metrics.ObserveRetry("missing_table")
	if err := t.store.provisioner.EnsureTables(ctx, t.Tables); err != nil {
		return err
	}
	return fn()
}
