package tenant

import (
	"context"
	"errors"

	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/metrics"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes PostgreSQL may return when two sessions race through
// CREATE TABLE IF NOT EXISTS for the same name.
const (
	sqlStateDuplicateTable  = "42P07"
	sqlStateDuplicateObject = "42710"
	sqlStateUniqueViolation = "23505"
)

// Execer runs a statement that returns no rows
type Execer interface {
	Execute(ctx context.Context, sql string, args ...any) (int64, error)
}

// Provisioner creates tenant tables on first use
type Provisioner struct {
	exec    Execer
	metrics *metrics.Metrics
}

// NewProvisioner creates a new provisioner
func NewProvisioner(exec Execer, m *metrics.Metrics) *Provisioner {
	return &Provisioner{exec: exec, metrics: m}
}

// Ensure guarantees that both tables of tenantID exist when it returns nil.
// It is safe to call repeatedly and concurrently; no lock is taken because
// the store serializes conflicting DDL itself.
func (p *Provisioner) Ensure(ctx context.Context, tenantID string) error {
	tables, err := TablesFor(tenantID)
	if err != nil {
		return err
	}
	return p.EnsureTables(ctx, tables)
}

// EnsureTables is Ensure for an already derived TableSet
func (p *Provisioner) EnsureTables(ctx context.Context, tables TableSet) error {
	log := logger.WithContext(ctx).WithField("tenant", tables.TenantID)

	raced := false
	for _, stmt := range tables.CreateStatements() {
		_, err := p.exec.Execute(ctx, stmt)
		if err == nil {
			continue
		}
		if isDuplicateObject(err) {
			log.Debugf("tenant table created concurrently: %v", err)
			raced = true
			continue
		}

		p.metrics.ObserveProvisioning("failed")
		log.WithError(err).Error("tenant provisioning failed")
		return apperrors.NewStoreError(apperrors.StoreProvisioningFailed, "provision tenant "+tables.TenantID, err)
	}

	if raced {
		p.metrics.ObserveProvisioning("already_exists")
	} else {
		p.metrics.ObserveProvisioning("ok")
	}
	return nil
}

func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateDuplicateTable, sqlStateDuplicateObject, sqlStateUniqueViolation:
		return true
	}
	return false
}
