package repository

import (
	"context"
	"sort"

	"tenant-admin-backend/internal/store"
	"tenant-admin-backend/internal/tenant"
)

// TenantCatalog finds tenants by the tables they already own
type TenantCatalog struct {
	querier store.Querier
}

// NewTenantCatalog creates a new tenant catalog
func NewTenantCatalog(q store.Querier) *TenantCatalog {
	return &TenantCatalog{querier: q}
}

// DiscoverTenantIDs returns the ids of all tenants that have a tickets
// table in the current schema, sorted. Tables whose names do not decode
// back to a tenant id are ignored.
func (c *TenantCatalog) DiscoverTenantIDs(ctx context.Context) ([]string, error) {
	rows, err := c.querier.FetchMany(ctx, `SELECT table_name::text AS table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name LIKE $1`,
		tenant.TicketsTableLikePattern)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		name, _ := row["table_name"].(string)
		if id, ok := tenant.TenantIDFromTable(name); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
