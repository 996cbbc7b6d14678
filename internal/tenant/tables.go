package tenant

import (
	"regexp"
	"strings"

	apperrors "tenant-admin-backend/internal/errors"
)

const (
	tablePrefix        = "tenant_"
	ticketsTableSuffix = "_repair_tickets"
	teamTableSuffix    = "_team_members"
	tenantIDSeparator  = "-"
	tableNameSeparator = "_"
)

var tenantIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TableSet holds the private tables owned by one tenant
type TableSet struct {
	TenantID string
	Tickets  Identifier
	Team     Identifier
}

// ValidateTenantID checks that id has the UUID shape required for deriving
// table names.
func ValidateTenantID(id string) error {
	if !tenantIDPattern.MatchString(id) {
		return apperrors.ErrInvalidTenantID
	}
	return nil
}

// TablesFor derives the tenant's table names. It performs no I/O and always
// returns the same names for the same id.
func TablesFor(tenantID string) (TableSet, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return TableSet{}, err
	}

	base := tablePrefix + strings.ReplaceAll(tenantID, tenantIDSeparator, tableNameSeparator)

	tickets, err := QuoteIdentifier(base + ticketsTableSuffix)
	if err != nil {
		return TableSet{}, err
	}
	team, err := QuoteIdentifier(base + teamTableSuffix)
	if err != nil {
		return TableSet{}, err
	}

	return TableSet{TenantID: tenantID, Tickets: tickets, Team: team}, nil
}

// TenantIDFromTable recovers the tenant id from a tickets table name. ok is
// false for names that were not produced by TablesFor.
func TenantIDFromTable(table string) (tenantID string, ok bool) {
	if !strings.HasPrefix(table, tablePrefix) || !strings.HasSuffix(table, ticketsTableSuffix) {
		return "", false
	}
	middle := strings.TrimSuffix(strings.TrimPrefix(table, tablePrefix), ticketsTableSuffix)
	candidate := strings.ReplaceAll(middle, tableNameSeparator, tenantIDSeparator)
	if ValidateTenantID(candidate) != nil {
		return "", false
	}
	return candidate, true
}

// TicketsTableLikePattern matches every tickets table in information_schema
const TicketsTableLikePattern = `tenant\_%\_repair\_tickets`
