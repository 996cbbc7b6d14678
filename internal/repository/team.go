package repository

import (
	"context"
	"fmt"

	"tenant-admin-backend/internal/database/models"
	"tenant-admin-backend/internal/store"
)

const teamColumns = `id, name, email, phone, role, created_at, updated_at`

// TeamRepository handles a tenant's team members table
type TeamRepository struct {
	store *store.TenantStore
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(s *store.TenantStore) *TeamRepository {
	return &TeamRepository{store: s}
}

// Count returns the number of team members
func (r *TeamRepository) Count(ctx context.Context, tenantID string) (int64, error) {
	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return 0, err
	}

	row, err := tq.FetchOne(ctx, fmt.Sprintf(`SELECT COUNT(*) AS count FROM %s`, tq.Tables.Team))
	if err != nil {
		return 0, err
	}
	return row.Int64("count")
}

// List retrieves all team members in joining order
func (r *TeamRepository) List(ctx context.Context, tenantID string) ([]models.TeamMember, error) {
	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at ASC, id ASC`, teamColumns, tq.Tables.Team)
	rows, err := tq.FetchMany(ctx, query)
	if err != nil {
		return nil, err
	}
	return store.DecodeRows[models.TeamMember](rows)
}

// Create inserts member and fills in its generated columns
func (r *TeamRepository) Create(ctx context.Context, tenantID string, member *models.TeamMember) error {
	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, email, phone, role)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, tq.Tables.Team, teamColumns)

	row, err := tq.ExecuteReturning(ctx, query, member.Name, member.Email, member.Phone, string(member.Role))
	if err != nil {
		return err
	}
	return store.DecodeRow(row, member)
}
